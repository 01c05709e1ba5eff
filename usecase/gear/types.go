// Package gear drives one gear invocation from manifest and config.json to
// the Result artifact.
package gear

import (
	"context"
	"time"

	"github.com/naccdata/flywheel-extensions/config/gearcfg"
	"github.com/naccdata/flywheel-extensions/domain"
	"github.com/naccdata/flywheel-extensions/domain/model"
)

// Config keys and inputs read by the gear.
const (
	KeyGroup         = "group"
	KeyProjectLabel  = "project_label"
	KeyDescription   = "description"
	KeyLabels        = "labels"
	KeyDryRun        = "dry_run"
	InputProjectFile = "project_file"
)

// Run modes recorded in the Result.
const (
	ModeCreate    = "create"
	ModeProvision = "provision"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitError    = 1
	ExitManifest = 2
)

// Connector opens the backend for the API key found in config.json, which
// may be empty when the gear has no api-key input.
type Connector func(ctx context.Context, apiKey string) (*domain.Repositories, error)

// UseCase runs the gear found in Gear.Dir.
type UseCase struct {
	Gear    gearcfg.Gear
	Connect Connector
	// Now defaults to time.Now.
	Now func() time.Time
}

// RunInput carries command line overrides.
type RunInput struct {
	// DryRun forces a dry run regardless of the dry_run config key.
	DryRun bool `json:"dry_run,omitempty"`
	// ProjectFile replaces the project_file input.
	ProjectFile string `json:"project_file,omitempty"`
	// SetupErr is a failure of the command environment. When set it is
	// reported in the Result without reading the gear directory.
	SetupErr error `json:"-"`
}

// RunOutput is the outcome of one invocation.
type RunOutput struct {
	Result   *model.Result `json:"result"`
	ExitCode int           `json:"exit_code"`
}

func (u *UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now().UTC()
	}
	return time.Now().UTC()
}
