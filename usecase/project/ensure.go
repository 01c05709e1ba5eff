package project

import (
	"context"
	"errors"

	"github.com/naccdata/flywheel-extensions/domain/model"
	"github.com/naccdata/flywheel-extensions/internal/logging"
)

// EnsureInput describes a project that must exist.
type EnsureInput struct {
	Descriptor *model.ProjectDescriptor `json:"descriptor"`
	DryRun     bool                     `json:"dry_run,omitempty"`
}

// EnsureOutput reports the project and what Ensure did with it.
type EnsureOutput struct {
	Project *model.FlywheelProject `json:"project"`
	Status  model.ContainerStatus  `json:"status"`
}

// Ensure looks the project up by group and label and creates it only when
// the lookup reports not-found.
func (u *UseCase) Ensure(ctx context.Context, in *EnsureInput) (*EnsureOutput, error) {
	if in == nil {
		return nil, model.ErrProjectInvalid
	}
	d := in.Descriptor
	if err := d.Validate(); err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)

	p, err := u.Repos.Project.Lookup(ctx, d.Group, d.Label)
	if err == nil {
		logger.Debug(ctx, "project exists", "project", p.Path())
		return &EnsureOutput{Project: p, Status: model.ContainerExists}, nil
	}
	if !errors.Is(err, model.ErrProjectNotFound) {
		return nil, err
	}

	if in.DryRun {
		logger.Info(ctx, "dry run: would create project", "group", d.Group, "label", d.Label)
		planned := &model.FlywheelProject{Group: d.Group, Label: d.Label, Description: d.Description, Info: d.Info}
		return &EnsureOutput{Project: planned, Status: model.ContainerPlanned}, nil
	}
	out, err := u.Create(ctx, &CreateInput{Descriptor: d})
	if err != nil {
		return nil, err
	}
	return &EnsureOutput{Project: out.Project, Status: model.ContainerCreated}, nil
}
