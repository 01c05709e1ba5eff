package gear

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/naccdata/flywheel-extensions/config/gearcfg"
	"github.com/naccdata/flywheel-extensions/config/projectcfg"
	"github.com/naccdata/flywheel-extensions/domain"
	"github.com/naccdata/flywheel-extensions/domain/model"
	"github.com/naccdata/flywheel-extensions/internal/logging"
	"github.com/naccdata/flywheel-extensions/internal/naming"
	"github.com/naccdata/flywheel-extensions/internal/output"
	"github.com/naccdata/flywheel-extensions/usecase/project"
)

// Run performs one provisioning attempt and writes the Result to
// output/result.json exactly once. Provisioning failures end up in the
// Result and the exit code; the returned error is reserved for a Result
// that could not be written.
func (u *UseCase) Run(ctx context.Context, in *RunInput) (*RunOutput, error) {
	if in == nil {
		in = &RunInput{}
	}
	res := &model.Result{RunID: uuid.NewString(), Mode: ModeCreate, StartedAt: u.now()}
	logger := logging.FromContext(ctx).With("runId", res.RunID)
	ctx = logging.WithLogger(ctx, logger)

	err := u.run(ctx, in, res)
	res.FinishedAt = u.now()
	if err != nil {
		res.Fail(err)
		logger.Error(ctx, "provisioning failed", "kind", res.Error.Kind, "error", err)
	} else {
		res.Status = model.ResultSuccess
		logger.Info(ctx, "provisioning succeeded", "mode", res.Mode, "containers", len(res.Containers))
	}

	out := &RunOutput{Result: res, ExitCode: ExitCode(err)}
	if werr := output.WriteJSON(u.Gear.ResultPath(), res); werr != nil {
		out.ExitCode = ExitError
		return out, werr
	}
	return out, nil
}

// ExitCode maps a run error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case model.KindOf(err) == model.ErrorKindManifest:
		return ExitManifest
	default:
		return ExitError
	}
}

func (u *UseCase) run(ctx context.Context, in *RunInput, res *model.Result) error {
	if in.SetupErr != nil {
		return in.SetupErr
	}
	m, err := gearcfg.LoadManifest(u.Gear.ManifestPath())
	if err != nil {
		return err
	}
	cfg, err := gearcfg.LoadConfig(u.Gear.ConfigPath())
	if err != nil {
		return &model.ValidationError{Key: gearcfg.ConfigFileName, Reason: err.Error()}
	}
	vals, err := m.ValidateConfig(cfg.Config)
	if err != nil {
		return err
	}

	res.DryRun = in.DryRun
	if b, ok := vals.Bool(KeyDryRun); ok && b {
		res.DryRun = true
	}

	projectFile := in.ProjectFile
	if projectFile == "" {
		path, ok, err := u.Gear.InputPath(cfg, InputProjectFile)
		if err != nil {
			return &model.ValidationError{Key: InputProjectFile, Reason: err.Error()}
		}
		if ok {
			projectFile = path
		}
	}
	if projectFile != "" {
		res.Mode = ModeProvision
		return u.provision(ctx, cfg, projectFile, res)
	}
	return u.create(ctx, cfg, vals, res)
}

// create issues the single creation request of the create mode.
func (u *UseCase) create(ctx context.Context, cfg *gearcfg.Config, vals gearcfg.Values, res *model.Result) error {
	d, err := Descriptor(vals)
	if err != nil {
		return err
	}
	if res.DryRun {
		logging.FromContext(ctx).Info(ctx, "dry run: would create project", "group", d.Group, "label", d.Label)
		res.Project = &model.FlywheelProject{Group: d.Group, Label: d.Label, Description: d.Description, Info: d.Info}
		res.Containers = []model.Container{projectContainer(res.Project, model.ContainerPlanned)}
		return nil
	}

	repos, err := u.connect(ctx, cfg)
	if err != nil {
		return err
	}
	uc := &project.UseCase{Repos: &project.Repos{Group: repos.Group, Project: repos.Project}}
	out, err := uc.Create(ctx, &project.CreateInput{Descriptor: d})
	if err != nil {
		return err
	}
	res.Project = out.Project
	res.Containers = []model.Container{projectContainer(out.Project, model.ContainerCreated)}
	return nil
}

// provision expands every program of the project file.
func (u *UseCase) provision(ctx context.Context, cfg *gearcfg.Config, path string, res *model.Result) error {
	roots, err := projectcfg.Load(path)
	if err != nil {
		return &model.ValidationError{Key: InputProjectFile, Reason: err.Error()}
	}
	programs, err := projectcfg.ToModels(roots)
	if err != nil {
		return &model.ValidationError{Key: InputProjectFile, Reason: err.Error()}
	}
	logging.FromContext(ctx).Info(ctx, "loaded project file", "path", path, "programs", len(programs))

	repos, err := u.connect(ctx, cfg)
	if err != nil {
		return err
	}
	uc := &project.UseCase{Repos: &project.Repos{Group: repos.Group, Project: repos.Project}}
	out, err := uc.Provision(ctx, &project.ProvisionInput{Programs: programs, DryRun: res.DryRun})
	if out != nil {
		res.Containers = out.Containers
	}
	return err
}

func (u *UseCase) connect(ctx context.Context, cfg *gearcfg.Config) (*domain.Repositories, error) {
	if u.Connect == nil {
		return nil, &model.ValidationError{Key: "api_url", Reason: "no backend configured"}
	}
	return u.Connect(ctx, cfg.APIKey())
}

// Descriptor builds the project descriptor from validated config values.
// The group id must already be a valid id; the label is truncated to the
// Flywheel label limit.
func Descriptor(vals gearcfg.Values) (*model.ProjectDescriptor, error) {
	group, _ := vals.String(KeyGroup)
	if group == "" {
		return nil, &model.ValidationError{Key: KeyGroup, Reason: "required key missing"}
	}
	if err := naming.ValidateGroupID(group); err != nil {
		return nil, &model.ValidationError{Key: KeyGroup, Reason: err.Error()}
	}
	label, _ := vals.String(KeyProjectLabel)
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, &model.ValidationError{Key: KeyProjectLabel, Reason: "required key missing"}
	}
	d := &model.ProjectDescriptor{Group: group, Label: naming.SanitizeLabel(label)}
	d.Description, _ = vals.String(KeyDescription)
	if info, ok := vals.StringMap(KeyLabels); ok && len(info) > 0 {
		d.Info = info
	}
	if err := d.Validate(); err != nil {
		return nil, &model.ValidationError{Key: KeyProjectLabel, Reason: err.Error()}
	}
	return d, nil
}

func projectContainer(p *model.FlywheelProject, status model.ContainerStatus) model.Container {
	return model.Container{Kind: model.ContainerProject, Path: p.Path(), Label: p.Label, ID: p.ID, Status: status}
}
