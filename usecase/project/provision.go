package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/naccdata/flywheel-extensions/domain/model"
	"github.com/naccdata/flywheel-extensions/internal/logging"
	"github.com/naccdata/flywheel-extensions/usecase/group"
)

const (
	acceptedPrefix = "accepted"
	ingestPrefix   = "ingest-"
	metadataLabel  = "metadata"
	releasePrefix  = "release-"
	masterLabel    = "master-project"
)

// ProvisionInput lists the programs to expand into groups and projects.
type ProvisionInput struct {
	Programs []*model.Project `json:"programs"`
	DryRun   bool             `json:"dry_run,omitempty"`
}

// ProvisionOutput lists every container the run touched, in visit order.
type ProvisionOutput struct {
	Containers []model.Container `json:"containers"`
}

// Provision ensures the Flywheel containers of each program:
//
//   - per center a group holding ingest-<datatype> projects (active centers
//     only), an accepted project and a metadata project
//   - per published program a release group holding master-project
//
// Project labels carry the program slug as suffix unless the program is
// primary. The first error stops the run; the containers handled so far are
// returned together with it.
func (u *UseCase) Provision(ctx context.Context, in *ProvisionInput) (*ProvisionOutput, error) {
	if in == nil {
		return nil, model.ErrProjectInvalid
	}
	p := &provisioner{groups: u.groups(), projects: u, dryRun: in.DryRun, out: &ProvisionOutput{}}
	for _, prog := range in.Programs {
		if err := p.program(ctx, prog); err != nil {
			return p.out, fmt.Errorf("program %q: %w", prog.Name, err)
		}
	}
	return p.out, nil
}

type provisioner struct {
	groups   *group.UseCase
	projects *UseCase
	dryRun   bool
	out      *ProvisionOutput
}

func (p *provisioner) program(ctx context.Context, prog *model.Project) error {
	logger := logging.FromContext(ctx).With("program", prog.Name)
	ctx = logging.WithLogger(ctx, logger)

	if len(prog.Centers) == 0 {
		logger.Warnf(ctx, "Not creating center groups for program %s: no centers given", prog.Name)
	}
	for _, c := range prog.Centers {
		if err := p.center(ctx, prog, c); err != nil {
			return fmt.Errorf("center %q: %w", c.Name, err)
		}
	}

	if !prog.Published {
		logger.Infof(ctx, "Program %s has no release group", prog.Name)
		return nil
	}
	gid := releasePrefix + prog.ProjectID()
	if err := p.group(ctx, gid, prog.Name+" Release"); err != nil {
		return err
	}
	return p.project(ctx, gid, masterLabel)
}

func (p *provisioner) center(ctx context.Context, prog *model.Project, c *model.Center) error {
	logger := logging.FromContext(ctx)
	gid := c.CenterID()
	if err := p.group(ctx, gid, c.Name); err != nil {
		return err
	}

	switch {
	case !c.Active:
		logger.Infof(ctx, "Not creating ingest for inactive center %s", c.Name)
	case len(prog.Datatypes) == 0:
		logger.Warnf(ctx, "No ingest projects created for %s: no datatypes given", prog.Name)
	default:
		for _, dt := range prog.Datatypes {
			if err := p.project(ctx, gid, projectLabel(prog, ingestPrefix+strings.ToLower(dt))); err != nil {
				return err
			}
		}
	}

	if err := p.project(ctx, gid, projectLabel(prog, acceptedPrefix)); err != nil {
		return err
	}
	return p.project(ctx, gid, metadataLabel)
}

func (p *provisioner) group(ctx context.Context, id, label string) error {
	out, err := p.groups.Ensure(ctx, &group.EnsureInput{ID: id, Label: label, DryRun: p.dryRun})
	if err != nil {
		return err
	}
	p.out.Containers = append(p.out.Containers, model.Container{
		Kind:   model.ContainerGroup,
		Path:   out.Group.ID,
		Label:  out.Group.Label,
		ID:     out.Group.ID,
		Status: out.Status,
	})
	return nil
}

func (p *provisioner) project(ctx context.Context, groupID, label string) error {
	d := &model.ProjectDescriptor{Group: groupID, Label: label}
	out, err := p.projects.Ensure(ctx, &EnsureInput{Descriptor: d, DryRun: p.dryRun})
	if err != nil {
		return err
	}
	p.out.Containers = append(p.out.Containers, model.Container{
		Kind:   model.ContainerProject,
		Path:   out.Project.Path(),
		Label:  out.Project.Label,
		ID:     out.Project.ID,
		Status: out.Status,
	})
	return nil
}

// projectLabel appends the program slug to prefix unless the program is the
// primary program of the coordinating center.
func projectLabel(prog *model.Project, prefix string) string {
	if prog.Primary {
		return prefix
	}
	return prefix + "-" + prog.ProjectID()
}
