package project

import (
	"context"

	"github.com/naccdata/flywheel-extensions/domain/model"
	"github.com/naccdata/flywheel-extensions/internal/logging"
)

// CreateInput carries the descriptor of the project to create.
type CreateInput struct {
	Descriptor *model.ProjectDescriptor `json:"descriptor"`
}

// CreateOutput contains the project returned by the backend.
type CreateOutput struct {
	Project *model.FlywheelProject `json:"project"`
}

// Create issues exactly one creation request. There is no lookup and no
// retry, so a duplicate is reported as the backend's rejection.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil {
		return nil, model.ErrProjectInvalid
	}
	if err := in.Descriptor.Validate(); err != nil {
		return nil, err
	}
	p, err := u.Repos.Project.Create(ctx, in.Descriptor)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info(ctx, "created project", "project", p.Path(), "id", p.ID)
	return &CreateOutput{Project: p}, nil
}
