package project

import (
	"context"

	"github.com/naccdata/flywheel-extensions/domain/model"
)

// ListInput selects the group whose projects are listed.
type ListInput struct {
	Group string `json:"group"`
}

// ListOutput holds the projects of the group sorted by label.
type ListOutput struct {
	Projects []*model.FlywheelProject `json:"projects"`
}

// List returns the projects of a group.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	if in == nil || in.Group == "" {
		return nil, model.ErrGroupInvalid
	}
	items, err := u.Repos.Project.List(ctx, in.Group)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Projects: items}, nil
}
