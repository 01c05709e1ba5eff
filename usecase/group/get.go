package group

import (
	"context"

	"github.com/naccdata/flywheel-extensions/domain/model"
)

// GetInput identifies the group to fetch.
type GetInput struct {
	ID string `json:"id"`
}

// GetOutput wraps the retrieved group.
type GetOutput struct {
	Group *model.Group `json:"group"`
}

// Get returns the group identified by ID.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.ID == "" {
		return nil, model.ErrGroupInvalid
	}
	g, err := u.Repos.Group.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Group: g}, nil
}
