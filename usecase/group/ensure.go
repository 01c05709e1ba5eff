package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/naccdata/flywheel-extensions/domain/model"
	"github.com/naccdata/flywheel-extensions/internal/logging"
	"github.com/naccdata/flywheel-extensions/internal/naming"
)

// EnsureInput describes a group that must exist.
type EnsureInput struct {
	// ID is the group id. It must already be sanitized.
	ID string `json:"id"`
	// Label is the display label. Defaults to ID.
	Label string `json:"label,omitempty"`
	// DryRun reports what would be created without creating it.
	DryRun bool `json:"dry_run,omitempty"`
}

// EnsureOutput reports the group and what Ensure did with it.
type EnsureOutput struct {
	Group  *model.Group          `json:"group"`
	Status model.ContainerStatus `json:"status"`
}

// Ensure looks the group up and creates it only when it does not exist.
func (u *UseCase) Ensure(ctx context.Context, in *EnsureInput) (*EnsureOutput, error) {
	if in == nil {
		return nil, model.ErrGroupInvalid
	}
	if err := naming.ValidateGroupID(in.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrGroupInvalid, err)
	}
	label := in.Label
	if label == "" {
		label = in.ID
	}
	logger := logging.FromContext(ctx)

	g, err := u.Repos.Group.Get(ctx, in.ID)
	if err == nil {
		logger.Debug(ctx, "group exists", "group", in.ID)
		return &EnsureOutput{Group: g, Status: model.ContainerExists}, nil
	}
	if !errors.Is(err, model.ErrGroupNotFound) {
		return nil, err
	}

	g = &model.Group{ID: in.ID, Label: naming.SanitizeLabel(label)}
	if in.DryRun {
		logger.Info(ctx, "dry run: would create group", "group", g.ID, "label", g.Label)
		return &EnsureOutput{Group: g, Status: model.ContainerPlanned}, nil
	}
	if err := u.Repos.Group.Create(ctx, g); err != nil {
		return nil, err
	}
	logger.Info(ctx, "created group", "group", g.ID, "label", g.Label)
	return &EnsureOutput{Group: g, Status: model.ContainerCreated}, nil
}
