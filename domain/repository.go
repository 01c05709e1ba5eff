package domain

import (
	"context"

	"github.com/naccdata/flywheel-extensions/domain/model"
)

// GroupRepository stores and retrieves Flywheel groups.
type GroupRepository interface {
	// Get returns model.ErrGroupNotFound (or an error matching it) when absent.
	Get(ctx context.Context, id string) (*model.Group, error)
	Create(ctx context.Context, g *model.Group) error
}

// ProjectRepository is the project creation API of the management system.
type ProjectRepository interface {
	// Create issues exactly one creation request. Duplicates are rejected
	// with an error matching model.ErrAlreadyExists.
	Create(ctx context.Context, d *model.ProjectDescriptor) (*model.FlywheelProject, error)
	// Lookup returns model.ErrProjectNotFound (or an error matching it) when absent.
	Lookup(ctx context.Context, group, label string) (*model.FlywheelProject, error)
	List(ctx context.Context, group string) ([]*model.FlywheelProject, error)
}

// Repositories groups repository interfaces of one backend.
type Repositories struct {
	Group   GroupRepository
	Project ProjectRepository
}
