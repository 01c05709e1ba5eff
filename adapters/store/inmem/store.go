// Package inmem provides a thread-safe in-memory stand-in for the Flywheel
// management API. It enforces the same uniqueness rules as the real system:
// group ids are unique and project labels are unique within a group.
package inmem

import (
	"github.com/naccdata/flywheel-extensions/domain"
)

// Store provides a unified interface for all in-memory repositories.
type Store struct {
	GroupRepository   *GroupRepository
	ProjectRepository *ProjectRepository
}

// NewStore creates a new in-memory store with all repositories.
func NewStore() *Store {
	groups := NewGroupRepository()
	return &Store{
		GroupRepository:   groups,
		ProjectRepository: NewProjectRepository(groups),
	}
}

// Repositories returns the store as a domain repository set.
func (s *Store) Repositories() *domain.Repositories {
	return &domain.Repositories{Group: s.GroupRepository, Project: s.ProjectRepository}
}

// Compile-time assertions
var _ domain.GroupRepository = (*GroupRepository)(nil)
var _ domain.ProjectRepository = (*ProjectRepository)(nil)
