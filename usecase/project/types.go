package project

import (
	"github.com/naccdata/flywheel-extensions/domain"
	"github.com/naccdata/flywheel-extensions/usecase/group"
)

// Repos holds repositories needed for project use cases.
type Repos struct {
	Group   domain.GroupRepository
	Project domain.ProjectRepository
}

// UseCase wires repositories needed for project use cases.
type UseCase struct {
	Repos *Repos
}

func (u *UseCase) groups() *group.UseCase {
	return &group.UseCase{Repos: &group.Repos{Group: u.Repos.Group}}
}
