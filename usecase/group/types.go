package group

import "github.com/naccdata/flywheel-extensions/domain"

// Repos holds repositories needed for group use cases.
type Repos struct {
	Group domain.GroupRepository
}

// UseCase wires repositories needed for group use cases.
type UseCase struct {
	Repos *Repos
}
