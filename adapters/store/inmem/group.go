package inmem

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/naccdata/flywheel-extensions/domain/model"
)

// GroupRepository is a thread-safe in-memory implementation.
type GroupRepository struct {
	mu    sync.RWMutex
	items map[string]*model.Group
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{items: make(map[string]*model.Group)}
}

func (r *GroupRepository) Create(_ context.Context, g *model.Group) error {
	if g == nil || g.ID == "" {
		return model.ErrGroupInvalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[g.ID]; ok {
		return &model.APIError{StatusCode: http.StatusConflict, Message: fmt.Sprintf("group %s already exists", g.ID)}
	}
	now := time.Now().UTC()
	g.CreatedAt, g.UpdatedAt = now, now
	cp := *g
	r.items[g.ID] = &cp
	return nil
}

func (r *GroupRepository) Get(_ context.Context, id string) (*model.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrGroupNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *GroupRepository) exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id]
	return ok
}
