package inmem

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/naccdata/flywheel-extensions/domain/model"
	"github.com/naccdata/flywheel-extensions/internal/naming"
)

// ProjectRepository is a thread-safe in-memory implementation. It counts
// creation requests so tests can assert how many calls a run issued.
type ProjectRepository struct {
	mu      sync.RWMutex
	groups  *GroupRepository
	items   map[string]*model.FlywheelProject // keyed by id
	byPath  map[string]string                 // group/label -> id
	creates int
}

func NewProjectRepository(groups *GroupRepository) *ProjectRepository {
	return &ProjectRepository{
		groups: groups,
		items:  make(map[string]*model.FlywheelProject),
		byPath: make(map[string]string),
	}
}

func (r *ProjectRepository) Create(_ context.Context, d *model.ProjectDescriptor) (*model.FlywheelProject, error) {
	if err := d.Validate(); err != nil {
		return nil, &model.APIError{StatusCode: http.StatusBadRequest, Message: err.Error()}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.groups != nil && !r.groups.exists(d.Group) {
		return nil, &model.APIError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("group %s not found", d.Group)}
	}
	path := d.Group + "/" + d.Label
	if _, ok := r.byPath[path]; ok {
		return nil, &model.APIError{StatusCode: http.StatusConflict, Message: fmt.Sprintf("project %s already exists", path)}
	}
	id, err := naming.NewObjectID()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &model.FlywheelProject{
		ID:          id,
		Group:       d.Group,
		Label:       d.Label,
		Description: d.Description,
		Info:        maps.Clone(d.Info),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.items[id] = p
	r.byPath[path] = id
	cp := *p
	return &cp, nil
}

func (r *ProjectRepository) Lookup(_ context.Context, group, label string) (*model.FlywheelProject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPath[group+"/"+label]
	if !ok {
		return nil, model.ErrProjectNotFound
	}
	cp := *r.items[id]
	return &cp, nil
}

func (r *ProjectRepository) List(_ context.Context, group string) ([]*model.FlywheelProject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.FlywheelProject, 0)
	for _, v := range r.items {
		if v.Group != group {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

// CreateCalls returns the number of Create requests received.
func (r *ProjectRepository) CreateCalls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.creates
}
