package flywheel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/naccdata/flywheel-extensions/domain/model"
)

type groupResponse struct {
	ID       string    `json:"_id"`
	Label    string    `json:"label"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

func (g *groupResponse) toModel() *model.Group {
	return &model.Group{ID: g.ID, Label: g.Label, CreatedAt: g.Created, UpdatedAt: g.Modified}
}

// GroupRepository implements domain.GroupRepository over the REST API.
type GroupRepository struct{ c *Client }

// Get retrieves a group by id.
func (r *GroupRepository) Get(ctx context.Context, id string) (*model.Group, error) {
	var resp groupResponse
	if err := r.c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/groups/%s", url.PathEscape(id)), nil, &resp); err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", model.ErrGroupNotFound, id)
		}
		return nil, err
	}
	return resp.toModel(), nil
}

// Create creates a group and reads it back for server populated fields.
func (r *GroupRepository) Create(ctx context.Context, g *model.Group) error {
	if g == nil || g.ID == "" {
		return model.ErrGroupInvalid
	}
	req := struct {
		ID    string `json:"_id"`
		Label string `json:"label"`
	}{ID: g.ID, Label: g.Label}
	if err := r.c.doRequest(ctx, http.MethodPost, "/api/groups", req, nil); err != nil {
		return err
	}
	created, err := r.Get(ctx, g.ID)
	if err != nil {
		return err
	}
	*g = *created
	return nil
}
