package projectcfg

import (
	"fmt"
	"strings"

	"github.com/naccdata/flywheel-extensions/domain/model"
	"github.com/naccdata/flywheel-extensions/internal/naming"
)

// ToModel converts a document to a domain project.
func (r *Root) ToModel() (*model.Project, error) {
	p := &model.Project{
		Name:      strings.TrimSpace(r.Project),
		Published: r.Published,
		Primary:   r.Primary,
	}
	if err := naming.ValidateSlug(p.ProjectID()); err != nil {
		return nil, fmt.Errorf("project %q: %w", r.Project, err)
	}
	for _, dt := range r.Datatypes {
		p.Datatypes = append(p.Datatypes, strings.ToLower(dt))
	}

	seen := make(map[string]int, len(r.Centers))
	for i, c := range r.Centers {
		center, err := c.toModel()
		if err != nil {
			return nil, fmt.Errorf("centers[%d]: %w", i, err)
		}
		id := center.CenterID()
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("centers[%d]: center id %q duplicates centers[%d]", i, id, prev)
		}
		seen[id] = i
		p.Centers = append(p.Centers, center)
	}
	return p, nil
}

func (c *Center) toModel() (*model.Center, error) {
	adcid := c.ADCID
	if adcid == nil {
		adcid = c.CenterID
	}
	if adcid == nil {
		return nil, fmt.Errorf("center %q: adc-id is required", c.Name)
	}
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}
	center := &model.Center{ADCID: *adcid, Name: strings.TrimSpace(c.Name), Active: active}
	if err := naming.ValidateSlug(center.CenterID()); err != nil {
		return nil, fmt.Errorf("center %q: %w", c.Name, err)
	}
	return center, nil
}

// ToModels converts all documents, failing on the first invalid one.
func ToModels(roots []*Root) ([]*model.Project, error) {
	out := make([]*model.Project, 0, len(roots))
	for i, r := range roots {
		p, err := r.ToModel()
		if err != nil {
			return nil, &DocumentError{Index: i, Err: err}
		}
		out = append(out, p)
	}
	return out, nil
}
