package rdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/naccdata/flywheel-extensions/domain"
	"github.com/naccdata/flywheel-extensions/domain/model"
	"gorm.io/gorm"
)

// ProjectRepository is a GORM-backed implementation of domain.ProjectRepository.
type ProjectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) *ProjectRepository { return &ProjectRepository{db: db} }

func projectToModel(r *ProjectRecord) (*model.FlywheelProject, error) {
	p := &model.FlywheelProject{
		ID:          r.ID,
		Group:       r.GroupID,
		Label:       r.Label,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Info != "" {
		if err := json.Unmarshal([]byte(r.Info), &p.Info); err != nil {
			return nil, fmt.Errorf("decode info of project %s: %w", r.ID, err)
		}
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, d *model.ProjectDescriptor) (*model.FlywheelProject, error) {
	if err := d.Validate(); err != nil {
		return nil, &model.APIError{StatusCode: http.StatusBadRequest, Message: err.Error()}
	}
	now := time.Now().UTC()
	rec := &ProjectRecord{
		ID:          "proj-" + uuid.NewString(),
		GroupID:     d.Group,
		Label:       d.Label,
		Description: d.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if len(d.Info) > 0 {
		b, err := json.Marshal(d.Info)
		if err != nil {
			return nil, err
		}
		rec.Info = string(b)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&GroupRecord{}).Where("id = ?", d.Group).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return &model.APIError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("group %s not found", d.Group)}
		}
		if err := tx.Model(&ProjectRecord{}).Where("group_id = ? AND label = ?", d.Group, d.Label).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return &model.APIError{StatusCode: http.StatusConflict, Message: fmt.Sprintf("project %s/%s already exists", d.Group, d.Label)}
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, err
	}
	return projectToModel(rec)
}

func (r *ProjectRepository) Lookup(ctx context.Context, group, label string) (*model.FlywheelProject, error) {
	var rec ProjectRecord
	if err := r.db.WithContext(ctx).First(&rec, "group_id = ? AND label = ?", group, label).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProjectNotFound
		}
		return nil, err
	}
	return projectToModel(&rec)
}

func (r *ProjectRepository) List(ctx context.Context, group string) ([]*model.FlywheelProject, error) {
	var recs []ProjectRecord
	if err := r.db.WithContext(ctx).Where("group_id = ?", group).Order("label ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.FlywheelProject, 0, len(recs))
	for i := range recs {
		p, err := projectToModel(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

var _ domain.ProjectRepository = (*ProjectRepository)(nil)
