package rdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/naccdata/flywheel-extensions/domain"
	"github.com/naccdata/flywheel-extensions/domain/model"
	"gorm.io/gorm"
)

// GroupRepository is a GORM-backed implementation of domain.GroupRepository.
type GroupRepository struct{ db *gorm.DB }

func NewGroupRepository(db *gorm.DB) *GroupRepository { return &GroupRepository{db: db} }

func groupToModel(r *GroupRecord) *model.Group {
	return &model.Group{ID: r.ID, Label: r.Label, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

func (r *GroupRepository) Create(ctx context.Context, g *model.Group) error {
	if g == nil || g.ID == "" {
		return model.ErrGroupInvalid
	}
	now := time.Now().UTC()
	rec := &GroupRecord{ID: g.ID, Label: g.Label, CreatedAt: now, UpdatedAt: now}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&GroupRecord{}).Where("id = ?", g.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return &model.APIError{StatusCode: http.StatusConflict, Message: fmt.Sprintf("group %s already exists", g.ID)}
		}
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		g.CreatedAt, g.UpdatedAt = now, now
		return nil
	})
}

func (r *GroupRepository) Get(ctx context.Context, id string) (*model.Group, error) {
	var rec GroupRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrGroupNotFound
		}
		return nil, err
	}
	return groupToModel(&rec), nil
}

var _ domain.GroupRepository = (*GroupRepository)(nil)
