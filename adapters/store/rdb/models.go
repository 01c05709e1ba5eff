package rdb

import "time"

// GroupRecord is the RDB persistence model for domain Group.
// Table name: groups
type GroupRecord struct {
	ID        string    `gorm:"primaryKey;type:text;not null"`
	Label     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (GroupRecord) TableName() string { return "groups" }

// ProjectRecord persistence model
type ProjectRecord struct {
	ID          string    `gorm:"primaryKey;type:text;not null"`
	GroupID     string    `gorm:"type:text;not null;uniqueIndex:idx_projects_group_label"` // references Group
	Label       string    `gorm:"type:text;not null;uniqueIndex:idx_projects_group_label"`
	Description string    `gorm:"type:text"`
	Info        string    `gorm:"type:text"` // JSON encoded map[string]string
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (ProjectRecord) TableName() string { return "projects" }
