package model

import "time"

// ProjectDescriptor is the creation payload for a Flywheel project.
type ProjectDescriptor struct {
	Group       string            `json:"group"`
	Label       string            `json:"label"`
	Description string            `json:"description,omitempty"`
	Info        map[string]string `json:"info,omitempty"`
}

// FlywheelProject is a project as returned by the management system.
type FlywheelProject struct {
	ID          string            `json:"id"`
	Group       string            `json:"group"`
	Label       string            `json:"label"`
	Description string            `json:"description,omitempty"`
	Info        map[string]string `json:"info,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Path returns the lookup path "<group>/<label>".
func (p *FlywheelProject) Path() string {
	return p.Group + "/" + p.Label
}

// Validate checks the descriptor carries the fields every backend needs.
func (d *ProjectDescriptor) Validate() error {
	if d == nil || d.Group == "" || d.Label == "" {
		return ErrProjectInvalid
	}
	return nil
}
