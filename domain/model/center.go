package model

import "github.com/naccdata/flywheel-extensions/internal/naming"

// Center represents a center with data managed at NACC.
type Center struct {
	ADCID  int    // ADC id, protected information
	Name   string // display name
	Active bool   // active centers have users and receive ingest projects
}

// CenterID returns the group id derived from the center name.
func (c *Center) CenterID() string {
	return naming.Slugify(c.Name)
}
