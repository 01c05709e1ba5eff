package model

import "github.com/naccdata/flywheel-extensions/internal/naming"

// Project represents a program with data managed at NACC. It is the unit
// described by one document of the project file and expands into Flywheel
// groups and projects.
type Project struct {
	Name      string
	Centers   []*Center
	Datatypes []string
	Published bool // published programs get a release group
	Primary   bool // primary program of the coordinating center
}

// ProjectID returns the slug used as suffix in derived project labels.
func (p *Project) ProjectID() string {
	return naming.Slugify(p.Name)
}
