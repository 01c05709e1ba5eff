// Package projectcfg defines the project file: a multi-document YAML file in
// which every document describes one program, its centers and datatypes.
package projectcfg

// Root is one document of the project file.
type Root struct {
	Project   string    `yaml:"project"`
	Centers   []*Center `yaml:"centers"`
	Datatypes []string  `yaml:"datatypes"`
	Published bool      `yaml:"published"`
	Primary   bool      `yaml:"primary"`
}

// Center is a center entry of a program.
type Center struct {
	ADCID    *int   `yaml:"adc-id"`
	CenterID *int   `yaml:"center-id"` // older files use center-id for the ADC id
	Name     string `yaml:"name"`
	IsActive *bool  `yaml:"is-active"` // defaults to true
}
