package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the shape of playground.yaml: the on-disk defaults a CLI session
// loads before applying flag overrides. A small yaml.v3-decoded struct
// with defaulting left to the caller, so a zero field in the file means
// "unset" rather than "set to zero".
type File struct {
	MaxSteps          int    `yaml:"maxSteps,omitempty"`
	LineWidth         int    `yaml:"lineWidth,omitempty"`
	ValuePrefix       string `yaml:"valuePrefix,omitempty"`
	ClosurePrefix     string `yaml:"closurePrefix,omitempty"`
	IncludeApplyTypes bool   `yaml:"includeApplicationTypes,omitempty"`
}

// Defaults returns a File populated with the package's compiled-in
// defaults, the starting point before a playground.yaml (if any) is
// merged in.
func Defaults() File {
	return File{
		MaxSteps:      DefaultMaxSteps,
		LineWidth:     DefaultLineWidth,
		ValuePrefix:   DefaultValuePrefix,
		ClosurePrefix: DefaultClosurePrefix,
	}
}

// Load reads and decodes a playground.yaml config file, merging any set
// fields over d. A missing file is not an error; Load returns d unchanged.
func Load(path string, d File) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return d, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	merged := d
	if f.MaxSteps != 0 {
		merged.MaxSteps = f.MaxSteps
	}
	if f.LineWidth != 0 {
		merged.LineWidth = f.LineWidth
	}
	if f.ValuePrefix != "" {
		merged.ValuePrefix = f.ValuePrefix
	}
	if f.ClosurePrefix != "" {
		merged.ClosurePrefix = f.ClosurePrefix
	}
	if f.IncludeApplyTypes {
		merged.IncludeApplyTypes = true
	}
	return merged, nil
}
