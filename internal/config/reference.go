package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"prism/internal/errors"
)

// ReferenceOverride is the optional on-disk override for the built-in
// reference column list and category aliases. Deployments point
// REFERENCE_FILE at a YAML file shaped like:
//
//	columns:
//	  - resource.project_display_name
//	  - finding.category
type ReferenceOverride struct {
	Columns []string `yaml:"columns"`
}

// LoadReferenceColumns reads a reference override file. An empty path means
// no override and returns nil columns, letting the caller fall back to the
// built-in list.
func LoadReferenceColumns(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read reference file %s", path)
	}

	var override ReferenceOverride
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, errors.Wrapf(err, "failed to parse reference file %s", path)
	}

	if len(override.Columns) == 0 {
		return nil, errors.ConfigInvalid("reference file defines no columns")
	}
	return override.Columns, nil
}
