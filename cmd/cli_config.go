package cmd

import (
	"os"

	"github.com/creasty/defaults"
	"github.com/ethpandaops/qmerge/pkg/pipeline"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads the run configuration from a YAML file. A missing file
// yields the defaults.
func LoadConfig(path string) (*pipeline.Config, error) {
	if path == "" {
		path = "qmerge.yaml"
	}

	config := &pipeline.Config{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	// Try to read the file, but allow it to not exist
	yamlFile, err := os.ReadFile(path) //nolint:gosec // User-provided config file path
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, err
	}

	return config, nil
}
