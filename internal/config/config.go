// Package config loads the optional rsdump.yaml project file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig describes the optional rsdump.yaml file. Every field
// overrides one of the built-in defaults; absent fields leave the
// defaults in place.
type ProjectConfig struct {
	// CSVPath is the path to the CSV file to load.
	CSVPath string `yaml:"csv_path,omitempty"`

	// SchemaName is the target schema to write to.
	SchemaName string `yaml:"schema_name,omitempty"`

	// TableName is the target table to write to.
	TableName string `yaml:"table_name,omitempty"`

	// EnvPrefix is the environment variable prefix for credential
	// resolution.
	EnvPrefix string `yaml:"env_prefix,omitempty"`
}

const ConfigFileName = "rsdump.yaml"

// Load reads rsdump.yaml from sourcePath. A missing file returns
// ErrConfigNotFound; callers treat that as "use the defaults".
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
