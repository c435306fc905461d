package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Config holds the run-time options. They can be set in a YAML file and overridden by flags.
type Config struct {
	MaxSteps    int    `yaml:"max_steps"`
	Interactive bool   `yaml:"interactive"`
	ClearScreen bool   `yaml:"clear_screen"`
	Colour      bool   `yaml:"colour"`
	LogLevel    string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		MaxSteps:    MAX_STEPS,
		ClearScreen: true,
		Colour:      true,
		LogLevel:    "warn",
	}
}

const configSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"max_steps":    {"type": "integer", "minimum": 1},
		"interactive":  {"type": "boolean"},
		"clear_screen": {"type": "boolean"},
		"colour":       {"type": "boolean"},
		"log_level":    {"type": "string", "enum": ["trace", "debug", "info", "warn", "error", "disabled"]}
	}
}`

// ValidationError lists everything that is wrong with a configuration file.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	return "config validation failed: " + strings.Join(e.Issues, "; ")
}

// Load reads the configuration file at path. An empty path gives the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse validates YAML configuration data against the schema and decodes it over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(configSchema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if !result.Valid() {
		issues := []string{}
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return cfg, &ValidationError{Issues: issues}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
