package config

import (
	"fmt"
	"strings"

	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the working directory.
const FileName = "compose2easypanel.yml"

// EnvPrefix prefixes environment variables that override config keys,
// e.g. COMPOSE2EASYPANEL_PROJECT_NAME.
const EnvPrefix = "COMPOSE2EASYPANEL"

type Config struct {
	Input                 string            `mapstructure:"input"`
	Output                string            `mapstructure:"output"`
	ProjectName           string            `mapstructure:"project_name"`
	Pretty                bool              `mapstructure:"pretty"`
	Strict                bool              `mapstructure:"strict"`
	IncludeNetworks       bool              `mapstructure:"include_networks"`
	IncludeVolumes        bool              `mapstructure:"include_volumes"`
	SubstituteEnvironment bool              `mapstructure:"substitute_environment"`
	EnvFiles              []string          `mapstructure:"env_files"`
	TypeOverrides         map[string]string `mapstructure:"type_overrides"`
	Template              bool              `mapstructure:"template"`
	Validate              bool              `mapstructure:"validate"`
}

// SetDefaults registers default values on v so environment variables bind
// to every key even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input", "docker-compose.yml")
	v.SetDefault("output", "schema.json")
	v.SetDefault("project_name", "")
	v.SetDefault("pretty", false)
	v.SetDefault("strict", false)
	v.SetDefault("include_networks", true)
	v.SetDefault("include_volumes", true)
	v.SetDefault("substitute_environment", true)
	v.SetDefault("env_files", []string{})
	v.SetDefault("template", false)
	v.SetDefault("validate", false)
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom decodes the config held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Input:                 "docker-compose.yml",
		Output:                "schema.json",
		IncludeNetworks:       true,
		IncludeVolumes:        true,
		SubstituteEnvironment: true,
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Overrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides parses TypeOverrides into service kinds.
func (c *Config) Overrides() (map[string]model.ServiceKind, error) {
	if len(c.TypeOverrides) == 0 {
		return nil, nil
	}
	out := make(map[string]model.ServiceKind, len(c.TypeOverrides))
	for name, raw := range c.TypeOverrides {
		kind, ok := model.ParseServiceKind(raw)
		if !ok {
			return nil, fmt.Errorf("type_overrides.%s: unknown service type %q (valid: %s)", name, raw, kindList())
		}
		out[name] = kind
	}
	return out, nil
}

func kindList() string {
	names := make([]string, len(model.Kinds))
	for i, k := range model.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
