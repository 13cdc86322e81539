package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/skillsenselab/yumlsvg/grammar"
	"github.com/skillsenselab/yumlsvg/logger"
)

// ServiceConfig contains the essential fields every binary needs.
// Binaries extend it by embedding it in their own config structs:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Render config.RenderConfig `yaml:"render" mapstructure:"render"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig returns the embedded base config. Structs embedding
// ServiceConfig inherit this method, which lets bootstrap reach the base
// fields without knowing the concrete config type.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values to the base configuration.
// Embedding structs call this first from their own ApplyDefaults.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// RenderConfig carries the default rendering behavior of a binary. The
// defaults apply when a diagram source carries no directives and the caller
// sets no explicit options.
type RenderConfig struct {
	// Type is the default diagram type, e.g. "class".
	Type string `yaml:"type" mapstructure:"type"`
	// Direction is the default rank direction: TB, LR or RL.
	Direction string `yaml:"direction" mapstructure:"direction"`
	// Dark switches output to the dark color scheme.
	Dark bool `yaml:"dark" mapstructure:"dark"`
	// Layout names the Graphviz layout algorithm.
	Layout string `yaml:"layout" mapstructure:"layout"`
	// Timeout bounds a single render.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// MaxSourceBytes bounds accepted diagram source size.
	MaxSourceBytes int `yaml:"max_source_bytes" mapstructure:"max_source_bytes"`
}

func (c *RenderConfig) ApplyDefaults() {
	if c.Type == "" {
		c.Type = grammar.TypeClass
	}
	if c.Direction == "" {
		c.Direction = "TB"
	}
	if c.Layout == "" {
		c.Layout = "dot"
	}
	if c.Timeout == 0 {
		c.Timeout = 15 * time.Second
	}
	if c.MaxSourceBytes == 0 {
		c.MaxSourceBytes = 1 << 20
	}
}

func (c *RenderConfig) Validate() error {
	if _, ok := grammar.Lookup(c.Type); !ok {
		return fmt.Errorf("render.type must be one of [%s] (got: %s)",
			strings.Join(grammar.KnownTypes(), ", "), c.Type)
	}
	switch c.Direction {
	case "TB", "LR", "RL":
	default:
		return fmt.Errorf("render.direction must be one of [TB, LR, RL] (got: %s)", c.Direction)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("render.timeout must not be negative")
	}
	if c.MaxSourceBytes < 0 {
		return fmt.Errorf("render.max_source_bytes must not be negative")
	}
	return nil
}
