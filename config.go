package codemode

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonwraymond/codemode/bridge"
	"github.com/jonwraymond/codemode/catalog"
)

// DefaultTimeout is the wall-clock budget applied when neither the config
// nor the request specifies one.
const DefaultTimeout = 30 * time.Second

// Config holds the configuration for an executor.
type Config struct {
	// Catalog is the capability catalog executions run against.
	// Required.
	Catalog *catalog.Catalog

	// Bridge performs the backend calls for capability invocations.
	// Required.
	Bridge bridge.Invoker

	// Engine is the pluggable isolation mechanism.
	// Required.
	Engine Engine

	// DefaultTimeout is the per-run wall-clock budget when the request
	// does not specify one. Defaults to DefaultTimeout.
	DefaultTimeout time.Duration

	// MaxCapabilityCalls limits bridge invocations per run. Zero means
	// unlimited. A request may lower this but never raise it.
	MaxCapabilityCalls int

	// Logger is an optional logger for observability.
	Logger Logger
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing.
func (c *Config) Validate() error {
	var missing []string

	if c.Catalog == nil {
		missing = append(missing, "Catalog")
	}
	if c.Bridge == nil {
		missing = append(missing, "Bridge")
	}
	if c.Engine == nil {
		missing = append(missing, "Engine")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.DefaultTimeout == 0 {
		c.DefaultTimeout = DefaultTimeout
	}
}
