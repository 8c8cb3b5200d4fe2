// Package runtime provides a context type that holds the logger and user
// configuration for use throughout the application. This avoids passing
// multiple parameters.
package runtime

import (
	"kconfgen.dev/kconfgen/internal/config"
	"kconfgen.dev/kconfgen/internal/output"
)

// Context provides access to output and configuration for commands
type Context struct {
	Splog  *output.Splog
	Config *config.UserConfig
}

// NewContext creates a context with the given output and configuration
func NewContext(splog *output.Splog, cfg *config.UserConfig) *Context {
	if cfg == nil {
		cfg = &config.UserConfig{}
	}
	return &Context{
		Splog:  splog,
		Config: cfg,
	}
}
