package testhelpers

import (
	"testing"

	"kconfgen.dev/kconfgen/internal/config"
	"kconfgen.dev/kconfgen/internal/output"
	"kconfgen.dev/kconfgen/internal/runtime"
)

// NewContext returns a runtime context with colors disabled and
// informational output suppressed, for exercising actions in tests
func NewContext(t *testing.T) *runtime.Context {
	t.Helper()

	splog := output.NewSplog(output.NewPalette(true))
	splog.SetQuiet(true)
	t.Cleanup(func() { splog.Close() })

	return runtime.NewContext(splog, &config.UserConfig{})
}
