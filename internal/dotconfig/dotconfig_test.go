package dotconfig

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	kcerrors "kconfgen.dev/kconfgen/internal/errors"
	"kconfgen.dev/kconfgen/internal/kconfig"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("parses the common line forms", func(t *testing.T) {
		t.Parallel()

		set, err := Parse(".config", strings.NewReader(`
# Automatically generated file; DO NOT EDIT.
CONFIG_PCI=y
CONFIG_USB=m
# CONFIG_SMP is not set
CONFIG_LOG_BUF_SHIFT=17
CONFIG_CMDLINE="console=ttyS0 quiet"
CONFIG_FRAME_WARN=0x400
`))
		require.NoError(t, err)
		require.Equal(t, []string{"PCI", "USB", "SMP", "LOG_BUF_SHIFT", "CMDLINE", "FRAME_WARN"}, set.Names())

		require.Equal(t, kconfig.Yes, set.Tristate("PCI"))
		require.Equal(t, kconfig.Mod, set.Tristate("USB"))
		require.Equal(t, kconfig.No, set.Tristate("SMP"))

		entry, ok := set.Get("CMDLINE")
		require.True(t, ok)
		require.True(t, entry.Quoted)
		require.Equal(t, "console=ttyS0 quiet", entry.Value)

		raw, ok := set.Raw("LOG_BUF_SHIFT")
		require.True(t, ok)
		require.Equal(t, "17", raw)
	})

	t.Run("accepts names without the CONFIG_ prefix", func(t *testing.T) {
		t.Parallel()

		set, err := Parse(".config", strings.NewReader("PCI=y\n"))
		require.NoError(t, err)
		require.True(t, set.Has("PCI"))
	})

	t.Run("unescapes quoted values", func(t *testing.T) {
		t.Parallel()

		set, err := Parse(".config", strings.NewReader(`CONFIG_EXTRA="a \"b\" \\ c"`))
		require.NoError(t, err)

		entry, ok := set.Get("EXTRA")
		require.True(t, ok)
		require.Equal(t, `a "b" \ c`, entry.Value)
	})

	t.Run("malformed lines carry file and line", func(t *testing.T) {
		t.Parallel()

		_, err := Parse("fragment.config", strings.NewReader("CONFIG_PCI=y\nnot a config line\n"))
		require.Error(t, err)
		require.True(t, errors.Is(err, kcerrors.ErrParse))

		var perr *kcerrors.ParseError
		require.True(t, errors.As(err, &perr))
		require.Equal(t, "fragment.config", perr.File)
		require.Equal(t, 2, perr.Line)
	})

	t.Run("unterminated quote is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(".config", strings.NewReader(`CONFIG_CMDLINE="oops`))
		require.Error(t, err)
		require.True(t, errors.Is(err, kcerrors.ErrParse))
	})
}

func TestSetMerge(t *testing.T) {
	t.Parallel()

	t.Run("later values win and keep their original position", func(t *testing.T) {
		t.Parallel()

		base, err := Parse("base", strings.NewReader("CONFIG_A=y\nCONFIG_B=y\nCONFIG_C=y\n"))
		require.NoError(t, err)
		overlay, err := Parse("overlay", strings.NewReader("# CONFIG_B is not set\nCONFIG_D=m\n"))
		require.NoError(t, err)

		base.Merge(overlay)

		require.Equal(t, []string{"A", "B", "C", "D"}, base.Names())
		require.Equal(t, kconfig.No, base.Tristate("B"))
		require.Equal(t, kconfig.Mod, base.Tristate("D"))
	})

	t.Run("merging a set with itself is a no-op", func(t *testing.T) {
		t.Parallel()

		set, err := Parse("base", strings.NewReader("CONFIG_A=y\nCONFIG_B=m\n"))
		require.NoError(t, err)

		clone := set.Clone()
		set.Merge(clone)
		require.True(t, set.Equal(clone))
	})
}

func TestWrite(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a configuration", func(t *testing.T) {
		t.Parallel()

		src := `CONFIG_PCI=y
CONFIG_USB=m
# CONFIG_SMP is not set
CONFIG_LOG_BUF_SHIFT=17
CONFIG_CMDLINE="console=ttyS0 \"x\""
`
		set, err := Parse(".config", strings.NewReader(src))
		require.NoError(t, err)
		require.Equal(t, src, set.String())
	})

	t.Run("n values render as not-set comments", func(t *testing.T) {
		t.Parallel()

		set := NewSet()
		set.PutTristate("FOO", kconfig.No)
		require.Equal(t, "# CONFIG_FOO is not set\n", set.String())
	})
}
