package kconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	kcerrors "kconfgen.dev/kconfgen/internal/errors"
)

func parseString(t *testing.T, content string) *Tree {
	t.Helper()

	tree := NewTree("")
	require.NoError(t, ParseFragment(tree, "Kconfig", content))
	return tree
}

func TestParseFragment(t *testing.T) {
	t.Parallel()

	t.Run("parses a basic config block", func(t *testing.T) {
		t.Parallel()

		tree := parseString(t, `
config USB
	tristate "USB support"
	depends on PCI
	select USB_COMMON
	default m
	help
	  Universal Serial Bus support.
`)

		sym, ok := tree.Symbol("USB")
		require.True(t, ok)
		require.Equal(t, TypeTristate, sym.Type)
		require.Equal(t, "USB support", sym.Prompt)
		require.Equal(t, "PCI", ExprString(sym.DirectDep))
		require.Len(t, sym.Selects, 1)
		require.Equal(t, "USB_COMMON", sym.Selects[0].Target)
		require.False(t, sym.Selects[0].Weak)
		require.Len(t, sym.Defaults, 1)
		require.Equal(t, "m", sym.Defaults[0].Value.String())
		require.Equal(t, "Universal Serial Bus support.", sym.Help)
	})

	t.Run("multiple depends on lines are conjoined", func(t *testing.T) {
		t.Parallel()

		tree := parseString(t, `
config USB_STORAGE
	bool "USB Mass Storage"
	depends on USB
	depends on SCSI
`)

		sym, ok := tree.Symbol("USB_STORAGE")
		require.True(t, ok)
		require.Equal(t, "USB && SCSI", ExprString(sym.DirectDep))
	})

	t.Run("if blocks condition enclosed symbols", func(t *testing.T) {
		t.Parallel()

		tree := parseString(t, `
if NET

config ETHERNET
	bool "Ethernet driver support"

if PCI
config E1000
	tristate "Intel(R) PRO/1000"
endif

endif
`)

		eth, ok := tree.Symbol("ETHERNET")
		require.True(t, ok)
		require.Equal(t, "NET", ExprString(eth.DirectDep))

		e1000, ok := tree.Symbol("E1000")
		require.True(t, ok)
		require.Equal(t, "NET && PCI", ExprString(e1000.DirectDep))
	})

	t.Run("menu depends on applies to contained symbols", func(t *testing.T) {
		t.Parallel()

		tree := parseString(t, `
menu "Power management"
	depends on PM

config SUSPEND
	bool "Suspend to RAM"

endmenu
`)

		sym, ok := tree.Symbol("SUSPEND")
		require.True(t, ok)
		require.Equal(t, "PM", ExprString(sym.DirectDep))
	})

	t.Run("choice blocks and def_bool", func(t *testing.T) {
		t.Parallel()

		tree := parseString(t, `
config X86
	def_bool y

choice
	prompt "Preemption model"
	depends on EXPERT

config PREEMPT_NONE
	bool "No forced preemption"

endchoice
`)

		x86, ok := tree.Symbol("X86")
		require.True(t, ok)
		require.Equal(t, TypeBool, x86.Type)
		require.Len(t, x86.Defaults, 1)
		require.Equal(t, "y", x86.Defaults[0].Value.String())

		pn, ok := tree.Symbol("PREEMPT_NONE")
		require.True(t, ok)
		require.Equal(t, "EXPERT", ExprString(pn.DirectDep))
	})

	t.Run("conditional attributes", func(t *testing.T) {
		t.Parallel()

		tree := parseString(t, `
config FOO
	tristate "Foo"
	default m if BAR
	select BAZ if QUX
	imply QUUX
`)

		sym, ok := tree.Symbol("FOO")
		require.True(t, ok)
		require.Len(t, sym.Defaults, 1)
		require.Equal(t, "BAR", ExprString(sym.Defaults[0].Cond))
		require.Len(t, sym.Selects, 2)
		require.Equal(t, "QUX", ExprString(sym.Selects[0].Cond))
		require.True(t, sym.Selects[1].Weak)
	})

	t.Run("re-declared symbols OR their dependencies", func(t *testing.T) {
		t.Parallel()

		tree := parseString(t, `
config FB
	bool "Framebuffer"
	depends on HAS_IOMEM

config FB
	bool
	depends on EMBEDDED
`)

		sym, ok := tree.Symbol("FB")
		require.True(t, ok)
		require.Equal(t, "HAS_IOMEM || EMBEDDED", ExprString(sym.DirectDep))
	})

	t.Run("continuation lines are joined", func(t *testing.T) {
		t.Parallel()

		tree := parseString(t, `
config WIDE
	bool "Wide"
	depends on A && \
		B
`)

		sym, ok := tree.Symbol("WIDE")
		require.True(t, ok)
		require.Equal(t, "A && B", ExprString(sym.DirectDep))
	})

	t.Run("comments and unsupported keywords are tolerated", func(t *testing.T) {
		t.Parallel()

		tree := parseString(t, `
# A comment
mainmenu "Linux Kernel Configuration"

config LOG_BUF_SHIFT
	int "Kernel log buffer size" # trailing comment
	range 12 25
	default 17

comment "End of options"
`)

		sym, ok := tree.Symbol("LOG_BUF_SHIFT")
		require.True(t, ok)
		require.Equal(t, TypeInt, sym.Type)
	})

	t.Run("rejects mismatched block ends", func(t *testing.T) {
		t.Parallel()

		err := ParseFragment(NewTree(""), "Kconfig", "endmenu\n")
		require.Error(t, err)
		require.True(t, errors.Is(err, kcerrors.ErrParse))
	})

	t.Run("rejects unterminated blocks", func(t *testing.T) {
		t.Parallel()

		err := ParseFragment(NewTree(""), "Kconfig", "if NET\nconfig A\n\tbool\n")
		require.Error(t, err)

		var perr *kcerrors.ParseError
		require.True(t, errors.As(err, &perr))
		require.Equal(t, 1, perr.Line)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("follows source statements with macro expansion", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeKconfig(t, root, "Kconfig", `
mainmenu "Test"

source "arch/$(SRCARCH)/Kconfig"
source "drivers/Kconfig"
`)
		writeKconfig(t, root, "arch/x86/Kconfig", `
config X86
	def_bool y
`)
		writeKconfig(t, root, "drivers/Kconfig", `
config PCI
	bool "PCI support"
`)

		tree, err := Load(LoadOptions{
			Root: root,
			Env:  map[string]string{"SRCARCH": "x86"},
		})
		require.NoError(t, err)
		require.Equal(t, 2, tree.Len())

		_, ok := tree.Symbol("X86")
		require.True(t, ok)
		_, ok = tree.Symbol("PCI")
		require.True(t, ok)
	})

	t.Run("rsource resolves relative to the including file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeKconfig(t, root, "Kconfig", `source "drivers/Kconfig"`)
		writeKconfig(t, root, "drivers/Kconfig", `rsource "gpu/Kconfig"`)
		writeKconfig(t, root, "drivers/gpu/Kconfig", `
config DRM
	tristate "Direct Rendering Manager"
`)

		tree, err := Load(LoadOptions{Root: root})
		require.NoError(t, err)

		_, ok := tree.Symbol("DRM")
		require.True(t, ok)
	})

	t.Run("missing root file is a source tree error", func(t *testing.T) {
		t.Parallel()

		_, err := Load(LoadOptions{Root: t.TempDir()})
		require.Error(t, err)
		require.True(t, errors.Is(err, kcerrors.ErrSourceTree))
	})

	t.Run("recursive source is rejected", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeKconfig(t, root, "Kconfig", `source "Kconfig"`)

		_, err := Load(LoadOptions{Root: root})
		require.Error(t, err)
		require.True(t, errors.Is(err, kcerrors.ErrSourceTree))
	})
}

func writeKconfig(t *testing.T, root, relPath, content string) {
	t.Helper()

	path := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
