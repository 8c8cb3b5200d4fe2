package actions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"kconfgen.dev/kconfgen/internal/dotconfig"
	"kconfgen.dev/kconfgen/internal/kconfig"
)

func parseTree(t *testing.T, content string) *kconfig.Tree {
	t.Helper()

	tree := kconfig.NewTree("")
	require.NoError(t, kconfig.ParseFragment(tree, "Kconfig", content))
	return tree
}

func parseSet(t *testing.T, content string) *dotconfig.Set {
	t.Helper()

	set, err := dotconfig.Parse(".config", strings.NewReader(content))
	require.NoError(t, err)
	return set
}

const validateFixture = `
config PCI
	bool "PCI support"

config USB
	tristate "USB support"
	depends on PCI

config USB_STORAGE
	tristate "USB Mass Storage"
	depends on USB && SCSI

config SCSI
	tristate "SCSI support"

config CMDLINE
	string "Kernel command line"
	depends on PCI
`

func TestValidate(t *testing.T) {
	t.Parallel()

	tree := parseTree(t, validateFixture)

	t.Run("satisfied dependencies yield no diagnostics", func(t *testing.T) {
		t.Parallel()

		set := parseSet(t, "CONFIG_PCI=y\nCONFIG_USB=m\n")
		require.Empty(t, Validate(tree, set))
	})

	t.Run("missing dependency yields one diagnostic naming the clause", func(t *testing.T) {
		t.Parallel()

		set := parseSet(t, "CONFIG_USB=m\n")
		diags := Validate(tree, set)
		require.Len(t, diags, 1)
		require.Equal(t, "USB", diags[0].Symbol)
		require.Equal(t, "PCI", diags[0].Requires)
		require.Equal(t, kconfig.Mod, diags[0].Value)
	})

	t.Run("each unmet conjunct is reported separately", func(t *testing.T) {
		t.Parallel()

		set := parseSet(t, "CONFIG_USB_STORAGE=m\n")
		diags := Validate(tree, set)
		require.Len(t, diags, 2)
		require.Equal(t, "USB", diags[0].Requires)
		require.Equal(t, "SCSI", diags[1].Requires)
	})

	t.Run("tristate y may not depend on m", func(t *testing.T) {
		t.Parallel()

		set := parseSet(t, "CONFIG_PCI=y\nCONFIG_USB=m\nCONFIG_SCSI=m\nCONFIG_USB_STORAGE=y\n")
		diags := Validate(tree, set)
		require.Len(t, diags, 2)
		for _, d := range diags {
			require.Equal(t, "USB_STORAGE", d.Symbol)
		}
	})

	t.Run("disabled options are not validated", func(t *testing.T) {
		t.Parallel()

		set := parseSet(t, "# CONFIG_USB is not set\n")
		require.Empty(t, Validate(tree, set))
	})

	t.Run("string options are not dependency-gated", func(t *testing.T) {
		t.Parallel()

		set := parseSet(t, `CONFIG_CMDLINE="quiet"`)
		require.Empty(t, Validate(tree, set))
	})

	t.Run("unknown options are ignored", func(t *testing.T) {
		t.Parallel()

		set := parseSet(t, "CONFIG_NOT_IN_TREE=y\n")
		require.Empty(t, Validate(tree, set))
	})
}

func TestUnmetSymbols(t *testing.T) {
	t.Parallel()

	tree := parseTree(t, validateFixture)
	set := parseSet(t, "CONFIG_USB=m\nCONFIG_USB_STORAGE=m\n")

	require.Equal(t, []string{"USB", "USB_STORAGE"}, UnmetSymbols(tree, set))
}
