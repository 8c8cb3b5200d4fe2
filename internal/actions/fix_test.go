package actions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kconfgen.dev/kconfgen/internal/kconfig"
)

func TestFixUnmet(t *testing.T) {
	t.Parallel()

	t.Run("raises a plain tristate dependency to the dependent's value", func(t *testing.T) {
		t.Parallel()

		tree := parseTree(t, `
config USB
	tristate "USB"

config USB_STORAGE
	tristate "Storage"
	depends on USB
`)
		set := parseSet(t, "CONFIG_USB_STORAGE=m\n")

		res := FixUnmet(tree, set)
		require.Empty(t, res.Failures)
		require.Len(t, res.Changes, 1)
		require.Equal(t, Change{Symbol: "USB", From: kconfig.No, To: kconfig.Mod}, res.Changes[0])
		require.Empty(t, Validate(tree, set))
	})

	t.Run("bool dependent of a bool raises to y", func(t *testing.T) {
		t.Parallel()

		tree := parseTree(t, `
config PCI
	bool "PCI"

config PCIE
	bool "PCIe"
	depends on PCI
`)
		set := parseSet(t, "CONFIG_PCIE=y\n")

		res := FixUnmet(tree, set)
		require.Empty(t, res.Failures)
		require.Len(t, res.Changes, 1)
		require.Equal(t, kconfig.Yes, set.Tristate("PCI"))
	})

	t.Run("bool dependent of a tristate raises to m", func(t *testing.T) {
		t.Parallel()

		tree := parseTree(t, `
config FW
	tristate "Firmware loader"

config DRIVER
	bool "Driver"
	depends on FW
`)
		set := parseSet(t, "CONFIG_DRIVER=y\n")

		res := FixUnmet(tree, set)
		require.Empty(t, res.Failures)
		require.Equal(t, kconfig.Mod, set.Tristate("FW"))
		require.Empty(t, Validate(tree, set))
	})

	t.Run("equality clause copies the constant", func(t *testing.T) {
		t.Parallel()

		tree := parseTree(t, `
config USB
	tristate "USB"

config GADGET
	bool "Gadget"
	depends on USB = y
`)
		set := parseSet(t, "CONFIG_GADGET=y\nCONFIG_USB=m\n")

		res := FixUnmet(tree, set)
		require.Empty(t, res.Failures)
		require.Equal(t, kconfig.Yes, set.Tristate("USB"))
	})

	t.Run("inequality clause picks the smallest differing value", func(t *testing.T) {
		t.Parallel()

		tree := parseTree(t, `
config USB
	tristate "USB"

config DRIVER
	bool "Driver"
	depends on USB != n
`)
		set := parseSet(t, "CONFIG_DRIVER=y\n")

		res := FixUnmet(tree, set)
		require.Empty(t, res.Failures)
		require.Equal(t, kconfig.Mod, set.Tristate("USB"))
	})

	t.Run("fixes chase transitive dependencies to a fixpoint", func(t *testing.T) {
		t.Parallel()

		tree := parseTree(t, `
config A
	tristate "A"

config B
	tristate "B"
	depends on A

config C
	tristate "C"
	depends on B
`)
		set := parseSet(t, "CONFIG_C=y\n")

		res := FixUnmet(tree, set)
		require.Empty(t, res.Failures)
		require.Len(t, res.Changes, 2)
		require.Equal(t, kconfig.Yes, set.Tristate("A"))
		require.Equal(t, kconfig.Yes, set.Tristate("B"))
		require.Empty(t, Validate(tree, set))
	})

	t.Run("complex clauses are reported, never guessed", func(t *testing.T) {
		t.Parallel()

		tree := parseTree(t, `
config A
	bool "A"

config B
	bool "B"

config C
	bool "C"
	depends on A || B
`)
		set := parseSet(t, "CONFIG_C=y\n")

		res := FixUnmet(tree, set)
		require.Empty(t, res.Changes)
		require.Len(t, res.Failures, 1)
		require.Equal(t, "C", res.Failures[0].Symbol)
		require.Contains(t, res.Failures[0].Message, "complex")
	})

	t.Run("undeclared dependency is a failure", func(t *testing.T) {
		t.Parallel()

		tree := parseTree(t, `
config A
	bool "A"
	depends on GHOST
`)
		set := parseSet(t, "CONFIG_A=y\n")

		res := FixUnmet(tree, set)
		require.Empty(t, res.Changes)
		require.Len(t, res.Failures, 1)
		require.Equal(t, "GHOST", res.Failures[0].Clause)
	})

	t.Run("nothing to do on a satisfied set", func(t *testing.T) {
		t.Parallel()

		tree := parseTree(t, `
config A
	bool "A"
`)
		set := parseSet(t, "CONFIG_A=y\n")

		res := FixUnmet(tree, set)
		require.Empty(t, res.Changes)
		require.Empty(t, res.Failures)
	})
}
