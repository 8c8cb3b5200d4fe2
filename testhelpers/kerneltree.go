package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// KernelTree is a miniature kernel source tree in a temporary directory:
// a Makefile with version fields, a top-level Kconfig and an arch Kconfig,
// enough for source tree resolution and metadata parsing.
type KernelTree struct {
	Dir string
}

const kernelMakefile = `# SPDX-License-Identifier: GPL-2.0
VERSION = 6
PATCHLEVEL = 8
SUBLEVEL = 0
EXTRAVERSION =
NAME = Test Kernel
`

const kernelTopKconfig = `mainmenu "Test Kernel Configuration"

source "arch/$(SRCARCH)/Kconfig"
source "drivers/Kconfig"
`

const kernelArchKconfig = `config X86
	def_bool y

config SMP
	bool "Symmetric multi-processing support"
`

const kernelDriversKconfig = `menu "Device Drivers"

config PCI
	bool "PCI support"

config USB
	tristate "USB support"
	depends on PCI

config USB_STORAGE
	tristate "USB Mass Storage support"
	depends on USB

config FIRMWARE_LOADER
	tristate "Firmware loading facility"
	depends on USB != n

endmenu
`

// NewKernelTree creates the default fixture tree under t.TempDir()
func NewKernelTree(t *testing.T) *KernelTree {
	t.Helper()

	k := &KernelTree{Dir: t.TempDir()}
	k.WriteFile(t, "Makefile", kernelMakefile)
	k.WriteFile(t, "Kconfig", kernelTopKconfig)
	k.WriteFile(t, filepath.Join("arch", "x86", "Kconfig"), kernelArchKconfig)
	k.WriteFile(t, filepath.Join("drivers", "Kconfig"), kernelDriversKconfig)
	return k
}

// NewEmptyKernelTree creates a tree with only a Makefile, for tests that
// provide their own Kconfig files
func NewEmptyKernelTree(t *testing.T) *KernelTree {
	t.Helper()

	k := &KernelTree{Dir: t.TempDir()}
	k.WriteFile(t, "Makefile", kernelMakefile)
	return k
}

// WriteFile writes a file under the tree, creating parent directories
func (k *KernelTree) WriteFile(t *testing.T, relPath, content string) string {
	t.Helper()

	path := filepath.Join(k.Dir, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", relPath, err)
	}
	return path
}

// WriteConfig writes a .config style file into a temporary directory and
// returns its path
func WriteConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
