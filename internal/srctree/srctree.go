// Package srctree resolves a kernel source tree: locating the top-level
// Kconfig, mapping ARCH to SRCARCH, and deriving the kernel version for the
// Kconfig parse environment.
package srctree

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"

	kcerrors "kconfgen.dev/kconfgen/internal/errors"
)

// DefaultArch is assumed when no architecture is configured
const DefaultArch = "x86_64"

// Tree is a resolved kernel source tree
type Tree struct {
	Root    string
	Arch    string
	SrcArch string
}

// Resolve validates a kernel source tree path and prepares it for Kconfig
// loading. The arch may be empty, in which case DefaultArch is used.
func Resolve(path, arch string) (*Tree, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, kcerrors.NewSourceTreeError(path, "cannot resolve path", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, kcerrors.NewSourceTreeError(path, "directory not found", err)
	}
	if !info.IsDir() {
		return nil, kcerrors.NewSourceTreeError(path, "not a directory", nil)
	}

	if _, err := os.Stat(filepath.Join(abs, "Kconfig")); err != nil {
		return nil, kcerrors.NewSourceTreeError(path, "no top-level Kconfig", err)
	}

	if arch == "" {
		arch = DefaultArch
	}

	return &Tree{
		Root:    abs,
		Arch:    arch,
		SrcArch: srcArchFor(arch),
	}, nil
}

// KconfigPath returns the path of the top-level Kconfig file
func (t *Tree) KconfigPath() string {
	return filepath.Join(t.Root, "Kconfig")
}

// Environ returns the variable set used for $(VAR) expansion while parsing
// the Kconfig tree. Matches what the kernel's own configuration targets
// export.
func (t *Tree) Environ() map[string]string {
	return map[string]string{
		"srctree":       t.Root,
		"ARCH":          t.Arch,
		"SRCARCH":       t.SrcArch,
		"KERNELVERSION": t.KernelVersion(),
		"CC":            "gcc",
		"HOSTCC":        "gcc",
		"HOSTCXX":       "g++",
	}
}

// KernelVersion derives the kernel version from the tree's top-level
// Makefile, with a -g<hash> suffix when the tree is a git checkout. Returns
// "unknown" when the Makefile carries no version fields.
func (t *Tree) KernelVersion() string {
	version := makefileVersion(filepath.Join(t.Root, "Makefile"))
	if version == "" {
		return "unknown"
	}
	if hash := t.headHash(); hash != "" {
		version += "-g" + hash
	}
	return version
}

// headHash returns the abbreviated HEAD commit hash, or "" when the tree is
// not a git checkout
func (t *Tree) headHash() string {
	repo, err := git.PlainOpenWithOptions(t.Root, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()[:12]
}

// makefileVersion reads VERSION/PATCHLEVEL/SUBLEVEL/EXTRAVERSION from the
// head of a kernel Makefile
func makefileVersion(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	fields := map[string]string{}
	scanner := bufio.NewScanner(f)
	for lines := 0; scanner.Scan() && lines < 20; lines++ {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		switch key {
		case "VERSION", "PATCHLEVEL", "SUBLEVEL", "EXTRAVERSION":
			fields[key] = strings.TrimSpace(value)
		}
	}

	if fields["VERSION"] == "" {
		return ""
	}
	version := fields["VERSION"]
	if fields["PATCHLEVEL"] != "" {
		version += "." + fields["PATCHLEVEL"]
	}
	if fields["SUBLEVEL"] != "" {
		version += "." + fields["SUBLEVEL"]
	}
	return version + fields["EXTRAVERSION"]
}

// srcArchFor maps ARCH to the arch/ source directory, following the
// kernel's top-level Makefile
func srcArchFor(arch string) string {
	switch arch {
	case "i386", "x86_64":
		return "x86"
	case "sparc32", "sparc64":
		return "sparc"
	case "parisc64":
		return "parisc"
	case "riscv32", "riscv64":
		return "riscv"
	case "loongarch32", "loongarch64":
		return "loongarch"
	case "sh64":
		return "sh"
	}
	return arch
}
