// Package kconfig parses the subset of the kernel's Kconfig language needed to
// resolve option dependencies, and evaluates dependency expressions over a
// configuration snapshot using the kernel's tristate arithmetic.
package kconfig

// Tristate is a kernel option state: n (disabled), m (module), or y (built-in).
// The numeric ordering matters: dependency checks compare values directly.
type Tristate int8

// Tristate values in ascending order
const (
	No  Tristate = 0
	Mod Tristate = 1
	Yes Tristate = 2
)

func (t Tristate) String() string {
	switch t {
	case Mod:
		return "m"
	case Yes:
		return "y"
	default:
		return "n"
	}
}

// TristateFromString parses "y", "m" or "n" into a Tristate
func TristateFromString(s string) (Tristate, bool) {
	switch s {
	case "y":
		return Yes, true
	case "m":
		return Mod, true
	case "n":
		return No, true
	}
	return No, false
}
