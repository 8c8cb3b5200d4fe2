// Package dotconfig reads and writes kernel .config files and provides the
// ordered option set that merging and validation operate on. It is a pure
// text-to-set mapping with no knowledge of Kconfig metadata.
package dotconfig

import (
	"kconfgen.dev/kconfgen/internal/kconfig"
)

// Prefix is the option name prefix used in kernel .config files. Set keys
// are stored without it so they match Kconfig symbol names.
const Prefix = "CONFIG_"

// Entry is one option value. Tristate values are stored as their y/m/n
// literal; string values are stored unquoted with Quoted set.
type Entry struct {
	Value  string
	Quoted bool
}

// Set is an ordered collection of option values. Overlaying keeps the
// position of existing keys and appends new ones, so serialization is stable
// across merges.
type Set struct {
	names  []string
	values map[string]Entry
}

// NewSet creates an empty set
func NewSet() *Set {
	return &Set{values: make(map[string]Entry)}
}

// Names returns all option names in insertion order
func (s *Set) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Len returns the number of options in the set
func (s *Set) Len() int {
	return len(s.names)
}

// Has reports whether the set contains an option
func (s *Set) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Get returns an option's entry
func (s *Set) Get(name string) (Entry, bool) {
	e, ok := s.values[name]
	return e, ok
}

// Put sets an option's value. An existing option keeps its position; a new
// one is appended.
func (s *Set) Put(name string, e Entry) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = e
}

// PutTristate sets an option to a tristate value
func (s *Set) PutTristate(name string, t kconfig.Tristate) {
	s.Put(name, Entry{Value: t.String()})
}

// Tristate returns an option's tristate value. Quoted strings, numbers and
// absent options are n. Implements kconfig.Values.
func (s *Set) Tristate(name string) kconfig.Tristate {
	e, ok := s.values[name]
	if !ok || e.Quoted {
		return kconfig.No
	}
	if t, ok := kconfig.TristateFromString(e.Value); ok {
		return t
	}
	return kconfig.No
}

// Raw returns an option's textual value without quotes. Implements
// kconfig.Values.
func (s *Set) Raw(name string) (string, bool) {
	e, ok := s.values[name]
	if !ok {
		return "", false
	}
	return e.Value, true
}

// Merge overlays another set onto this one. Every option in the other set
// replaces the value here; option order in the other set is preserved for
// appended keys.
func (s *Set) Merge(other *Set) {
	for _, name := range other.names {
		s.Put(name, other.values[name])
	}
}

// Clone returns a deep copy of the set
func (s *Set) Clone() *Set {
	c := &Set{
		names:  make([]string, len(s.names)),
		values: make(map[string]Entry, len(s.values)),
	}
	copy(c.names, s.names)
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Equal reports whether two sets hold the same options with the same values,
// in the same order
func (s *Set) Equal(other *Set) bool {
	if len(s.names) != len(other.names) {
		return false
	}
	for i, name := range s.names {
		if other.names[i] != name {
			return false
		}
		if s.values[name] != other.values[name] {
			return false
		}
	}
	return true
}
