package kconfig

import "sort"

// SymbolType is the declared type of a Kconfig symbol
type SymbolType int

// Symbol types
const (
	TypeUnknown SymbolType = iota
	TypeBool
	TypeTristate
	TypeString
	TypeInt
	TypeHex
)

func (t SymbolType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeTristate:
		return "tristate"
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeHex:
		return "hex"
	}
	return "unknown"
}

// IsTristate reports whether the type carries a tristate value (bool or tristate)
func (t SymbolType) IsTristate() bool {
	return t == TypeBool || t == TypeTristate
}

// Pos is a declaration site within the Kconfig tree
type Pos struct {
	File string
	Line int
}

// Default is a default value with an optional condition
type Default struct {
	Value Expr
	Cond  Expr
}

// Select records a select or imply clause on another symbol
type Select struct {
	Target string
	Cond   Expr
	Weak   bool // true for imply
}

// Symbol is one Kconfig option with its dependency metadata.
// DirectDep is the conjunction of the symbol's depends on clauses and every
// enclosing menu/if/choice condition; nil means unconditional. When a symbol
// is declared in multiple locations the per-location dependencies are OR-ed,
// matching the kernel's handling of re-declared symbols.
type Symbol struct {
	Name      string
	Type      SymbolType
	Prompt    string
	DirectDep Expr
	Defaults  []Default
	Selects   []Select
	Help      string
	Pos       Pos
}

// Tree is the read-only dependency metadata loaded from a kernel source tree.
// It is built once per invocation and never mutated afterwards.
type Tree struct {
	Root string

	syms  map[string]*Symbol
	order []string
}

// NewTree creates an empty tree. Exposed for tests that build fixture
// metadata without parsing files.
func NewTree(root string) *Tree {
	return &Tree{
		Root: root,
		syms: make(map[string]*Symbol),
	}
}

// Symbol looks up a symbol by name
func (t *Tree) Symbol(name string) (*Symbol, bool) {
	s, ok := t.syms[name]
	return s, ok
}

// Names returns all declared symbol names in declaration order
func (t *Tree) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// Len returns the number of declared symbols
func (t *Tree) Len() int {
	return len(t.order)
}

// Add declares a symbol occurrence. The first occurrence registers the
// symbol; later occurrences merge type, prompt, defaults and selects, and OR
// the location's direct dependency with the existing one.
func (t *Tree) Add(sym *Symbol) *Symbol {
	existing, ok := t.syms[sym.Name]
	if !ok {
		t.syms[sym.Name] = sym
		t.order = append(t.order, sym.Name)
		return sym
	}

	if existing.Type == TypeUnknown {
		existing.Type = sym.Type
	}
	if existing.Prompt == "" {
		existing.Prompt = sym.Prompt
	}
	if existing.Help == "" {
		existing.Help = sym.Help
	}
	existing.DirectDep = Or(existing.DirectDep, sym.DirectDep)
	existing.Defaults = append(existing.Defaults, sym.Defaults...)
	existing.Selects = append(existing.Selects, sym.Selects...)
	return existing
}

// SortedNames returns all declared symbol names sorted alphabetically.
// Used where deterministic iteration matters more than declaration order.
func (t *Tree) SortedNames() []string {
	names := t.Names()
	sort.Strings(names)
	return names
}
