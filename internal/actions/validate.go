// Package actions implements the kconfgen pipeline: loading configuration
// files, overlaying them, validating dependencies against the Kconfig tree,
// optionally fixing unmet dependencies, and writing the merged result.
package actions

import (
	"fmt"

	"kconfgen.dev/kconfgen/internal/dotconfig"
	"kconfgen.dev/kconfgen/internal/kconfig"
)

// DependencySource is the read-only dependency metadata the validator
// consults. *kconfig.Tree implements it; tests inject fixture trees.
type DependencySource interface {
	// Symbol looks up a symbol by name
	Symbol(name string) (*kconfig.Symbol, bool)

	// Eval computes an expression's tristate value over a snapshot
	Eval(e kconfig.Expr, vals kconfig.Values) kconfig.Tristate

	// DepsMet reports whether a symbol's direct dependency is satisfied
	DepsMet(sym *kconfig.Symbol, vals kconfig.Values) bool

	// UnmetClauses returns the unsatisfied conjuncts of a symbol's
	// direct dependency, in declaration order
	UnmetClauses(sym *kconfig.Symbol, vals kconfig.Values) []kconfig.Expr
}

// Diagnostic reports one unmet dependency clause of an enabled option
type Diagnostic struct {
	Symbol   string
	Value    kconfig.Tristate
	Requires string
	Pos      kconfig.Pos
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Unmet dependency for symbol %s: requires %s", d.Symbol, d.Requires)
}

// Validate checks every enabled bool/tristate option in the merged set
// against its direct dependency and returns one diagnostic per unmet clause.
// String, int and hex options carry values but are not dependency-gated.
func Validate(deps DependencySource, set *dotconfig.Set) []Diagnostic {
	var diags []Diagnostic
	for _, name := range set.Names() {
		sym, ok := deps.Symbol(name)
		if !ok || !sym.Type.IsTristate() {
			continue
		}
		for _, clause := range deps.UnmetClauses(sym, set) {
			diags = append(diags, Diagnostic{
				Symbol:   sym.Name,
				Value:    set.Tristate(name),
				Requires: clause.String(),
				Pos:      sym.Pos,
			})
		}
	}
	return diags
}

// UnmetSymbols returns the names of enabled options whose direct dependency
// is not satisfied, in set order
func UnmetSymbols(deps DependencySource, set *dotconfig.Set) []string {
	var names []string
	for _, name := range set.Names() {
		sym, ok := deps.Symbol(name)
		if !ok || !sym.Type.IsTristate() {
			continue
		}
		if !deps.DepsMet(sym, set) {
			names = append(names, name)
		}
	}
	return names
}
