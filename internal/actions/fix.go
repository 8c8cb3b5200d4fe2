package actions

import (
	"sort"

	"kconfgen.dev/kconfgen/internal/dotconfig"
	kcerrors "kconfgen.dev/kconfgen/internal/errors"
	"kconfgen.dev/kconfgen/internal/kconfig"
)

// maxFixPasses bounds the fix iteration; inequality fixes can lower values,
// so a pathological tree could otherwise oscillate
const maxFixPasses = 32

// Change records one symbol value adjustment made by the fix pass
type Change struct {
	Symbol string
	From   kconfig.Tristate
	To     kconfig.Tristate
}

// FixResult is the outcome of a fix pass: the changes applied and the
// dependencies that could not be resolved
type FixResult struct {
	Changes  []Change
	Failures []*kcerrors.FixError
}

// FixUnmet attempts to satisfy every unmet dependency in the set by
// adjusting the minimal set of option values, iterating until a fixpoint.
// The heuristic is deterministic: clauses are handled in declaration order,
// equality clauses copy the constant, inequality clauses pick the smallest
// of {m, y} that differs, and plain symbol dependencies are raised to the
// minimum sufficient value. Anything more complex is reported as a failure,
// never guessed. The set is mutated in place.
func FixUnmet(deps DependencySource, set *dotconfig.Set) FixResult {
	var res FixResult

	worklist := UnmetSymbols(deps, set)
	for pass := 0; len(worklist) > 0; pass++ {
		if pass >= maxFixPasses {
			res.Failures = append(res.Failures,
				kcerrors.NewFixError(worklist[0], "", "no fixpoint reached"))
			break
		}

		changed := make(map[string]bool)
		for _, name := range worklist {
			sym, ok := deps.Symbol(name)
			if !ok {
				continue
			}
			if deps.DepsMet(sym, set) {
				continue
			}
			for _, clause := range deps.UnmetClauses(sym, set) {
				fixClause(deps, set, sym, clause, &res, changed)
			}
		}

		worklist = sortedKeys(changed)
	}
	return res
}

// fixClause resolves a single unmet dependency clause
func fixClause(deps DependencySource, set *dotconfig.Set, sym *kconfig.Symbol, clause kconfig.Expr, res *FixResult, changed map[string]bool) {
	switch c := clause.(type) {
	case *kconfig.CompareExpr:
		fixCompare(set, sym, c, res, changed)

	case *kconfig.SymbolExpr:
		depSym, ok := deps.Symbol(c.Name)
		if !ok {
			res.Failures = append(res.Failures,
				kcerrors.NewFixError(sym.Name, c.Name, "dependency is not declared"))
			return
		}
		if !depSym.Type.IsTristate() {
			res.Failures = append(res.Failures,
				kcerrors.NewFixError(sym.Name, c.Name, "non-boolean and non-tristate dependency"))
			return
		}

		// Raise the dependency to the minimum sufficient value: copy the
		// dependent's tristate when both are tristate, m suffices for a
		// bool dependent of a tristate, y otherwise.
		var want kconfig.Tristate
		switch {
		case depSym.Type == kconfig.TypeTristate && sym.Type == kconfig.TypeTristate:
			want = set.Tristate(sym.Name)
		case depSym.Type == kconfig.TypeTristate:
			want = kconfig.Mod
		default:
			want = kconfig.Yes
		}
		if want > set.Tristate(c.Name) {
			applyChange(set, c.Name, want, res, changed)
		}

	case *kconfig.ConstExpr:
		if c.Tristate() == kconfig.No {
			res.Failures = append(res.Failures,
				kcerrors.NewFixError(sym.Name, c.String(), "dependency is constant n"))
		}

	default:
		res.Failures = append(res.Failures,
			kcerrors.NewFixError(sym.Name, clause.String(), "complex dependency statements not supported"))
	}
}

// fixCompare resolves `SYM = const` and `SYM != const` clauses
func fixCompare(set *dotconfig.Set, sym *kconfig.Symbol, c *kconfig.CompareExpr, res *FixResult, changed map[string]bool) {
	if c.Op != kconfig.OpEqual && c.Op != kconfig.OpUnequal {
		res.Failures = append(res.Failures,
			kcerrors.NewFixError(sym.Name, c.String(), "complex dependency statements not supported"))
		return
	}

	target, constOp, ok := splitConstCompare(c)
	if !ok || !constOp.IsTristate() {
		res.Failures = append(res.Failures,
			kcerrors.NewFixError(sym.Name, c.String(), "complex dependency statements not supported"))
		return
	}

	want := constOp.Tristate()
	if c.Op == kconfig.OpUnequal {
		// Assume n is not an option; pick the smallest differing value
		want = kconfig.Mod
		if constOp.Tristate() == kconfig.Mod {
			want = kconfig.Yes
		}
	}
	if set.Tristate(target) != want {
		applyChange(set, target, want, res, changed)
	}
}

// splitConstCompare splits a comparison into its symbol and constant
// operands, in either order
func splitConstCompare(c *kconfig.CompareExpr) (target string, constOp *kconfig.ConstExpr, ok bool) {
	if s, sok := c.L.(*kconfig.SymbolExpr); sok {
		if k, kok := c.R.(*kconfig.ConstExpr); kok {
			return s.Name, k, true
		}
	}
	if s, sok := c.R.(*kconfig.SymbolExpr); sok {
		if k, kok := c.L.(*kconfig.ConstExpr); kok {
			return s.Name, k, true
		}
	}
	return "", nil, false
}

func applyChange(set *dotconfig.Set, name string, to kconfig.Tristate, res *FixResult, changed map[string]bool) {
	from := set.Tristate(name)
	if from == to {
		return
	}
	set.PutTristate(name, to)
	res.Changes = append(res.Changes, Change{Symbol: name, From: from, To: to})
	changed[name] = true
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
