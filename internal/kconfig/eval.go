package kconfig

import (
	"strconv"
	"strings"
)

// Values supplies symbol values from a configuration snapshot during
// expression evaluation. Implementations must return No / ("", false) for
// symbols the snapshot does not set.
type Values interface {
	// Tristate returns the snapshot's tristate value for a symbol
	Tristate(name string) Tristate

	// Raw returns the snapshot's textual value for a symbol, without
	// quotes. Bool and tristate symbols report "y", "m" or "n".
	Raw(name string) (string, bool)
}

// Eval computes the tristate value of a dependency expression against a
// snapshot. AND is minimum, OR is maximum, NOT is 2-v, and relational
// operators yield y or n. A nil expression evaluates to y.
func (t *Tree) Eval(e Expr, vals Values) Tristate {
	if e == nil {
		return Yes
	}

	switch x := e.(type) {
	case *SymbolExpr:
		return vals.Tristate(x.Name)

	case *ConstExpr:
		return x.Tristate()

	case *NotExpr:
		return Yes - t.Eval(x.X, vals)

	case *AndExpr:
		l := t.Eval(x.L, vals)
		if l == No {
			return No
		}
		if r := t.Eval(x.R, vals); r < l {
			return r
		}
		return l

	case *OrExpr:
		l := t.Eval(x.L, vals)
		if l == Yes {
			return Yes
		}
		if r := t.Eval(x.R, vals); r > l {
			return r
		}
		return l

	case *CompareExpr:
		return t.evalCompare(x, vals)
	}

	return No
}

// evalCompare implements the relational operators. Two string-typed operands
// compare lexicographically; otherwise both are compared numerically, falling
// back to a lexicographic comparison when either does not parse as a number.
func (t *Tree) evalCompare(e *CompareExpr, vals Values) Tristate {
	ls, lstr := t.operand(e.L, vals)
	rs, rstr := t.operand(e.R, vals)

	var comp int
	if lstr && rstr {
		comp = strings.Compare(ls, rs)
	} else {
		ln, lerr := parseNum(ls)
		rn, rerr := parseNum(rs)
		if lerr == nil && rerr == nil {
			switch {
			case ln < rn:
				comp = -1
			case ln > rn:
				comp = 1
			}
		} else {
			comp = strings.Compare(ls, rs)
		}
	}

	var ok bool
	switch e.Op {
	case OpEqual:
		ok = comp == 0
	case OpUnequal:
		ok = comp != 0
	case OpLess:
		ok = comp < 0
	case OpLessEqual:
		ok = comp <= 0
	case OpGreater:
		ok = comp > 0
	case OpGreaterEqual:
		ok = comp >= 0
	}
	if ok {
		return Yes
	}
	return No
}

// operand resolves a comparison operand to its textual value, reporting
// whether it is string-typed
func (t *Tree) operand(e Expr, vals Values) (value string, isString bool) {
	switch x := e.(type) {
	case *ConstExpr:
		return x.Value, x.Quoted

	case *SymbolExpr:
		isString = false
		if sym, ok := t.Symbol(x.Name); ok && sym.Type == TypeString {
			isString = true
		}
		if raw, ok := vals.Raw(x.Name); ok {
			return raw, isString
		}
		// Unset bool/tristate symbols compare as "n"
		if sym, ok := t.Symbol(x.Name); ok && sym.Type.IsTristate() {
			return "n", false
		}
		return "", isString
	}

	// Nested expressions inside a relation reduce to their tristate value
	return t.Eval(e, vals).String(), false
}

func parseNum(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 0, 64)
}

// DepsMet reports whether a symbol's direct dependency is satisfied by the
// snapshot. Unset symbols are always satisfied. A set bool needs its
// dependency above n; a set tristate must not exceed its dependency's value
// (m may not depend on something that is n, y may not depend on m).
func (t *Tree) DepsMet(sym *Symbol, vals Values) bool {
	value := vals.Tristate(sym.Name)
	if value == No {
		return true
	}

	dep := t.Eval(sym.DirectDep, vals)
	if sym.Type == TypeBool {
		return dep != No
	}
	return value <= dep
}

// UnmetClauses returns the top-level conjuncts of a symbol's direct
// dependency that are not satisfied by the snapshot, in declaration order.
// For a set tristate symbol a clause is unmet when it evaluates below the
// symbol's own value; for a set bool, when it evaluates to n.
func (t *Tree) UnmetClauses(sym *Symbol, vals Values) []Expr {
	value := vals.Tristate(sym.Name)
	if value == No {
		return nil
	}

	var unmet []Expr
	for _, clause := range SplitAnd(sym.DirectDep) {
		dep := t.Eval(clause, vals)
		if sym.Type == TypeBool {
			if dep == No {
				unmet = append(unmet, clause)
			}
		} else if dep < value {
			unmet = append(unmet, clause)
		}
	}
	return unmet
}
