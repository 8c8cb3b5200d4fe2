package kconfig

import (
	"fmt"
)

// Expr is a Kconfig dependency expression. A nil Expr means "no condition"
// and always evaluates to y.
type Expr interface {
	String() string
}

// SymbolExpr references another symbol by name
type SymbolExpr struct {
	Name string
}

func (e *SymbolExpr) String() string {
	return e.Name
}

// ConstExpr is a constant operand: one of the tristate literals y/m/n, a
// quoted string, or a bare number
type ConstExpr struct {
	Value  string
	Quoted bool
}

func (e *ConstExpr) String() string {
	if e.Quoted {
		return fmt.Sprintf("%q", e.Value)
	}
	return e.Value
}

// Tristate returns the constant's tristate value. Non-tristate constants
// evaluate to n, matching the kernel's treatment of constant symbols.
func (e *ConstExpr) Tristate() Tristate {
	if e.Quoted {
		return No
	}
	if t, ok := TristateFromString(e.Value); ok {
		return t
	}
	return No
}

// IsTristate reports whether the constant is one of the y/m/n literals
func (e *ConstExpr) IsTristate() bool {
	if e.Quoted {
		return false
	}
	_, ok := TristateFromString(e.Value)
	return ok
}

// NotExpr negates a sub-expression
type NotExpr struct {
	X Expr
}

func (e *NotExpr) String() string {
	return "!" + parenthesize(e.X, precNot)
}

// AndExpr is a conjunction of two sub-expressions
type AndExpr struct {
	L, R Expr
}

func (e *AndExpr) String() string {
	return parenthesize(e.L, precAnd) + " && " + parenthesize(e.R, precAnd)
}

// OrExpr is a disjunction of two sub-expressions
type OrExpr struct {
	L, R Expr
}

func (e *OrExpr) String() string {
	return parenthesize(e.L, precOr) + " || " + parenthesize(e.R, precOr)
}

// CompareOp identifies a relational operator in a dependency expression
type CompareOp int

// Relational operators
const (
	OpEqual CompareOp = iota
	OpUnequal
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

func (op CompareOp) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpUnequal:
		return "!="
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	}
	return "?"
}

// CompareExpr relates two operands, yielding y or n
type CompareExpr struct {
	Op   CompareOp
	L, R Expr
}

func (e *CompareExpr) String() string {
	return fmt.Sprintf("%s %s %s", e.L.String(), e.Op.String(), e.R.String())
}

// Expression precedence, loosest first
const (
	precOr = iota
	precAnd
	precNot
	precAtom
)

func precedence(e Expr) int {
	switch e.(type) {
	case *OrExpr:
		return precOr
	case *AndExpr:
		return precAnd
	case *NotExpr:
		return precNot
	default:
		return precAtom
	}
}

func parenthesize(e Expr, parent int) string {
	if precedence(e) < parent {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// And conjoins two expressions, treating nil as "no condition"
func And(l, r Expr) Expr {
	if l == nil {
		return r
	}
	if r == nil {
		return l
	}
	return &AndExpr{L: l, R: r}
}

// Or disjoins two expressions, treating nil as "no condition" (always y)
func Or(l, r Expr) Expr {
	if l == nil || r == nil {
		return nil
	}
	return &OrExpr{L: l, R: r}
}

// SplitAnd flattens a conjunction into its top-level operands, in
// declaration order. A nil expression yields no operands.
func SplitAnd(e Expr) []Expr {
	if e == nil {
		return nil
	}
	if and, ok := e.(*AndExpr); ok {
		return append(SplitAnd(and.L), SplitAnd(and.R)...)
	}
	return []Expr{e}
}

// ExprString renders an expression, mapping nil to "y"
func ExprString(e Expr) string {
	if e == nil {
		return "y"
	}
	return e.String()
}
