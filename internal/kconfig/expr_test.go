package kconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseExpr(t *testing.T) {
	t.Parallel()

	t.Run("round-trips through String", func(t *testing.T) {
		t.Parallel()

		tests := []string{
			"PCI",
			"!PCI",
			"PCI && USB",
			"PCI || USB",
			"PCI && USB || FW",
			"PCI && (USB || FW)",
			"!(PCI && USB)",
			"USB != n",
			"ARCH = x86",
			`NAME = "value"`,
			"DEPTH >= 16",
			"A && B && C",
		}

		for _, src := range tests {
			expr, err := ParseExpr(src)
			require.NoError(t, err, "parse %q", src)
			require.Equal(t, src, expr.String())
		}
	})

	t.Run("precedence binds && tighter than ||", func(t *testing.T) {
		t.Parallel()

		expr, err := ParseExpr("A || B && C")
		require.NoError(t, err)

		or, ok := expr.(*OrExpr)
		require.True(t, ok)
		require.IsType(t, &SymbolExpr{}, or.L)
		require.IsType(t, &AndExpr{}, or.R)
	})

	t.Run("tristate literals and numbers are constants", func(t *testing.T) {
		t.Parallel()

		expr, err := ParseExpr("y")
		require.NoError(t, err)
		require.IsType(t, &ConstExpr{}, expr)

		expr, err = ParseExpr("FOO = 0x10")
		require.NoError(t, err)
		cmp, ok := expr.(*CompareExpr)
		require.True(t, ok)
		require.IsType(t, &ConstExpr{}, cmp.R)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()

		for _, src := range []string{"", "&&", "A &&", "A || ", "(A", "A = "} {
			_, err := ParseExpr(src)
			require.Error(t, err, "parse %q", src)
		}
	})
}

func TestExprHelpers(t *testing.T) {
	t.Parallel()

	a := &SymbolExpr{Name: "A"}
	b := &SymbolExpr{Name: "B"}

	t.Run("And treats nil as no condition", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, a, And(a, nil))
		require.Equal(t, b, And(nil, b))
		require.Equal(t, "A && B", And(a, b).String())
	})

	t.Run("Or with nil stays unconditional", func(t *testing.T) {
		t.Parallel()

		require.Nil(t, Or(a, nil))
		require.Nil(t, Or(nil, b))
		require.Equal(t, "A || B", Or(a, b).String())
	})

	t.Run("SplitAnd flattens nested conjunctions", func(t *testing.T) {
		t.Parallel()

		expr, err := ParseExpr("A && B && (C || D)")
		require.NoError(t, err)

		parts := SplitAnd(expr)
		require.Len(t, parts, 3)
		require.Equal(t, "A", parts[0].String())
		require.Equal(t, "B", parts[1].String())
		require.Equal(t, "C || D", parts[2].String())

		require.Nil(t, SplitAnd(nil))
	})

	t.Run("ExprString maps nil to y", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "y", ExprString(nil))
		require.Equal(t, "A", ExprString(a))
	})
}
