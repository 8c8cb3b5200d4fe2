package actions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	kcerrors "kconfgen.dev/kconfgen/internal/errors"
	"kconfgen.dev/kconfgen/testhelpers"
)

func TestShowAction(t *testing.T) {
	t.Parallel()

	t.Run("shows a declared symbol", func(t *testing.T) {
		t.Parallel()

		tree := testhelpers.NewKernelTree(t)
		ctx := testhelpers.NewContext(t)

		err := ShowAction(ShowOptions{
			SourceTree: tree.Dir,
			Symbol:     "USB_STORAGE",
		}, ctx)
		require.NoError(t, err)
	})

	t.Run("accepts the CONFIG_ prefix", func(t *testing.T) {
		t.Parallel()

		tree := testhelpers.NewKernelTree(t)
		ctx := testhelpers.NewContext(t)

		err := ShowAction(ShowOptions{
			SourceTree: tree.Dir,
			Symbol:     "CONFIG_PCI",
		}, ctx)
		require.NoError(t, err)
	})

	t.Run("unknown symbol is a not-found error", func(t *testing.T) {
		t.Parallel()

		tree := testhelpers.NewKernelTree(t)
		ctx := testhelpers.NewContext(t)

		err := ShowAction(ShowOptions{
			SourceTree: tree.Dir,
			Symbol:     "NO_SUCH_OPTION",
		}, ctx)
		require.Error(t, err)
		require.True(t, errors.Is(err, kcerrors.ErrSymbolNotFound))
	})
}
