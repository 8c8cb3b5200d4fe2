package actions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"kconfgen.dev/kconfgen/testhelpers"
)

func TestProfilesAction(t *testing.T) {
	t.Parallel()

	t.Run("lists the manifest profiles", func(t *testing.T) {
		t.Parallel()

		ctx := testhelpers.NewContext(t)
		dir := t.TempDir()
		manifest := filepath.Join(dir, "kconfgen.yaml")
		body := "profiles:\n" +
			"  laptop:\n" +
			"    base: base.config\n" +
			"    fragments:\n" +
			"      - usb.config\n"
		require.NoError(t, os.WriteFile(manifest, []byte(body), 0644))

		err := ProfilesAction(ProfilesOptions{Manifest: manifest}, ctx)
		require.NoError(t, err)
	})

	t.Run("missing manifest is an error", func(t *testing.T) {
		t.Parallel()

		ctx := testhelpers.NewContext(t)
		err := ProfilesAction(ProfilesOptions{Manifest: filepath.Join(t.TempDir(), "none.yaml")}, ctx)
		require.Error(t, err)
		require.Contains(t, err.Error(), "manifest")
	})
}
