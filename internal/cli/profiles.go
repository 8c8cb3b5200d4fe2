package cli

import (
	"github.com/spf13/cobra"

	"kconfgen.dev/kconfgen/internal/actions"
)

// newProfilesCmd creates the profiles command
func newProfilesCmd(root *rootOptions) *cobra.Command {
	var manifest string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the profiles defined in a fragment manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := root.newContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.ProfilesAction(actions.ProfilesOptions{Manifest: manifest}, ctx)
		},
	}

	cmd.Flags().StringVar(&manifest, "manifest", "", "Fragment manifest file (defaults to kconfgen.yaml)")

	return cmd
}
