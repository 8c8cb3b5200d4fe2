package cli

import (
	"github.com/spf13/cobra"

	"kconfgen.dev/kconfgen/internal/actions"
)

// newFetchCmd creates the fetch command
func newFetchCmd(root *rootOptions) *cobra.Command {
	var (
		repo string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "fetch <series>",
		Short: "Download published configuration fragments for a kernel series",
		Long: `Download the configuration fragments published in a GitHub release
matching the given kernel series, for example "6.8". Set
KCONFGEN_GITHUB_TOKEN or GITHUB_TOKEN to raise the API rate limit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := root.newContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			opts := actions.FetchOptions{
				Series: args[0],
				Repo:   repo,
				Dir:    dir,
			}

			return actions.FetchAction(cmd.Context(), opts, ctx)
		},
	}

	// Add flags
	cmd.Flags().StringVar(&repo, "repo", "", "GitHub repository to fetch from, as owner/name (defaults to the configured repository)")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to download the fragments into")

	return cmd
}
