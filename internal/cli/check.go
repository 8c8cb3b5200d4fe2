package cli

import (
	"github.com/spf13/cobra"

	"kconfgen.dev/kconfgen/internal/actions"
)

// newCheckCmd creates the check command
func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		arch        string
		profileName string
		manifest    string
	)

	cmd := &cobra.Command{
		Use:   "check [srctree] [config]...",
		Short: "Validate merged configuration fragments without writing output",
		Long: `Merge configuration files in memory and validate the enabled options
against the kernel source tree's Kconfig metadata. Unlike merge, check
exits non-zero when any dependency is unmet, so it can gate scripts and CI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := root.newContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			opts := actions.CheckOptions{
				Arch:     arch,
				Profile:  profileName,
				Manifest: manifest,
			}
			if len(args) > 0 {
				opts.SourceTree = args[0]
				opts.Configs = args[1:]
			}

			return actions.CheckAction(opts, ctx)
		},
	}

	// Add flags
	cmd.Flags().StringVar(&arch, "arch", "", "Target architecture (defaults to the configured architecture)")
	cmd.Flags().StringVar(&profileName, "profile", "", "Check the named profile from the fragment manifest")
	cmd.Flags().StringVar(&manifest, "manifest", "", "Fragment manifest file (defaults to kconfgen.yaml)")

	return cmd
}
