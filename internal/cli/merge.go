package cli

import (
	"github.com/spf13/cobra"

	"kconfgen.dev/kconfgen/internal/actions"
)

// newMergeCmd creates the merge command
func newMergeCmd(root *rootOptions) *cobra.Command {
	var (
		arch        string
		output      string
		profileName string
		manifest    string
		tryFixDeps  bool
		interactive bool
		assumeYes   bool
	)

	cmd := &cobra.Command{
		Use:   "merge [srctree] [config]...",
		Short: "Merge configuration fragments and validate their dependencies",
		Long: `Merge configuration files onto each other in order, with later files
winning on conflicting options, then validate the enabled options against
the kernel source tree's Kconfig metadata. The merged configuration is
written even when dependencies remain unmet; unmet dependencies are
reported as warnings.

With --profile the source tree and file list come from a manifest instead
of positional arguments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := root.newContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			opts := actions.MergeOptions{
				Arch:        arch,
				Profile:     profileName,
				Manifest:    manifest,
				Output:      output,
				TryFixDeps:  tryFixDeps,
				Interactive: interactive,
				AssumeYes:   assumeYes,
			}
			if len(args) > 0 {
				opts.SourceTree = args[0]
				opts.Configs = args[1:]
			}

			return actions.MergeAction(opts, ctx)
		},
	}

	// Add flags
	cmd.Flags().StringVar(&arch, "arch", "", "Target architecture (defaults to the configured architecture)")
	cmd.Flags().StringVarP(&output, "output", "o", "out.config", "Write the merged configuration to this file")
	cmd.Flags().StringVar(&profileName, "profile", "", "Merge the named profile from the fragment manifest")
	cmd.Flags().StringVar(&manifest, "manifest", "", "Fragment manifest file (defaults to kconfgen.yaml)")
	cmd.Flags().BoolVarP(&tryFixDeps, "try-fix-deps", "f", false, "Attempt to fix unmet dependencies by adjusting symbol values")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Review each proposed fix in an interactive checklist")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Apply proposed fixes without prompting")

	return cmd
}
