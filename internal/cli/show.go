package cli

import (
	"github.com/spf13/cobra"

	"kconfgen.dev/kconfgen/internal/actions"
)

// newShowCmd creates the show command
func newShowCmd(root *rootOptions) *cobra.Command {
	var arch string

	cmd := &cobra.Command{
		Use:   "show <srctree> <symbol>",
		Short: "Show a symbol's Kconfig metadata",
		Long: `Show one symbol's Kconfig metadata from the kernel source tree: its
type, prompt, dependencies, selects, defaults and declaration site. The
CONFIG_ prefix on the symbol name is optional.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := root.newContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			opts := actions.ShowOptions{
				SourceTree: args[0],
				Arch:       arch,
				Symbol:     args[1],
			}

			return actions.ShowAction(opts, ctx)
		},
	}

	cmd.Flags().StringVar(&arch, "arch", "", "Target architecture (defaults to the configured architecture)")

	return cmd
}
