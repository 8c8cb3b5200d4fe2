package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kconfgen.dev/kconfgen/internal/config"
	"kconfgen.dev/kconfgen/internal/output"
	"kconfgen.dev/kconfgen/internal/runtime"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	noColor bool
	logFile string
	quiet   bool
}

// newContext builds the runtime context for a command invocation: user
// config, color palette and logger, with flags overriding the config file
func (o *rootOptions) newContext() (*runtime.Context, error) {
	cfg, err := config.GetUserConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	noColor := o.noColor || cfg.GetNoColor()
	logFile := o.logFile
	if logFile == "" {
		logFile = cfg.GetLogFile()
	}

	splog, err := output.NewSplogWithConfig(output.NewPalette(noColor), logFile)
	if err != nil {
		return nil, err
	}
	splog.SetQuiet(o.quiet)

	return runtime.NewContext(splog, cfg), nil
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "kconfgen",
		Short: "Kconfgen merges kernel configuration fragments and checks their Kconfig dependencies",
		Long: `Kconfgen merges a base kernel configuration with override fragments,
validates the enabled options against the kernel tree's Kconfig metadata,
and optionally fixes unmet dependencies before writing the result.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Append a structured log to this file")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress informational output")

	// Add subcommands
	rootCmd.AddCommand(newMergeCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newFetchCmd(opts))
	rootCmd.AddCommand(newProfilesCmd(opts))
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
