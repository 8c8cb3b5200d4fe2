package actions

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	"kconfgen.dev/kconfgen/internal/dotconfig"
	"kconfgen.dev/kconfgen/internal/kconfig"
	"kconfgen.dev/kconfgen/internal/profile"
	"kconfgen.dev/kconfgen/internal/runtime"
	"kconfgen.dev/kconfgen/internal/srctree"
	"kconfgen.dev/kconfgen/internal/tui"
)

// MergeOptions contains options for the merge action
type MergeOptions struct {
	SourceTree  string
	Arch        string
	Configs     []string
	Profile     string
	Manifest    string
	Output      string
	TryFixDeps  bool
	Interactive bool
	AssumeYes   bool
}

// MergeAction merges the configuration files onto each other in order,
// validates dependencies against the source tree's Kconfig metadata,
// optionally fixes unmet dependencies, and writes the merged configuration.
// Unmet dependencies and fix failures are warnings; the output is written
// whenever parsing and metadata resolution succeed.
func MergeAction(opts MergeOptions, ctx *runtime.Context) error {
	splog := ctx.Splog

	configs, srcPath, arch, err := resolveConfigPaths(opts.Configs, opts.Profile, opts.Manifest, opts.SourceTree, opts.Arch)
	if err != nil {
		return err
	}
	if len(configs) == 0 {
		return fmt.Errorf("no configuration files given")
	}
	if srcPath == "" {
		return fmt.Errorf("no kernel source tree given")
	}

	ktree, err := loadMetadata(srcPath, arch, ctx)
	if err != nil {
		return err
	}

	merged, err := loadConfigs(configs, ctx)
	if err != nil {
		return err
	}

	splog.Banner("Checking dependencies")
	diags := Validate(ktree, merged)
	reportDiagnostics(ctx, diags)

	switch {
	case opts.TryFixDeps && len(diags) > 0:
		splog.Banner("Attempting to fix dependencies")
		if err := runFix(opts, ctx, ktree, merged); err != nil {
			return err
		}
	case len(diags) > 0:
		splog.Warn("Unmet dependencies need to be fixed manually")
	}

	splog.Banner("Generating '%s'", opts.Output)
	if err := merged.WriteFile(opts.Output); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}
	return nil
}

// resolveConfigPaths expands a profile reference into its file list and
// fills in the profile's kernel tree and arch where flags left them empty.
// An explicit file list is used as-is.
func resolveConfigPaths(configs []string, profileName, manifestPath, srcPath, arch string) ([]string, string, string, error) {
	if profileName == "" {
		return configs, srcPath, arch, nil
	}
	if len(configs) > 0 {
		return nil, "", "", fmt.Errorf("cannot combine --profile with explicit config files")
	}

	if manifestPath == "" {
		manifestPath = profile.DefaultManifestName
	}
	manifest, err := profile.LoadManifest(manifestPath)
	if err != nil {
		return nil, "", "", err
	}
	p, err := manifest.Get(profileName)
	if err != nil {
		return nil, "", "", err
	}
	if srcPath == "" {
		srcPath = manifest.KernelPath(p)
	}
	if arch == "" {
		arch = p.Arch
	}
	return manifest.ConfigPaths(p), srcPath, arch, nil
}

// loadMetadata resolves the kernel source tree and parses its Kconfig
// metadata
func loadMetadata(srcPath, arch string, ctx *runtime.Context) (*kconfig.Tree, error) {
	if arch == "" {
		arch = ctx.Config.GetDefaultArch()
	}
	st, err := srctree.Resolve(srcPath, arch)
	if err != nil {
		return nil, err
	}

	ctx.Splog.Banner("Loading '%s'", st.KconfigPath())
	ktree, err := kconfig.Load(kconfig.LoadOptions{
		Root: st.Root,
		Env:  st.Environ(),
	})
	if err != nil {
		return nil, err
	}
	ctx.Splog.Debug("parsed %d symbols for %s", ktree.Len(), st.Arch)
	return ktree, nil
}

// loadConfigs parses each configuration file and overlays them in order,
// later files winning on key collisions
func loadConfigs(paths []string, ctx *runtime.Context) (*dotconfig.Set, error) {
	merged := dotconfig.NewSet()
	for _, path := range paths {
		ctx.Splog.Banner("Loading '%s'", path)
		set, err := dotconfig.ParseFile(path)
		if err != nil {
			return nil, err
		}
		merged.Merge(set)
	}
	return merged, nil
}

func reportDiagnostics(ctx *runtime.Context, diags []Diagnostic) {
	pal := ctx.Splog.Palette()
	for _, d := range diags {
		ctx.Splog.Warn("Unmet dependency for symbol %s: requires %s",
			pal.Symbol(d.Symbol), d.Requires)
	}
}

// runFix computes the fix plan on a copy, lets the user review it when
// requested, applies the accepted changes, and reports anything that is
// still unmet afterwards
func runFix(opts MergeOptions, ctx *runtime.Context, deps DependencySource, merged *dotconfig.Set) error {
	splog := ctx.Splog

	preview := merged.Clone()
	result := FixUnmet(deps, preview)
	for _, failure := range result.Failures {
		splog.Warn("%v", failure)
	}
	if len(result.Changes) == 0 {
		return nil
	}

	accepted, err := selectChanges(opts, result.Changes)
	if err != nil {
		return err
	}
	if len(accepted) == 0 {
		splog.Warn("No fixes applied; unmet dependencies need to be fixed manually")
		return nil
	}

	pal := splog.Palette()
	for _, change := range accepted {
		splog.Warn("Changing symbol value: %s %s -> %s",
			pal.Symbol(change.Symbol), change.From, change.To)
		merged.PutTristate(change.Symbol, change.To)
	}

	residual := Validate(deps, merged)
	reportDiagnostics(ctx, residual)
	if len(residual) > 0 || len(result.Failures) > 0 {
		splog.Warn("Could not fix all dependencies; the merged configuration still has unmet dependencies")
	}
	return nil
}

// selectChanges decides which proposed changes to apply: all of them with
// --yes or without a terminal, an interactive review with --interactive,
// and a single confirmation prompt otherwise
func selectChanges(opts MergeOptions, changes []Change) ([]Change, error) {
	if opts.AssumeYes || !isTerminal() {
		return changes, nil
	}

	if opts.Interactive {
		items := make([]tui.FixItem, len(changes))
		for i, c := range changes {
			items[i] = tui.FixItem{
				Symbol: c.Symbol,
				From:   c.From.String(),
				To:     c.To.String(),
			}
		}
		selected, err := tui.ReviewFixes(items)
		if err != nil {
			return nil, err
		}
		var accepted []Change
		for i, keep := range selected {
			if keep {
				accepted = append(accepted, changes[i])
			}
		}
		return accepted, nil
	}

	apply := true
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Apply %d symbol change(s)?", len(changes)),
		Default: true,
	}
	if err := survey.AskOne(prompt, &apply); err != nil {
		return nil, err
	}
	if !apply {
		return nil, nil
	}
	return changes, nil
}

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}
