package actions

import (
	"fmt"

	"kconfgen.dev/kconfgen/internal/runtime"
)

// CheckOptions contains options for the check action
type CheckOptions struct {
	SourceTree string
	Arch       string
	Configs    []string
	Profile    string
	Manifest   string
}

// CheckAction merges the configuration files and validates dependencies
// without writing any output. Unlike merge, check treats unmet dependencies
// as a failure so scripts can gate on the exit code.
func CheckAction(opts CheckOptions, ctx *runtime.Context) error {
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

	ctx.Splog.Banner("Checking dependencies")
	diags := Validate(ktree, merged)
	reportDiagnostics(ctx, diags)

	if len(diags) > 0 {
		return fmt.Errorf("%d unmet dependencies", len(diags))
	}
	ctx.Splog.Info("All dependencies satisfied (%d options checked)", merged.Len())
	return nil
}
