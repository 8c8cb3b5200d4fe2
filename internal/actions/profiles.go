package actions

import (
	"kconfgen.dev/kconfgen/internal/profile"
	"kconfgen.dev/kconfgen/internal/runtime"
)

// ProfilesOptions contains options for the profiles action
type ProfilesOptions struct {
	Manifest string
}

// ProfilesAction lists the profiles defined in a fragment manifest
func ProfilesAction(opts ProfilesOptions, ctx *runtime.Context) error {
	manifestPath := opts.Manifest
	if manifestPath == "" {
		manifestPath = profile.DefaultManifestName
	}

	manifest, err := profile.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	splog := ctx.Splog
	pal := splog.Palette()
	for _, name := range manifest.Names() {
		p, _ := manifest.Get(name)
		detail := ""
		if p.Kernel != "" {
			detail = pal.Dim(" (kernel " + p.Kernel + ")")
		}
		splog.Info("%s%s", pal.Symbol(name), detail)
		for _, path := range manifest.ConfigPaths(p) {
			splog.Info("  %s", path)
		}
	}
	return nil
}
