package actions

import (
	"fmt"
	"strings"

	"kconfgen.dev/kconfgen/internal/dotconfig"
	kcerrors "kconfgen.dev/kconfgen/internal/errors"
	"kconfgen.dev/kconfgen/internal/kconfig"
	"kconfgen.dev/kconfgen/internal/runtime"
)

// ShowOptions contains options for the show action
type ShowOptions struct {
	SourceTree string
	Arch       string
	Symbol     string
}

// ShowAction prints one symbol's Kconfig metadata: type, prompt, direct
// dependency, selects and declaration site
func ShowAction(opts ShowOptions, ctx *runtime.Context) error {
	ktree, err := loadMetadata(opts.SourceTree, opts.Arch, ctx)
	if err != nil {
		return err
	}

	name := strings.TrimPrefix(opts.Symbol, dotconfig.Prefix)
	sym, ok := ktree.Symbol(name)
	if !ok {
		return kcerrors.NewSymbolNotFoundError(name)
	}

	splog := ctx.Splog
	pal := splog.Palette()

	splog.Newline()
	splog.Info("%s", pal.Symbol(dotconfig.Prefix+sym.Name))
	splog.Info("  type:       %s", sym.Type)
	if sym.Prompt != "" {
		splog.Info("  prompt:     %s", sym.Prompt)
	}
	splog.Info("  depends on: %s", kconfig.ExprString(sym.DirectDep))
	for _, sel := range sym.Selects {
		verb := "select"
		if sel.Weak {
			verb = "imply"
		}
		if sel.Cond != nil {
			splog.Info("  %s:     %s if %s", verb, sel.Target, sel.Cond)
		} else {
			splog.Info("  %s:     %s", verb, sel.Target)
		}
	}
	for _, def := range sym.Defaults {
		if def.Cond != nil {
			splog.Info("  default:    %s if %s", kconfig.ExprString(def.Value), def.Cond)
		} else {
			splog.Info("  default:    %s", kconfig.ExprString(def.Value))
		}
	}
	splog.Info("  defined at: %s", pal.Dim(posString(sym.Pos)))
	if sym.Help != "" {
		splog.Newline()
		for _, line := range strings.Split(sym.Help, "\n") {
			splog.Info("  %s", pal.Dim(line))
		}
	}
	return nil
}

func posString(pos kconfig.Pos) string {
	if pos.File == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", pos.File, pos.Line)
}
