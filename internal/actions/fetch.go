package actions

import (
	"context"
	"fmt"
	"strings"

	"kconfgen.dev/kconfgen/internal/fetch"
	"kconfgen.dev/kconfgen/internal/runtime"
)

// FetchOptions contains options for the fetch action
type FetchOptions struct {
	Series string
	Repo   string // "owner/name"; the configured default when empty
	Dir    string
}

// FetchAction downloads the published configuration fragments for a kernel
// series into a local directory
func FetchAction(ctx context.Context, opts FetchOptions, rctx *runtime.Context) error {
	return FetchActionWithClient(ctx, fetch.NewGitHubClient(ctx), opts, rctx)
}

// FetchActionWithClient is FetchAction with an injected release client,
// used by tests
func FetchActionWithClient(ctx context.Context, client fetch.Client, opts FetchOptions, rctx *runtime.Context) error {
	owner, repo, err := resolveFetchRepo(opts.Repo, rctx)
	if err != nil {
		return err
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	splog := rctx.Splog
	splog.Banner("Fetching fragments for kernel %s from %s/%s", opts.Series, owner, repo)

	paths, err := fetch.Fragments(ctx, client, owner, repo, opts.Series, dir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		splog.Info("  %s", path)
	}
	splog.Info("Downloaded %d fragment(s)", len(paths))
	return nil
}

func resolveFetchRepo(flag string, rctx *runtime.Context) (owner, repo string, err error) {
	if flag != "" {
		owner, repo, ok := strings.Cut(flag, "/")
		if !ok || owner == "" || repo == "" {
			return "", "", fmt.Errorf("invalid repository %q, expected owner/name", flag)
		}
		return owner, repo, nil
	}

	owner, repo = rctx.Config.GetFetchRepo()
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("no fragment repository configured")
	}
	return owner, repo, nil
}
