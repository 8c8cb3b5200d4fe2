package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Fragments downloads the .config assets of the newest release matching a
// kernel series into destDir, returning the written file paths. A release
// matches when its tag or name contains the series string.
func Fragments(ctx context.Context, client Client, owner, repo, series, destDir string) ([]string, error) {
	releases, err := client.ListReleases(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	release, ok := matchRelease(releases, series)
	if !ok {
		return nil, fmt.Errorf("no release matching kernel series %q in %s/%s", series, owner, repo)
	}

	var assets []AssetInfo
	for _, asset := range release.Assets {
		if strings.HasSuffix(asset.Name, ".config") {
			assets = append(assets, asset)
		}
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("release %s has no .config assets", release.TagName)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(assets))
	for _, asset := range assets {
		path := filepath.Join(destDir, asset.Name)
		if err := downloadTo(ctx, client, owner, repo, asset.ID, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// matchRelease picks the newest release whose tag or name contains the
// series. Releases are assumed newest first, as the API returns them.
func matchRelease(releases []ReleaseInfo, series string) (ReleaseInfo, bool) {
	for _, rel := range releases {
		if strings.Contains(rel.TagName, series) || strings.Contains(rel.Name, series) {
			return rel, true
		}
	}
	return ReleaseInfo{}, false
}

func downloadTo(ctx context.Context, client Client, owner, repo string, assetID int64, path string) error {
	rc, err := client.DownloadAsset(ctx, owner, repo, assetID)
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
