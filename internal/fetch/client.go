// Package fetch downloads published configuration fragments from a GitHub
// repository's releases.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// ReleaseInfo describes one release of the fragment repository.
// Simplified structs avoid coupling callers to the go-github library.
type ReleaseInfo struct {
	TagName string
	Name    string
	Assets  []AssetInfo
}

// AssetInfo describes one downloadable release asset
type AssetInfo struct {
	ID   int64
	Name string
	Size int
}

// Client is an interface for the release API interactions
type Client interface {
	// ListReleases returns the repository's releases, newest first
	ListReleases(ctx context.Context, owner, repo string) ([]ReleaseInfo, error)

	// DownloadAsset opens a release asset for reading
	DownloadAsset(ctx context.Context, owner, repo string, assetID int64) (io.ReadCloser, error)
}

// GitHubClient implements Client using the GitHub API
type GitHubClient struct {
	client *github.Client
}

// NewGitHubClient creates a client, authenticating when a token is present
// in KCONFGEN_GITHUB_TOKEN or GITHUB_TOKEN. Anonymous access works for
// public fragment repositories.
func NewGitHubClient(ctx context.Context) *GitHubClient {
	token := os.Getenv("KCONFGEN_GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	httpClient := http.DefaultClient
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	}

	return &GitHubClient{client: github.NewClient(httpClient)}
}

// ListReleases returns the repository's releases, newest first
func (c *GitHubClient) ListReleases(ctx context.Context, owner, repo string) ([]ReleaseInfo, error) {
	releases, _, err := c.client.Repositories.ListReleases(ctx, owner, repo, &github.ListOptions{PerPage: 50})
	if err != nil {
		return nil, fmt.Errorf("failed to list releases for %s/%s: %w", owner, repo, err)
	}

	infos := make([]ReleaseInfo, 0, len(releases))
	for _, rel := range releases {
		info := ReleaseInfo{
			TagName: rel.GetTagName(),
			Name:    rel.GetName(),
		}
		for _, asset := range rel.Assets {
			info.Assets = append(info.Assets, AssetInfo{
				ID:   asset.GetID(),
				Name: asset.GetName(),
				Size: asset.GetSize(),
			})
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// DownloadAsset opens a release asset for reading
func (c *GitHubClient) DownloadAsset(ctx context.Context, owner, repo string, assetID int64) (io.ReadCloser, error) {
	rc, _, err := c.client.Repositories.DownloadReleaseAsset(ctx, owner, repo, assetID, http.DefaultClient)
	if err != nil {
		return nil, fmt.Errorf("failed to download asset %d: %w", assetID, err)
	}
	return rc, nil
}
