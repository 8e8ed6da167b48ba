package releases

import (
	"context"
	"time"
)

// Release is a tagged publication with downloadable assets.
type Release struct {
	TagName    string
	Name       string
	Draft      bool
	Prerelease bool
	CreatedAt  time.Time
	HTMLURL    string
	Assets     []Asset
}

// Asset is one downloadable file attached to a Release.
type Asset struct {
	Name        string
	DownloadURL string
	Size        int64
}

// Source abstracts release listing and release asset downloads.
type Source interface {
	// ListReleases returns releases newest first.
	ListReleases(ctx context.Context, owner, repo, githubToken string) ([]Release, error)
	DownloadAsset(ctx context.Context, downloadURL, outPath, githubToken string) error
}
