package releases

import (
	"context"

	"github.com/google/go-github/v52/github"

	"hivecadlanding/internal/ghrel"
)

// defaultPageSize is how many releases one listing asks for.
const defaultPageSize = 30

type gitHubSource struct {
	apiURL string
}

// NewGitHubSource returns a releases.Source backed by internal/ghrel.
// An empty apiURL targets api.github.com.
func NewGitHubSource(apiURL string) Source {
	return gitHubSource{apiURL: apiURL}
}

func (s gitHubSource) ListReleases(ctx context.Context, owner, repo, githubToken string) ([]Release, error) {
	client, err := ghrel.NewClient(ghrel.NewHTTPClient(githubToken), s.apiURL)
	if err != nil {
		return nil, err
	}

	rels, err := ghrel.ListReleases(ctx, client, owner, repo, defaultPageSize)
	if err != nil {
		return nil, err
	}

	out := make([]Release, 0, len(rels))
	for _, r := range rels {
		out = append(out, fromGitHub(r))
	}
	return out, nil
}

func (s gitHubSource) DownloadAsset(ctx context.Context, downloadURL, outPath, githubToken string) error {
	// browser_download_url redirects to a CDN; the token rides on the first hop only.
	return ghrel.DownloadFile(ctx, ghrel.NewHTTPClient(""), downloadURL, outPath, githubToken)
}

func fromGitHub(r *github.RepositoryRelease) Release {
	rel := Release{
		TagName:    r.GetTagName(),
		Name:       r.GetName(),
		Draft:      r.GetDraft(),
		Prerelease: r.GetPrerelease(),
		CreatedAt:  r.GetCreatedAt().Time,
		HTMLURL:    r.GetHTMLURL(),
		Assets:     make([]Asset, 0, len(r.Assets)),
	}
	for _, a := range r.Assets {
		rel.Assets = append(rel.Assets, Asset{
			Name:        a.GetName(),
			DownloadURL: a.GetBrowserDownloadURL(),
			Size:        int64(a.GetSize()),
		})
	}
	return rel
}
