package ghrel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v52/github"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com/"

// NewHTTPClient returns an API client configured with a fixed, request-wide
// timeout. A non-empty githubToken is sent as a bearer token on every
// request, so the client must only talk to the GitHub API. Asset downloads
// go through DownloadToWriter instead.
func NewHTTPClient(githubToken string) *http.Client {
	c := &http.Client{Timeout: 60 * time.Second}
	if githubToken != "" {
		c.Transport = &tokenTransport{token: githubToken, base: http.DefaultTransport}
	}
	return c
}

type tokenTransport struct {
	token string
	base  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(r)
}

// NewClient builds a go-github client against apiURL. An empty apiURL
// selects DefaultAPIURL.
func NewClient(httpClient *http.Client, apiURL string) (*github.Client, error) {
	c := github.NewClient(httpClient)
	if strings.TrimSpace(apiURL) == "" {
		return c, nil
	}

	base, err := url.Parse(strings.TrimRight(apiURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	c.BaseURL = base
	return c, nil
}

// ListReleases returns the first page of releases for owner/repo as the API
// orders them: newest first, drafts included when the token can see them.
func ListReleases(
	ctx context.Context,
	client *github.Client,
	owner, repo string,
	perPage int,
) ([]*github.RepositoryRelease, error) {
	opts := &github.ListOptions{PerPage: perPage}

	rels, _, err := client.Repositories.ListReleases(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("list releases %s/%s: %w", owner, repo, err)
	}
	return rels, nil
}

// ReleasesPageURL returns the human-facing releases listing for owner/repo.
func ReleasesPageURL(owner, repo string) string {
	owner = strings.TrimSpace(owner)
	repo = strings.TrimSpace(repo)
	return fmt.Sprintf("https://github.com/%s/%s/releases", owner, repo)
}

// DownloadToWriter streams the content at downloadURL into w. The token is
// set on the initial request only; net/http drops it when a redirect leaves
// the host, as browser_download_url does on its way to the CDN.
func DownloadToWriter(
	ctx context.Context,
	client *http.Client,
	downloadURL string,
	githubToken string,
	w io.Writer,
) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return err
	}
	if githubToken != "" {
		req.Header.Set("Authorization", "Bearer "+githubToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return fmt.Errorf("download asset: status=%s body=%s", resp.Status, string(b))
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("stream asset: %w", err)
	}

	return nil
}

// WriteFileAtomically writes a file to outPath by writing to a temporary file in the
// destination directory and then renaming it into place.
func WriteFileAtomically(outPath string, write func(f *os.File) error) error {
	if outPath == "" {
		return fmt.Errorf("outPath is empty")
	}

	dir := filepath.Dir(outPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Removing after a successful rename is a no-op.
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := write(tmp); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, outPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// DownloadFile fetches downloadURL into outPath atomically. client must not
// carry credentials of its own; pass the token instead.
func DownloadFile(ctx context.Context, client *http.Client, downloadURL, outPath, githubToken string) error {
	if downloadURL == "" {
		return fmt.Errorf("download url is empty")
	}
	return WriteFileAtomically(outPath, func(f *os.File) error {
		return DownloadToWriter(ctx, client, downloadURL, githubToken, f)
	})
}
