package downloads

import (
	"context"
	"errors"
	"log/slog"

	"hivecadlanding/internal/ghrel"
	"hivecadlanding/internal/logger"
	"hivecadlanding/internal/releases"
)

var errNoReleases = errors.New("no releases published")

// Resolver turns the newest release of one repository into a DownloadSet.
type Resolver struct {
	src         releases.Source
	owner       string
	repo        string
	token       string
	fallbackURL string
	log         *slog.Logger
}

// NewResolver returns a Resolver for owner/repo. The fallback URL is the
// repository's releases page.
func NewResolver(src releases.Source, owner, repo, token string) *Resolver {
	return &Resolver{
		src:         src,
		owner:       owner,
		repo:        repo,
		token:       token,
		fallbackURL: ghrel.ReleasesPageURL(owner, repo),
		log:         logger.Log.With("repo", owner+"/"+repo),
	}
}

// FallbackURL is the value every platform gets when resolution fails.
func (r *Resolver) FallbackURL() string { return r.fallbackURL }

// Source exposes the underlying release source for asset downloads.
func (r *Resolver) Source() releases.Source { return r.src }

// Token is the GitHub token used for API calls and downloads.
func (r *Resolver) Token() string { return r.token }

// Resolve lists releases and builds a DownloadSet from the first one.
// It never fails: errors are logged and produce a fallback set.
func (r *Resolver) Resolve(ctx context.Context) DownloadSet {
	rel, err := r.latest(ctx)
	if err != nil {
		r.log.Warn("resolve downloads; using releases page", "err", err, "fallback", r.fallbackURL)
		return FallbackSet(r.fallbackURL)
	}

	set := FromRelease(rel)
	r.log.Info("resolved downloads", "tag", set.Tag, "assets", len(rel.Assets))
	return set
}

func (r *Resolver) latest(ctx context.Context) (releases.Release, error) {
	rels, err := r.src.ListReleases(ctx, r.owner, r.repo, r.token)
	if err != nil {
		return releases.Release{}, err
	}
	if len(rels) == 0 {
		return releases.Release{}, errNoReleases
	}
	return rels[0], nil
}
