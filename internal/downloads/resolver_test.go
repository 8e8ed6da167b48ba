package downloads

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivecadlanding/internal/releases"
)

const fallback = "https://github.com/dafiiit/HiveCAD/releases"

type fakeSource struct {
	mu    sync.Mutex
	rels  []releases.Release
	err   error
	calls int
}

func (f *fakeSource) ListReleases(ctx context.Context, owner, repo, token string) ([]releases.Release, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.rels, f.err
}

func (f *fakeSource) DownloadAsset(ctx context.Context, url, out, token string) error {
	return errors.New("not implemented")
}

func newTestResolver(src releases.Source) *Resolver {
	return NewResolver(src, "dafiiit", "HiveCAD", "")
}

func fullRelease(tag string) releases.Release {
	return releases.Release{
		TagName: tag,
		Assets: []releases.Asset{
			{Name: "HiveCAD-Setup.exe", DownloadURL: "https://dl/" + tag + "/win"},
			{Name: "HiveCAD.dmg", DownloadURL: "https://dl/" + tag + "/mac"},
			{Name: "HiveCAD-x86_64.AppImage", DownloadURL: "https://dl/" + tag + "/appimage"},
			{Name: "hivecad_amd64.deb", DownloadURL: "https://dl/" + tag + "/deb"},
		},
	}
}

func TestResolveSelectsFirstRelease(t *testing.T) {
	src := &fakeSource{rels: []releases.Release{fullRelease("v0.3.0"), fullRelease("v0.2.0")}}

	set := newTestResolver(src).Resolve(context.Background())

	assert.Equal(t, "v0.3.0", set.Tag)
	assert.False(t, set.Fallback)
	assert.Equal(t, map[string]string{
		"windows":   "https://dl/v0.3.0/win",
		"macos":     "https://dl/v0.3.0/mac",
		"linux":     "https://dl/v0.3.0/appimage",
		"linux-deb": "https://dl/v0.3.0/deb",
	}, set.Map())
	for _, p := range Platforms {
		assert.True(t, set.Available(p), p)
	}
}

func TestResolvePartialRelease(t *testing.T) {
	src := &fakeSource{rels: []releases.Release{{
		Assets: []releases.Asset{
			{Name: "HiveCAD-Setup.exe", DownloadURL: "U1"},
			{Name: "HiveCAD.dmg", DownloadURL: "U2"},
		},
	}}}

	set := newTestResolver(src).Resolve(context.Background())

	assert.Equal(t, map[string]string{
		"windows":   "U1",
		"macos":     "U2",
		"linux":     "#",
		"linux-deb": "#",
	}, set.Map())
	assert.True(t, set.Available(Windows))
	assert.False(t, set.Available(Linux))
	assert.False(t, set.Fallback)
}

func TestResolveReleaseWithoutAssets(t *testing.T) {
	src := &fakeSource{rels: []releases.Release{{TagName: "v0.0.1"}}}

	set := newTestResolver(src).Resolve(context.Background())

	for _, p := range Platforms {
		assert.Equal(t, Placeholder, set.URL(p), p)
	}
	assert.Equal(t, "v0.0.1", set.Tag)
}

func TestResolveFirstMatchingAssetWins(t *testing.T) {
	src := &fakeSource{rels: []releases.Release{{
		Assets: []releases.Asset{
			{Name: "HiveCAD-Setup.exe", DownloadURL: "first"},
			{Name: "HiveCAD-Portable.exe", DownloadURL: "second"},
			{Name: "HiveCAD.appimage", DownloadURL: "wrong-case"},
			{Name: "HiveCAD.deb.sha256", DownloadURL: "checksum"},
		},
	}}}

	set := newTestResolver(src).Resolve(context.Background())

	assert.Equal(t, "first", set.URL(Windows))
	assert.Equal(t, Placeholder, set.URL(Linux))
	assert.Equal(t, Placeholder, set.URL(LinuxDeb))
}

func TestResolveFailures(t *testing.T) {
	cases := map[string]*fakeSource{
		"network error": {err: errors.New("dial tcp: no route to host")},
		"empty list":    {rels: []releases.Release{}},
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			set := newTestResolver(src).Resolve(context.Background())

			assert.True(t, set.Fallback)
			assert.Empty(t, set.Tag)
			for _, p := range Platforms {
				assert.Equal(t, fallback, set.URL(p), p)
				assert.False(t, set.Available(p), p)
			}
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	src := &fakeSource{rels: []releases.Release{fullRelease("v1.0.0")}}
	r := newTestResolver(src)

	a := r.Resolve(context.Background())
	b := r.Resolve(context.Background())

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Map(), b.Map())
	assert.Equal(t, 2, src.calls)
}

func TestResolveAgainstGitHubAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok/repos/dafiiit/HiveCAD/releases":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[{"assets":[
				{"name":"HiveCAD-Setup.exe","browser_download_url":"U1"},
				{"name":"HiveCAD.dmg","browser_download_url":"U2"}
			]}]`)
		case "/broken/repos/dafiiit/HiveCAD/releases":
			fmt.Fprint(w, `not json`)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	ok := newTestResolver(releases.NewGitHubSource(srv.URL + "/ok")).Resolve(context.Background())
	assert.Equal(t, map[string]string{"windows": "U1", "macos": "U2", "linux": "#", "linux-deb": "#"}, ok.Map())

	for _, prefix := range []string{"/broken", "/fail"} {
		set := newTestResolver(releases.NewGitHubSource(srv.URL + prefix)).Resolve(context.Background())
		assert.True(t, set.Fallback, prefix)
		for _, p := range Platforms {
			assert.Equal(t, fallback, set.URL(p))
		}
	}
}

func TestCell(t *testing.T) {
	c := NewCell()

	_, ok := c.Get()
	assert.False(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	src := &fakeSource{rels: []releases.Release{fullRelease("v2.0.0")}}
	<-c.Start(context.Background(), newTestResolver(src))

	set, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "v2.0.0", set.Tag)

	got, err := c.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Equal(set))

	c.Set(FallbackSet(fallback))
	set, ok = c.Get()
	assert.True(t, ok)
	assert.True(t, set.Fallback)
}

func TestZeroSetAndPlatforms(t *testing.T) {
	var zero DownloadSet
	assert.Equal(t, Placeholder, zero.URL(MacOS))
	assert.Len(t, zero.Map(), 4)

	p, ok := ParsePlatform("linux-deb")
	assert.True(t, ok)
	assert.Equal(t, LinuxDeb, p)
	assert.Equal(t, ".deb", p.Suffix())

	_, ok = ParsePlatform("amiga")
	assert.False(t, ok)
}

func TestFileName(t *testing.T) {
	set := FromRelease(releases.Release{Assets: []releases.Asset{
		{Name: "HiveCAD-Setup.exe", DownloadURL: "https://github.com/dafiiit/HiveCAD/releases/download/v0.1.0/HiveCAD-Setup.exe"},
		{Name: "hivecad.deb", DownloadURL: "https://dl.example/"},
	}})
	assert.Equal(t, "HiveCAD-Setup.exe", set.FileName(Windows))
	assert.Equal(t, "HiveCAD-linuxdeb.deb", set.FileName(LinuxDeb))
}
