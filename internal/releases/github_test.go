package releases

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubSourceListReleases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/dafiiit/HiveCAD/releases", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{
			"tag_name":"v0.3.0",
			"name":"HiveCAD 0.3.0",
			"prerelease":true,
			"created_at":"2026-01-02T03:04:05Z",
			"html_url":"https://github.com/dafiiit/HiveCAD/releases/tag/v0.3.0",
			"assets":[
				{"name":"HiveCAD-Setup.exe","browser_download_url":"U1","size":10},
				{"name":"HiveCAD.dmg","browser_download_url":"U2","size":20}
			]
		}]`)
	}))
	defer srv.Close()

	src := NewGitHubSource(srv.URL)
	rels, err := src.ListReleases(context.Background(), "dafiiit", "HiveCAD", "")
	require.NoError(t, err)
	require.Len(t, rels, 1)

	rel := rels[0]
	assert.Equal(t, "v0.3.0", rel.TagName)
	assert.Equal(t, "HiveCAD 0.3.0", rel.Name)
	assert.True(t, rel.Prerelease)
	assert.False(t, rel.Draft)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), rel.CreatedAt.UTC())
	assert.Equal(t, []Asset{
		{Name: "HiveCAD-Setup.exe", DownloadURL: "U1", Size: 10},
		{Name: "HiveCAD.dmg", DownloadURL: "U2", Size: 20},
	}, rel.Assets)
}

func TestGitHubSourceDownloadAssetRedirect(t *testing.T) {
	var cdnAuth string
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cdnAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, "exe-bytes")
	}))
	defer cdn.Close()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		http.Redirect(w, r, strings.Replace(cdn.URL, "127.0.0.1", "localhost", 1)+"/blob", http.StatusFound)
	}))
	defer origin.Close()

	out := filepath.Join(t.TempDir(), "HiveCAD-Setup.exe")
	require.NoError(t, NewGitHubSource("").DownloadAsset(context.Background(), origin.URL+"/HiveCAD-Setup.exe", out, "tok"))
	assert.Empty(t, cdnAuth)
}

func TestGitHubSourceDownloadAsset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		fmt.Fprint(w, "deb-bytes")
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "hivecad.deb")
	src := NewGitHubSource("")
	require.NoError(t, src.DownloadAsset(context.Background(), srv.URL+"/hivecad.deb", out, "tok"))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "deb-bytes", string(b))
}
