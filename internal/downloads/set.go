package downloads

import (
	"net/url"
	"path"
	"strings"

	"hivecadlanding/internal/releases"
)

// Platform names a download target.
type Platform string

const (
	Windows  Platform = "windows"
	MacOS    Platform = "macos"
	Linux    Platform = "linux"
	LinuxDeb Platform = "linux-deb"
)

// Placeholder is the value of a platform whose asset is missing from the
// selected release.
const Placeholder = "#"

// Platforms lists every platform in display order.
var Platforms = []Platform{Windows, MacOS, Linux, LinuxDeb}

var suffixes = map[Platform]string{
	Windows:  ".exe",
	MacOS:    ".dmg",
	Linux:    ".AppImage",
	LinuxDeb: ".deb",
}

// Suffix returns the asset filename suffix matched for p.
func (p Platform) Suffix() string { return suffixes[p] }

// Label is the human name shown on buttons.
func (p Platform) Label() string {
	switch p {
	case Windows:
		return "Windows"
	case MacOS:
		return "macOS"
	case Linux:
		return "Linux (AppImage)"
	case LinuxDeb:
		return "Linux (.deb)"
	}
	return string(p)
}

// ParsePlatform maps a platform key back to a Platform.
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.TrimSpace(s))
	_, ok := suffixes[p]
	return p, ok
}

// DownloadSet maps every platform to a URL. Every platform always has a
// value: an asset URL, Placeholder, or the fallback releases page.
type DownloadSet struct {
	// Tag of the selected release; empty for a fallback set.
	Tag string
	// Fallback is true when resolution failed and every platform points at
	// the releases page.
	Fallback bool

	links map[Platform]string
}

// FromRelease builds a DownloadSet from rel. Each platform gets the first
// asset whose name ends with its suffix, or Placeholder.
func FromRelease(rel releases.Release) DownloadSet {
	set := DownloadSet{Tag: rel.TagName, links: make(map[Platform]string, len(Platforms))}
	for _, p := range Platforms {
		set.links[p] = Placeholder
		for _, a := range rel.Assets {
			if strings.HasSuffix(a.Name, p.Suffix()) {
				set.links[p] = a.DownloadURL
				break
			}
		}
	}
	return set
}

// FallbackSet points every platform at url.
func FallbackSet(url string) DownloadSet {
	set := DownloadSet{Fallback: true, links: make(map[Platform]string, len(Platforms))}
	for _, p := range Platforms {
		set.links[p] = url
	}
	return set
}

// URL returns the link for p. Unknown platforms and zero sets return Placeholder.
func (d DownloadSet) URL(p Platform) string {
	if u, ok := d.links[p]; ok {
		return u
	}
	return Placeholder
}

// Available reports whether p resolved to a real release asset.
func (d DownloadSet) Available(p Platform) bool {
	return !d.Fallback && d.URL(p) != Placeholder
}

// Map returns a copy of the platform to URL mapping keyed by platform name.
func (d DownloadSet) Map() map[string]string {
	m := make(map[string]string, len(Platforms))
	for _, p := range Platforms {
		m[string(p)] = d.URL(p)
	}
	return m
}

// Equal reports whether two sets resolve identically.
func (d DownloadSet) Equal(o DownloadSet) bool {
	if d.Tag != o.Tag || d.Fallback != o.Fallback {
		return false
	}
	for _, p := range Platforms {
		if d.URL(p) != o.URL(p) {
			return false
		}
	}
	return true
}

// FileName derives a local filename for p's asset from its URL.
func (d DownloadSet) FileName(p Platform) string {
	if u, err := url.Parse(d.URL(p)); err == nil {
		if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
			return base
		}
	}
	return "HiveCAD-" + strings.ReplaceAll(string(p), "-", "") + p.Suffix()
}
