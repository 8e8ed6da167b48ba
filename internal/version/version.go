package version

import (
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

// NormalizeTag strips a single leading "v" or "V" from a git tag for display.
//
// Examples:
//   - "v0.6.5" -> "0.6.5"
//   - "V1.2"   -> "1.2"
//   - "1.2"    -> "1.2"
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if len(tag) > 1 && (tag[0] == 'v' || tag[0] == 'V') {
		return tag[1:]
	}
	return tag
}

// Parse returns the semantic version of a tag, or nil when the tag is not
// version-like. Version-like values must start with a digit once the "v"
// prefix is gone; this keeps names such as "nightly" out of version ordering.
func Parse(tag string) *semver.Version {
	s := NormalizeTag(tag)
	if s == "" || !unicode.IsDigit(rune(s[0])) {
		return nil
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil
	}
	return v
}

// Greater returns true if a should sort ahead of b in descending order.
//
// The comparison follows semver precedence when both tags are version-like.
// Version-like tags sort ahead of everything else, and two non-version tags
// fall back to lexical descending ordering.
func Greater(a, b string) bool {
	av := Parse(a)
	bv := Parse(b)

	switch {
	case av != nil && bv == nil:
		return true
	case av == nil && bv != nil:
		return false
	case av == nil && bv == nil:
		return a > b
	}

	return av.GreaterThan(bv)
}

// Latest returns the index of the highest tag in tags, or -1 for an empty slice.
func Latest(tags []string) int {
	best := -1
	for i, t := range tags {
		if best < 0 || Greater(t, tags[best]) {
			best = i
		}
	}
	return best
}
