package version

import "testing"

func TestNormalizeTag(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"v0.6.5", "0.6.5"},
		{"V1.2", "1.2"},
		{"1.2.3", "1.2.3"},
		{" v2.0 ", "2.0"},
		{"v", "v"},
	}
	for _, tc := range cases {
		if got := NormalizeTag(tc.in); got != tc.want {
			t.Fatalf("NormalizeTag(%q)=%q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	if v := Parse("v1.2.3"); v == nil || v.String() != "1.2.3" {
		t.Fatalf("Parse(v1.2.3)=%v", v)
	}
	if v := Parse("nightly"); v != nil {
		t.Fatalf("expected nil for nightly, got %v", v)
	}
	if v := Parse(""); v != nil {
		t.Fatalf("expected nil for empty tag, got %v", v)
	}
}

func TestGreater_SemverCore(t *testing.T) {
	if !Greater("v1.10.0", "v1.2.9") {
		t.Fatalf("expected 1.10.0 > 1.2.9")
	}
	if Greater("0.6.3", "0.6.4") {
		t.Fatalf("expected 0.6.3 < 0.6.4")
	}
	if Greater("1.0.0", "v1.0.0") {
		t.Fatalf("expected equal versions not to be greater")
	}
}

func TestGreater_Prerelease(t *testing.T) {
	if !Greater("1.0.0", "1.0.0-beta.1") {
		t.Fatalf("expected release > prerelease")
	}
	if !Greater("1.0.0-beta.2", "1.0.0-beta.1") {
		t.Fatalf("expected beta.2 > beta.1")
	}
	if !Greater("1.0.0-beta.1", "1.0.0-1") {
		// semver: numeric identifiers have lower precedence than non-numeric
		t.Fatalf("expected beta.1 > 1")
	}
}

func TestGreater_NonVersion(t *testing.T) {
	if !Greater("0.0.1", "nightly") {
		t.Fatalf("expected version-like tag ahead of non-version tag")
	}
	if !Greater("zzz", "aaa") {
		t.Fatalf("expected lexical desc")
	}
}

func TestLatest(t *testing.T) {
	if got := Latest(nil); got != -1 {
		t.Fatalf("Latest(nil)=%d; want -1", got)
	}
	tags := []string{"v0.2.0", "nightly", "v0.10.0-rc.1", "v0.9.3"}
	if got := Latest(tags); got != 2 {
		t.Fatalf("Latest=%d; want 2", got)
	}
}
