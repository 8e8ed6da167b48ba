package web

import (
	"bytes"
	"net/http"
	"strings"

	"hivecadlanding/internal/content"
	"hivecadlanding/internal/downloads"
	"hivecadlanding/internal/version"
)

// Button states rendered by the template.
const (
	buttonReady    = "ready"
	buttonMissing  = "missing"
	buttonFallback = "fallback"
)

type downloadButton struct {
	Platform string
	Label    string
	URL      string
	State    string
}

type pageView struct {
	*content.Page
	Loading     bool
	Version     string
	Fallback    bool
	FallbackURL string
	Buttons     []downloadButton
}

func (s *Server) view() pageView {
	v := pageView{Page: s.page, FallbackURL: s.resolver.FallbackURL()}

	set, ok := s.cell.Get()
	if !ok {
		v.Loading = true
		return v
	}

	v.Fallback = set.Fallback
	if set.Tag != "" {
		v.Version = version.NormalizeTag(set.Tag)
	}
	for _, p := range downloads.Platforms {
		b := downloadButton{Platform: string(p), Label: p.Label(), URL: set.URL(p)}
		switch {
		case set.Fallback:
			b.State = buttonFallback
		case set.Available(p):
			b.State = buttonReady
		default:
			b.State = buttonMissing
		}
		v.Buttons = append(v.Buttons, b)
	}
	return v
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) error {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, s.view()); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

type downloadsResponse struct {
	Status    string            `json:"status"`
	Tag       string            `json:"tag,omitempty"`
	Fallback  bool              `json:"fallback"`
	Downloads map[string]string `json:"downloads,omitempty"`
}

func (s *Server) apiDownloads(w http.ResponseWriter, r *http.Request) error {
	set, ok := s.cell.Get()
	if !ok {
		return responseJSON(w, http.StatusAccepted, downloadsResponse{Status: "loading"})
	}

	return responseJSON(w, http.StatusOK, downloadsResponse{
		Status:    "ready",
		Tag:       set.Tag,
		Fallback:  set.Fallback,
		Downloads: set.Map(),
	})
}

func (s *Server) download(w http.ResponseWriter, r *http.Request) error {
	p, ok := downloads.ParsePlatform(r.PathValue("platform"))
	if !ok {
		return statusError{status: http.StatusNotFound, message: "unknown platform"}
	}

	set, ready := s.cell.Get()
	if !ready {
		w.Header().Set("Retry-After", "2")
		return statusError{status: http.StatusServiceUnavailable, message: "downloads are still loading"}
	}

	u := set.URL(p)
	if u == downloads.Placeholder {
		return statusError{status: http.StatusNotFound, message: "no " + p.Label() + " build in the latest release"}
	}

	http.Redirect(w, r, u, http.StatusFound)
	return nil
}

func joinLines(lines []string) string {
	return strings.Join(lines, " ")
}
