package tui

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"

	"hivecadlanding/internal/content"
	"hivecadlanding/internal/downloads"
)

const helpText = "↑/↓: select   enter: download   i: install help   r: reload   q: quit"

type platformItem struct {
	platform downloads.Platform
	url      string
	state    string
}

// Row states, mirroring the web buttons.
const (
	rowLoading  = "loading"
	rowReady    = "ready"
	rowMissing  = "missing"
	rowFallback = "fallback"
)

func (p platformItem) Title() string { return p.platform.Label() }

func (p platformItem) Description() string {
	switch p.state {
	case rowReady:
		return p.url
	case rowMissing:
		return "not available in this release"
	case rowFallback:
		return "releases page: " + p.url
	default:
		return "…"
	}
}

func (p platformItem) FilterValue() string { return string(p.platform) }

type model struct {
	page     *content.Page
	resolver *downloads.Resolver
	timeout  time.Duration

	// set is nil until the current resolution lands.
	set *downloads.DownloadSet
	gen int

	platforms list.Model

	resolving   bool
	downloading bool
	spin        spinner.Model

	showInstall bool

	downloadCancel func()

	status string
	err    error

	width  int
	height int
}

func newModel(page *content.Page, resolver *downloads.Resolver, timeout time.Duration) model {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	l := list.New(platformItems(nil), list.NewDefaultDelegate(), 40, 16)
	l.Title = "Download"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		page:      page,
		resolver:  resolver,
		timeout:   timeout,
		platforms: l,
		spin:      sp,
		resolving: true,
		status:    "Fetching latest release…",
	}
}

// platformItems builds one row per platform. A nil set renders every row
// as loading.
func platformItems(set *downloads.DownloadSet) []list.Item {
	items := make([]list.Item, 0, len(downloads.Platforms))
	for _, p := range downloads.Platforms {
		it := platformItem{platform: p, state: rowLoading}
		if set != nil {
			it.url = set.URL(p)
			switch {
			case set.Fallback:
				it.state = rowFallback
			case set.Available(p):
				it.state = rowReady
			default:
				it.state = rowMissing
			}
		}
		items = append(items, it)
	}
	return items
}

func (m *model) selectedPlatform() (platformItem, bool) {
	it, ok := m.platforms.SelectedItem().(platformItem)
	return it, ok
}

func (m *model) validateDownload() (platformItem, error) {
	if m.set == nil {
		return platformItem{}, errors.New("release is still loading")
	}
	it, ok := m.selectedPlatform()
	if !ok {
		return platformItem{}, errors.New("select a platform")
	}
	switch it.state {
	case rowFallback:
		return platformItem{}, errors.New("release lookup failed; open " + it.url + " to download")
	case rowMissing:
		return platformItem{}, errors.New("no " + it.platform.Label() + " build in " + m.set.Tag)
	}
	return it, nil
}

func (m *model) outputPath(p downloads.Platform) string {
	return filepath.Join(".", "downloads", m.set.FileName(p))
}

func (m *model) SetStatus(s string) {
	m.status = s
}

func (m *model) SetError(err error) {
	m.err = err
	if err != nil {
		m.status = err.Error()
	}
}

func (m *model) ClearBanner() {
	m.err = nil
}

func (m *model) cancelDownload() {
	if m.downloadCancel != nil {
		m.downloadCancel()
		m.downloadCancel = nil
	}
}
