package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hivecadlanding/internal/downloads"
	"hivecadlanding/internal/releases"
)

type resolvedMsg struct {
	gen int
	set downloads.DownloadSet
}

type downloadDoneMsg struct {
	out string
}

type downloadErrMsg struct {
	err error
}

type downloadCanceledMsg struct{}

func retryWithBackoff(ctx context.Context, attempts int, baseDelay time.Duration, fn func() error) error {
	delay := baseDelay
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if i == attempts-1 {
			return err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return ctx.Err()
}

// resolveCmd runs one resolution. It is never retried: failures come back
// as a fallback set.
func resolveCmd(resolver *downloads.Resolver, gen int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return resolvedMsg{gen: gen, set: resolver.Resolve(ctx)}
	}
}

func downloadCmd(ctx context.Context, src releases.Source, url, out, token string) tea.Cmd {
	return func() tea.Msg {
		err := retryWithBackoff(ctx, 3, 500*time.Millisecond, func() error {
			return src.DownloadAsset(ctx, url, out, token)
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return downloadCanceledMsg{}
			}
			return downloadErrMsg{err: fmt.Errorf("download asset: %w", err)}
		}
		return downloadDoneMsg{out: out}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		resolveCmd(m.resolver, m.gen, m.timeout),
	)
}

// startResolve drops the current set and resolves again, like a page reload.
func (m *model) startResolve() tea.Cmd {
	m.cancelDownload()
	m.downloading = false

	m.gen++
	m.set = nil
	m.resolving = true
	m.platforms.SetItems(platformItems(nil))
	m.platforms.Title = "Download"
	m.ClearBanner()
	m.SetStatus("Fetching latest release…")

	return tea.Batch(m.spin.Tick, resolveCmd(m.resolver, m.gen, m.timeout))
}

func (m *model) startDownload() tea.Cmd {
	m.cancelDownload()

	it, err := m.validateDownload()
	if err != nil {
		m.SetError(err)
		return nil
	}

	m.ClearBanner()
	m.downloading = true
	out := m.outputPath(it.platform)
	m.SetStatus("Downloading " + it.platform.Label() + "…")

	baseCtx, cancel := context.WithCancel(context.Background())
	m.downloadCancel = cancel
	ctx, timeoutCancel := context.WithTimeout(baseCtx, 10*time.Minute)

	inner := downloadCmd(ctx, m.resolver.Source(), it.url, out, m.resolver.Token())
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		defer timeoutCancel()
		return inner()
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.platforms.SetSize(max(msg.Width/2-6, 34), 16)
		return m, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "q" || key == "ctrl+c" {
			m.cancelDownload()
			return m, tea.Quit
		}

		if m.showInstall {
			if key == "esc" || key == "i" || key == "enter" {
				m.showInstall = false
			}
			return m, nil
		}

		switch key {
		case "esc":
			m.ClearBanner()
			m.SetStatus("Ready")
			return m, nil
		case "i":
			m.showInstall = true
			return m, nil
		case "r":
			return m, m.startResolve()
		case "enter":
			return m, m.startDownload()
		}

		var cmd tea.Cmd
		m.platforms, cmd = m.platforms.Update(msg)
		return m, cmd

	case resolvedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		set := msg.set
		m.set = &set
		m.resolving = false
		m.platforms.SetItems(platformItems(m.set))
		if set.Tag != "" {
			m.platforms.Title = "Download " + set.Tag
		}

		switch {
		case set.Fallback:
			m.SetStatus("Could not list releases; links open the releases page.")
		case set.Tag != "":
			m.SetStatus("Latest release: " + set.Tag)
		default:
			m.SetStatus("Latest release resolved.")
		}
		return m, nil

	case downloadDoneMsg:
		m.downloading = false
		m.downloadCancel = nil
		m.SetStatus("Downloaded: " + msg.out)
		return m, nil

	case downloadErrMsg:
		m.downloading = false
		m.downloadCancel = nil
		m.SetError(msg.err)
		return m, nil

	case downloadCanceledMsg:
		m.downloading = false
		m.downloadCancel = nil
		m.SetStatus("Download canceled.")
		return m, nil

	default:
		if !m.resolving && !m.downloading && m.set != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
}
