package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hivecadlanding/internal/content"
)

var (
	appPad = lipgloss.NewStyle().Padding(1, 2)

	muted  = lipgloss.NewStyle().Faint(true)
	bold   = lipgloss.NewStyle().Bold(true)
	accent = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)

	titleBar = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	panelBase = lipgloss.NewStyle().
			Padding(1, 1).
			Border(lipgloss.RoundedBorder()).
			MarginTop(1)

	panelTitle = lipgloss.NewStyle().Bold(true)

	statusBox = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	errorBox = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			Bold(true)

	modalBox = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.DoubleBorder())

	footer = lipgloss.NewStyle().MarginTop(1)

	badgeStyles = map[string]lipgloss.Style{
		content.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		content.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		content.StatusFuture:     lipgloss.NewStyle().Faint(true),
	}
)

func (m model) View() string {
	w := m.width - 4
	if w <= 0 {
		w = 92
	}

	if m.showInstall {
		return m.installView(w)
	}

	gap := 2
	leftW := (w - 2*2 - gap) / 2
	rightW := (w - 2*2 - gap) - leftW
	if leftW < 40 {
		leftW = 40
	}
	if rightW < 38 {
		rightW = 38
	}

	// Right panel inner width must account for:
	// - 2 columns border (left+right)
	// - 2 columns padding (left+right), since panel padding is (1,1)
	rightInnerW := rightW - 4
	if rightInnerW < 10 {
		rightInnerW = 10
	}

	sub := m.page.Tagline
	if m.resolving {
		sub = fmt.Sprintf("%s  •  %s Fetching latest release…", sub, m.spin.View())
	}
	if m.downloading {
		sub = fmt.Sprintf("%s  •  %s Downloading…", sub, m.spin.View())
	}

	header := titleBar.Width(w-2*2).Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			bold.Render(m.page.Brand+" · "+strings.Join(m.page.Hero.Headline, " ")),
			muted.Render(sub),
		),
	)

	leftPanel := panelBase.Width(leftW).Render(m.pitchView())

	var rightBody strings.Builder

	rightBody.WriteString(m.platforms.View())
	rightBody.WriteString("\n")

	if strings.TrimSpace(m.status) != "" {
		fmt.Fprintf(&rightBody, "\n%s\n", statusBox.Width(rightInnerW).Render(m.status))
	}
	if m.err != nil {
		fmt.Fprintf(&rightBody, "\n%s\n", errorBox.Width(rightInnerW).Render("Error: "+m.err.Error()))
	}

	rightPanel := panelBase.Width(rightW).Render(rightBody.String())

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		lipgloss.NewStyle().Width(gap).Render(""),
		rightPanel,
	)

	footerLine := footer.Render(muted.Render(helpText + "   " + m.page.Links.App))

	return appPad.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			body,
			footerLine,
		),
	)
}

// pitchView renders features, roadmap and about as plain text blocks.
func (m model) pitchView() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n\n", panelTitle.Render(m.page.Features.Heading), muted.Render(m.page.Features.Intro))
	for _, f := range m.page.Features.Items {
		fmt.Fprintf(&b, "%s %s\n  %s\n", accent.Render("▸"), bold.Render(f.Title), muted.Render(f.Description))
	}

	fmt.Fprintf(&b, "\n%s\n", panelTitle.Render("Roadmap"))
	for _, s := range m.page.Roadmap {
		badge := badgeStyles[s.Status].Render("[" + s.StatusLabel() + "]")
		fmt.Fprintf(&b, "%s %s\n", badge, bold.Render(s.Title))
		if s.Detail != "" {
			fmt.Fprintf(&b, "  %s\n", muted.Render(s.Detail))
		}
	}

	about := m.page.About
	fmt.Fprintf(&b, "\n%s\n", panelTitle.Render("About"))
	if about.Kicker != "" {
		fmt.Fprintf(&b, "%s\n", accent.Render(about.Kicker))
	}
	fmt.Fprintf(&b, "%s\n", bold.Render(about.Name))
	if about.Bio != "" {
		fmt.Fprintf(&b, "%s\n", muted.Render(about.Bio))
	}
	for _, p := range about.Profiles {
		fmt.Fprintf(&b, "%s %s\n", p.Label+":", muted.Render(p.URL))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m model) installView(w int) string {
	in := m.page.Install
	box := modalBox.Width(min(w-4, 72)).Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			panelTitle.Render(in.Title),
			"",
			in.Intro,
			"",
			accent.Render("$ "+in.Command),
			"",
			muted.Render("esc: close"),
		),
	)

	h := m.height
	if h <= 0 {
		return appPad.Render(box)
	}
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, box)
}
