package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	cfg := config.Get()

	color := m.accentColor()
	highlight := lipgloss.NewStyle().Foreground(color)
	labelStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(1, 2)

	track := m.transport.Track()

	var textContent strings.Builder

	switch m.mode {
	case modeOpenPrompt:
		textContent.WriteString(labelStyle.Render("Open audio file") + "\n\n")
		textContent.WriteString(m.fileInput.View() + "\n\n")
		textContent.WriteString(dimStyle.Render("enter to load, esc to cancel"))

	case modeLoading:
		textContent.WriteString(m.loader.View() + " " + mutedStyle.Render("Loading track..."))

	default:
		if track.Path == "" {
			textContent.WriteString(highlight.Render("󰓃 goplayer") + "\n\n")
			textContent.WriteString(mutedStyle.Render("No track loaded") + "\n\n")
			textContent.WriteString(dimStyle.Render("Press o to open an audio file"))
		} else {
			m.renderTrack(&textContent, cfg, highlight, labelStyle)
		}
	}

	// Combine artwork and text content
	var topSection string
	if m.artworkEncoded != "" && m.supportsKitty && cfg.Artwork.Enabled && m.mode == modeNormal {
		// Pad the text to the right of the image
		paddedText := lipgloss.NewStyle().
			PaddingLeft(cfg.Artwork.Padding).
			Render(textContent.String())
		topSection = m.artworkEncoded + paddedText
	} else {
		if m.supportsKitty {
			// Delete any stale image placements
			topSection = "\033_Ga=d,d=A\033\\" + textContent.String()
		} else {
			topSection = textContent.String()
		}
	}

	contentStr := borderStyle.
		Width(cfg.UI.MaxWidth).
		Render(topSection)

	// Build help text - either full help or hint to press ?
	var helpText string
	if m.showHelp {
		helpText = lipgloss.NewStyle().
			Width(cfg.UI.MaxWidth).
			Align(lipgloss.Center).
			Render(lipgloss.JoinHorizontal(
				lipgloss.Center,
				"Play/Pause: "+highlight.Render("space"),
				"  Seek: "+highlight.Render("←/→"),
				"  Jump: "+highlight.Render("0-9"),
				"  Open: "+highlight.Render("o"),
				"  Art: "+highlight.Render("a"),
				"  Quit: "+highlight.Render("q"),
			))
	} else {
		helpText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Render("Press ? for help")
	}

	fullUI := lipgloss.JoinVertical(lipgloss.Center, contentStr, "\n"+helpText)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		fullUI,
	)
}

// renderTrack writes the header, slider, and time row for the loaded track.
func (m model) renderTrack(b *strings.Builder, cfg Config, highlight, labelStyle lipgloss.Style) {
	track := m.transport.Track()

	header := scrollText(track.Title, cfg.Text.MaxLength, m.scrollOffset)
	if track.Artist != "" {
		header = scrollText(track.Title+" — "+track.Artist, cfg.Text.MaxLength, m.scrollOffset)
	}
	b.WriteString(labelStyle.Render(header) + "\n\n")

	// Play state icon
	statusIcon := "󰐊"
	if m.transport.Playing() {
		statusIcon = "󰏤"
	}

	var frac float64
	if track.Duration > 0 {
		frac = m.elapsed / track.Duration
		if frac > 1 {
			frac = 1
		}
	}

	b.WriteString(fmt.Sprintf("%s %s\n", highlight.Render(statusIcon), m.slider.ViewAs(frac)))
	b.WriteString(fmt.Sprintf("%s / %s",
		highlight.Render(formatTime(m.elapsed)),
		highlight.Render(formatTime(track.Duration)),
	))
}
