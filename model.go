package main

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// uiMode selects what the keyboard drives: the player, the open-file
// prompt, or nothing while a track is loading.
type uiMode int

const (
	modeNormal uiMode = iota
	modeOpenPrompt
	modeLoading
)

// seekStep is the arrow-key seek distance in seconds.
const seekStep = 5.0

// model is the Bubble Tea model for the player UI
type model struct {
	transport *transport
	elapsed   float64 // last reported position, seconds

	color  string
	width  int
	height int
	mode   uiMode

	slider    progress.Model
	fileInput textinput.Model
	loader    spinner.Model

	// Album artwork support
	artworkEncoded string // Kitty protocol-encoded artwork for display
	supportsKitty  bool   // Whether terminal supports Kitty graphics

	// Text scrolling state
	scrollOffset int
	scrollPause  int
	scrollTick   int

	showHelp bool
}

// Playback clock tick - fires every timing.tick_ms (300ms default)
type tickMsg time.Time

// Result of loading a track off the UI goroutine
type trackLoadedMsg struct {
	track   Track
	artwork string // Kitty-encoded cover
	accent  string // dominant cover color, "" unless color_mode is auto
}

func newModel(initial Track, artwork, accent string) model {
	cfg := config.Get()

	ti := textinput.New()
	ti.Placeholder = "/path/to/audio.mp3"
	ti.CharLimit = 500
	ti.Width = 44

	sl := progress.New(progress.WithDefaultGradient())
	sl.Width = cfg.UI.MaxWidth - 22
	sl.ShowPercentage = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	color := cfg.UI.Color
	if cfg.UI.ColorMode == "auto" && accent != "" {
		color = accent
	}

	m := model{
		transport:      newTransport(time.Now, launchSegment),
		color:          color,
		slider:         sl,
		fileInput:      ti,
		loader:         sp,
		artworkEncoded: artwork,
		supportsKitty:  supportsKittyGraphics() && !noArtworkFlag,
	}
	m.transport.Load(initial)
	m.elapsed = 0
	return m
}

// Schedule next playback clock tick
func tickCmd() tea.Cmd {
	cfg := config.Get()
	return tea.Tick(time.Duration(cfg.Timing.TickMs)*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Load a track in the background (probing and cover extraction block)
func loadTrackCmd(path string) tea.Cmd {
	return func() tea.Msg {
		track := loadTrack(path)
		artwork, accent := loadCoverArt(track.CoverPath)
		return trackLoadedMsg{track: track, artwork: artwork, accent: accent}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		watchConfigCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeOpenPrompt:
			return m.updateOpenPrompt(msg)
		case modeLoading:
			// Ignore everything but quit while a track loads
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				m.transport.Close()
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.mode == modeNormal && !m.transport.Seeking() {
			m.elapsed, _ = m.transport.Tick()
		}
		m.advanceScroll()
		// Schedule next tick immediately for consistent timing
		return m, tickCmd()

	case trackLoadedMsg:
		cfg := config.Get()
		m.transport.Load(msg.track)
		m.elapsed = 0
		m.scrollOffset = 0
		m.scrollPause = 10
		m.scrollTick = 0
		m.artworkEncoded = msg.artwork
		if cfg.UI.ColorMode == "auto" && msg.accent != "" {
			m.color = msg.accent
		}
		m.mode = modeNormal
		return m, nil

	case configReloadMsg:
		cfg := config.Get()
		if cfg.UI.ColorMode == "manual" {
			m.color = cfg.UI.Color
		}
		if !cfg.Artwork.Enabled {
			m.artworkEncoded = ""
		}
		m.slider.Width = cfg.UI.MaxWidth - 22
		// Continue watching for more config changes
		return m, watchConfigCmd()

	case spinner.TickMsg:
		if m.mode == modeLoading {
			var cmd tea.Cmd
			m.loader, cmd = m.loader.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		m.transport.Close()
		return m, tea.Quit

	case " ", "p":
		m.transport.TogglePlayPause()
		m.elapsed = m.transport.Elapsed()
		return m, nil

	case "left":
		m.seekBy(-seekStep)
		return m, nil

	case "right":
		m.seekBy(seekStep)
		return m, nil

	case "o":
		m.mode = modeOpenPrompt
		m.fileInput.SetValue("")
		m.fileInput.Focus()
		return m, textinput.Blink

	case "a":
		cfg := config.Get()
		cfg.Artwork.Enabled = !cfg.Artwork.Enabled
		config.Set(cfg)
		if !cfg.Artwork.Enabled {
			m.artworkEncoded = ""
		} else if m.supportsKitty {
			artwork, accent := loadCoverArt(m.transport.Track().CoverPath)
			m.artworkEncoded = artwork
			if cfg.UI.ColorMode == "auto" && accent != "" {
				m.color = accent
			}
		}
		return m, nil

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		// Jump to a tenth of the track
		duration := m.transport.Track().Duration
		if duration > 0 {
			frac := float64(key[0]-'0') / 10.0
			m.seekTo(duration * frac)
		}
		return m, nil
	}
	return m, nil
}

func (m model) updateOpenPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := m.fileInput.Value()
		m.fileInput.Blur()
		if path == "" {
			m.mode = modeNormal
			return m, nil
		}
		m.mode = modeLoading
		return m, tea.Batch(loadTrackCmd(path), m.loader.Tick)
	case "esc":
		m.fileInput.Blur()
		m.mode = modeNormal
		return m, nil
	case "ctrl+c":
		m.transport.Close()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.fileInput, cmd = m.fileInput.Update(msg)
	return m, cmd
}

// seekBy moves the playhead relative to the current position and restarts
// playback there, clamped to [0, duration].
func (m *model) seekBy(delta float64) {
	m.seekTo(m.transport.Elapsed() + delta)
}

func (m *model) seekTo(target float64) {
	duration := m.transport.Track().Duration
	if target < 0 {
		target = 0
	}
	if duration > 0 && target > duration {
		target = duration
	}
	m.transport.SeekBegin()
	m.transport.SeekEnd(target)
	m.elapsed = m.transport.Elapsed()
}

// advanceScroll drives the long-title marquee, one step every other tick.
func (m *model) advanceScroll() {
	m.scrollTick++
	if m.scrollPause > 0 {
		m.scrollPause--
		return
	}
	if m.scrollTick%2 != 0 {
		return
	}
	m.scrollOffset++

	cfg := config.Get()
	track := m.transport.Track()
	longest := len([]rune(track.Title))
	if l := len([]rune(track.Artist)); l > longest {
		longest = l
	}
	if longest > cfg.Text.MaxLength {
		loopPoint := longest + 5 // text length + separator length
		if m.scrollOffset >= loopPoint {
			m.scrollOffset = 0
			m.scrollPause = 10
		}
	}
}

// accentColor is the lipgloss color currently in use for highlights.
func (m model) accentColor() lipgloss.Color {
	return lipgloss.Color(m.color)
}
