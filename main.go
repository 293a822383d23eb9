package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbletea"
)

var colorFlag string
var noArtworkFlag bool

func init() {
	flag.StringVar(&colorFlag, "color", "2", "Set the desired color (name or hex)")
	flag.StringVar(&colorFlag, "c", "2", "Set the desired color (shorthand)")
	flag.BoolVar(&noArtworkFlag, "no-artwork", false, "Disable album artwork display")
}

func main() {
	flag.Parse()
	initConfig()

	// Probe the track given on the command line up front so the UI opens
	// with metadata, duration, and cover art already in place.
	var initial Track
	var artwork, accent string
	if path := flag.Arg(0); path != "" {
		initial = loadTrack(path)
		artwork, accent = loadCoverArt(initial.CoverPath)
	}

	m := newModel(initial, artwork, accent)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
