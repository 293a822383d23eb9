package main

import (
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Track holds everything the UI needs about the loaded file. Immutable once
// loaded; opening a new file replaces it wholesale.
type Track struct {
	Path      string
	Title     string
	Artist    string
	Duration  float64 // seconds, 0 when the probe failed
	CoverPath string  // "" when no cover art could be extracted
}

// loadTrack probes duration/metadata and extracts cover art for a file.
// Probing and extraction run concurrently; both degrade to defaults on
// failure, so loading never returns an error.
func loadTrack(path string) Track {
	track := Track{Path: path}

	var (
		duration float64
		tags     map[string]string
		cover    string
	)

	var g errgroup.Group
	g.Go(func() error {
		duration, tags = probeFile(path)
		return nil
	})
	g.Go(func() error {
		cover = extractCoverArt(path)
		return nil
	})
	_ = g.Wait()

	track.Duration = duration
	track.CoverPath = cover
	track.Title = tags["title"]
	track.Artist = tags["artist"]
	if track.Title == "" {
		track.Title = fileStem(path)
	}
	return track
}

// fileStem is the file name without directory or extension, used as the
// title fallback when tags are missing.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
