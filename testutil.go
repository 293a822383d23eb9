package main

import (
	"image"
	"image/color"
	"testing"
	"time"
)

// fakeClock is a controllable wall clock for transport tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// fakeSegment records stop calls and lets tests flip liveness.
type fakeSegment struct {
	path    string
	offset  float64
	alive   bool
	stopped int
}

func (s *fakeSegment) Alive() bool { return s.alive }

func (s *fakeSegment) Stop(timeout time.Duration) {
	s.stopped++
	s.alive = false
}

// fakeLauncher hands out fakeSegments and keeps them for inspection.
type fakeLauncher struct {
	segments []*fakeSegment
}

func (l *fakeLauncher) launch(path string, offset float64) playerHandle {
	s := &fakeSegment{path: path, offset: offset, alive: true}
	l.segments = append(l.segments, s)
	return s
}

func (l *fakeLauncher) last() *fakeSegment {
	if len(l.segments) == 0 {
		return nil
	}
	return l.segments[len(l.segments)-1]
}

// newTestTransport wires a transport to a fake clock and launcher.
func newTestTransport(track Track) (*transport, *fakeClock, *fakeLauncher) {
	clock := newFakeClock()
	launcher := &fakeLauncher{}
	tr := newTransport(clock.Now, launcher.launch)
	tr.Load(track)
	return tr, clock, launcher
}

// generateTestImage creates a simple test image with specified dimensions and colors
// Useful for testing artwork processing functions
func generateTestImage(width, height int, fillColor color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// Fill image with the specified color
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fillColor)
		}
	}

	return img
}

// assertNoError is a test helper that fails the test if an error occurred
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// assertNear fails unless got is within tolerance of want.
func assertNear(t *testing.T, got, want, tolerance float64, msg string) {
	t.Helper()
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		t.Errorf("%s: got %v, want %v (±%v)", msg, got, want, tolerance)
	}
}

// isValidHexColor checks if a string is a valid hex color (e.g., "#RRGGBB")
func isValidHexColor(color string) bool {
	if len(color) != 7 {
		return false
	}
	if color[0] != '#' {
		return false
	}
	for i := 1; i < 7; i++ {
		c := color[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
