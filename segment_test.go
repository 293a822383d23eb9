package main

import (
	"os/exec"
	"testing"
	"time"
)

// TestPlayerArgs checks the ffplay argv, in particular that the seek flag
// is omitted entirely for offsets <= 0.
func TestPlayerArgs(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		wantSS bool
	}{
		{"zero offset", 0, false},
		{"negative offset", -3, false},
		{"positive offset", 42.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := playerArgs("ffplay", "/music/song.mp3", tt.offset)
			hasSS := false
			for _, a := range args {
				if a == "-ss" {
					hasSS = true
				}
			}
			if hasSS != tt.wantSS {
				t.Errorf("playerArgs(offset=%v) -ss present = %v, want %v", tt.offset, hasSS, tt.wantSS)
			}
			if args[len(args)-1] != "/music/song.mp3" {
				t.Errorf("file path must be the last argument, got %v", args)
			}
			if args[0] != "ffplay" {
				t.Errorf("args[0] = %q, want the player command", args[0])
			}
		})
	}
}

func TestPlayerArgsOffsetValue(t *testing.T) {
	args := playerArgs("ffplay", "x.mp3", 120)
	for i, a := range args {
		if a == "-ss" {
			if args[i+1] != "120" {
				t.Errorf("-ss value = %q, want 120", args[i+1])
			}
			return
		}
	}
	t.Error("expected -ss in args for positive offset")
}

// TestSegmentSpawnFailure: a missing player binary must not raise; the
// segment just reports dead and Stop is safe.
func TestSegmentSpawnFailure(t *testing.T) {
	s := startSegment("definitely-not-a-real-player-binary", "/music/song.mp3", 0, 10*time.Millisecond)

	// The monitor exits promptly on spawn failure
	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not exit after spawn failure")
	}

	if s.Alive() {
		t.Error("segment must report not alive after spawn failure")
	}
	s.Stop(time.Second) // must not panic or block
	s.Stop(time.Second)
}

// TestSegmentStopIdempotent: stopping twice has no effect beyond the first.
func TestSegmentStopIdempotent(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	s := &segment{done: make(chan struct{}), pollInterval: 10 * time.Millisecond}
	cmd := exec.Command("sleep", "60")
	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start test process: %v", err)
	}
	s.cmd = cmd
	go s.monitor()

	if !s.Alive() {
		t.Fatal("expected test process to be alive")
	}

	s.Stop(2 * time.Second)
	if s.Alive() {
		t.Error("segment still alive after Stop")
	}

	select {
	case <-s.done:
	default:
		t.Error("monitor should have finished after Stop")
	}

	// Second stop: no error, no panic, returns immediately
	start := time.Now()
	s.Stop(2 * time.Second)
	if time.Since(start) > time.Second {
		t.Error("second Stop should return immediately")
	}
}

// TestSegmentNaturalExit: a process that finishes on its own is observed by
// the polling loop and the segment winds down without Stop.
func TestSegmentNaturalExit(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}

	s := &segment{done: make(chan struct{}), pollInterval: 10 * time.Millisecond}
	cmd := exec.Command("true")
	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start test process: %v", err)
	}
	s.cmd = cmd
	go s.monitor()

	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not observe natural process exit")
	}
	if s.Alive() {
		t.Error("segment must report not alive after natural exit")
	}

	s.Stop(time.Second) // safe on an already-exited segment
}

// TestSegmentStopKillsProcess: a stop request actually terminates the
// external process within the bounded join.
func TestSegmentStopKillsProcess(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	s := &segment{done: make(chan struct{}), pollInterval: 10 * time.Millisecond}
	cmd := exec.Command("sleep", "60")
	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start test process: %v", err)
	}
	s.cmd = cmd
	go s.monitor()

	start := time.Now()
	s.Stop(2 * time.Second)
	if elapsed := time.Since(start); elapsed > 2500*time.Millisecond {
		t.Errorf("Stop took %v, want bounded by the timeout", elapsed)
	}
	if s.Alive() {
		t.Error("process still alive after Stop")
	}
}

// TestSegmentStopNeverStarted: the zero-value path.
func TestSegmentStopNeverStarted(t *testing.T) {
	s := &segment{done: make(chan struct{})}
	close(s.done)
	s.Stop(time.Second)
	s.Stop(time.Second)
	if s.Alive() {
		t.Error("never-started segment must not be alive")
	}
}
