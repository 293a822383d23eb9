package main

import (
	"os/exec"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"
)

// segment supervises one external player process for one contiguous run of
// playback. The process handle is assigned once before the monitor
// goroutine starts and never reassigned; the stop flag is set once and
// polled, so no lock is needed.
type segment struct {
	cmd           *exec.Cmd
	stopRequested atomic.Bool
	done          chan struct{}
	exited        atomic.Bool
	pollInterval  time.Duration
}

// playerArgs builds the argv instructing the player to start decoding at
// startOffset seconds. The -ss flag is omitted entirely for offsets <= 0:
// ffplay treats an explicit zero seek differently from no seek on some
// containers.
func playerArgs(command, path string, startOffset float64) []string {
	args := []string{command, "-nodisp", "-autoexit", "-hide_banner", "-loglevel", "error"}
	if startOffset > 0 {
		args = append(args, "-ss", strconv.FormatFloat(startOffset, 'f', -1, 64))
	}
	return append(args, path)
}

// startSegment spawns the external player and begins liveness monitoring.
// A spawn failure is not an error here: the returned segment simply reports
// not alive and its monitor goroutine exits immediately.
func startSegment(command, path string, startOffset float64, pollInterval time.Duration) *segment {
	if pollInterval <= 0 {
		pollInterval = 100 * time.Millisecond
	}
	s := &segment{done: make(chan struct{}), pollInterval: pollInterval}

	argv := playerArgs(command, path, startOffset)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	if err := cmd.Start(); err != nil {
		s.exited.Store(true)
		close(s.done)
		return s
	}
	s.cmd = cmd

	go s.monitor()
	return s
}

// monitor polls process liveness until the process exits on its own (end
// of file) or a stop is requested. Any failure while waiting or killing is
// swallowed; the segment just appears exited.
func (s *segment) monitor() {
	defer close(s.done)

	waitCh := make(chan struct{})
	go func() {
		defer close(waitCh)
		_ = s.cmd.Wait()
	}()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-waitCh:
			s.exited.Store(true)
			return
		case <-ticker.C:
			if s.stopRequested.Load() {
				s.terminate()
				select {
				case <-waitCh:
				case <-time.After(s.pollInterval):
					s.kill()
					<-waitCh
				}
				s.exited.Store(true)
				return
			}
		}
	}
}

// Alive reports whether the external process is still running.
func (s *segment) Alive() bool {
	if s.cmd == nil || s.exited.Load() {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Stop requests cooperative termination, waits up to timeout for the
// monitor goroutine to wind down, then issues one more forced kill.
// Idempotent; safe on a never-started or already-exited segment.
func (s *segment) Stop(timeout time.Duration) {
	s.stopRequested.Store(true)
	s.terminate()
	select {
	case <-s.done:
	case <-time.After(timeout):
		// The monitor did not finish in time. One unconditional kill
		// attempt; an orphaned process past this point is accepted.
		s.kill()
	}
}

func (s *segment) terminate() {
	if s.cmd == nil || s.cmd.Process == nil || s.exited.Load() {
		return
	}
	_ = s.cmd.Process.Signal(syscall.SIGTERM)
}

func (s *segment) kill() {
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	_ = s.cmd.Process.Kill()
}

// launchSegment is the transport's production launcher, reading the player
// command and poll interval from config.
func launchSegment(path string, startOffset float64) playerHandle {
	cfg := config.Get()
	command := cfg.Player.Command
	if command == "" {
		command = "ffplay"
	}
	poll := time.Duration(cfg.Timing.PollMs) * time.Millisecond
	return startSegment(command, path, startOffset, poll)
}
