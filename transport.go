package main

import (
	"time"
)

// playStatus is the transport state: either paused or playing.
// Seeking is not a state of its own, only a flag that suppresses ticks.
type playStatus int

const (
	statusPaused playStatus = iota
	statusPlaying
)

func (s playStatus) String() string {
	if s == statusPlaying {
		return "Playing"
	}
	return "Paused"
}

// playerHandle is one playback segment's external process, owned by the
// transport from launch to stop.
type playerHandle interface {
	// Alive reports whether the external process is still running.
	Alive() bool
	// Stop requests termination and waits up to timeout for the
	// monitoring goroutine to finish. Safe to call more than once.
	Stop(timeout time.Duration)
}

// launchFunc starts a new external player at the given offset (seconds).
// Spawn failures are not reported here; the handle just shows up dead.
type launchFunc func(path string, startOffset float64) playerHandle

// transport tracks playback position with wall-clock arithmetic. The
// external player gives us no feedback channel, so the position is always
// derived: elapsed = now - lastPlayClock + tsStart. It owns at most one
// live segment at a time and stops the old one before starting a new one.
type transport struct {
	now    func() time.Time
	launch launchFunc

	track  Track
	status playStatus

	// tsStart is the accumulated position (seconds) at the last
	// pause/resume/seek transition. lastPlayClock is the wall-clock time
	// of the last resume; it is zero whenever we are paused.
	tsStart       float64
	lastPlayClock time.Time

	// slider mirrors the UI slider value so a manual reposition while
	// paused is adopted on the next resume.
	slider float64

	seeking bool
	segment playerHandle
}

func newTransport(now func() time.Time, launch launchFunc) *transport {
	if now == nil {
		now = time.Now
	}
	return &transport{now: now, launch: launch}
}

// Load replaces the current track. Any active segment is stopped and the
// position resets to zero, paused.
func (t *transport) Load(track Track) {
	t.stopSegment()
	t.track = track
	t.tsStart = 0
	t.slider = 0
	t.lastPlayClock = time.Time{}
	t.seeking = false
	t.status = statusPaused
}

func (t *transport) TogglePlayPause() {
	if t.status == statusPaused {
		t.Resume()
	} else {
		t.Pause()
	}
}

// Resume starts a new playback segment at the current position. No-op if a
// segment is already alive.
func (t *transport) Resume() {
	if t.segment != nil && t.segment.Alive() {
		return
	}
	if t.lastPlayClock.IsZero() && t.slider > 0 {
		t.tsStart = t.slider
	}
	if t.launch != nil && t.track.Path != "" {
		t.segment = t.launch(t.track.Path, t.tsStart)
	}
	t.lastPlayClock = t.now()
	t.status = statusPlaying
}

// Pause freezes the derived position into tsStart and stops the segment.
func (t *transport) Pause() {
	t.pauseAt(-1)
}

// pauseAt pauses with an explicit position override (seconds). A negative
// override means "derive from the clock", the normal case. The end-of-track
// path passes the clamped duration instead, since the track is logically
// finished even if the wall clock ran slightly past it.
func (t *transport) pauseAt(override float64) {
	if override >= 0 {
		t.tsStart = override
	} else if !t.lastPlayClock.IsZero() {
		elapsed := t.now().Sub(t.lastPlayClock).Seconds() + t.tsStart
		if elapsed < 0 {
			elapsed = 0
		}
		t.tsStart = elapsed
	}
	t.stopSegment()
	t.lastPlayClock = time.Time{}
	t.slider = t.tsStart
	t.status = statusPaused
}

// SeekBegin freezes position tracking while the user drags the slider.
// Works whether or not we are currently playing.
func (t *transport) SeekBegin() {
	t.seeking = true
	t.Pause()
}

// SeekEnd restarts playback at the target position (seconds).
func (t *transport) SeekEnd(target float64) {
	if target < 0 {
		target = 0
	}
	t.tsStart = target
	t.slider = target
	t.seeking = false
	t.Resume()
}

// Tick advances the derived position. Returns the elapsed seconds to
// display and whether the transport is still playing. While seeking or
// paused it reports the frozen position and does nothing else. When the
// derived position reaches the track duration the transport auto-pauses
// with the position clamped exactly to the duration.
func (t *transport) Tick() (elapsed float64, playing bool) {
	if t.seeking || t.status == statusPaused || t.lastPlayClock.IsZero() {
		return t.tsStart, false
	}
	elapsed = t.now().Sub(t.lastPlayClock).Seconds() + t.tsStart
	if elapsed < 0 {
		elapsed = 0
	}
	if t.track.Duration > 0 && elapsed >= t.track.Duration {
		t.pauseAt(t.track.Duration)
		return t.track.Duration, false
	}
	t.slider = elapsed
	return elapsed, true
}

// Elapsed is the current derived position without side effects.
func (t *transport) Elapsed() float64 {
	if t.status == statusPaused || t.lastPlayClock.IsZero() {
		return t.tsStart
	}
	elapsed := t.now().Sub(t.lastPlayClock).Seconds() + t.tsStart
	if elapsed < 0 {
		elapsed = 0
	}
	if t.track.Duration > 0 && elapsed > t.track.Duration {
		elapsed = t.track.Duration
	}
	return elapsed
}

// SetSlider records a manual slider position (seconds) set while paused.
func (t *transport) SetSlider(v float64) {
	if v < 0 {
		v = 0
	}
	t.slider = v
}

func (t *transport) Playing() bool { return t.status == statusPlaying }

func (t *transport) Seeking() bool { return t.seeking }

func (t *transport) Track() Track { return t.track }

// Position is the stored accumulated offset, not the live derived value.
func (t *transport) Position() float64 { return t.tsStart }

// Close stops any active segment. Called on shutdown and track change.
func (t *transport) Close() {
	t.stopSegment()
	t.lastPlayClock = time.Time{}
	t.status = statusPaused
}

func (t *transport) stopSegment() {
	if t.segment == nil {
		return
	}
	cfg := config.Get()
	timeout := time.Duration(cfg.Player.StopTimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = time.Second
	}
	t.segment.Stop(timeout)
	t.segment = nil
}
