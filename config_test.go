package main

import (
	"sync"
	"testing"
)

// TestSafeConfigConcurrency tests that SafeConfig can be safely accessed from multiple goroutines
func TestSafeConfigConcurrency(t *testing.T) {
	sc := &SafeConfig{}

	initialCfg := Config{}
	initialCfg.UI.Color = "1"
	initialCfg.UI.MaxWidth = 52
	initialCfg.Player.Command = "ffplay"
	sc.Set(initialCfg)

	var wg sync.WaitGroup

	// Start 10 writers
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cfg := Config{}
				cfg.UI.Color = string(rune('0' + (id % 10)))
				cfg.Timing.TickMs = 300 + id
				cfg.Player.StopTimeoutMs = 1000 + j
				sc.Set(cfg)
			}
		}(i)
	}

	// Start 10 readers
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cfg := sc.Get()
				// Just access the fields to ensure no panic
				_ = cfg.UI.Color
				_ = cfg.Timing.TickMs
				_ = cfg.Player.StopTimeoutMs
			}
		}()
	}

	wg.Wait()

	// If we got here without panic or data race, test passes
}

// TestSafeConfigGetReturnsCopy tests that Get() returns a copy, not a reference
func TestSafeConfigGetReturnsCopy(t *testing.T) {
	sc := &SafeConfig{}

	cfg1 := Config{}
	cfg1.UI.Color = "1"
	cfg1.Player.Command = "ffplay"
	sc.Set(cfg1)

	// Get a copy
	retrieved1 := sc.Get()

	// Modify the local copy
	retrieved1.UI.Color = "2"
	retrieved1.Player.Command = "mpv"

	// Get another copy - should have original values
	retrieved2 := sc.Get()

	if retrieved2.UI.Color != "1" {
		t.Errorf("Expected color '1', got '%s'", retrieved2.UI.Color)
	}

	if retrieved2.Player.Command != "ffplay" {
		t.Errorf("Expected player command 'ffplay', got '%s'", retrieved2.Player.Command)
	}
}
