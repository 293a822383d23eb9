package main

import (
	"testing"
)

// TestFormatTime tests the formatTime function with various inputs
func TestFormatTime(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{"zero seconds", 0, "00:00:00"},
		{"under 10 seconds", 5, "00:00:05"},
		{"fractional seconds truncate", 5.9, "00:00:05"},
		{"under one minute", 45, "00:00:45"},
		{"exactly one minute", 60, "00:01:00"},
		{"over one minute", 75, "00:01:15"},
		{"exactly 10 minutes", 600, "00:10:00"},
		{"under one hour", 3599, "00:59:59"},
		{"exactly one hour", 3600, "01:00:00"},
		{"over one hour", 3661, "01:01:01"},
		{"multiple hours", 7384, "02:03:04"},
		{"negative clamps to zero", -10, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatTime(tt.seconds)
			if result != tt.expected {
				t.Errorf("formatTime(%v) = %q; want %q", tt.seconds, result, tt.expected)
			}
		})
	}
}

// TestScrollText tests the scrollText function with various inputs
func TestScrollText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxLength int
		offset    int
		expected  string
	}{
		{
			name:      "short text no scroll",
			text:      "Short",
			maxLength: 10,
			offset:    0,
			expected:  "Short",
		},
		{
			name:      "exact length no scroll",
			text:      "ExactlyTen",
			maxLength: 10,
			offset:    0,
			expected:  "ExactlyTen",
		},
		{
			name:      "long text offset 0",
			text:      "This is a very long text that needs scrolling",
			maxLength: 20,
			offset:    0,
			expected:  "This is a very long ",
		},
		{
			name:      "long text offset middle",
			text:      "This is a very long text that needs scrolling",
			maxLength: 20,
			offset:    5,
			expected:  "is a very long text ",
		},
		{
			name:      "long text offset near end",
			text:      "This is a very long text that needs scrolling",
			maxLength: 20,
			offset:    30,
			expected:  "needs scrolling  •  ",
		},
		{
			name:      "unicode characters",
			text:      "Hello 世界 🎵 Music",
			maxLength: 10,
			offset:    0,
			expected:  "Hello 世界 🎵",
		},
		{
			name:      "empty text",
			text:      "",
			maxLength: 10,
			offset:    0,
			expected:  "",
		},
		{
			name:      "offset wraps around",
			text:      "This is a very long text that needs scrolling",
			maxLength: 20,
			offset:    50 + 100, // 45 chars + 5 separator, wraps
			expected:  "This is a very long ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scrollText(tt.text, tt.maxLength, tt.offset)
			if result != tt.expected {
				t.Errorf("scrollText(%q, %d, %d) = %q; want %q",
					tt.text, tt.maxLength, tt.offset, result, tt.expected)
			}
		})
	}
}
