package main

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
)

// probeResult mirrors the slice of ffprobe's JSON output we care about.
type probeResult struct {
	Format struct {
		Duration string            `json:"duration"`
		Tags     map[string]string `json:"tags"`
	} `json:"format"`
	Streams []struct {
		CodecType string            `json:"codec_type"`
		Duration  string            `json:"duration"`
		Tags      map[string]string `json:"tags"`
	} `json:"streams"`
}

// probeFile returns the file's duration in seconds and its textual metadata
// tags with lower-cased keys. Any failure degrades to (0, empty map); a
// probe failure is never fatal. When ffprobe itself is unavailable the ID3
// tags are read directly as a fallback, leaving the duration at zero.
func probeFile(path string) (float64, map[string]string) {
	cfg := config.Get()
	command := cfg.Probe.Command
	if command == "" {
		command = "ffprobe"
	}

	cmd := exec.Command(command, "-v", "error",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		if title, artist, ok := readID3Tags(path); ok {
			return 0, map[string]string{"title": title, "artist": artist}
		}
		return 0, map[string]string{}
	}

	return parseProbeOutput(out.Bytes())
}

// parseProbeOutput extracts (duration, tags) from raw ffprobe JSON.
// Container duration wins; the first audio stream's duration is the
// fallback. Malformed input yields (0, empty map).
func parseProbeOutput(data []byte) (float64, map[string]string) {
	var result probeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return 0, map[string]string{}
	}

	tags := make(map[string]string, len(result.Format.Tags))
	for k, v := range result.Format.Tags {
		tags[strings.ToLower(k)] = v
	}

	if d, err := strconv.ParseFloat(result.Format.Duration, 64); err == nil && d > 0 {
		return d, tags
	}
	for _, s := range result.Streams {
		if s.CodecType != "audio" {
			continue
		}
		if d, err := strconv.ParseFloat(s.Duration, 64); err == nil && d > 0 {
			return d, tags
		}
	}
	return 0, tags
}

// readID3Tags pulls title/artist straight from an MP3's ID3v2 header.
func readID3Tags(path string) (title, artist string, ok bool) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return "", "", false
	}
	defer tag.Close()

	title = strings.TrimSpace(tag.Title())
	artist = strings.TrimSpace(tag.Artist())
	return title, artist, title != "" || artist != ""
}
