package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// extractCoverArt tries to pull embedded cover art out of an audio file
// into a temp image. Three ffmpeg strategies are attempted in order: direct
// stream copy to JPEG, audio-stripped copy to JPEG, direct stream copy to
// PNG. Returns the path of the first strategy that produced a non-empty
// file, or "" when all fail.
func extractCoverArt(path string) string {
	cfg := config.Get()
	command := cfg.Artwork.Command
	if command == "" {
		command = "ffmpeg"
	}

	stem := fileStem(path)
	jpgOut := filepath.Join(os.TempDir(), stem+"_cover.jpg")
	pngOut := filepath.Join(os.TempDir(), stem+"_cover.png")

	strategies := [][]string{
		{"-y", "-v", "error", "-i", path, "-map", "0:v:0", "-c", "copy", jpgOut},
		{"-y", "-v", "error", "-i", path, "-an", "-vcodec", "copy", jpgOut},
		{"-y", "-v", "error", "-i", path, "-map", "0:v:0", "-c", "copy", pngOut},
	}
	for _, args := range strategies {
		out := args[len(args)-1]
		if err := exec.Command(command, args...).Run(); err != nil {
			continue
		}
		if info, err := os.Stat(out); err == nil && info.Size() > 0 {
			return out
		}
	}
	return ""
}

// loadCoverArt reads an extracted cover image and prepares it for display:
// the Kitty-encoded payload plus, in auto color mode, the dominant accent
// color. Both degrade to "" on any failure.
func loadCoverArt(coverPath string) (encoded, accent string) {
	if coverPath == "" {
		return "", ""
	}
	data, err := os.ReadFile(coverPath)
	if err != nil {
		return "", ""
	}

	cfg := config.Get()
	defer func() {
		if r := recover(); r != nil {
			encoded, accent = "", ""
		}
	}()

	img, err := decodeImageData(data)
	if err != nil {
		return "", ""
	}
	if cfg.UI.ColorMode == "auto" {
		if c, err := extractDominantColor(img); err == nil {
			accent = c
		}
	}
	if enc, err := encodeArtworkForKitty(img); err == nil {
		encoded = enc
	}
	return encoded, accent
}

// decodeImageData decodes JPEG, PNG, GIF, or WebP cover bytes.
func decodeImageData(imageData []byte) (image.Image, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Extract dominant color from image and convert to hex.
// Samples pixels and prefers vibrant, readable colors for dark backgrounds.
func extractDominantColor(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}

	bounds := img.Bounds()

	colorMap := make(map[uint32]int)
	sampleRate := 5 // Sample every 5th pixel

	for y := bounds.Min.Y; y < bounds.Max.Y; y += sampleRate {
		for x := bounds.Min.X; x < bounds.Max.X; x += sampleRate {
			r, g, b, a := img.At(x, y).RGBA()

			// Skip transparent pixels
			if a < 32768 {
				continue
			}

			r8 := uint8(r >> 8)
			g8 := uint8(g >> 8)
			b8 := uint8(b >> 8)

			rgb := (uint32(r8) << 16) | (uint32(g8) << 8) | uint32(b8)
			colorMap[rgb]++
		}
	}

	type colorScore struct {
		rgb   uint32
		count int
		score float64
	}

	var candidates []colorScore

	for rgb, count := range colorMap {
		r := uint8(rgb >> 16)
		g := uint8(rgb >> 8)
		b := uint8(rgb)

		rf := float64(r) / 255.0
		gf := float64(g) / 255.0
		bf := float64(b) / 255.0

		max := rf
		if gf > max {
			max = gf
		}
		if bf > max {
			max = bf
		}

		min := rf
		if gf < min {
			min = gf
		}
		if bf < min {
			min = bf
		}

		lightness := (max + min) / 2.0

		var saturation float64
		if max != min {
			if lightness > 0.5 {
				saturation = (max - min) / (2.0 - max - min)
			} else {
				saturation = (max - min) / (max + min)
			}
		}

		// Skip colors that are too dark, near-white, or washed out
		if lightness < 0.3 || lightness > 0.85 || saturation < 0.25 {
			continue
		}

		lightnessScore := lightness
		if lightness > 0.7 {
			lightnessScore = 0.7 - (lightness - 0.7)
		}

		score := (saturation * 2.5) + (lightnessScore * 1.5) + (float64(count) / 1000.0)

		candidates = append(candidates, colorScore{rgb: rgb, count: count, score: score})
	}

	if len(candidates) == 0 {
		// Fallback: K-means when sampling found nothing usable
		colors, err := prominentcolor.Kmeans(img)
		if err != nil || len(colors) == 0 {
			return "", fmt.Errorf("no suitable colors found")
		}
		c := colors[0]
		return fmt.Sprintf("#%02x%02x%02x", c.Color.R, c.Color.G, c.Color.B), nil
	}

	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if candidates[j].score > candidates[i].score {
				candidates[i], candidates[j] = candidates[j], candidates[i]
			}
		}
	}

	best := candidates[0]
	r := uint8(best.rgb >> 16)
	g := uint8(best.rgb >> 8)
	b := uint8(best.rgb)

	return fmt.Sprintf("#%02x%02x%02x", r, g, b), nil
}

// Check if terminal supports Kitty graphics protocol
func supportsKittyGraphics() bool {
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	if strings.Contains(term, "kitty") || strings.Contains(term, "konsole") {
		return true
	}

	if termProgram == "ghostty" || termProgram == "WezTerm" {
		return true
	}

	return false
}

// Process and encode cover art for the Kitty graphics protocol.
func encodeArtworkForKitty(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}

	cfg := config.Get()

	// Resize maintaining aspect ratio; Kitty handles final cell sizing
	resized := resize.Resize(uint(cfg.Artwork.WidthPixels), 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	// Kitty protocol needs chunking for large payloads (max 4096 bytes per chunk)
	const chunkSize = 4096
	var result strings.Builder

	// Use a fixed image ID and delete any previous image first
	const imageID = 42
	result.WriteString(fmt.Sprintf("\033_Ga=d,d=I,i=%d\033\\", imageID))

	if len(encoded) <= chunkSize {
		// Columns (c) instead of pixels for zoom-independent sizing
		result.WriteString(fmt.Sprintf("\033_Ga=T,f=100,t=d,i=%d,c=%d,C=1;%s\033\\", imageID, cfg.Artwork.WidthColumns, encoded))
	} else {
		for i := 0; i < len(encoded); i += chunkSize {
			end := i + chunkSize
			if end > len(encoded) {
				end = len(encoded)
			}
			chunk := encoded[i:end]

			if i == 0 {
				result.WriteString(fmt.Sprintf("\033_Ga=T,f=100,t=d,i=%d,c=%d,C=1,m=1;%s\033\\", imageID, cfg.Artwork.WidthColumns, chunk))
			} else if end == len(encoded) {
				// Last chunk - m=0 (no more data)
				result.WriteString(fmt.Sprintf("\033_Gm=0;%s\033\\", chunk))
			} else {
				// Middle chunk - m=1 (more data coming)
				result.WriteString(fmt.Sprintf("\033_Gm=1;%s\033\\", chunk))
			}
		}
	}

	return result.String(), nil
}
