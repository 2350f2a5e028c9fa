// Package cover renders placeholder book covers.
package cover

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	Width  = 300
	Height = 400

	// LineBudget is the widest a title line may render, in pixels.
	LineBudget = 250

	fontSize   = 24
	lineHeight = 30
	firstLine  = 200

	// FallbackURL is returned whenever a cover cannot be rendered.
	FallbackURL = "https://images.pexels.com/photos/256559/pexels-photo-256559.jpeg"
)

var (
	gradientTop    = color.RGBA{R: 0xff, A: 0xff}
	gradientBottom = color.RGBA{R: 0xcc, A: 0xff}
)

// Generator draws title covers. It is safe for concurrent use.
type Generator struct {
	// Fallback is returned when rendering is unavailable or fails.
	Fallback string

	mu   sync.Mutex
	face font.Face
}

// New loads the bundled bold Go font. If it cannot be loaded the generator
// still works but only ever returns the fallback URL.
func New() *Generator {
	g := &Generator{Fallback: FallbackURL}
	if face, err := loadFace(); err == nil {
		g.face = face
	}
	return g
}

func loadFace() (font.Face, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Close releases the font face.
func (g *Generator) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.face == nil {
		return nil
	}
	err := g.face.Close()
	g.face = nil
	return err
}

// Generate returns a PNG data URI for a cover showing title, or the fallback URL.
func (g *Generator) Generate(title string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.face == nil {
		return g.Fallback
	}
	uri, err := render(g.face, title)
	if err != nil {
		return g.Fallback
	}
	return uri
}

func render(face font.Face, title string) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fillGradient(img)

	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	y := firstLine
	for _, line := range Wrap(face, title, LineBudget) {
		w := d.MeasureString(line).Ceil()
		d.Dot = fixed.P(Width/2-w/2, y)
		d.DrawString(line)
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode cover: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// fillGradient paints a vertical linear gradient from gradientTop to gradientBottom.
func fillGradient(img *image.RGBA) {
	b := img.Bounds()
	span := b.Dy() - 1
	if span < 1 {
		span = 1
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		c := lerp(gradientTop, gradientBottom, y-b.Min.Y, span)
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func lerp(a, b color.RGBA, i, n int) color.RGBA {
	mix := func(p, q uint8) uint8 {
		return uint8(int(p) + (int(q)-int(p))*i/n)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}

// Wrap breaks title into lines no wider than budget pixels when drawn with face.
// A line is broken before the word that would overflow it; the first word is
// never broken off, so a single long word may exceed the budget.
func Wrap(face font.Face, title string, budget int) []string {
	var lines []string
	line := ""
	for n, word := range strings.Fields(title) {
		test := line + word + " "
		if font.MeasureString(face, test).Ceil() > budget && n > 0 {
			lines = append(lines, strings.TrimSpace(line))
			line = word + " "
		} else {
			line = test
		}
	}
	return append(lines, strings.TrimSpace(line))
}

// TitleFromFilename derives a display title from an uploaded file's name.
func TitleFromFilename(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.NewReplacer("-", " ", "_", " ").Replace(base)
}
