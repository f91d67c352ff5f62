// Package render draws game snapshots through a small drawing interface and
// provides a terminal canvas that implements it.
package render

import (
	"fmt"
	"sort"
)

// Color is an opaque RGB colour
type Color struct {
	R, G, B uint8
}

// RGB builds a Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Renderer is the drawing surface a frame is painted on. Coordinates and
// sizes are in playfield units.
type Renderer interface {
	Clear(c Color)
	DrawRect(x, y, w, h float64, c Color)
	DrawText(text string, x, y float64, c Color)
	// MeasureText returns the width and height text would occupy.
	MeasureText(text string) (float64, float64)
	Present()
}

// Theme is the palette used for a frame
type Theme struct {
	Background Color
	Divider    Color
	Left       Color
	Right      Color
	Ball       Color
	Score      Color
	Winner     Color
	Hint       Color
	Paused     Color
}

var themes = map[string]Theme{
	"default": {
		Background: RGB(20, 25, 45),
		Divider:    RGB(80, 80, 120),
		Left:       RGB(255, 180, 80),
		Right:      RGB(100, 200, 255),
		Ball:       RGB(255, 255, 255),
		Score:      RGB(255, 255, 255),
		Winner:     RGB(0, 255, 120),
		Hint:       RGB(255, 255, 255),
		Paused:     RGB(255, 255, 100),
	},
	"mono": {
		Background: RGB(0, 0, 0),
		Divider:    RGB(90, 90, 90),
		Left:       RGB(230, 230, 230),
		Right:      RGB(230, 230, 230),
		Ball:       RGB(255, 255, 255),
		Score:      RGB(200, 200, 200),
		Winner:     RGB(255, 255, 255),
		Hint:       RGB(160, 160, 160),
		Paused:     RGB(255, 255, 255),
	},
}

// DefaultTheme is the palette used when none is configured.
var DefaultTheme = themes["default"]

// LookupTheme returns the named theme.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames lists the available themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
