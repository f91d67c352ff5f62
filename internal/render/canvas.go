package render

import (
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/pong/internal/font"
	"github.com/muesli/termenv"
)

const halfBlock = "▀"

// CanvasOption configures a Canvas.
type CanvasOption func(*Canvas)

// WithLipglossRenderer sets the lipgloss renderer used to emit colours.
func WithLipglossRenderer(r *lipgloss.Renderer) CanvasOption {
	return func(c *Canvas) {
		c.styler = r
	}
}

// WithProfile forces a colour profile. termenv.Ascii switches the canvas to
// plain "#" output.
func WithProfile(p termenv.Profile) CanvasOption {
	return func(c *Canvas) {
		c.profile = &p
	}
}

type cellPair [2]Color

// Canvas rasterises playfield drawing onto terminal cells. Each cell holds two
// vertically stacked pixels drawn with an upper half block, so the pixel grid
// is cols wide and 2*rows tall.
type Canvas struct {
	font           *font.Font
	worldW, worldH float64
	styler         *lipgloss.Renderer
	profile        *termenv.Profile
	ascii          bool

	cols, rows int
	pw, ph     int
	sx, sy     float64
	scale      int

	pixels []Color
	ink    []bool
	styles map[cellPair]lipgloss.Style
	frame  string
}

// NewCanvas creates a canvas for a playfield of worldW x worldH units. Call
// Resize before drawing.
func NewCanvas(f *font.Font, worldW, worldH float64, opts ...CanvasOption) *Canvas {
	c := &Canvas{
		font:   f,
		worldW: worldW,
		worldH: worldH,
		styles: make(map[cellPair]lipgloss.Style),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.styler == nil {
		// own renderer, so forcing a profile leaves lipgloss's default alone
		c.styler = lipgloss.NewRenderer(os.Stdout)
	}
	if c.profile != nil {
		c.styler.SetColorProfile(*c.profile)
		c.ascii = *c.profile == termenv.Ascii
	}
	return c
}

// Resize sets the canvas size in terminal cells.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.cols, c.rows = cols, rows
	c.pw, c.ph = cols, rows*2
	c.sx = float64(c.pw) / c.worldW
	c.sy = float64(c.ph) / c.worldH
	c.scale = max(1, min(c.pw/100, c.ph/50))
	c.pixels = make([]Color, c.pw*c.ph)
	c.ink = make([]bool, c.pw*c.ph)
}

// Size returns the canvas size in terminal cells.
func (c *Canvas) Size() (int, int) {
	return c.cols, c.rows
}

// Clear fills every pixel with the background colour.
func (c *Canvas) Clear(col Color) {
	for i := range c.pixels {
		c.pixels[i] = col
		c.ink[i] = false
	}
}

// DrawRect fills a rectangle. Edges round outward so anything with a
// positive size covers at least one pixel.
func (c *Canvas) DrawRect(x, y, w, h float64, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, x1 := span(x, w, c.sx)
	y0, y1 := span(y, h, c.sy)
	c.fill(x0, y0, x1, y1, col)
}

func span(pos, size, scale float64) (int, int) {
	lo := int(math.Floor(pos * scale))
	hi := int(math.Ceil((pos + size) * scale))
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func (c *Canvas) fill(x0, y0, x1, y1 int, col Color) {
	x0, x1 = max(x0, 0), min(x1, c.pw)
	y0, y1 = max(y0, 0), min(y1, c.ph)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			i := py*c.pw + px
			c.pixels[i] = col
			c.ink[i] = true
		}
	}
}

// DrawText draws text with its top-left corner at (x, y).
func (c *Canvas) DrawText(text string, x, y float64, col Color) {
	if c.pw == 0 || c.ph == 0 {
		return
	}
	px0 := int(math.Round(x * c.sx))
	py0 := int(math.Round(y * c.sy))
	advance := (c.font.Width + 1) * c.scale

	i := 0
	for _, r := range text {
		g, ok := c.font.Glyph(r)
		if ok {
			gx := px0 + i*advance
			for gy, cells := range g {
				for gcol, on := range cells {
					if !on {
						continue
					}
					cx := gx + gcol*c.scale
					cy := py0 + gy*c.scale
					c.fill(cx, cy, cx+c.scale, cy+c.scale, col)
				}
			}
		}
		i++
	}
}

// MeasureText returns the playfield size of text at the current scale.
func (c *Canvas) MeasureText(text string) (float64, float64) {
	if c.sx == 0 || c.sy == 0 {
		return 0, 0
	}
	w, h := c.font.Measure(text)
	return float64(w*c.scale) / c.sx, float64(h*c.scale) / c.sy
}

// Present composes the pixels into the frame string returned by Frame.
func (c *Canvas) Present() {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		if c.ascii {
			c.presentASCIIRow(&b, row)
		} else {
			c.presentRow(&b, row)
		}
	}
	c.frame = b.String()
}

func (c *Canvas) presentRow(b *strings.Builder, row int) {
	top := row * 2 * c.pw
	bottom := top + c.pw

	start := 0
	for col := 1; col <= c.pw; col++ {
		if col < c.pw &&
			c.pixels[top+col] == c.pixels[top+start] &&
			c.pixels[bottom+col] == c.pixels[bottom+start] {
			continue
		}
		pair := cellPair{c.pixels[top+start], c.pixels[bottom+start]}
		b.WriteString(c.style(pair).Render(strings.Repeat(halfBlock, col-start)))
		start = col
	}
}

func (c *Canvas) presentASCIIRow(b *strings.Builder, row int) {
	top := row * 2 * c.pw
	bottom := top + c.pw
	for col := 0; col < c.pw; col++ {
		if c.ink[top+col] || c.ink[bottom+col] {
			b.WriteByte('#')
		} else {
			b.WriteByte(' ')
		}
	}
}

func (c *Canvas) style(pair cellPair) lipgloss.Style {
	if s, ok := c.styles[pair]; ok {
		return s
	}
	s := c.styler.NewStyle().
		Foreground(lipgloss.Color(pair[0].Hex())).
		Background(lipgloss.Color(pair[1].Hex()))
	c.styles[pair] = s
	return s
}

// Frame returns the last presented frame.
func (c *Canvas) Frame() string {
	return c.frame
}
