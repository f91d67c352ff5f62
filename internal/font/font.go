// Package font loads bitmap label fonts described in HCL.
//
// A font file looks like:
//
//	name   = "block"
//	width  = 3
//	height = 5
//
//	glyph "A" {
//	  rows = [".#.", "#.#", "###", "#.#", "#.#"]
//	}
//
// "#" marks ink and "." marks blank. Lookups are case-insensitive and
// characters without a glyph render blank.
package font

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

//go:embed fonts/*.hcl
var embedded embed.FS

// DefaultName is the font shipped with the binary.
const DefaultName = "block"

// Glyph is a bitmap, indexed [row][col]
type Glyph [][]bool

// Font is a fixed-size bitmap font
type Font struct {
	Name   string
	Width  int
	Height int
	glyphs map[rune]Glyph
}

type fontFile struct {
	Name   string       `hcl:"name"`
	Width  int          `hcl:"width"`
	Height int          `hcl:"height"`
	Glyphs []glyphBlock `hcl:"glyph,block"`
}

type glyphBlock struct {
	Char string   `hcl:"char,label"`
	Rows []string `hcl:"rows"`
}

// Load finds the font called name, first as <dir>/<name>.hcl when dir is set,
// then among the embedded fonts.
func Load(name, dir string) (*Font, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid font name %q", name)
	}
	filename := name + ".hcl"

	if dir != "" {
		path := filepath.Join(dir, filename)
		src, err := os.ReadFile(path)
		if err == nil {
			return Parse(src, path)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read font %q: %w", name, err)
		}
	}

	src, err := embedded.ReadFile("fonts/" + filename)
	if err != nil {
		return nil, fmt.Errorf("font %q not found", name)
	}
	return Parse(src, filename)
}

// Parse decodes and validates a font file.
func Parse(src []byte, filename string) (*Font, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse font: %s", diags.Error())
	}

	var ff fontFile
	diags = gohcl.DecodeBody(file.Body, nil, &ff)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode font: %s", diags.Error())
	}

	if ff.Width <= 0 || ff.Height <= 0 {
		return nil, fmt.Errorf("font %q: width and height must be positive", ff.Name)
	}

	f := &Font{
		Name:   ff.Name,
		Width:  ff.Width,
		Height: ff.Height,
		glyphs: make(map[rune]Glyph, len(ff.Glyphs)),
	}

	for _, gb := range ff.Glyphs {
		if utf8.RuneCountInString(gb.Char) != 1 {
			return nil, fmt.Errorf("font %q: glyph label %q must be a single character", ff.Name, gb.Char)
		}
		r, _ := utf8.DecodeRuneInString(gb.Char)
		g, err := parseGlyph(gb.Rows, ff.Width, ff.Height)
		if err != nil {
			return nil, fmt.Errorf("font %q: glyph %q: %w", ff.Name, gb.Char, err)
		}
		f.glyphs[unicode.ToUpper(r)] = g
	}

	return f, nil
}

func parseGlyph(rows []string, width, height int) (Glyph, error) {
	if len(rows) != height {
		return nil, fmt.Errorf("has %d rows, want %d", len(rows), height)
	}
	g := make(Glyph, height)
	for y, row := range rows {
		if utf8.RuneCountInString(row) != width {
			return nil, fmt.Errorf("row %d is %d wide, want %d", y, utf8.RuneCountInString(row), width)
		}
		g[y] = make([]bool, 0, width)
		for _, c := range row {
			switch c {
			case '#':
				g[y] = append(g[y], true)
			case '.':
				g[y] = append(g[y], false)
			default:
				return nil, fmt.Errorf("row %d has invalid cell %q", y, c)
			}
		}
	}
	return g, nil
}

// Glyph returns the bitmap for r, if the font has one.
func (f *Font) Glyph(r rune) (Glyph, bool) {
	g, ok := f.glyphs[unicode.ToUpper(r)]
	return g, ok
}

// Measure returns the size of text in font pixels, with one blank column
// between characters.
func (f *Font) Measure(text string) (int, int) {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0, 0
	}
	return n*(f.Width+1) - 1, f.Height
}
