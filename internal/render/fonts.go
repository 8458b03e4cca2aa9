package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// FontStyle selects one of the fixed faces used by the chart.
type FontStyle int

const (
	FontLabel     FontStyle = iota // tick labels, annotations, messages
	FontAxisTitle                  // axis titles
	FontTitle                      // chart title
)

type fontSpec struct {
	bold bool
	size float64
}

var fontSpecs = map[FontStyle]fontSpec{
	FontLabel:     {bold: false, size: 10},
	FontAxisTitle: {bold: true, size: 12},
	FontTitle:     {bold: true, size: 16},
}

var (
	fontsOnce   sync.Once
	regularFont *truetype.Font
	boldFont    *truetype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontsErr = truetype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse regular font: %w", fontsErr)
			return
		}
		boldFont, fontsErr = truetype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

// faceSet holds one face per style. Faces cache glyphs and must not be
// shared between goroutines, so every surface builds its own set.
type faceSet map[FontStyle]font.Face

func newFaceSet() (faceSet, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}

	faces := make(faceSet, len(fontSpecs))
	for style, def := range fontSpecs {
		f := regularFont
		if def.bold {
			f = boldFont
		}
		faces[style] = truetype.NewFace(f, &truetype.Options{Size: def.size})
	}
	return faces, nil
}

// measure returns the advance width and ascent of s in pixels.
func (fs faceSet) measure(style FontStyle, s string) (w, h float64) {
	face := fs[style]
	return fixedToFloat(font.MeasureString(face, s)), fixedToFloat(face.Metrics().Ascent)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
