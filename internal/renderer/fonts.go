package renderer

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSet holds the four text roles used on the canvas. Sizes scale with the
// render factor so text stays proportional to the shapes.
type FontSet struct {
	Title  font.Face // diagram title bar
	Header font.Face // card header bands, "Decision" caption
	Body   font.Face // card labels, diamond labels
	Small  font.Face // detail lines, edge labels, "End"
}

// LoadFonts builds the face set for the given factor. ttfPath optionally
// overrides the bundled regular font for body and small text. Any failure
// falls back to the fixed basicfont face so rendering never aborts over
// font trouble.
func LoadFonts(f float64, ttfPath string) *FontSet {
	regular := parseFont(goregular.TTF)
	bold := parseFont(gobold.TTF)
	if bold == nil {
		bold = regular
	}

	if ttfPath != "" {
		if data, err := os.ReadFile(ttfPath); err == nil {
			if custom := parseFont(data); custom != nil {
				regular = custom
			}
		}
	}

	return &FontSet{
		Title:  newFace(bold, 18*f),
		Header: newFace(bold, 12*f),
		Body:   newFace(regular, 13*f),
		Small:  newFace(regular, 11*f),
	}
}

func parseFont(data []byte) *opentype.Font {
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil
	}
	return fnt
}

func newFace(fnt *opentype.Font, size float64) font.Face {
	if fnt == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
