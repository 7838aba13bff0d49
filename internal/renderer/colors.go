package renderer

import (
	"image/color"

	"github.com/ankek/flow-cartography/internal/flow"
)

// Canvas and chrome colors.
var (
	canvasColor   = color.NRGBA{R: 243, G: 242, B: 242, A: 255}
	gridColor     = color.NRGBA{R: 0, G: 0, B: 0, A: 3}
	titleColor    = color.NRGBA{R: 24, G: 24, B: 24, A: 255}
	titleRule     = color.NRGBA{R: 0, G: 0, B: 0, A: 40}
	shadowColor   = color.NRGBA{R: 0, G: 0, B: 0, A: 28}
	outlineColor  = color.NRGBA{R: 0, G: 0, B: 0, A: 55}
	edgeColor     = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	bodyTextColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	detailColor   = color.NRGBA{R: 45, G: 45, B: 45, A: 255}
	calloutText   = color.NRGBA{R: 35, G: 35, B: 35, A: 255}
	endTextColor  = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	pillFill      = color.NRGBA{R: 255, G: 255, B: 255, A: 245}
	pillOutline   = color.NRGBA{R: 0, G: 0, B: 0, A: 40}
	circleOutline = color.NRGBA{R: 0, G: 0, B: 0, A: 70}
	white         = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// kindColor returns the header band color for a node kind, following the
// Flow Builder palette. Unknown card kinds share the Decision blue.
func kindColor(k flow.Kind) color.NRGBA {
	switch k {
	case flow.KindDecision:
		return color.NRGBA{R: 1, G: 118, B: 211, A: 255}
	case flow.KindLookup:
		return color.NRGBA{R: 125, G: 85, B: 199, A: 255}
	case flow.KindCreate:
		return color.NRGBA{R: 0, G: 161, B: 164, A: 255}
	case flow.KindUpdate:
		return color.NRGBA{R: 254, G: 147, B: 57, A: 255}
	case flow.KindAssign:
		return color.NRGBA{R: 245, G: 159, B: 0, A: 255}
	case flow.KindStart:
		return color.NRGBA{R: 45, G: 157, B: 80, A: 255}
	case flow.KindEnd:
		return color.NRGBA{R: 108, G: 117, B: 125, A: 255}
	}
	return color.NRGBA{R: 1, G: 118, B: 211, A: 255}
}
