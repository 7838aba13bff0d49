package renderer

import (
	"image"
	"math"

	"github.com/ankek/flow-cartography/internal/flow"
)

// drawNode dispatches on the node kind: cards for Start and the action
// kinds, a diamond for Decision, a circle for End.
func drawNode(img *image.RGBA, fonts *FontSet, n *flow.Node, box pixelBox, f float64) {
	switch {
	case n.Kind == flow.KindDecision:
		drawDiamond(img, fonts, n, box, f)
	case n.Kind == flow.KindEnd:
		drawCircle(img, fonts, n, box, f)
	default:
		drawCard(img, fonts, n, box, f)
	}
}

// drawCard draws a rounded card with a colored header band, the wrapped
// label, and any detail lines below a small gap.
func drawCard(img *image.RGBA, fonts *FontSet, n *flow.Node, box pixelBox, f float64) {
	r := maxInt(14, px(14, f))
	stroke := maxInt(2, px(2, f))
	col := kindColor(n.Kind)

	fillRoundedRect(img, box.X0+3, box.Y0+3, box.X1+3, box.Y1+3, r, shadowColor)
	fillRoundedRect(img, box.X0, box.Y0, box.X1, box.Y1, r, white)
	strokeRoundedRect(img, box.X0, box.Y0, box.X1, box.Y1, r, stroke, outlineColor)

	// Header band: rounded at the top, squared off at its bottom edge.
	headerH := px(24, f)
	fillRoundedRect(img, box.X0, box.Y0, box.X1, box.Y0+headerH, r, col)
	fillRect(img, box.X0, box.Y0+headerH-px(10, f), box.X1+1, box.Y0+headerH+1, col)
	drawText(img, fonts.Header, box.X0+px(12, f), box.Y0+px(6, f), n.Kind.String(), white)

	maxW := maxInt(60, box.width()-px(24, f))
	lines := wrapText(fonts.Body, n.Label, maxW)
	if len(lines) > maxLabelLines {
		lines = lines[:maxLabelLines]
	}
	ty := box.Y0 + headerH + px(10, f)
	for i, line := range lines {
		drawText(img, fonts.Body, box.X0+px(12, f), ty+i*px(18, f), line, bodyTextColor)
	}

	if len(n.Details) == 0 {
		return
	}
	dty := ty + len(lines)*px(18, f) + px(8, f)
	count := 0
	for _, d := range n.Details {
		for _, line := range wrapText(fonts.Small, d, maxW) {
			if count == maxDetailLines {
				return
			}
			drawText(img, fonts.Small, box.X0+px(12, f), dty+count*px(15, f), line, detailColor)
			count++
		}
	}
}

// drawDiamond draws the Decision shape: a white diamond through the box
// midpoints with a colored outline, a category caption, and the centered
// wrapped label. Rule summaries go into a floating callout to the right.
func drawDiamond(img *image.RGBA, fonts *FontSet, n *flow.Node, box pixelBox, f float64) {
	cx, cy := box.center()
	pts := []image.Point{
		{X: cx, Y: box.Y0},
		{X: box.X1, Y: cy},
		{X: cx, Y: box.Y1},
		{X: box.X0, Y: cy},
	}
	shadow := make([]image.Point, len(pts))
	for i, p := range pts {
		shadow[i] = image.Pt(p.X+3, p.Y+3)
	}
	col := kindColor(n.Kind)

	fillPolygon(img, shadow, shadowColor)
	fillPolygon(img, pts, white)
	strokePolygon(img, pts, col, maxInt(2, px(2, f)))

	drawText(img, fonts.Header, cx-58, box.Y0+8, "Decision", col)

	lines := wrapText(fonts.Body, n.Label, px(150, f))
	if len(lines) > 4 {
		lines = lines[:4]
	}
	ty := cy - len(lines)*16/2
	for i, line := range lines {
		tw := textWidth(fonts.Body, line)
		drawText(img, fonts.Body, cx-tw/2, ty+i*16+10, line, bodyTextColor)
	}

	if len(n.Details) > 0 {
		drawCallout(img, fonts, n, box, f)
	}
}

// drawCallout draws the conditions box beside a decision diamond. Its height
// comes from its own wrapped content, independent of the diamond.
func drawCallout(img *image.RGBA, fonts *FontSet, n *flow.Node, box pixelBox, f float64) {
	callW := px(420, f)
	x0 := box.X1 + 18

	var lines []string
	for _, d := range n.Details {
		lines = append(lines, wrapText(fonts.Small, d, callW-px(24, f))...)
	}
	if len(lines) > 20 {
		lines = lines[:20]
	}

	_, cy := box.center()
	rise := math.Min(180*f, 18*f+16*f*float64(len(n.Details)))
	y0 := cy - px(8, f) - int(math.Round(rise))
	y1 := y0 + px(20, f) + len(lines)*px(16, f)
	x1 := x0 + callW
	r := px(12, f)

	fillRoundedRect(img, x0+2, y0+2, x1+2, y1+2, r, shadowColor)
	fillRoundedRect(img, x0, y0, x1, y1, r, pillFill)
	strokeRoundedRect(img, x0, y0, x1, y1, r, 1, outlineColor)

	drawText(img, fonts.Header, x0+px(12, f), y0+px(6, f), "Conditions", detailColor)
	ly := y0 + px(26, f)
	for i, line := range lines {
		drawText(img, fonts.Small, x0+px(12, f), ly+i*px(16, f), line, calloutText)
	}
}

// drawCircle draws the End terminator. The radius comes from the node's
// logical size, which keeps terminators compact at higher scales.
func drawCircle(img *image.RGBA, fonts *FontSet, n *flow.Node, box pixelBox, f float64) {
	cx, cy := box.center()
	r := int(math.Min(n.W, n.H) / 2)

	fillEllipse(img, cx+3, cy+3, r, r, shadowColor)
	fillEllipse(img, cx, cy, r, r, white)
	strokeEllipse(img, cx, cy, r, r, circleOutline, maxInt(2, px(2, f)))

	tw := textWidth(fonts.Small, "End")
	drawText(img, fonts.Small, cx-tw/2, cy-6, "End", endTextColor)
}
