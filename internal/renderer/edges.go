package renderer

import (
	"image"
	"math"
)

// routePoints builds the orthogonal connector between two anchors: always
// four points with a single horizontal split at the mean of the anchor
// heights. Overlapping routes between unrelated edges are accepted.
func routePoints(a, b image.Point) [4]image.Point {
	midY := (a.Y + b.Y) / 2
	return [4]image.Point{
		a,
		{X: a.X, Y: midY},
		{X: b.X, Y: midY},
		b,
	}
}

// arrowheadPoints builds the filled triangle for the final segment: apex at
// the destination, base vertices swept 30 degrees off the reverse direction.
func arrowheadPoints(from, to image.Point, size float64) []image.Point {
	ang := math.Atan2(float64(to.Y-from.Y), float64(to.X-from.X))
	left := image.Pt(
		to.X-int(math.Round(size*math.Cos(ang-math.Pi/6))),
		to.Y-int(math.Round(size*math.Sin(ang-math.Pi/6))),
	)
	right := image.Pt(
		to.X-int(math.Round(size*math.Cos(ang+math.Pi/6))),
		to.Y-int(math.Round(size*math.Sin(ang+math.Pi/6))),
	)
	return []image.Point{to, left, right}
}

// drawEdge routes and draws one connector between two node boxes, with an
// arrowhead at the destination and an optional label pill on the middle
// segment.
func drawEdge(img *image.RGBA, fonts *FontSet, f float64, src, dst pixelBox, label string) {
	a := anchorPoint(src, dst)
	b := anchorPoint(dst, src)
	pts := routePoints(a, b)

	stroke := maxInt(2, px(2, f))
	for i := 0; i < len(pts)-1; i++ {
		drawLinePx(img, pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y, edgeColor, stroke)
	}

	size := math.Max(10, 10*f)
	fillPolygon(img, arrowheadPoints(pts[2], pts[3], size), edgeColor)

	if label != "" {
		drawEdgeLabel(img, fonts, f, pts, label)
	}
}

// drawEdgeLabel draws the floating label pill, centered on the middle
// segment and raised off the line.
func drawEdgeLabel(img *image.RGBA, fonts *FontSet, f float64, pts [4]image.Point, label string) {
	cx := (pts[1].X + pts[2].X) / 2
	cy := pts[1].Y - 14

	tw := textWidth(fonts.Small, label)
	padX := maxInt(10, px(10, f))
	x0 := cx - tw/2 - padX
	y0 := cy - px(8, f)
	x1 := cx + tw/2 + padX
	y1 := cy + px(10, f)
	r := px(10, f)

	fillRoundedRect(img, x0+2, y0+2, x1+2, y1+2, r, shadowColor)
	fillRoundedRect(img, x0, y0, x1, y1, r, pillFill)
	strokeRoundedRect(img, x0, y0, x1, y1, r, 1, pillOutline)
	drawText(img, fonts.Small, x0+padX, y0+1, label, detailColor)
}
