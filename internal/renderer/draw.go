package renderer

import (
	"image"
	"image/color"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// blendPixel composites c over the canvas at (x, y). The canvas is opaque,
// so the destination alpha stays 255.
func blendPixel(img *image.RGBA, x, y int, c color.NRGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	if c.A == 255 {
		img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		return
	}
	if c.A == 0 {
		return
	}
	dst := img.RGBAAt(x, y)
	a := uint32(c.A)
	inv := 255 - a
	r := (uint32(c.R)*a + uint32(dst.R)*inv) / 255
	g := (uint32(c.G)*a + uint32(dst.G)*inv) / 255
	b := (uint32(c.B)*a + uint32(dst.B)*inv) / 255
	img.SetRGBA(x, y, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
}

// fillRect fills the half-open rectangle [x0,x1) x [y0,y1).
func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			blendPixel(img, x, y, c)
		}
	}
}

// fillRoundedRect fills the rectangle with quarter-circle corners of radius r.
func fillRoundedRect(img *image.RGBA, x0, y0, x1, y1, r int, c color.NRGBA) {
	if r > (x1-x0)/2 {
		r = (x1 - x0) / 2
	}
	if r > (y1-y0)/2 {
		r = (y1 - y0) / 2
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if insideRounded(x, y, x0, y0, x1, y1, r) {
				blendPixel(img, x, y, c)
			}
		}
	}
}

func insideRounded(x, y, x0, y0, x1, y1, r int) bool {
	if x >= x0+r && x <= x1-r {
		return true
	}
	if y >= y0+r && y <= y1-r {
		return true
	}
	var cx, cy int
	if x < x0+r {
		cx = x0 + r
	} else {
		cx = x1 - r
	}
	if y < y0+r {
		cy = y0 + r
	} else {
		cy = y1 - r
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

// strokeRoundedRect outlines the rounded rectangle: four straight edges
// between the corner regions plus quarter arcs.
func strokeRoundedRect(img *image.RGBA, x0, y0, x1, y1, r, width int, c color.NRGBA) {
	if r > (x1-x0)/2 {
		r = (x1 - x0) / 2
	}
	if r > (y1-y0)/2 {
		r = (y1 - y0) / 2
	}
	drawLinePx(img, x0+r, y0, x1-r, y0, c, width)
	drawLinePx(img, x0+r, y1, x1-r, y1, c, width)
	drawLinePx(img, x0, y0+r, x0, y1-r, c, width)
	drawLinePx(img, x1, y0+r, x1, y1-r, c, width)
	strokeArc(img, x0+r, y0+r, r, math.Pi, 1.5*math.Pi, c, width)
	strokeArc(img, x1-r, y0+r, r, 1.5*math.Pi, 2*math.Pi, c, width)
	strokeArc(img, x1-r, y1-r, r, 0, 0.5*math.Pi, c, width)
	strokeArc(img, x0+r, y1-r, r, 0.5*math.Pi, math.Pi, c, width)
}

func strokeArc(img *image.RGBA, cx, cy, r int, from, to float64, c color.NRGBA, width int) {
	if r <= 0 {
		return
	}
	steps := 4 * r
	if steps < 8 {
		steps = 8
	}
	lastX, lastY := math.MaxInt32, math.MaxInt32
	for i := 0; i <= steps; i++ {
		ang := from + (to-from)*float64(i)/float64(steps)
		x := cx + int(math.Round(float64(r)*math.Cos(ang)))
		y := cy + int(math.Round(float64(r)*math.Sin(ang)))
		if x == lastX && y == lastY {
			continue
		}
		for dx := -(width - 1) / 2; dx <= width/2; dx++ {
			for dy := -(width - 1) / 2; dy <= width/2; dy++ {
				blendPixel(img, x+dx, y+dy, c)
			}
		}
		lastX, lastY = x, y
	}
}

// drawLinePx draws a line with integer Bresenham stepping, thickened by
// offsetting perpendicular to the dominant axis.
func drawLinePx(img *image.RGBA, x1, y1, x2, y2 int, c color.NRGBA, width int) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	x, y := x1, y1
	horizontal := dx >= dy
	for {
		for t := -(width - 1) / 2; t <= width/2; t++ {
			if horizontal {
				blendPixel(img, x, y+t, c)
			} else {
				blendPixel(img, x+t, y, c)
			}
		}
		if x == x2 && y == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// fillPolygon fills a closed polygon with even-odd scanline crossings.
func fillPolygon(img *image.RGBA, pts []image.Point, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	for y := minY; y <= maxY; y++ {
		var xs []float64
		fy := float64(y) + 0.5
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			ay, by := float64(a.Y), float64(b.Y)
			if (ay <= fy && by > fy) || (by <= fy && ay > fy) {
				t := (fy - ay) / (by - ay)
				xs = append(xs, float64(a.X)+t*float64(b.X-a.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Round(xs[i])); float64(x) <= xs[i+1]; x++ {
				blendPixel(img, x, y, c)
			}
		}
	}
}

// strokePolygon outlines a closed polygon.
func strokePolygon(img *image.RGBA, pts []image.Point, c color.NRGBA, width int) {
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		drawLinePx(img, a.X, a.Y, b.X, b.Y, c, width)
	}
}

// fillEllipse fills the ellipse centered at (cx, cy) with radii rx, ry.
func fillEllipse(img *image.RGBA, cx, cy, rx, ry int, c color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	for dy := -ry; dy <= ry; dy++ {
		fy := float64(dy) / float64(ry)
		half := float64(rx) * math.Sqrt(1-fy*fy)
		w := int(math.Round(half))
		for dx := -w; dx <= w; dx++ {
			blendPixel(img, cx+dx, cy+dy, c)
		}
	}
}

// strokeEllipse outlines the ellipse by stepping the perimeter.
func strokeEllipse(img *image.RGBA, cx, cy, rx, ry int, c color.NRGBA, width int) {
	if rx <= 0 || ry <= 0 {
		return
	}
	steps := 4 * (rx + ry)
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		ang := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Round(float64(rx)*math.Cos(ang)))
		y := cy + int(math.Round(float64(ry)*math.Sin(ang)))
		for dx := -(width - 1) / 2; dx <= width/2; dx++ {
			for dy := -(width - 1) / 2; dy <= width/2; dy++ {
				blendPixel(img, x+dx, y+dy, c)
			}
		}
	}
}

// drawText renders a single line with (x, y) as the top-left corner of the
// text box, matching how shape padding is specified.
func drawText(img *image.RGBA, face font.Face, x, y int, text string, c color.NRGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.I(y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
