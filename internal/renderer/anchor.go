package renderer

import "image"

// anchorPoint returns the point on box's boundary facing toward. The
// dominant axis between the two centers picks the edge; a strict comparison
// means an exact diagonal attaches to the top or bottom edge.
func anchorPoint(box, toward pixelBox) image.Point {
	cx, cy := box.center()
	tx, ty := toward.center()
	dx := tx - cx
	dy := ty - cy
	if abs(dx) > abs(dy) {
		if dx > 0 {
			return image.Pt(box.X1, cy)
		}
		return image.Pt(box.X0, cy)
	}
	if dy > 0 {
		return image.Pt(cx, box.Y1)
	}
	return image.Pt(cx, box.Y0)
}
