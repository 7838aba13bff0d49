package renderer

import (
	"math"
	"sort"

	"github.com/ankek/flow-cartography/internal/flow"
)

// Canvas layout constants, in pixels unless noted.
const (
	defaultScale   = 1.35
	canvasPad      = 90
	titleBarSpace  = 70 // extra canvas height reserved for the title strip
	titleBarHeight = 56
	gridSpacing    = 48

	maxLabelLines  = 6
	maxDetailLines = 16

	// Terminator de-overlap thresholds, in logical units.
	spreadThreshold = 80
	spreadStep      = 90
)

// pixelBox is a node's bounding box on the canvas.
type pixelBox struct {
	X0, Y0, X1, Y1 int
}

func (b pixelBox) center() (int, int) {
	return (b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2
}

func (b pixelBox) width() int {
	return b.X1 - b.X0
}

// px rounds a style dimension scaled by the factor f.
func px(v, f float64) int {
	return int(math.Round(v * f))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// nodePixelBox maps a node's logical center and size to canvas pixels.
// Half-extents are floored to 1 so a degenerate node still occupies a box.
func nodePixelBox(n *flow.Node, sx, sy float64) pixelBox {
	cx := int(n.X * sx)
	cy := int(n.Y * sy)
	hw := maxInt(1, int(n.W*sx/2))
	hh := maxInt(1, int(n.H*sy/2))
	return pixelBox{X0: cx - hw, Y0: cy - hh, X1: cx + hw, Y1: cy + hh}
}

// autoSizeNodes grows each card node's logical height until its wrapped label
// and detail lines fit. Start, Decision, and End keep their fixed geometry.
// Heights only grow, never shrink.
func autoSizeNodes(g *flow.Graph, fonts *FontSet, sx, sy, f float64) {
	headerH := px(24, f)
	padTop := px(10, f)
	padBottom := px(12, f)
	bodyLine := px(18, f)
	smallLine := px(15, f)
	sepGap := px(8, f)

	for _, n := range g.NodesInOrder() {
		if !n.Kind.IsCard() || n.Kind == flow.KindStart {
			continue
		}
		maxW := maxInt(60, int(n.W*sx)-px(24, f))
		labelLines := len(wrapText(fonts.Body, n.Label, maxW))
		if labelLines > maxLabelLines {
			labelLines = maxLabelLines
		}
		detailLines := 0
		for _, d := range n.Details {
			detailLines += len(wrapText(fonts.Small, d, maxW))
		}
		if detailLines > maxDetailLines {
			detailLines = maxDetailLines
		}

		needed := headerH + padTop + labelLines*bodyLine + padBottom
		if detailLines > 0 {
			needed += sepGap + detailLines*smallLine
		}
		if h := math.Ceil(float64(needed) / sy); h > n.H {
			n.H = h
		}
	}
}

// spreadTerminators nudges End nodes apart when synthesis placed them on top
// of each other. Nodes are sorted by (x, y) and each is compared against all
// earlier nodes in a single forward pass; a later node that sits within the
// threshold on both axes is pushed down. A node may still land near a node
// processed after it.
func spreadTerminators(g *flow.Graph) {
	var ends []*flow.Node
	for _, n := range g.NodesInOrder() {
		if n.Kind == flow.KindEnd {
			ends = append(ends, n)
		}
	}
	sort.Slice(ends, func(i, j int) bool {
		if ends[i].X != ends[j].X {
			return ends[i].X < ends[j].X
		}
		return ends[i].Y < ends[j].Y
	})
	for i, n := range ends {
		for j := 0; j < i; j++ {
			o := ends[j]
			if math.Abs(n.X-o.X) < spreadThreshold && math.Abs(n.Y-o.Y) < spreadThreshold {
				n.Y += spreadStep
			}
		}
	}
}

// logicalExtents returns the union bounding box of all nodes in logical
// space. Decision nodes with a conditions callout extend the extents to the
// right and upward so the callout is never clipped.
func logicalExtents(g *flow.Graph, sx, sy, f float64) (minX, minY, maxX, maxY float64) {
	first := true
	for _, n := range g.NodesInOrder() {
		x0, y0 := n.X-n.W/2, n.Y-n.H/2
		x1, y1 := n.X+n.W/2, n.Y+n.H/2
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			continue
		}
		minX = math.Min(minX, x0)
		minY = math.Min(minY, y0)
		maxX = math.Max(maxX, x1)
		maxY = math.Max(maxY, y1)
	}
	for _, n := range g.NodesInOrder() {
		if n.Kind != flow.KindDecision || len(n.Details) == 0 {
			continue
		}
		maxX = math.Max(maxX, n.X+n.W/2+(420*f+36)/sx)
		minY = math.Min(minY, n.Y-220*f/sy)
	}
	return minX, minY, maxX, maxY
}

// rebase shifts every node so the minimum logical coordinate maps to the
// canvas padding margin (plus the title strip vertically). Runs exactly once
// per render, after sizing and extent calculation.
func rebase(g *flow.Graph, minX, minY, sx, sy float64) {
	dx := canvasPad/sx - minX
	dy := (canvasPad+titleBarSpace)/sy - minY
	for _, n := range g.NodesInOrder() {
		n.X += dx
		n.Y += dy
	}
}
