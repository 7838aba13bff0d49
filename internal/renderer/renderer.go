package renderer

import (
	"errors"
	"image"

	"github.com/ankek/flow-cartography/internal/flow"
)

// RenderOptions controls a single render call.
type RenderOptions struct {
	// Scale is the logical-unit to pixel factor. Zero or negative means the
	// default 1.35. Style dimensions grow with scale but never shrink below
	// their 1.35 baseline.
	Scale float64
	// Title overrides the graph's own title when non-empty.
	Title string
	// FontPath optionally points at a TTF file replacing the bundled
	// regular face for body and detail text.
	FontPath string
}

// ErrEmptyGraph is returned when a render is requested for a graph with no
// nodes.
var ErrEmptyGraph = errors.New("nothing to render: flow has no nodes")

// Render lays out and draws the flow diagram, returning the raster image.
//
// The pipeline order is load-bearing: card nodes are sized to their wrapped
// text first, terminators are spread apart, the logical extents (including
// decision callout overflow) fix the canvas dimensions, and only then are
// node coordinates rebased onto the canvas. Edges draw under nodes.
//
// Layout mutates the graph's node records in place; pass a freshly built
// graph to each call.
func Render(g *flow.Graph, opts RenderOptions) (*image.RGBA, error) {
	if g == nil || len(g.Nodes) == 0 {
		return nil, ErrEmptyGraph
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = defaultScale
	}
	sx, sy := scale, scale
	f := scale / defaultScale
	if f < 1 {
		f = 1
	}
	fonts := LoadFonts(f, opts.FontPath)

	autoSizeNodes(g, fonts, sx, sy, f)
	spreadTerminators(g)
	minX, minY, maxX, maxY := logicalExtents(g, sx, sy, f)
	w := int((maxX-minX)*sx) + 2*canvasPad
	h := int((maxY-minY)*sy) + 2*canvasPad + titleBarSpace
	rebase(g, minX, minY, sx, sy)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, 0, 0, w, h, canvasColor)
	drawGrid(img)

	title := opts.Title
	if title == "" {
		title = g.Title
	}
	drawTitleBar(img, fonts, title)

	boxes := make(map[string]pixelBox, len(g.Nodes))
	for _, n := range g.NodesInOrder() {
		boxes[n.Key] = nodePixelBox(n, sx, sy)
	}

	// Edges referencing unknown nodes are dropped, not an error; document
	// sources routinely emit dangling connectors.
	for _, e := range g.Edges {
		src, okSrc := boxes[e.Src]
		dst, okDst := boxes[e.Dst]
		if !okSrc || !okDst {
			continue
		}
		drawEdge(img, fonts, f, src, dst, e.Label)
	}
	for _, n := range g.NodesInOrder() {
		drawNode(img, fonts, n, boxes[n.Key], f)
	}
	return img, nil
}

// drawGrid draws the faint alignment grid across the full canvas.
func drawGrid(img *image.RGBA) {
	b := img.Bounds()
	for x := gridSpacing; x < b.Dx(); x += gridSpacing {
		drawLinePx(img, x, 0, x, b.Dy()-1, gridColor, 1)
	}
	for y := gridSpacing; y < b.Dy(); y += gridSpacing {
		drawLinePx(img, 0, y, b.Dx()-1, y, gridColor, 1)
	}
}

// drawTitleBar draws the white strip along the top with a hairline rule and
// the diagram title.
func drawTitleBar(img *image.RGBA, fonts *FontSet, title string) {
	w := img.Bounds().Dx()
	fillRect(img, 0, 0, w, titleBarHeight, white)
	drawLinePx(img, 0, titleBarHeight, w-1, titleBarHeight, titleRule, 1)
	if title != "" {
		drawText(img, fonts.Title, 18, 18, title, titleColor)
	}
}
