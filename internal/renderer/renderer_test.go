package renderer

import (
	"errors"
	"image/color"
	"testing"

	"github.com/ankek/flow-cartography/internal/flow"
)

func linearGraph() *flow.Graph {
	g := flow.NewGraph("Linear Flow")
	g.AddNode(&flow.Node{Key: "Start", Kind: flow.KindStart, Label: "Start\nCase\nAfter Save", X: 0, Y: 0, W: 190, H: 112})
	g.AddNode(&flow.Node{Key: "Create_Task", Kind: flow.KindCreate, Label: "Create Task", Details: []string{"Object: Task"}, X: 0, Y: 200, W: 220, H: 92})
	g.AddNode(&flow.Node{Key: "End__Create_Task", Kind: flow.KindEnd, Label: "End", X: 0, Y: 400, W: 56, H: 56})
	g.AddEdge("Start", "Create_Task", "")
	g.AddEdge("Create_Task", "End__Create_Task", "")
	return g
}

func TestRenderLinearFlow(t *testing.T) {
	img, err := Render(linearGraph(), RenderOptions{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b := img.Bounds()
	if b.Dx() <= 2*canvasPad || b.Dy() <= 2*canvasPad+titleBarSpace {
		t.Errorf("canvas %dx%d smaller than padding alone", b.Dx(), b.Dy())
	}

	// The title strip is painted opaque white.
	if got := img.RGBAAt(2, 2); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("title bar pixel = %v, want white", got)
	}
}

func TestRenderDecisionWithOutcomes(t *testing.T) {
	g := flow.NewGraph("Escalation")
	g.AddNode(&flow.Node{Key: "Start", Kind: flow.KindStart, Label: "Start\nCase", X: 50, Y: 0, W: 190, H: 112})
	g.AddNode(&flow.Node{
		Key: "Check_Priority", Kind: flow.KindDecision, Label: "Check Priority",
		Details: []string{"High: Priority = High", "Other: (no conditions)"},
		X:       300, Y: 200, W: 180, H: 120,
	})
	g.AddNode(&flow.Node{Key: "Create_Task", Kind: flow.KindCreate, Label: "Create Task", X: 300, Y: 420, W: 220, H: 92})
	g.AddNode(&flow.Node{Key: "End__Check_Priority__Other", Kind: flow.KindEnd, Label: "End", X: 60, Y: 360, W: 56, H: 56})
	g.AddEdge("Start", "Check_Priority", "")
	g.AddEdge("Check_Priority", "Create_Task", "High")
	g.AddEdge("Check_Priority", "End__Check_Priority__Other", "Other")

	img, err := Render(g, RenderOptions{Scale: 2})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if img.Bounds().Empty() {
		t.Error("rendered image has empty bounds")
	}
}

func TestRenderEmptyGraph(t *testing.T) {
	_, err := Render(flow.NewGraph("empty"), RenderOptions{})
	if !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("Render(empty) error = %v, want ErrEmptyGraph", err)
	}
	_, err = Render(nil, RenderOptions{})
	if !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("Render(nil) error = %v, want ErrEmptyGraph", err)
	}
}

func TestRenderDropsDanglingEdges(t *testing.T) {
	g := linearGraph()
	g.AddEdge("Create_Task", "No_Such_Node", "broken")
	g.AddEdge("Ghost", "Create_Task", "")

	if _, err := Render(g, RenderOptions{}); err != nil {
		t.Errorf("dangling edges should be dropped silently, got %v", err)
	}
}

func TestRenderTitleOverride(t *testing.T) {
	g := linearGraph()
	if _, err := Render(g, RenderOptions{Title: "Overridden"}); err != nil {
		t.Errorf("Render() with title override error = %v", err)
	}
}

func TestRenderDefaultScale(t *testing.T) {
	small, err := Render(linearGraph(), RenderOptions{Scale: 1.35})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	defaulted, err := Render(linearGraph(), RenderOptions{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if small.Bounds() != defaulted.Bounds() {
		t.Errorf("zero scale should default to 1.35: %v vs %v", defaulted.Bounds(), small.Bounds())
	}

	big, err := Render(linearGraph(), RenderOptions{Scale: 2.7})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if big.Bounds().Dx() <= small.Bounds().Dx() {
		t.Errorf("larger scale should widen the canvas: %v vs %v", big.Bounds(), small.Bounds())
	}
}
