package parser

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/ankek/flow-cartography/internal/flow"
)

// flowFileSchema matches the top-level flow block of a .hcl definition.
var flowFileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "flow", LabelNames: []string{"title"}},
	},
}

// flowBodySchema matches the element blocks inside a flow.
var flowBodySchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "start"},
		{Type: "decision", LabelNames: []string{"name"}},
		{Type: "lookup", LabelNames: []string{"name"}},
		{Type: "create", LabelNames: []string{"name"}},
		{Type: "update", LabelNames: []string{"name"}},
		{Type: "assignment", LabelNames: []string{"name"}},
	},
}

// decisionBodySchema matches the outcome blocks inside a decision.
var decisionBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "label"}, {Name: "x"}, {Name: "y"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "rule", LabelNames: []string{"name"}},
		{Type: "default"},
	},
}

// ParseHCLFile reads an HCL flow definition and builds the diagram graph.
// HCL is the hand-authoring alternative to Salesforce Flow XML: element
// positions, conditions, and detail lines are written directly in the
// human-readable form the diagram shows.
func ParseHCLFile(path string) (*flow.Graph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("HCL parse errors: %s", diags.Error())
	}
	return buildFromHCLBody(file.Body)
}

// ParseHCL builds the diagram graph from raw HCL source. The filename is
// used for diagnostics only.
func ParseHCL(src []byte, filename string) (*flow.Graph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("HCL parse errors: %s", diags.Error())
	}
	return buildFromHCLBody(file.Body)
}

func buildFromHCLBody(body hcl.Body) (*flow.Graph, error) {
	content, _, diags := body.PartialContent(flowFileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse body: %s", diags.Error())
	}
	if len(content.Blocks) == 0 {
		return nil, fmt.Errorf("no flow block found")
	}

	// Only the first flow block is rendered; a definition file describes
	// one diagram.
	block := content.Blocks[0]
	g := flow.NewGraph(block.Labels[0])
	if err := buildFlowElements(g, block.Body); err != nil {
		return nil, err
	}
	return g, nil
}

func buildFlowElements(g *flow.Graph, body hcl.Body) error {
	content, _, diags := body.PartialContent(flowBodySchema)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse flow body: %s", diags.Error())
	}

	for _, block := range content.Blocks {
		switch block.Type {
		case "start":
			buildHCLStart(g, block.Body)
		case "decision":
			if err := buildHCLDecision(g, block.Labels[0], block.Body); err != nil {
				return err
			}
		case "lookup":
			buildHCLCard(g, block.Labels[0], block.Body, flow.KindLookup)
		case "create":
			buildHCLCard(g, block.Labels[0], block.Body, flow.KindCreate)
		case "update":
			buildHCLCard(g, block.Labels[0], block.Body, flow.KindUpdate)
		case "assignment":
			buildHCLCard(g, block.Labels[0], block.Body, flow.KindAssign)
		}
	}
	return nil
}

func buildHCLStart(g *flow.Graph, body hcl.Body) {
	attrs := hclAttrs(body)
	g.AddNode(&flow.Node{
		Key:   "Start",
		Kind:  flow.KindStart,
		Label: startLabel(attrString(attrs, "object"), attrString(attrs, "trigger"), attrString(attrs, "record_trigger")),
		X:     attrNumber(attrs, "x", 50),
		Y:     attrNumber(attrs, "y", 0),
		W:     startWidth,
		H:     startHeight,
	})
	if target := attrString(attrs, "target"); target != "" {
		g.AddEdge("Start", target, "")
	}
}

func buildHCLDecision(g *flow.Graph, name string, body hcl.Body) error {
	content, _, diags := body.PartialContent(decisionBodySchema)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse decision %q: %s", name, diags.Error())
	}

	attrs := attrMapFromContent(content.Attributes)
	label := attrString(attrs, "label")
	if label == "" {
		label = name
	}
	node := &flow.Node{
		Key:   name,
		Kind:  flow.KindDecision,
		Label: label,
		X:     attrNumber(attrs, "x", 0),
		Y:     attrNumber(attrs, "y", 0),
		W:     decisionWidth,
		H:     decisionHeight,
	}
	g.AddNode(node)

	var summaries []string
	for _, block := range content.Blocks {
		outAttrs := hclAttrs(block.Body)
		outLabel := attrString(outAttrs, "label")
		target := attrString(outAttrs, "target")

		if block.Type == "default" {
			if outLabel == "" {
				outLabel = "Default Outcome"
			}
			if target != "" {
				g.AddEdge(name, target, outLabel)
			}
			continue
		}

		// rule block
		if outLabel == "" {
			outLabel = block.Labels[0]
		}
		conds := attrStringList(outAttrs, "condition")
		if len(conds) == 0 {
			summaries = append(summaries, outLabel+": (no conditions)")
		} else {
			summaries = append(summaries, outLabel+": "+strings.Join(conds, " AND "))
		}

		if target != "" {
			g.AddEdge(name, target, outLabel)
		} else {
			endKey := strings.ReplaceAll("End__"+name+"__"+outLabel, " ", "_")
			synthesizeEnd(g, endKey, node.X-240, node.Y+160)
			g.AddEdge(name, endKey, outLabel)
		}
	}

	node.Details = summaries
	return nil
}

// buildHCLCard handles the four card-shaped element kinds. Filters and
// assignments are authored as already-formatted strings.
func buildHCLCard(g *flow.Graph, name string, body hcl.Body, kind flow.Kind) {
	attrs := hclAttrs(body)

	var details []string
	if obj := attrString(attrs, "object"); obj != "" {
		details = append(details, "Object: "+obj)
	}
	details = whereDetails(details, attrStringList(attrs, "filter"), attrString(attrs, "filter_logic"))
	if assigns := attrStringList(attrs, "assign"); len(assigns) > 0 {
		header := "Set:"
		limit := maxSetLines
		if kind == flow.KindAssign {
			header = "Assignments:"
			limit = maxAssignmentLines
		}
		details = append(details, header)
		details = appendCapped(details, assigns, limit)
	}

	label := attrString(attrs, "label")
	if label == "" {
		label = name
	}
	node := &flow.Node{
		Key:     name,
		Kind:    kind,
		Label:   label,
		Details: details,
		X:       attrNumber(attrs, "x", 0),
		Y:       attrNumber(attrs, "y", 0),
		W:       cardWidth,
		H:       cardHeight,
	}
	g.AddNode(node)

	if target := attrString(attrs, "target"); target != "" {
		g.AddEdge(name, target, "")
	} else {
		endKey := synthesizeEnd(g, "End__"+name, node.X, node.Y+160)
		g.AddEdge(name, endKey, "")
	}
}

// hclAttrs evaluates all attributes of a body into cty values. Attributes
// that cannot be evaluated without context are skipped.
func hclAttrs(body hcl.Body) map[string]cty.Value {
	attrs := make(map[string]cty.Value)
	raw, diags := body.JustAttributes()
	if diags.HasErrors() {
		return attrs
	}
	for name, attr := range raw {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			continue
		}
		attrs[name] = val
	}
	return attrs
}

func attrMapFromContent(attrs hcl.Attributes) map[string]cty.Value {
	out := make(map[string]cty.Value)
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			continue
		}
		out[name] = val
	}
	return out
}

func attrString(attrs map[string]cty.Value, name string) string {
	val, ok := attrs[name]
	if !ok || val.IsNull() || val.Type() != cty.String {
		return ""
	}
	return strings.TrimSpace(val.AsString())
}

func attrNumber(attrs map[string]cty.Value, name string, def float64) float64 {
	val, ok := attrs[name]
	if !ok || val.IsNull() || val.Type() != cty.Number {
		return def
	}
	f, _ := val.AsBigFloat().Float64()
	return f
}

// attrStringList accepts either a single string or a list/tuple of strings.
func attrStringList(attrs map[string]cty.Value, name string) []string {
	val, ok := attrs[name]
	if !ok || val.IsNull() {
		return nil
	}
	if val.Type() == cty.String {
		return []string{strings.TrimSpace(val.AsString())}
	}
	if val.Type().IsListType() || val.Type().IsTupleType() {
		var out []string
		it := val.ElementIterator()
		for it.Next() {
			_, v := it.Element()
			if v.Type() == cty.String && !v.IsNull() {
				out = append(out, strings.TrimSpace(v.AsString()))
			}
		}
		return out
	}
	return nil
}
