package parser

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ankek/flow-cartography/internal/flow"
)

// xmlFlow mirrors the subset of the Salesforce Flow metadata document the
// renderer cares about. All elements share the metadata namespace, so plain
// local names are sufficient for decoding.
type xmlFlow struct {
	Label         string          `xml:"label"`
	Start         *xmlStart       `xml:"start"`
	Decisions     []xmlDecision   `xml:"decisions"`
	RecordLookups []xmlRecordOp   `xml:"recordLookups"`
	RecordCreates []xmlRecordOp   `xml:"recordCreates"`
	RecordUpdates []xmlRecordOp   `xml:"recordUpdates"`
	Assignments   []xmlAssignment `xml:"assignments"`
}

type xmlStart struct {
	LocationX         string        `xml:"locationX"`
	LocationY         string        `xml:"locationY"`
	Object            string        `xml:"object"`
	TriggerType       string        `xml:"triggerType"`
	RecordTriggerType string        `xml:"recordTriggerType"`
	Connector         *xmlConnector `xml:"connector"`
}

type xmlConnector struct {
	TargetReference string `xml:"targetReference"`
}

type xmlDecision struct {
	Name                  string        `xml:"name"`
	Label                 string        `xml:"label"`
	LocationX             string        `xml:"locationX"`
	LocationY             string        `xml:"locationY"`
	DefaultConnector      *xmlConnector `xml:"defaultConnector"`
	DefaultConnectorLabel string        `xml:"defaultConnectorLabel"`
	Rules                 []xmlRule     `xml:"rules"`
}

type xmlRule struct {
	Name           string         `xml:"name"`
	Label          string         `xml:"label"`
	ConditionLogic string         `xml:"conditionLogic"`
	Conditions     []xmlCondition `xml:"conditions"`
	Connector      *xmlConnector  `xml:"connector"`
}

type xmlCondition struct {
	LeftValueReference string    `xml:"leftValueReference"`
	Operator           string    `xml:"operator"`
	RightValue         *xmlValue `xml:"rightValue"`
}

// xmlValue holds the typed value variants a Flow document can carry. Rest
// captures any variant this decoder does not know by name, so new value
// types degrade to their text content instead of disappearing.
type xmlValue struct {
	ElementReference string       `xml:"elementReference"`
	StringValue      string       `xml:"stringValue"`
	NumberValue      string       `xml:"numberValue"`
	BooleanValue     string       `xml:"booleanValue"`
	DateValue        string       `xml:"dateValue"`
	Rest             []xmlAnyElem `xml:",any"`
}

type xmlAnyElem struct {
	Text string `xml:",chardata"`
}

type xmlRecordOp struct {
	Name             string               `xml:"name"`
	Label            string               `xml:"label"`
	Object           string               `xml:"object"`
	LocationX        string               `xml:"locationX"`
	LocationY        string               `xml:"locationY"`
	FilterLogic      string               `xml:"filterLogic"`
	Filters          []xmlFilter          `xml:"filters"`
	InputAssignments []xmlInputAssignment `xml:"inputAssignments"`
	Connector        *xmlConnector        `xml:"connector"`
}

type xmlFilter struct {
	Field    string    `xml:"field"`
	Operator string    `xml:"operator"`
	Value    *xmlValue `xml:"value"`
}

type xmlInputAssignment struct {
	Field string    `xml:"field"`
	Value *xmlValue `xml:"value"`
}

type xmlAssignment struct {
	Name            string              `xml:"name"`
	Label           string              `xml:"label"`
	LocationX       string              `xml:"locationX"`
	LocationY       string              `xml:"locationY"`
	AssignmentItems []xmlAssignmentItem `xml:"assignmentItems"`
	Connector       *xmlConnector       `xml:"connector"`
}

type xmlAssignmentItem struct {
	AssignToReference string    `xml:"assignToReference"`
	Operator          string    `xml:"operator"`
	Value             *xmlValue `xml:"value"`
}

// valueString extracts the display text from a typed value element,
// preferring the known variants in a fixed order and falling back to any
// unrecognized child's text.
func valueString(v *xmlValue) string {
	if v == nil {
		return ""
	}
	for _, s := range []string{v.ElementReference, v.StringValue, v.NumberValue, v.BooleanValue, v.DateValue} {
		if t := strings.TrimSpace(s); t != "" {
			return t
		}
	}
	for _, child := range v.Rest {
		if t := strings.TrimSpace(child.Text); t != "" {
			return t
		}
	}
	return ""
}

// ParseFlowFile reads a Salesforce Flow metadata file (*.flow-meta.xml) and
// builds the diagram graph. The file base name is used as the title when the
// document carries no label.
func ParseFlowFile(path string) (*flow.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flow definition: %w", err)
	}
	return ParseFlow(data, filepath.Base(path))
}

// ParseFlow builds the diagram graph from raw Flow XML. Elements that end a
// path (no connector) get a synthesized End terminator so every branch is
// visually closed, matching Flow Builder's presentation.
func ParseFlow(data []byte, fallbackTitle string) (*flow.Graph, error) {
	var doc xmlFlow
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse flow XML: %w", err)
	}

	title := strings.TrimSpace(doc.Label)
	if title == "" {
		title = fallbackTitle
	}
	g := flow.NewGraph(title)

	if doc.Start != nil {
		addStart(g, doc.Start)
	}
	for _, d := range doc.Decisions {
		addDecision(g, &d)
	}
	for _, rl := range doc.RecordLookups {
		addRecordOp(g, &rl, flow.KindLookup)
	}
	for _, rc := range doc.RecordCreates {
		addRecordOp(g, &rc, flow.KindCreate)
	}
	for _, ru := range doc.RecordUpdates {
		addRecordOp(g, &ru, flow.KindUpdate)
	}
	for _, a := range doc.Assignments {
		addAssignment(g, &a)
	}

	return g, nil
}

func addStart(g *flow.Graph, start *xmlStart) {
	g.AddNode(&flow.Node{
		Key:   "Start",
		Kind:  flow.KindStart,
		Label: startLabel(strings.TrimSpace(start.Object), strings.TrimSpace(start.TriggerType), strings.TrimSpace(start.RecordTriggerType)),
		X:     parseCoord(start.LocationX, 50),
		Y:     parseCoord(start.LocationY, 0),
		W:     startWidth,
		H:     startHeight,
	})
	if target := connectorTarget(start.Connector); target != "" {
		g.AddEdge("Start", target, "")
	}
}

func addDecision(g *flow.Graph, d *xmlDecision) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return
	}

	label := strings.TrimSpace(d.Label)
	if label == "" {
		label = name
	}
	node := &flow.Node{
		Key:   name,
		Kind:  flow.KindDecision,
		Label: label,
		X:     parseCoord(d.LocationX, 0),
		Y:     parseCoord(d.LocationY, 0),
		W:     decisionWidth,
		H:     decisionHeight,
	}
	g.AddNode(node)

	if target := connectorTarget(d.DefaultConnector); target != "" {
		defaultLabel := strings.TrimSpace(d.DefaultConnectorLabel)
		if defaultLabel == "" {
			defaultLabel = "Default Outcome"
		}
		g.AddEdge(name, target, defaultLabel)
	}

	var summaries []string
	for _, rule := range d.Rules {
		outLabel := strings.TrimSpace(rule.Label)
		if outLabel == "" {
			outLabel = strings.TrimSpace(rule.Name)
		}
		if outLabel == "" {
			outLabel = "Outcome"
		}

		summaries = append(summaries, ruleSummary(outLabel, &rule))

		if target := connectorTarget(rule.Connector); target != "" {
			g.AddEdge(name, target, outLabel)
		} else {
			// Terminal outcome: close the branch with an implicit End.
			endKey := strings.ReplaceAll("End__"+name+"__"+outLabel, " ", "_")
			synthesizeEnd(g, endKey, node.X-240, node.Y+160)
			g.AddEdge(name, endKey, outLabel)
		}
	}

	// Rule summaries become the callout shown beside the diamond.
	node.Details = summaries
}

// ruleSummary renders one outcome as "<label>: cond AND cond".
func ruleSummary(outLabel string, rule *xmlRule) string {
	if len(rule.Conditions) == 0 {
		return outLabel + ": (no conditions)"
	}
	logic := strings.ToLower(strings.TrimSpace(rule.ConditionLogic))
	if logic == "" {
		logic = "and"
	}
	conds := make([]string, 0, len(rule.Conditions))
	for _, c := range rule.Conditions {
		conds = append(conds, FormatCondition(
			strings.TrimSpace(c.LeftValueReference),
			strings.TrimSpace(c.Operator),
			valueString(c.RightValue),
		))
	}
	joiner := " " + strings.ToUpper(logic) + " "
	return outLabel + ": " + strings.Join(conds, joiner)
}

func addRecordOp(g *flow.Graph, op *xmlRecordOp, kind flow.Kind) {
	name := strings.TrimSpace(op.Name)
	if name == "" {
		return
	}

	var details []string
	if obj := strings.TrimSpace(op.Object); obj != "" {
		details = append(details, "Object: "+obj)
	}

	// Lookups and updates summarize their filters; creates and updates
	// summarize their field assignments.
	if kind == flow.KindLookup || kind == flow.KindUpdate {
		var filters []string
		for _, f := range op.Filters {
			val := valueString(f.Value)
			filters = append(filters, strings.TrimSpace(
				strings.TrimSpace(f.Field)+" "+FormatOperator(f.Operator, val)+" "+val))
		}
		details = whereDetails(details, filters, strings.ToLower(strings.TrimSpace(op.FilterLogic)))
	}
	if kind == flow.KindCreate || kind == flow.KindUpdate {
		var assigns []string
		for _, ia := range op.InputAssignments {
			field := strings.TrimSpace(ia.Field)
			if field == "" {
				continue
			}
			assigns = append(assigns, strings.TrimSpace(field+" = "+valueString(ia.Value)))
		}
		if len(assigns) > 0 {
			details = append(details, "Set:")
			details = appendCapped(details, assigns, maxSetLines)
		}
	}

	label := strings.TrimSpace(op.Label)
	if label == "" {
		label = name
	}
	node := &flow.Node{
		Key:     name,
		Kind:    kind,
		Label:   label,
		Details: details,
		X:       parseCoord(op.LocationX, 0),
		Y:       parseCoord(op.LocationY, 0),
		W:       cardWidth,
		H:       cardHeight,
	}
	g.AddNode(node)
	connectOrTerminate(g, node, op.Connector)
}

func addAssignment(g *flow.Graph, a *xmlAssignment) {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return
	}

	var items []string
	for _, it := range a.AssignmentItems {
		target := strings.TrimSpace(it.AssignToReference)
		if target == "" {
			continue
		}
		op := FormatAssignmentOperator(strings.TrimSpace(it.Operator))
		items = append(items, strings.TrimSpace(target+" "+op+" "+valueString(it.Value)))
	}

	var details []string
	if len(items) > 0 {
		details = append(details, "Assignments:")
		details = appendCapped(details, items, maxAssignmentLines)
	}

	label := strings.TrimSpace(a.Label)
	if label == "" {
		label = name
	}
	node := &flow.Node{
		Key:     name,
		Kind:    flow.KindAssign,
		Label:   label,
		Details: details,
		X:       parseCoord(a.LocationX, 0),
		Y:       parseCoord(a.LocationY, 0),
		W:       cardWidth,
		H:       cardHeight,
	}
	g.AddNode(node)
	connectOrTerminate(g, node, a.Connector)
}

// connectOrTerminate wires the element to its connector target, or closes
// the path with a synthesized End node when there is none.
func connectOrTerminate(g *flow.Graph, node *flow.Node, c *xmlConnector) {
	if target := connectorTarget(c); target != "" {
		g.AddEdge(node.Key, target, "")
		return
	}
	endKey := synthesizeEnd(g, "End__"+node.Key, node.X, node.Y+160)
	g.AddEdge(node.Key, endKey, "")
}

func connectorTarget(c *xmlConnector) string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.TargetReference)
}
