package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ankek/flow-cartography/internal/flow"
)

// Default logical dimensions per node archetype, matching the Flow Builder
// canvas proportions.
const (
	cardWidth      = 220
	cardHeight     = 92
	startWidth     = 190
	startHeight    = 112
	decisionWidth  = 180
	decisionHeight = 120
	endSize        = 56
)

// Caps on enumerated detail lines before a "+N more" marker is appended.
const (
	maxSetLines        = 8  // create/update field assignments
	maxAssignmentLines = 10 // assignment element items
)

// triggerNames maps raw trigger types to the compact Flow Builder wording.
var triggerNames = map[string]string{
	"RecordAfterSave":  "After Save",
	"RecordBeforeSave": "Before Save",
}

// recordTriggerNames maps record trigger types to the compact wording.
var recordTriggerNames = map[string]string{
	"CreateAndUpdate": "Create & Update",
	"CreateOnly":      "Create Only",
	"UpdateOnly":      "Update Only",
}

// parseCoord parses a canvas coordinate, tolerating float formatting.
// Missing or unparsable values fall back to def rather than failing the
// whole document.
func parseCoord(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return float64(int(v))
}

// startLabel builds the multi-line Start card label from the trigger info.
func startLabel(object, trigger, recordTrigger string) string {
	if object == "" {
		object = "Record"
	}
	label := "Start\n" + object
	if trigger != "" {
		if pretty, ok := triggerNames[trigger]; ok {
			trigger = pretty
		}
		label += "\n" + trigger
	}
	if recordTrigger != "" {
		if pretty, ok := recordTriggerNames[recordTrigger]; ok {
			recordTrigger = pretty
		}
		label += "\n" + recordTrigger
	}
	return label
}

// synthesizeEnd adds an implicit terminator node below the given position and
// returns its key. Used when an element or decision outcome has no connector.
func synthesizeEnd(g *flow.Graph, key string, x, y float64) string {
	g.AddNode(&flow.Node{
		Key:   key,
		Kind:  flow.KindEnd,
		Label: "End",
		X:     x,
		Y:     y,
		W:     endSize,
		H:     endSize,
	})
	return key
}

// appendCapped appends "- item" lines up to limit entries, then a single
// "- … (+N more)" marker for the remainder.
func appendCapped(details []string, items []string, limit int) []string {
	for i, item := range items {
		if i == limit {
			details = append(details, fmt.Sprintf("- … (+%d more)", len(items)-limit))
			break
		}
		details = append(details, "- "+item)
	}
	return details
}

// whereDetails renders filter lines as a "Where:" section. A single filter
// gets its own line; multiple filters are joined by the upper-cased filter
// logic ("and" → " AND ").
func whereDetails(details []string, filters []string, filterLogic string) []string {
	if len(filters) == 0 {
		return details
	}
	details = append(details, "Where:")
	if len(filters) == 1 {
		return append(details, "- "+filters[0])
	}
	if filterLogic == "" {
		filterLogic = "and"
	}
	joiner := " " + strings.ToUpper(filterLogic) + " "
	return append(details, "- "+strings.Join(filters, joiner))
}
