package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ankek/flow-cartography/internal/flow"
)

const escalationFlowHCL = `
flow "Escalation" {
  start {
    x       = 50
    y       = 0
    object  = "Case"
    trigger = "RecordAfterSave"
    target  = "check"
  }

  decision "check" {
    label = "Check Priority"
    x     = 300
    y     = 200

    rule "high" {
      label     = "High"
      condition = "Priority = High"
      target    = "make_task"
    }

    rule "stale" {
      label     = "Stale"
      condition = ["OwnerId is null", "Status = Open"]
    }

    default {
      label = "Other"
    }
  }

  create "make_task" {
    label  = "Create Task"
    x      = 300
    y      = 420
    object = "Task"
    assign = ["Subject = Escalate"]
  }

  lookup "find_owner" {
    label        = "Find Owner"
    x            = 600
    y            = 420
    object       = "User"
    filter       = ["IsActive = true", "Role = Support"]
    filter_logic = "or"
    target       = "check"
  }
}
`

func TestParseHCL(t *testing.T) {
	g, err := ParseHCL([]byte(escalationFlowHCL), "escalation.hcl")
	if err != nil {
		t.Fatalf("ParseHCL() error = %v", err)
	}

	if g.Title != "Escalation" {
		t.Errorf("title = %q, want %q", g.Title, "Escalation")
	}

	start, ok := g.Nodes["Start"]
	if !ok {
		t.Fatal("Start node missing")
	}
	if start.Label != "Start\nCase\nAfter Save" {
		t.Errorf("start label = %q", start.Label)
	}
	if start.X != 50 || start.Y != 0 {
		t.Errorf("start at (%v, %v)", start.X, start.Y)
	}

	dec, ok := g.Nodes["check"]
	if !ok {
		t.Fatal("decision node missing")
	}
	if dec.Kind != flow.KindDecision || dec.Label != "Check Priority" {
		t.Errorf("decision = %+v", dec)
	}
	wantSummaries := []string{
		"High: Priority = High",
		"Stale: OwnerId is null AND Status = Open",
	}
	if !reflect.DeepEqual(dec.Details, wantSummaries) {
		t.Errorf("decision summaries = %v, want %v", dec.Details, wantSummaries)
	}

	// The stale rule has no target: an End is synthesized and connected.
	if _, ok := g.Nodes["End__check__Stale"]; !ok {
		t.Errorf("synthesized End missing; nodes: %v", g.Order)
	}

	lookup, ok := g.Nodes["find_owner"]
	if !ok {
		t.Fatal("lookup node missing")
	}
	wantDetails := []string{"Object: User", "Where:", "- IsActive = true OR Role = Support"}
	if !reflect.DeepEqual(lookup.Details, wantDetails) {
		t.Errorf("lookup details = %v, want %v", lookup.Details, wantDetails)
	}

	create, ok := g.Nodes["make_task"]
	if !ok {
		t.Fatal("create node missing")
	}
	wantCreate := []string{"Object: Task", "Set:", "- Subject = Escalate"}
	if !reflect.DeepEqual(create.Details, wantCreate) {
		t.Errorf("create details = %v, want %v", create.Details, wantCreate)
	}
	// No target: terminator synthesized below the card.
	if _, ok := g.Nodes["End__make_task"]; !ok {
		t.Error("element terminator End__make_task missing")
	}
}

func TestParseHCLNoFlowBlock(t *testing.T) {
	if _, err := ParseHCL([]byte(`other "x" {}`), "t.hcl"); err == nil {
		t.Error("expected error when no flow block is present")
	}
}

func TestParseHCLSyntaxError(t *testing.T) {
	if _, err := ParseHCL([]byte(`flow "x" {`), "t.hcl"); err == nil {
		t.Error("expected error for unclosed block")
	}
}

func TestParseHCLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escalation.hcl")
	if err := os.WriteFile(path, []byte(escalationFlowHCL), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := ParseHCLFile(path)
	if err != nil {
		t.Fatalf("ParseHCLFile() error = %v", err)
	}
	if len(g.Nodes) == 0 {
		t.Error("no nodes parsed")
	}
}
