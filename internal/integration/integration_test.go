package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ankek/flow-cartography/internal/parser"
	"github.com/ankek/flow-cartography/internal/renderer"
	"github.com/ankek/flow-cartography/internal/validation"
)

const escalationXML = `<?xml version="1.0" encoding="UTF-8"?>
<Flow xmlns="http://soap.sforce.com/2006/04/metadata">
    <label>Case Escalation</label>
    <start>
        <locationX>50</locationX>
        <locationY>0</locationY>
        <object>Case</object>
        <triggerType>RecordAfterSave</triggerType>
        <recordTriggerType>CreateAndUpdate</recordTriggerType>
        <connector><targetReference>Check_Priority</targetReference></connector>
    </start>
    <decisions>
        <name>Check_Priority</name>
        <label>Check Priority</label>
        <locationX>300</locationX>
        <locationY>200</locationY>
        <defaultConnectorLabel>Other</defaultConnectorLabel>
        <rules>
            <name>High</name>
            <label>High Priority</label>
            <conditions>
                <leftValueReference>$Record.Priority</leftValueReference>
                <operator>EqualTo</operator>
                <rightValue><stringValue>High</stringValue></rightValue>
            </conditions>
            <connector><targetReference>Create_Task</targetReference></connector>
        </rules>
    </decisions>
    <recordCreates>
        <name>Create_Task</name>
        <label>Create Task</label>
        <locationX>300</locationX>
        <locationY>420</locationY>
        <object>Task</object>
        <inputAssignments>
            <field>Subject</field>
            <value><stringValue>Escalate</stringValue></value>
        </inputAssignments>
    </recordCreates>
</Flow>`

const escalationHCL = `
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
  }

  create "make_task" {
    label  = "Create Task"
    x      = 300
    y      = 420
    object = "Task"
    assign = ["Subject = Escalate"]
  }
}
`

// TestFullPipelineXML walks the complete workflow: Flow XML on disk, parse,
// validate the output path, render, encode, write.
func TestFullPipelineXML(t *testing.T) {
	tests := []struct {
		name   string
		format string
		out    string
	}{
		{name: "png output", format: "png", out: "escalation.png"},
		{name: "jpeg output", format: "jpeg", out: "escalation.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, "escalation.flow-meta.xml")
			if err := os.WriteFile(input, []byte(escalationXML), 0o644); err != nil {
				t.Fatal(err)
			}

			g, err := parser.ParseFlowFile(input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if len(g.Nodes) < 4 {
				t.Fatalf("expected start, decision, create, and a terminator; got %d nodes", len(g.Nodes))
			}

			output := filepath.Join(dir, tt.out)
			if err := validation.ValidateOutputPath(output); err != nil {
				t.Fatalf("validate: %v", err)
			}
			if err := renderer.ExportDiagram(context.Background(), g, output, tt.format, renderer.RenderOptions{}); err != nil {
				t.Fatalf("export: %v", err)
			}

			info, err := os.Stat(output)
			if err != nil {
				t.Fatalf("output missing: %v", err)
			}
			if info.Size() == 0 {
				t.Error("output file is empty")
			}
		})
	}
}

// TestFullPipelineHCL covers the hand-authored definition path.
func TestFullPipelineHCL(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "escalation.hcl")
	if err := os.WriteFile(input, []byte(escalationHCL), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := parser.ParseHCLFile(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if g.Title != "Escalation" {
		t.Errorf("title = %q", g.Title)
	}

	output := filepath.Join(dir, "escalation.png")
	if err := renderer.ExportDiagram(context.Background(), g, output, "png", renderer.RenderOptions{Scale: 2}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

// TestFullPipelineRemote fetches the definition over HTTP before rendering.
func TestFullPipelineRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(escalationXML))
	}))
	defer srv.Close()

	data, err := parser.FetchDefinition(context.Background(), srv.URL+"/escalation.xml", nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	g, err := parser.ParseFlow(data, "escalation")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	output := filepath.Join(t.TempDir(), "escalation.png")
	if err := renderer.ExportDiagram(context.Background(), g, output, "png", renderer.RenderOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output missing: %v", err)
	}
}
