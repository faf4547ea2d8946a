package catalog

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
)

func TestMCPTools_ProjectsDeclarationOrder(t *testing.T) {
	c, err := New(eventCaps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tools := c.MCPTools()
	if len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(tools))
	}
	if tools[0].Name != "create_event" || tools[2].Name != "rsvp" {
		t.Errorf("tool order does not match declaration order: %q, %q", tools[0].Name, tools[2].Name)
	}
	if tools[0].Description != "Create a new event" {
		t.Errorf("description not carried: %q", tools[0].Description)
	}
}

func TestMCPTools_SchemaShapes(t *testing.T) {
	c, _ := New(eventCaps())
	tools := c.MCPTools()

	schema, ok := tools[2].InputSchema.(*jsonschema.Schema)
	if !ok {
		t.Fatalf("InputSchema is %T, want *jsonschema.Schema", tools[2].InputSchema)
	}
	if schema.Type != "object" {
		t.Errorf("schema.Type = %q, want object", schema.Type)
	}

	status := schema.Properties["status"]
	if status == nil || status.Type != "string" || len(status.Enum) != 3 {
		t.Errorf("status schema = %+v, want string enum of 3", status)
	}

	// guests is optional and must not be required
	for _, r := range schema.Required {
		if r == "guests" {
			t.Error("optional field listed as required")
		}
	}
	if len(schema.Required) != 2 {
		t.Errorf("required = %v, want event_id and status", schema.Required)
	}
}

func TestMCPTools_ArrayAndOpaque(t *testing.T) {
	c, err := New([]Capability{{
		Name: "annotate",
		Input: []Field{
			{Name: "tags", Type: Array(String())},
			{Name: "payload", Type: Opaque()},
		},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	schema := c.MCPTools()[0].InputSchema.(*jsonschema.Schema)
	tags := schema.Properties["tags"]
	if tags.Type != "array" || tags.Items == nil || tags.Items.Type != "string" {
		t.Errorf("tags schema = %+v, want array of string", tags)
	}
	if schema.Properties["payload"].Type != "" {
		t.Error("opaque field must carry no type constraint")
	}
}
