package catalog

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPTools projects the catalog onto MCP tool definitions, one per
// capability in declaration order. This is the surface handed to a model for
// direct tool-calling; code mode derives its typed declaration from the same
// catalog via the surface package.
func (c *Catalog) MCPTools() []*mcp.Tool {
	out := make([]*mcp.Tool, len(c.caps))
	for i, decl := range c.caps {
		out[i] = &mcp.Tool{
			Name:        decl.Name,
			Description: decl.Description,
			InputSchema: inputSchema(decl),
		}
	}
	return out
}

func inputSchema(decl Capability) *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(decl.Input))
	var required []string
	for _, f := range decl.Input {
		props[f.Name] = fieldSchema(f.Type, f.Description)
		if !f.Optional {
			required = append(required, f.Name)
		}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func fieldSchema(t FieldType, description string) *jsonschema.Schema {
	s := &jsonschema.Schema{Description: description}
	switch t.Kind {
	case KindString:
		s.Type = "string"
	case KindNumber:
		s.Type = "number"
	case KindBoolean:
		s.Type = "boolean"
	case KindEnum:
		s.Type = "string"
		s.Enum = make([]any, len(t.Enum))
		for i, v := range t.Enum {
			s.Enum[i] = v
		}
	case KindArray:
		s.Type = "array"
		if t.Elem != nil {
			s.Items = fieldSchema(*t.Elem, "")
		}
	case KindObject:
		s.Type = "object"
	default:
		// Opaque: no type constraint.
	}
	return s
}
