package direct

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/codemode/bridge"
	"github.com/jonwraymond/codemode/catalog"
)

// Caller dispatches individual tool calls against a catalog.
type Caller struct {
	catalog *catalog.Catalog
	invoker bridge.Invoker
}

// NewCaller creates a direct tool caller over the given catalog and bridge.
func NewCaller(cat *catalog.Catalog, invoker bridge.Invoker) (*Caller, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if invoker == nil {
		return nil, fmt.Errorf("invoker is required")
	}
	return &Caller{catalog: cat, invoker: invoker}, nil
}

// Tools returns the catalog as an MCP tool list, ready to hand to a model
// as its tool-calling surface.
func (c *Caller) Tools() []*mcp.Tool {
	return c.catalog.MCPTools()
}

// Call performs one capability invocation. The name must be declared in the
// catalog; rawArgs is the JSON arguments object from the model's tool call
// (nil or empty means no arguments). Bridge failures propagate typed, so
// callers can distinguish backend rejections from delivery failures with
// errors.Is.
func (c *Caller) Call(ctx context.Context, name string, rawArgs json.RawMessage, sessionID string) (any, error) {
	if !c.catalog.Has(name) {
		return nil, &bridge.ApplicationError{
			Capability: name,
			Message:    fmt.Sprintf("unknown capability: %s", name),
		}
	}

	var args map[string]any
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			return nil, &bridge.ApplicationError{
				Capability: name,
				Message:    fmt.Sprintf("invalid arguments: %v", err),
			}
		}
	}

	out, err := c.invoker.Invoke(ctx, name, args, sessionID)
	if err != nil {
		return nil, err
	}
	return out.Unwrap(), nil
}
