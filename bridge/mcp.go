package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCaller is the slice of an MCP client session the bridge needs.
// *mcp.ClientSession satisfies it.
type ToolCaller interface {
	CallTool(ctx context.Context, params *mcp.CallToolParams) (*mcp.CallToolResult, error)
}

// SessionResolver maps an opaque session identifier to the MCP session that
// reaches that session's backend state.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: an unknown or unreachable session returns an error; the bridge
//   classifies it as a TransportError.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (ToolCaller, error)
}

// StaticSessions is a fixed sessionID -> session table.
type StaticSessions struct {
	mu       sync.RWMutex
	sessions map[string]ToolCaller
}

// NewStaticSessions creates an empty session table.
func NewStaticSessions() *StaticSessions {
	return &StaticSessions{sessions: make(map[string]ToolCaller)}
}

// Add registers a session under the given identifier, replacing any
// previous entry.
func (s *StaticSessions) Add(sessionID string, caller ToolCaller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = caller
}

// Remove drops a session.
func (s *StaticSessions) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Resolve implements SessionResolver.
func (s *StaticSessions) Resolve(_ context.Context, sessionID string) (ToolCaller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	caller, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no session %q", sessionID)
	}
	return caller, nil
}

// MCP invokes capabilities as MCP tool calls: one CallTool per invocation,
// addressed through the session resolved per call.
type MCP struct {
	resolver SessionResolver
}

// NewMCP creates an MCP bridge using the given resolver.
func NewMCP(resolver SessionResolver) *MCP {
	return &MCP{resolver: resolver}
}

// Invoke implements Invoker.
func (b *MCP) Invoke(ctx context.Context, name string, args map[string]any, sessionID string) (Outcome, error) {
	if args == nil {
		args = map[string]any{}
	}

	session, err := b.resolver.Resolve(ctx, sessionID)
	if err != nil {
		return Outcome{}, &TransportError{
			Capability: name,
			Message:    fmt.Sprintf("backend unreachable: %v", err),
			Err:        err,
		}
	}

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return Outcome{}, &TransportError{
			Capability: name,
			Message:    fmt.Sprintf("call failed: %v", err),
			Err:        err,
		}
	}

	if res.IsError {
		return Outcome{}, &ApplicationError{
			Capability: name,
			Message:    resultText(res),
		}
	}

	if res.StructuredContent != nil {
		return Structured(res.StructuredContent), nil
	}
	return classifyText(resultText(res)), nil
}

// resultText joins the text content blocks of a result. Non-text content is
// ignored; the bridge never forwards framing to the program.
func resultText(res *mcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// classifyText attempts to parse a textual payload as structured data and
// falls back to a text outcome. Both are valid successes; the kind tag lets
// the program branch.
func classifyText(text string) Outcome {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '{', '[', '"', 't', 'f', 'n', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			var v any
			if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
				return Structured(v)
			}
		}
	}
	return Text(text)
}
