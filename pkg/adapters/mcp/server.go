// Package mcp exposes a frozen model as an MCP server, so agent tooling can
// inspect capability interfaces, refinements and composites.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/lattice"
	httpadapter "github.com/aretw0/lattice/pkg/adapters/http"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// FulfillsResponse is the structured result of the check_fulfills tool.
type FulfillsResponse struct {
	Interface string `json:"interface" jsonschema_description:"The refined interface"`
	Base      string `json:"base" jsonschema_description:"The base interface"`
	Fulfills  bool   `json:"fulfills" jsonschema_description:"Whether interface fulfills base"`
}

// Server wraps a frozen model and exposes it as an MCP server.
type Server struct {
	model     httpadapter.Model
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server over the given model.
func NewServer(model httpadapter.Model) *Server {
	s := &Server{
		model:     model,
		mcpServer: server.NewMCPServer("lattice-mcp", lattice.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() { serverErrors <- httpServer.ListenAndServe() }()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: list_interfaces
	s.mcpServer.AddTool(mcp.NewTool("list_interfaces",
		mcp.WithDescription("List all capability interfaces with their ports and refinements."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.model.Snapshot().Interfaces)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: check_fulfills
	fulfillsTool := mcp.NewTool("check_fulfills",
		mcp.WithDescription("Check whether one capability interface fulfills another."),
		mcp.WithString("interface", mcp.Required(), mcp.Description("The refined interface name")),
		mcp.WithString("base", mcp.Required(), mcp.Description("The base interface name")),
		mcp.WithOutputSchema[FulfillsResponse](),
	)
	s.mcpServer.AddTool(fulfillsTool, mcp.NewStructuredToolHandler(s.handleFulfills))

	// TOOL: describe_composite
	describeTool := mcp.NewTool("describe_composite",
		mcp.WithDescription("Get a composite's child slots and specializations."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Composite name")),
	)
	s.mcpServer.AddTool(describeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := request.GetString("name", "")
		for _, c := range s.model.Snapshot().Composites {
			if c.Name == name {
				jsonBytes, _ := json.Marshal(c)
				return mcp.NewToolResultText(string(jsonBytes)), nil
			}
		}
		return mcp.NewToolResultError(fmt.Sprintf("unknown composite: %s", name)), nil
	})
}

func (s *Server) handleFulfills(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (FulfillsResponse, error) {
	iface, _ := args["interface"].(string)
	base, _ := args["base"].(string)
	if iface == "" || base == "" {
		return FulfillsResponse{}, fmt.Errorf("both 'interface' and 'base' are required")
	}
	return FulfillsResponse{
		Interface: iface,
		Base:      base,
		Fulfills:  s.model.Registry().FulfillsName(iface, base),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: lattice://model
	s.mcpServer.AddResource(mcp.NewResource("lattice://model", "Frozen Model Snapshot",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.model.Snapshot())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "lattice://model",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
