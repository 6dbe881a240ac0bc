// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/local-ssl-server/src/config"
	"github.com/H0llyW00dzZ/local-ssl-server/src/logger"
)

// ServerName is the MCP implementation name.
const ServerName = "Local SSL Server"

// ToolHandlerWithConfig is a tool handler that receives the server configuration and logger.
type ToolHandlerWithConfig func(ctx context.Context, request mcp.CallToolRequest, cfg *config.Config, log logger.Logger) (*mcp.CallToolResult, error)

// ResourceHandlerWithConfig is a resource handler that receives the server configuration.
type ResourceHandlerWithConfig func(ctx context.Context, request mcp.ReadResourceRequest, cfg *config.Config, version string) ([]mcp.ResourceContents, error)

// ToolDefinitionWithConfig pairs an MCP tool with its handler.
type ToolDefinitionWithConfig struct {
	Tool    mcp.Tool
	Handler ToolHandlerWithConfig
}

// ResourceDefinitionWithConfig pairs an MCP resource with its implementation.
type ResourceDefinitionWithConfig struct {
	Resource mcp.Resource
	Handler  ResourceHandlerWithConfig
}

// ServerDependencies holds everything needed to create the MCP server.
type ServerDependencies struct {
	Config    *config.Config
	Version   string
	Logger    logger.Logger
	Tools     []ToolDefinitionWithConfig
	Resources []ResourceDefinitionWithConfig
}

// ServerBuilder constructs the [MCP] server using a fluent interface.
//
// Example:
//
//	s, err := NewServerBuilder().
//	    WithConfig(cfg).
//	    WithVersion("0.1.0").
//	    WithDefaultTools().
//	    Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ServerBuilder struct{ deps ServerDependencies }

// NewServerBuilder creates a new server builder with empty dependencies.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the configuration passed to every handler.
func (b *ServerBuilder) WithConfig(cfg *config.Config) *ServerBuilder {
	b.deps.Config = cfg
	return b
}

// WithVersion sets the server version.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithLogger sets the logger handed to tool handlers.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.deps.Logger = log
	return b
}

// WithTools adds tools.
func (b *ServerBuilder) WithTools(tools ...ToolDefinitionWithConfig) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithResources adds resources.
func (b *ServerBuilder) WithResources(resources ...ResourceDefinitionWithConfig) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithDefaultTools adds the built-in provisioning tools and resources.
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	return b.WithTools(createTools()...).WithResources(createResources()...)
}

// Build validates dependencies and creates the MCP server.
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	if b.deps.Config == nil {
		b.deps.Config = config.Default()
	}
	if err := b.deps.Config.Validate(); err != nil {
		return nil, err
	}
	if b.deps.Logger == nil {
		b.deps.Logger = logger.NewCLILogger("", true)
	}

	s := server.NewMCPServer(
		ServerName,
		b.deps.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
	)

	for _, tool := range b.serverTools() {
		s.AddTool(tool.Tool, tool.Handler)
	}
	for _, resource := range b.serverResources() {
		s.AddResource(resource.Resource, resource.Handler)
	}

	return s, nil
}

// serverTools binds tool handlers to the configured dependencies.
func (b *ServerBuilder) serverTools() []server.ServerTool {
	tools := make([]server.ServerTool, 0, len(b.deps.Tools))
	for _, tool := range b.deps.Tools {
		handler := tool.Handler
		tools = append(tools, server.ServerTool{
			Tool: tool.Tool,
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handler(ctx, request, b.deps.Config, b.deps.Logger)
			},
		})
	}
	return tools
}

// serverResources binds resource handlers to the configured dependencies.
func (b *ServerBuilder) serverResources() []server.ServerResource {
	resources := make([]server.ServerResource, 0, len(b.deps.Resources))
	for _, resource := range b.deps.Resources {
		handler := resource.Handler
		resources = append(resources, server.ServerResource{
			Resource: resource.Resource,
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return handler(ctx, request, b.deps.Config, b.deps.Version)
			},
		})
	}
	return resources
}
