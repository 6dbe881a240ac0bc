// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/H0llyW00dzZ/local-ssl-server/src/config"
)

// Resource URIs.
const (
	resourceConfig  = "config://current"
	resourceVersion = "info://version"
)

// redactedPassword replaces the bundle passphrase in the config resource.
const redactedPassword = "********"

// createResources returns the static resources of the server.
func createResources() []ResourceDefinitionWithConfig {
	return []ResourceDefinitionWithConfig{
		{
			Resource: mcp.NewResource(resourceConfig, "Active configuration",
				mcp.WithResourceDescription("Configuration used by the provisioning tools, passphrase redacted"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleConfigResource,
		},
		{
			Resource: mcp.NewResource(resourceVersion, "Server version",
				mcp.WithResourceDescription("Server name, version and tool list"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleVersionResource,
		},
	}
}

// handleConfigResource returns the active configuration as JSON.
func handleConfigResource(ctx context.Context, request mcp.ReadResourceRequest, cfg *config.Config, version string) ([]mcp.ResourceContents, error) {
	redacted := *cfg
	if redacted.P12Password != "" {
		redacted.P12Password = redactedPassword
	}

	data, err := json.MarshalIndent(redacted, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resourceConfig,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// handleVersionResource returns server metadata.
func handleVersionResource(ctx context.Context, request mcp.ReadResourceRequest, cfg *config.Config, version string) ([]mcp.ResourceContents, error) {
	tools := createTools()
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Tool.Name)
	}

	data, err := json.MarshalIndent(map[string]any{
		"name":    ServerName,
		"version": version,
		"tools":   names,
		"formats": []string{"tree", "table", "json"},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal version info: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resourceVersion,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
