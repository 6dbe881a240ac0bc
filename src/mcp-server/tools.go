// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names.
const (
	toolEnsureRoot    = "ensure_root"
	toolIssueLeaf     = "issue_leaf"
	toolInspectBundle = "inspect_bundle"
)

// createTools returns every provisioning tool definition with its handler.
//
// The function defines the following tools:
//   - ensure_root: Creates the root bundle if missing and returns its path
//   - issue_leaf: Signs a new leaf for a domain and returns PEM material
//   - inspect_bundle: Renders the root (and optionally a fresh leaf) chain
func createTools() []ToolDefinitionWithConfig {
	return []ToolDefinitionWithConfig{
		{
			Tool: mcp.NewTool(toolEnsureRoot,
				mcp.WithDescription("Ensure the local root CA bundle exists, generating it on first use, and return its path"),
			),
			Handler: handleEnsureRoot,
		},
		{
			Tool: mcp.NewTool(toolIssueLeaf,
				mcp.WithDescription("Issue a leaf certificate signed by the local root CA"),
				mcp.WithString("domain",
					mcp.Description("Domain name for the certificate common name (default: configured domain)"),
				),
				mcp.WithString("alt_names",
					mcp.Description("Comma-separated DNS alt names (default: www.<domain>)"),
				),
				mcp.WithBoolean("include_key",
					mcp.Description("Include the leaf private key in the output (default: true)"),
					mcp.DefaultBool(true),
				),
			),
			Handler: handleIssueLeaf,
		},
		{
			Tool: mcp.NewTool(toolInspectBundle,
				mcp.WithDescription("Describe the local root CA certificate, optionally with a freshly issued leaf"),
				mcp.WithString("format",
					mcp.Description("Output format: 'tree', 'table', or 'json' (default: tree)"),
					mcp.DefaultString("tree"),
					mcp.Enum("tree", "table", "json"),
				),
				mcp.WithBoolean("leaf",
					mcp.Description("Issue a leaf for the configured domain and include it in the chain (default: false)"),
					mcp.DefaultBool(false),
				),
			),
			Handler: handleInspectBundle,
		},
	}
}
