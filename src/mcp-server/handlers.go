// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/H0llyW00dzZ/local-ssl-server/src/config"
	"github.com/H0llyW00dzZ/local-ssl-server/src/internal/pki"
	x509chain "github.com/H0llyW00dzZ/local-ssl-server/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/local-ssl-server/src/logger"
)

// rootOptions maps the configuration to provisioner options.
func rootOptions(cfg *config.Config) pki.RootOptions {
	return pki.RootOptions{
		BasePath: cfg.BasePath,
		Filename: cfg.P12Filename,
		Password: cfg.P12Password,
		Days:     cfg.RootDays,
	}
}

// handleEnsureRoot makes sure the root bundle exists and reports its path.
func handleEnsureRoot(ctx context.Context, request mcp.CallToolRequest, cfg *config.Config, log logger.Logger) (*mcp.CallToolResult, error) {
	path, err := pki.EnsureRoot(ctx, rootOptions(cfg), log)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to ensure root bundle: %v", err)), nil
	}
	return mcp.NewToolResultText(path), nil
}

// issue ensures the root and signs a leaf using the request overrides.
func issue(ctx context.Context, cfg *config.Config, log logger.Logger, domain string, altNames []string) (*pki.LeafCredential, error) {
	path, err := pki.EnsureRoot(ctx, rootOptions(cfg), log)
	if err != nil {
		return nil, err
	}
	return pki.IssueLeaf(ctx, pki.LeafOptions{
		Domain:     domain,
		AltNames:   altNames,
		BundlePath: path,
		Password:   cfg.P12Password,
		Days:       cfg.LeafDays,
		Verbose:    cfg.Verbose,
	}, log)
}

// handleIssueLeaf signs a leaf and returns the extension config, certificate and key.
func handleIssueLeaf(ctx context.Context, request mcp.CallToolRequest, cfg *config.Config, log logger.Logger) (*mcp.CallToolResult, error) {
	domain := request.GetString("domain", cfg.Domain)
	altNames := cfg.AltNames
	if raw := request.GetString("alt_names", ""); raw != "" {
		altNames = config.SplitList(raw)
	}
	includeKey := request.GetBool("include_key", true)

	cred, err := issue(ctx, cfg, log, domain, altNames)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to issue leaf: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Extension config\n\n%s\n# Certificate chain\n\n%s", cred.Config.String(), cred.ChainPEM)
	if includeKey {
		fmt.Fprintf(&b, "\n# Private key\n\n%s", cred.KeyPEM)
	}

	return mcp.NewToolResultText(b.String()), nil
}

// handleInspectBundle renders the root chain in the requested format.
func handleInspectBundle(ctx context.Context, request mcp.CallToolRequest, cfg *config.Config, log logger.Logger) (*mcp.CallToolResult, error) {
	format := request.GetString("format", "tree")
	withLeaf := request.GetBool("leaf", false)

	var chain *x509chain.Chain
	if withLeaf {
		cred, err := issue(ctx, cfg, log, cfg.Domain, cfg.AltNames)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to issue leaf: %v", err)), nil
		}
		chain = x509chain.New(cred.Cert, cred.Root)
	} else {
		path, err := pki.EnsureRoot(ctx, rootOptions(cfg), log)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to ensure root bundle: %v", err)), nil
		}
		bundle, err := pki.ReadRootBundle(path, cfg.P12Password)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read root bundle: %v", err)), nil
		}
		chain = x509chain.New(bundle.Cert)
	}

	switch format {
	case "tree":
		return mcp.NewToolResultText(chain.RenderASCIITree()), nil
	case "table":
		return mcp.NewToolResultText(chain.RenderTable()), nil
	case "json":
		data, err := chain.ToVisualizationJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to render chain: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q: use tree, table or json", format)), nil
	}
}
