// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes local certificate provisioning as [MCP] tools over stdio:
// ensure_root, issue_leaf and inspect_bundle, plus read-only resources describing the
// active configuration. Stdout carries the protocol, so logs must go elsewhere.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
