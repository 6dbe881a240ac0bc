// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface of the local SSL server.
// It implements a Cobra-based command tree: serve (the default) provisions the
// root CA, issues a leaf and runs the HTTPS listener; init, issue, inspect and
// verify expose the individual provisioning steps; mcp serves them as MCP tools.
// Configuration is resolved from defaults, an optional file, the environment and
// explicitly set flags, in that order.
package cli
