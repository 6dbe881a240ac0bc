// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging operations.
// It defines the Logger interface and provides two implementations: CLILogger for
// coloured, slug-prefixed status lines on a terminal and JSONLogger for structured
// output when the process runs under another tool (for example the MCP stdio server,
// where stdout belongs to the protocol). Both implementations honour a silent mode
// and are safe for concurrent use.
package logger
