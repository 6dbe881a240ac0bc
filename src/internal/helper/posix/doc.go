// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-flavoured helper functions for cross-platform compatibility.
//
// Key functions:
//   - ExecutableName: Returns the executable name without extension for CLI usage
//   - TopLevelEntry: Returns the first path component of a directory relative to a root,
//     used to decide what the provisioner appends to .gitignore
//
// Cross-Platform Behavior:
//
//   - Linux/macOS: "/usr/bin/local-ssl-server" → "local-ssl-server"
//   - Windows: "C:\bin\local-ssl-server.exe" → "local-ssl-server"
//   - Fallback: Empty args → "local-ssl-server"
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
