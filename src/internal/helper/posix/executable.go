// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"strings"
)

// defaultExecutableName is used when os.Args carries no program name.
const defaultExecutableName = "local-ssl-server"

// ExecutableName returns the executable name without extension, cross-platform compatible.
// Both '/' and '\' are treated as separators so a Windows path seen on a Unix host
// still yields a clean name.
func ExecutableName() string { return executableName(os.Args) }

func executableName(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return defaultExecutableName
	}

	parts := strings.FieldsFunc(args[0], func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return defaultExecutableName
	}

	return strings.TrimSuffix(parts[len(parts)-1], ".exe")
}
