// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"path/filepath"
	"strings"
)

// TopLevelEntry reports the first path component of dir relative to root.
//
// Both paths are made absolute and cleaned first. ok is false when dir is
// root itself or lies outside of it.
//
// Examples:
//   - root "/work", dir "/work/.local-ssl-server" → ".local-ssl-server", true
//   - root "/work", dir "/work/certs/dev"         → "certs", true
//   - root "/work", dir "/tmp/certs"              → "", false
func TopLevelEntry(root, dir string) (entry string, ok bool) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	rel, err := filepath.Rel(absRoot, absDir)
	if err != nil || rel == "." {
		return "", false
	}

	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}

	first, _, _ := strings.Cut(rel, "/")
	return first, true
}
