// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pki

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/H0llyW00dzZ/local-ssl-server/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/local-ssl-server/src/internal/helper/posix"
)

// GitignoreName is the file patched in the working directory.
const GitignoreName = ".gitignore"

// PatchGitignore appends the first path component of basePath, relative to
// workDir, to workDir/.gitignore. Nothing happens when basePath is not inside
// workDir, when the file does not exist, or when a line already equals the
// entry. It reports the entry and whether a line was added.
func PatchGitignore(workDir, basePath string) (entry string, added bool, err error) {
	entry, ok := posix.TopLevelEntry(workDir, basePath)
	if !ok {
		return "", false, nil
	}

	path := filepath.Join(workDir, GitignoreName)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entry, false, nil
		}
		return entry, false, fmt.Errorf("pki: open %s: %w", GitignoreName, err)
	}
	defer f.Close()

	buf := gc.Default.Get()
	defer gc.Default.Put(buf)

	if _, err := buf.ReadFrom(f); err != nil {
		return entry, false, fmt.Errorf("pki: read %s: %w", GitignoreName, err)
	}

	content := buf.Bytes()
	if hasLine(content, entry) {
		return entry, false, nil
	}

	line := entry + "\n"
	if len(content) > 0 && content[len(content)-1] != '\n' {
		line = "\n" + line
	}

	if _, err := f.WriteString(line); err != nil {
		return entry, false, fmt.Errorf("pki: append %s: %w", GitignoreName, err)
	}

	return entry, true, nil
}

// hasLine reports whether any line equals entry, ignoring surrounding blanks and a trailing \r.
func hasLine(content []byte, entry string) bool {
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 4096), len(content)+1)
	for sc.Scan() {
		if strings.TrimSpace(strings.TrimSuffix(sc.Text(), "\r")) == entry {
			return true
		}
	}
	return false
}
