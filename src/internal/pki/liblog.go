// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pki

import cfssllog "github.com/cloudflare/cfssl/log"

// cfssl writes its own [INFO] lines to stderr; keep them out of the console
// unless asked for.
func init() { SetLibraryLogging(false) }

// SetLibraryLogging enables cfssl's internal log output when verbose is true.
// Otherwise only cfssl errors are printed.
func SetLibraryLogging(verbose bool) {
	cfssllog.Level = cfssllog.LevelError
	if verbose {
		cfssllog.Level = cfssllog.LevelDebug
	}
}
