// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain works with the short [X.509] chains produced by the local SSL
// server: a leaf signed directly by a self-signed root. It provides capabilities to:
//   - Verify a chain against the chain's own root or an explicit trust anchor.
//   - Report each certificate's validity window status.
//   - Render a chain as an ASCII tree, a markdown table or JSON.
//   - Fetch the chain a running TLS listener presents.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509chain
