// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package pki provisions the local development certificate chain.
//
// The [Provisioner] makes sure a self-signed root CA exists on disk as a
// password protected PKCS#12 bundle. Existence of the bundle file is the only
// check: an existing bundle is reused without looking at its contents. On first
// generation the base directory is added to the working directory's .gitignore.
//
// [IssueLeaf] decodes that bundle and signs a fresh leaf certificate for a
// domain and its DNS alt names, returning PEM material ready for a TLS listener.
// The SAN list written into the certificate is the one read back from the
// signing request, and it must agree with the requested names.
//
// Certificate work is delegated to cfssl; PKCS#12 to go-pkcs12.
package pki
