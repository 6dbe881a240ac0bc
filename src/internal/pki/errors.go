// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pki

import "errors"

var (
	// ErrDecodeBundle indicates a wrong passphrase or a corrupt root bundle.
	ErrDecodeBundle = errors.New("pki: failed to decode root bundle")

	// ErrNotSigner indicates the bundle key cannot sign certificates.
	ErrNotSigner = errors.New("pki: bundle key is not a signer")

	// ErrKeyMismatch indicates the bundle key does not belong to the bundle certificate.
	ErrKeyMismatch = errors.New("pki: bundle key does not match certificate")

	// ErrInvalidDomain indicates a domain or alt name that is not a valid DNS name.
	ErrInvalidDomain = errors.New("pki: invalid domain name")

	// ErrAltNamesMismatch indicates the signing request SANs differ from the requested alt names.
	ErrAltNamesMismatch = errors.New("pki: signing request alt names do not match request")

	// ErrUnknownUsage indicates a key usage name the signer does not understand.
	ErrUnknownUsage = errors.New("pki: unknown key usage")

	// ErrBundleMissing indicates no root bundle exists at the given path.
	ErrBundleMissing = errors.New("pki: root bundle not found")

	// ErrRootExpired indicates the root certificate can no longer issue leaves.
	ErrRootExpired = errors.New("pki: root certificate has expired")
)
