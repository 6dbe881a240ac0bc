// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs encodes and decodes the [X.509] material handled by the local
// SSL server: certificates in [PEM], DER or [PKCS7] form, certificate chains, and
// PKCS#8 private keys. The provisioner, the issuer and the inspect command all
// read and write PEM through this package so block types stay consistent.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
