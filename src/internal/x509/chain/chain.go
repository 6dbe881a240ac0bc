// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"errors"
	"sync"
	"time"

	x509certs "github.com/H0llyW00dzZ/local-ssl-server/src/internal/x509/certs"
)

// ErrEmptyChain indicates an operation on a chain without certificates.
var ErrEmptyChain = errors.New("x509chain: chain has no certificates")

// Validity window statuses reported by [Status].
const (
	StatusValid       = "valid"
	StatusExpiring    = "expiring"
	StatusExpired     = "expired"
	StatusNotYetValid = "not yet valid"
	StatusUnknown     = "unknown"
)

// ExpiringThreshold is how close to NotAfter a certificate is reported as expiring.
const ExpiringThreshold = 30 * 24 * time.Hour

// Chain manages [X.509] certificates ordered leaf first.
//
// [X.509]: https://grokipedia.com/page/X.509
type Chain struct {
	mu    sync.RWMutex
	Certs []*x509.Certificate
	*x509certs.Codec
}

// New creates a new Chain from a leaf and its issuers in signing order.
// Nil certificates are skipped.
func New(leaf *x509.Certificate, parents ...*x509.Certificate) *Chain {
	ch := &Chain{Codec: x509certs.New()}
	for _, cert := range append([]*x509.Certificate{leaf}, parents...) {
		if cert != nil {
			ch.Certs = append(ch.Certs, cert)
		}
	}
	return ch
}

// Leaf returns the first certificate, or nil for an empty chain.
func (ch *Chain) Leaf() *x509.Certificate {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return nil
	}
	return ch.Certs[0]
}

// IsSelfSigned checks if a certificate is self-signed.
func (ch *Chain) IsSelfSigned(cert *x509.Certificate) bool {
	return cert.CheckSignatureFrom(cert) == nil
}

// IsRootNode determines if a certificate is a root node in the chain.
func (ch *Chain) IsRootNode(cert *x509.Certificate) bool {
	return ch.IsSelfSigned(cert)
}

// VerifyChain verifies the leaf using the last certificate as the only root and
// the ones in between as intermediates. A non-empty dnsName is also checked
// against the leaf SANs. Chains produced here are for server authentication.
func (ch *Chain) VerifyChain(dnsName string) error {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return ErrEmptyChain
	}

	roots := x509.NewCertPool()
	roots.AddCert(ch.Certs[len(ch.Certs)-1])

	return ch.verify(roots, ch.Certs[1:], dnsName)
}

// VerifyAgainst verifies the leaf against an explicit trust anchor. Self-signed
// certificates presented in the chain are not trusted as roots.
func (ch *Chain) VerifyAgainst(root *x509.Certificate, dnsName string) error {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return ErrEmptyChain
	}

	roots := x509.NewCertPool()
	roots.AddCert(root)

	var intermediates []*x509.Certificate
	for _, cert := range ch.Certs[1:] {
		if !ch.IsSelfSigned(cert) {
			intermediates = append(intermediates, cert)
		}
	}

	return ch.verify(roots, intermediates, dnsName)
}

func (ch *Chain) verify(roots *x509.CertPool, intermediates []*x509.Certificate, dnsName string) error {
	pool := x509.NewCertPool()
	for _, cert := range intermediates {
		pool.AddCert(cert)
	}

	opts := x509.VerifyOptions{
		DNSName:       dnsName,
		Roots:         roots,
		Intermediates: pool,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	// Keep the verifier error as is; it carries the expiry or authority detail.
	_, err := ch.Certs[0].Verify(opts)
	return err
}

// Status classifies the certificate validity window at the given time.
func Status(cert *x509.Certificate, at time.Time) string {
	switch {
	case cert == nil:
		return StatusUnknown
	case at.Before(cert.NotBefore):
		return StatusNotYetValid
	case at.After(cert.NotAfter):
		return StatusExpired
	case cert.NotAfter.Sub(at) <= ExpiringThreshold:
		return StatusExpiring
	default:
		return StatusValid
	}
}

// findIssuerIndex returns the index of the certificate that signed the one at
// index i, or -1 when no certificate in the chain did. Callers hold ch.mu.
func (ch *Chain) findIssuerIndex(i int) int {
	cert := ch.Certs[i]
	for j := len(ch.Certs) - 1; j >= 0; j-- {
		if j == i {
			continue
		}
		if err := cert.CheckSignatureFrom(ch.Certs[j]); err == nil {
			return j
		}
	}
	return -1
}
