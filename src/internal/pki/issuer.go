// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pki

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/cloudflare/cfssl/config"
	"github.com/cloudflare/cfssl/csr"
	"github.com/cloudflare/cfssl/helpers"
	"github.com/cloudflare/cfssl/signer"
	"github.com/cloudflare/cfssl/signer/local"

	x509certs "github.com/H0llyW00dzZ/local-ssl-server/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/local-ssl-server/src/logger"
)

// DefaultLeafDays is the leaf lifetime when LeafOptions.Days is zero.
const DefaultLeafDays = 999

// LeafOptions describes one leaf issuance.
type LeafOptions struct {
	Domain     string
	AltNames   []string // empty means www.<Domain>
	BundlePath string
	Password   string
	Days       int
	Verbose    bool // log signing request metadata
}

// LeafCredential is the issued leaf key and certificate, PEM encoded.
type LeafCredential struct {
	KeyPEM   []byte
	CertPEM  []byte
	ChainPEM []byte // leaf followed by root
	Cert     *x509.Certificate
	Root     *x509.Certificate
	Config   *ExtensionConfig
}

// TLSCertificate returns the credential as a server certificate presenting the full chain.
func (c *LeafCredential) TLSCertificate() (tls.Certificate, error) {
	cert, err := tls.X509KeyPair(c.ChainPEM, c.KeyPEM)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("pki: load key pair: %w", err)
	}
	cert.Leaf = c.Cert
	return cert, nil
}

// IssueLeaf decodes the root bundle and signs a new leaf for opts.Domain.
//
// A fresh key is generated for every leaf. The DNS names read back from the
// signing request are the ones written into the extension config and the
// certificate; they must match the requested alt names. The validity is
// capped so the leaf never outlives the root.
func IssueLeaf(ctx context.Context, opts LeafOptions, log logger.Logger) (*LeafCredential, error) {
	if log == nil {
		log = logger.NewCLILogger("", true)
	}

	domain, err := NormalizeDomain(opts.Domain)
	if err != nil {
		return nil, err
	}
	altNames, err := altNamesFor(domain, opts.AltNames)
	if err != nil {
		return nil, err
	}

	bundle, err := ReadRootBundle(opts.BundlePath, opts.Password)
	if err != nil {
		return nil, err
	}

	expiry, err := leafExpiry(bundle.Cert, opts.Days, time.Now())
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	csrPEM, sec1PEM, err := csr.ParseRequest(&csr.CertificateRequest{
		CN:         domain,
		Names:      []csr.Name{{O: RootOrganization}},
		Hosts:      altNames,
		KeyRequest: csr.NewKeyRequest(),
	})
	if err != nil {
		return nil, fmt.Errorf("pki: create signing request: %w", err)
	}

	codec := x509certs.New()
	leafKey, err := codec.DecodeKeyPEM(sec1PEM)
	if err != nil {
		return nil, err
	}
	keyPEM, err := codec.EncodeKeyPEM(leafKey)
	if err != nil {
		return nil, err
	}

	req, err := helpers.ParseCSRPEM(csrPEM)
	if err != nil {
		return nil, fmt.Errorf("pki: parse signing request: %w", err)
	}
	if !sameNames(req.DNSNames, altNames) {
		return nil, fmt.Errorf("%w: requested %v, got %v", ErrAltNamesMismatch, altNames, req.DNSNames)
	}
	if opts.Verbose {
		log.Infof("CSR subject=%q dns=%v", req.Subject.String(), req.DNSNames)
	}

	ext := NewExtensionConfig(req.DNSNames)
	profile, err := ext.SigningProfile(expiry)
	if err != nil {
		return nil, err
	}

	s, err := local.NewSigner(bundle.Key, bundle.Cert, signer.DefaultSigAlgo(bundle.Key), &config.Signing{Default: profile})
	if err != nil {
		return nil, fmt.Errorf("pki: create signer: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	certPEM, err := s.Sign(signer.SignRequest{
		Request: string(csrPEM),
		Hosts:   req.DNSNames,
	})
	if err != nil {
		return nil, fmt.Errorf("pki: sign leaf: %w", err)
	}

	cert, err := helpers.ParseCertificatePEM(certPEM)
	if err != nil {
		return nil, fmt.Errorf("pki: parse leaf: %w", err)
	}

	log.Printf("Issued certificate for %s (%d alt names, expires %s)", domain, len(cert.DNSNames), cert.NotAfter.Format(time.DateOnly))

	return &LeafCredential{
		KeyPEM:   keyPEM,
		CertPEM:  certPEM,
		ChainPEM: codec.EncodeChainPEM(cert, bundle.Cert),
		Cert:     cert,
		Root:     bundle.Cert,
		Config:   ext,
	}, nil
}

// leafExpiry returns the leaf lifetime for days, capped at the remaining root lifetime.
func leafExpiry(root *x509.Certificate, days int, now time.Time) (time.Duration, error) {
	if days <= 0 {
		days = DefaultLeafDays
	}

	remaining := root.NotAfter.Sub(now)
	if remaining <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrRootExpired, root.NotAfter.Format(time.RFC3339))
	}

	expiry := time.Duration(days) * 24 * time.Hour
	if expiry > remaining {
		expiry = remaining.Truncate(time.Minute)
		if expiry <= 0 {
			return 0, fmt.Errorf("%w: %s", ErrRootExpired, root.NotAfter.Format(time.RFC3339))
		}
	}
	return expiry, nil
}
