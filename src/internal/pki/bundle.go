// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pki

import (
	"crypto"
	"crypto/x509"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/cloudflare/cfssl/csr"
	"github.com/cloudflare/cfssl/helpers"
	"github.com/cloudflare/cfssl/initca"
	"software.sslmate.com/src/go-pkcs12"
)

// Fixed identity of every generated root CA.
const (
	RootCommonName   = "Local SSL Server Root CA"
	RootCountry      = "US"
	RootState        = "New York"
	RootLocality     = "New York"
	RootOrganization = "Local SSL Server"
	RootOrgUnit      = "Root CA"
)

// RootBundle is the decoded content of the PKCS#12 root bundle.
type RootBundle struct {
	Key  crypto.Signer
	Cert *x509.Certificate
}

// rootRequest builds the cfssl request for a self-signed root valid for days.
func rootRequest(days int) *csr.CertificateRequest {
	return &csr.CertificateRequest{
		CN: RootCommonName,
		Names: []csr.Name{{
			C:  RootCountry,
			ST: RootState,
			L:  RootLocality,
			O:  RootOrganization,
			OU: RootOrgUnit,
		}},
		KeyRequest: csr.NewKeyRequest(),
		CA: &csr.CAConfig{
			Expiry: strconv.Itoa(days*24) + "h",
		},
	}
}

// NewRootBundle generates an ECDSA P-256 root key and a self-signed CA
// certificate valid for days.
func NewRootBundle(days int) (*RootBundle, error) {
	certPEM, _, keyPEM, err := initca.New(rootRequest(days))
	if err != nil {
		return nil, fmt.Errorf("pki: generate root: %w", err)
	}

	cert, err := helpers.ParseCertificatePEM(certPEM)
	if err != nil {
		return nil, fmt.Errorf("pki: parse root certificate: %w", err)
	}

	key, err := helpers.ParsePrivateKeyPEM(keyPEM)
	if err != nil {
		return nil, fmt.Errorf("pki: parse root key: %w", err)
	}

	return &RootBundle{Key: key, Cert: cert}, nil
}

// Encode packages the bundle as PKCS#12 encrypted under password.
func (b *RootBundle) Encode(password string) ([]byte, error) {
	data, err := pkcs12.Modern.Encode(b.Key, b.Cert, nil, password)
	if err != nil {
		return nil, fmt.Errorf("pki: encode root bundle: %w", err)
	}
	return data, nil
}

// DecodeRootBundle decodes PKCS#12 data. A wrong password or corrupt data
// yields ErrDecodeBundle; a key that cannot sign or does not match the
// certificate is rejected as well.
func DecodeRootBundle(data []byte, password string) (*RootBundle, error) {
	key, cert, err := pkcs12.Decode(data, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeBundle, err)
	}

	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotSigner, key)
	}

	pub, ok := signer.Public().(interface{ Equal(crypto.PublicKey) bool })
	if !ok || !pub.Equal(cert.PublicKey) {
		return nil, ErrKeyMismatch
	}

	return &RootBundle{Key: signer, Cert: cert}, nil
}

// ReadRootBundle reads and decodes the bundle at path.
func ReadRootBundle(path, password string) (*RootBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBundleMissing, path)
		}
		return nil, fmt.Errorf("pki: read root bundle: %w", err)
	}
	return DecodeRootBundle(data, password)
}
