// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
	"github.com/cloudflare/cfssl/helpers"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrParsePrivateKey indicates a failure to parse a private key PEM block.
	ErrParsePrivateKey = errors.New("x509certs: failed to parse private key")

	// ErrMarshalPrivateKey indicates the key type cannot be encoded as PKCS#8.
	ErrMarshalPrivateKey = errors.New("x509certs: failed to marshal private key")
)

// Codec converts certificates and private keys between their parsed form and
// PEM, DER or PKCS7 encodings.
type Codec struct {
	certBlockType string
	keyBlockType  string
}

// New creates a new Codec with default block types.
func New() *Codec {
	return &Codec{
		certBlockType: "CERTIFICATE",
		keyBlockType:  "PRIVATE KEY",
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Codec) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// Decode decodes a single certificate from PEM, DER or a PKCS7 envelope.
// For PKCS7 the first certificate is returned.
func (c *Codec) Decode(data []byte) (*x509.Certificate, error) {
	if c.IsPEM(data) {
		block, _ := pem.Decode(data)
		if block.Type != c.certBlockType {
			return nil, ErrInvalidBlockType
		}
		data = block.Bytes
	}

	if cert, err := x509.ParseCertificate(data); err == nil {
		return cert, nil
	}

	certs, err := c.decodePKCS7(data)
	if err != nil {
		return nil, err
	}
	return certs[0], nil
}

// DecodeMultiple decodes every certificate in data. PEM input may hold several
// blocks; other input is tried as concatenated DER and then as PKCS7.
func (c *Codec) DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if !c.IsPEM(data) {
		if certs, err := x509.ParseCertificates(data); err == nil && len(certs) > 0 {
			return certs, nil
		}
		return c.decodePKCS7(data)
	}

	var certs []*x509.Certificate
	for len(data) > 0 {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != c.certBlockType {
			return nil, ErrInvalidBlockType
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, ErrParseCertificate
		}

		certs = append(certs, cert)
		data = rest
	}

	return certs, nil
}

// decodePKCS7 parses a PKCS7 envelope using Cloudflare's library.
func (c *Codec) decodePKCS7(data []byte) ([]*x509.Certificate, error) {
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil || p.ContentInfo != "SignedData" {
		return nil, ErrParseCertificate
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}
	return p.Content.SignedData.Certificates, nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Codec) EncodePEM(cert *x509.Certificate) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: c.certBlockType, Bytes: cert.Raw})
}

// EncodeDER encodes a certificate to DER format.
func (c *Codec) EncodeDER(cert *x509.Certificate) []byte { return cert.Raw }

// EncodeChainPEM encodes certificates in order, leaf first, as concatenated PEM blocks.
func (c *Codec) EncodeChainPEM(certs ...*x509.Certificate) []byte {
	var data []byte
	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}
	return data
}

// EncodeKeyPEM encodes a private key as an unencrypted PKCS#8 PEM block.
func (c *Codec) EncodeKeyPEM(key crypto.Signer) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshalPrivateKey, err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: c.keyBlockType, Bytes: der}), nil
}

// DecodeKeyPEM parses a PKCS#1, PKCS#8 or SEC1 private key PEM block.
func (c *Codec) DecodeKeyPEM(data []byte) (crypto.Signer, error) {
	if !c.IsPEM(data) {
		return nil, ErrInvalidPEMBlock
	}
	key, err := helpers.ParsePrivateKeyPEM(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsePrivateKey, err)
	}
	return key, nil
}

// Fingerprint returns the SHA-256 digest of the certificate DER as
// colon separated upper-case hex.
func Fingerprint(cert *x509.Certificate) string {
	sum := sha256.Sum256(cert.Raw)
	raw := strings.ToUpper(hex.EncodeToString(sum[:]))

	var b strings.Builder
	b.Grow(len(raw) + len(raw)/2)
	for i := 0; i < len(raw); i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(raw[i : i+2])
	}
	return b.String()
}
