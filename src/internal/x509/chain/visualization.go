// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	x509certs "github.com/H0llyW00dzZ/local-ssl-server/src/internal/x509/certs"
)

// RenderASCIITree renders the certificate chain as an ASCII tree diagram.
//
// Each line shows a status marker, the subject common name, the role and,
// for certificates carrying SANs, the DNS names.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) RenderASCIITree() string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return "No certificates in chain"
	}

	now := time.Now()

	var result strings.Builder
	for i, cert := range ch.Certs {
		connector := "├── "
		if i == len(ch.Certs)-1 {
			connector = "└── "
		}

		statusIcon := "✓"
		if s := Status(cert, now); s != StatusValid {
			statusIcon = "✗"
			if s == StatusExpiring {
				statusIcon = "!"
			}
		}

		certInfo := fmt.Sprintf("[%s] %s (%s)", statusIcon, cert.Subject.CommonName, ch.getCertificateRole(i))
		if len(cert.DNSNames) > 0 {
			certInfo += " [" + strings.Join(cert.DNSNames, ", ") + "]"
		}

		result.WriteString(connector + certInfo + "\n")
	}

	return result.String()
}

// RenderTable renders the certificate chain as a markdown table with role,
// subject, issuer, expiry, key and status columns.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) RenderTable() string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key", "Status"})

	now := time.Now()
	rows := make([][]string, 0, len(ch.Certs))
	for i, cert := range ch.Certs {
		algo, size := publicKeyInfo(cert)
		key := algo
		if size > 0 {
			key = fmt.Sprintf("%d-bit %s", size, algo)
		}

		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			ch.getCertificateRole(i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotAfter.Format("2006-01-02"),
			key,
			Status(cert, now),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// CertificateVizData is the JSON shape of one certificate.
type CertificateVizData struct {
	Index              int       `json:"index"`
	Role               string    `json:"role"`
	Subject            string    `json:"subject"`
	Issuer             string    `json:"issuer"`
	SerialNumber       string    `json:"serialNumber"`
	Fingerprint        string    `json:"fingerprintSHA256"`
	DNSNames           []string  `json:"dnsNames,omitempty"`
	SignatureAlgorithm string    `json:"signatureAlgorithm"`
	PublicKeyAlgorithm string    `json:"publicKeyAlgorithm"`
	KeySize            int       `json:"keySize"`
	NotBefore          time.Time `json:"notBefore"`
	NotAfter           time.Time `json:"notAfter"`
	IsCA               bool      `json:"isCA"`
	Status             string    `json:"status"`
}

// RelationshipData links a certificate to the one that signed it.
type RelationshipData struct {
	FromIndex int    `json:"fromIndex"`
	ToIndex   int    `json:"toIndex"`
	Type      string `json:"type"`
}

// VisualizationData is the JSON document produced by [Chain.ToVisualizationJSON].
type VisualizationData struct {
	Timestamp     string               `json:"timestamp"`
	ChainLength   int                  `json:"chainLength"`
	Certificates  []CertificateVizData `json:"certificates"`
	Relationships []RelationshipData   `json:"relationships"`
}

// ToVisualizationJSON converts the certificate chain to indented JSON. Signing
// relationships are derived from actual signatures, not chain position.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) ToVisualizationJSON() ([]byte, error) {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return nil, ErrEmptyChain
	}

	now := time.Now()
	data := VisualizationData{
		Timestamp:     now.UTC().Format(time.RFC3339),
		ChainLength:   len(ch.Certs),
		Certificates:  make([]CertificateVizData, len(ch.Certs)),
		Relationships: make([]RelationshipData, 0, len(ch.Certs)),
	}

	for i, cert := range ch.Certs {
		algo, size := publicKeyInfo(cert)
		data.Certificates[i] = CertificateVizData{
			Index:              i,
			Role:               ch.getCertificateRole(i),
			Subject:            cert.Subject.CommonName,
			Issuer:             cert.Issuer.CommonName,
			SerialNumber:       cert.SerialNumber.String(),
			Fingerprint:        x509certs.Fingerprint(cert),
			DNSNames:           cert.DNSNames,
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKeyAlgorithm: algo,
			KeySize:            size,
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
			Status:             Status(cert, now),
		}

		if ch.IsSelfSigned(cert) {
			data.Relationships = append(data.Relationships, RelationshipData{FromIndex: i, ToIndex: i, Type: "self_signed"})
			continue
		}
		if j := ch.findIssuerIndex(i); j >= 0 {
			data.Relationships = append(data.Relationships, RelationshipData{FromIndex: i, ToIndex: j, Type: "signed_by"})
		}
	}

	return json.MarshalIndent(data, "", "  ")
}

func publicKeyInfo(cert *x509.Certificate) (string, int) {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return "RSA", pub.Size() * 8
	case *ecdsa.PublicKey:
		return "ECDSA", pub.Curve.Params().BitSize
	case ed25519.PublicKey:
		return "Ed25519", 256
	default:
		return "unknown", 0
	}
}

// getCertificateRole determines the role of a certificate in the chain.
func (ch *Chain) getCertificateRole(index int) string {
	total := len(ch.Certs)
	switch {
	case total == 1 && ch.Certs[0].IsCA:
		return "Root CA Certificate"
	case total == 1:
		return "Self-Signed Certificate"
	case index == 0:
		return "End-Entity (Server/Leaf) Certificate"
	case index == total-1 && ch.IsRootNode(ch.Certs[index]):
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}
