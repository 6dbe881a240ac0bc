// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pki

import (
	"fmt"
	"strings"
	"time"

	"github.com/cloudflare/cfssl/config"

	"github.com/H0llyW00dzZ/local-ssl-server/src/internal/helper/gc"
)

// Key usage names in OpenSSL spelling.
const (
	UsageNonRepudiation   = "nonRepudiation"
	UsageDigitalSignature = "digitalSignature"
	UsageKeyEncipherment  = "keyEncipherment"
	UsageServerAuth       = "serverAuth"
	UsageClientAuth       = "clientAuth"
)

// opensslToCFSSL maps OpenSSL usage names to cfssl profile usage names.
var opensslToCFSSL = map[string]string{
	UsageNonRepudiation:   "content commitment",
	UsageDigitalSignature: "digital signature",
	UsageKeyEncipherment:  "key encipherment",
	"keyAgreement":        "key agreement",
	"dataEncipherment":    "data encipherment",
	UsageServerAuth:       "server auth",
	UsageClientAuth:       "client auth",
}

// ExtensionConfig is the v3 extension set applied to a leaf certificate.
type ExtensionConfig struct {
	BasicConstraintsCA bool
	KeyUsage           []string
	ExtKeyUsage        []string
	AltNames           []string
}

// NewExtensionConfig returns the leaf defaults for the given DNS alt names.
func NewExtensionConfig(altNames []string) *ExtensionConfig {
	return &ExtensionConfig{
		KeyUsage:    []string{UsageNonRepudiation, UsageDigitalSignature, UsageKeyEncipherment},
		ExtKeyUsage: []string{UsageServerAuth},
		AltNames:    append([]string(nil), altNames...),
	}
}

// String renders the OpenSSL configuration block:
//
//	basicConstraints=CA:FALSE
//	keyUsage = nonRepudiation, digitalSignature, keyEncipherment
//	extendedKeyUsage = serverAuth
//	subjectAltName = @alt_names
//
//	[alt_names]
//	DNS.0 = www.example.com
func (e *ExtensionConfig) String() string {
	out, _ := gc.With(func(buf gc.Buffer) error {
		ca := "FALSE"
		if e.BasicConstraintsCA {
			ca = "TRUE"
		}
		buf.WriteString("basicConstraints=CA:" + ca + "\n")
		if len(e.KeyUsage) > 0 {
			buf.WriteString("keyUsage = " + strings.Join(e.KeyUsage, ", ") + "\n")
		}
		if len(e.ExtKeyUsage) > 0 {
			buf.WriteString("extendedKeyUsage = " + strings.Join(e.ExtKeyUsage, ", ") + "\n")
		}
		buf.WriteString("subjectAltName = @alt_names\n\n[alt_names]\n")
		for i, name := range e.AltNames {
			fmt.Fprintf(buf, "DNS.%d = %s\n", i, name)
		}
		return nil
	})
	return string(out)
}

// SigningProfile maps the extensions to a cfssl signing profile valid for expiry.
func (e *ExtensionConfig) SigningProfile(expiry time.Duration) (*config.SigningProfile, error) {
	usages := make([]string, 0, len(e.KeyUsage)+len(e.ExtKeyUsage))
	for _, u := range append(append([]string(nil), e.KeyUsage...), e.ExtKeyUsage...) {
		mapped, ok := opensslToCFSSL[u]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownUsage, u)
		}
		usages = append(usages, mapped)
	}

	profile := &config.SigningProfile{
		Usage:        usages,
		Expiry:       expiry,
		ExpiryString: expiry.String(),
	}
	profile.CAConstraint.IsCA = e.BasicConstraintsCA

	return profile, nil
}
