// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// ErrNoPeerCertificates indicates the server completed a handshake without presenting certificates.
var ErrNoPeerCertificates = errors.New("x509chain: no certificates received from server")

// FetchRemoteChain establishes a TLS connection to the target host and
// constructs a chain using the certificates presented during the handshake.
// The handshake sends host as SNI and does not verify; callers decide trust
// with [Chain.VerifyAgainst].
func FetchRemoteChain(ctx context.Context, host string, port int, timeout time.Duration) (*Chain, error) {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		// Only the presented chain is wanted here.
		Config: &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec
			ServerName:         host,
			MinVersion:         tls.VersionTLS12,
		},
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	peerCerts := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(peerCerts) == 0 {
		return nil, ErrNoPeerCertificates
	}

	return New(peerCerts[0], peerCerts[1:]...), nil
}
