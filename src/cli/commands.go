// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/local-ssl-server/src/internal/pki"
	x509certs "github.com/H0llyW00dzZ/local-ssl-server/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/local-ssl-server/src/internal/x509/chain"
	mcpserver "github.com/H0llyW00dzZ/local-ssl-server/src/mcp-server"
	"github.com/H0llyW00dzZ/local-ssl-server/src/server"
)

const (
	formatTree  = "tree"
	formatTable = "table"
	formatJSON  = "json"

	defaultRemoteTimeout = 10 * time.Second
)

var (
	// ErrUnknownFormat is returned by inspect for an unsupported --format value.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrNoTrustAnchor is returned by verify --trust-last when the file holds only the leaf.
	ErrNoTrustAnchor = errors.New("certificate file holds no root besides the leaf")
)

func (a *app) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Provision the root, issue a leaf and serve HTTPS until interrupted",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	leaf, err := a.issueLeaf(ctx)
	if err != nil {
		return err
	}

	cert, err := leaf.TLSCertificate()
	if err != nil {
		return err
	}

	a.log.Infof("Serving %s (alt names: %v)", a.cfg.Domain, leaf.Cert.DNSNames)

	return server.New(server.Options{
		Addr:        a.cfg.Addr(),
		Certificate: cert,
	}, a.log).Serve(ctx)
}

func (a *app) newInitCommand() *cobra.Command {
	var (
		export string
		der    bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the root CA bundle if it does not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := a.readRoot(cmd.Context())
			if err != nil {
				return err
			}
			if export == "" {
				return nil
			}

			codec := x509certs.New()
			data := codec.EncodePEM(root.Cert)
			if der {
				data = codec.EncodeDER(root.Cert)
			}
			if export == "-" {
				return writeOut(cmd.OutOrStdout(), data)
			}
			if err := pki.WriteFileAtomic(export, data); err != nil {
				return err
			}
			a.log.Infof("Exported root certificate: %s", export)
			return nil
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "write the root certificate PEM to FILE (- for stdout)")
	cmd.Flags().BoolVar(&der, "der", false, "export DER instead of PEM")
	return cmd
}

func (a *app) newIssueCommand() *cobra.Command {
	var (
		toStdout    bool
		printConfig bool
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a leaf certificate and write its key and chain as PEM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			leaf, err := a.issueLeaf(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if printConfig {
				if err := writeOut(out, []byte(leaf.Config.String())); err != nil {
					return err
				}
			}

			if toStdout {
				if err := writeOut(out, leaf.KeyPEM); err != nil {
					return err
				}
				return writeOut(out, leaf.ChainPEM)
			}

			if err := pki.WriteFileAtomic(a.cfg.KeyPath(), leaf.KeyPEM); err != nil {
				return err
			}
			if err := pki.WriteFileAtomic(a.cfg.CertPath(), leaf.ChainPEM); err != nil {
				return err
			}
			a.log.Infof("Wrote key: %s", a.cfg.KeyPath())
			a.log.Infof("Wrote certificate: %s", a.cfg.CertPath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the key and chain instead of writing files")
	cmd.Flags().BoolVar(&printConfig, "print-config", false, "print the extension configuration used for signing")
	return cmd
}

func (a *app) newInspectCommand() *cobra.Command {
	var (
		format  string
		leaf    bool
		remote  string
		dnsName string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the root (and optionally a leaf or a running server) as a chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var (
				ch  *x509chain.Chain
				err error
			)
			switch {
			case remote != "":
				ch, err = a.remoteChain(ctx, remote, dnsName, timeout)
			case leaf:
				var cred *pki.LeafCredential
				if cred, err = a.issueLeaf(ctx); err == nil {
					ch = x509chain.New(cred.Cert, cred.Root)
				}
			default:
				var root *pki.RootBundle
				if root, err = a.readRoot(ctx); err == nil {
					ch = x509chain.New(root.Cert)
				}
			}
			if err != nil {
				return err
			}

			return render(cmd, ch, format)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&format, "format", "f", formatTree, "output format: tree, table or json")
	f.BoolVar(&leaf, "leaf", false, "issue a fresh leaf and show it with the root")
	f.StringVar(&remote, "remote", "", "fetch the chain from a running server at host:port and verify it")
	f.StringVar(&dnsName, "dns", "", "hostname to check when verifying a remote chain")
	f.DurationVar(&timeout, "timeout", defaultRemoteTimeout, "dial timeout for --remote")
	return cmd
}

// remoteChain fetches the chain presented at hostport and verifies it against the local root.
func (a *app) remoteChain(ctx context.Context, hostport, dnsName string, timeout time.Duration) (*x509chain.Chain, error) {
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return nil, fmt.Errorf("invalid remote address %q: %w", hostport, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid remote port %q: %w", portStr, err)
	}

	root, err := a.readRoot(ctx)
	if err != nil {
		return nil, err
	}

	ch, err := x509chain.FetchRemoteChain(ctx, host, port, timeout)
	if err != nil {
		return nil, err
	}

	if err := ch.VerifyAgainst(root.Cert, dnsName); err != nil {
		return nil, err
	}
	a.log.Infof("Chain from %s verified against %s", hostport, root.Cert.Subject.CommonName)

	return ch, nil
}

func render(cmd *cobra.Command, ch *x509chain.Chain, format string) error {
	out := cmd.OutOrStdout()

	switch format {
	case formatTree:
		return writeOut(out, []byte(ch.RenderASCIITree()))
	case formatTable:
		return writeOut(out, []byte(ch.RenderTable()))
	case formatJSON:
		data, err := ch.ToVisualizationJSON()
		if err != nil {
			return err
		}
		return writeOut(out, append(data, '\n'))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (a *app) newVerifyCommand() *cobra.Command {
	var (
		file      string
		dnsName   string
		trustLast bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify that a certificate chains to the local root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read certificate file: %w", err)
			}

			certs, err := x509certs.New().DecodeMultiple(data)
			if err != nil {
				return err
			}
			if len(certs) == 0 {
				return x509certs.ErrInvalidPEMBlock
			}

			ch := x509chain.New(certs[0], certs[1:]...)

			var anchor *x509.Certificate
			if trustLast {
				if len(certs) < 2 {
					return ErrNoTrustAnchor
				}
				anchor = certs[len(certs)-1]
				err = ch.VerifyChain(dnsName)
			} else {
				var root *pki.RootBundle
				if root, err = a.readRoot(cmd.Context()); err != nil {
					return err
				}
				anchor = root.Cert
				err = ch.VerifyAgainst(anchor, dnsName)
			}
			if err != nil {
				return err
			}

			leaf := ch.Leaf()
			a.log.Infof("%s chains to %s", leaf.Subject.CommonName, anchor.Subject.CommonName)
			return writeOut(cmd.OutOrStdout(), []byte(x509certs.Fingerprint(leaf)+"\n"))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "certificate file (PEM, DER or PKCS#7)")
	cmd.Flags().StringVar(&dnsName, "dns", "", "hostname the certificate must be valid for")
	cmd.Flags().BoolVar(&trustLast, "trust-last", false, "trust the last certificate in the file instead of the local root")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the provisioning tools over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context(), a.cfg, a.version, cmd.InOrStdin(), cmd.OutOrStdout(), a.log)
		},
	}
}
