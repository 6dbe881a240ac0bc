// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/local-ssl-server/src/config"
	"github.com/H0llyW00dzZ/local-ssl-server/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/local-ssl-server/src/internal/pki"
	"github.com/H0llyW00dzZ/local-ssl-server/src/logger"
)

// app carries state resolved before any subcommand runs.
type app struct {
	version    string
	configPath string
	flags      config.Config
	cfg        *config.Config
	log        logger.Logger
}

// NewRootCommand builds the command tree. Running it without a subcommand serves.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:               posix.ExecutableName(),
		Short:             "Local development HTTPS with a self-signed root CA",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.prepare,
		RunE:              a.runServe,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (.json, .yaml, .yml)")
	pf.StringVarP(&a.flags.Domain, "domain", "d", defaults.Domain, "domain the leaf certificate is issued for")
	pf.StringSliceVar(&a.flags.AltNames, "alt-name", nil, "DNS alt name for the leaf (repeatable, default www.<domain>)")
	pf.StringVar(&a.flags.BasePath, "base-path", defaults.BasePath, "directory holding the root bundle")
	pf.StringVar(&a.flags.P12Filename, "p12-filename", defaults.P12Filename, "root bundle file name")
	pf.StringVar(&a.flags.P12KeyFilename, "p12-key-filename", defaults.P12KeyFilename, "exported leaf key file name")
	pf.StringVar(&a.flags.P12CertFilename, "p12-cert-filename", defaults.P12CertFilename, "exported leaf certificate file name")
	pf.StringVar(&a.flags.P12Password, "password", defaults.P12Password, "root bundle passphrase")
	pf.IntVarP(&a.flags.Port, "port", "p", defaults.Port, "HTTPS listener port")
	pf.BoolVarP(&a.flags.Silent, "silent", "s", defaults.Silent, "suppress console output")
	pf.StringVar(&a.flags.LogSlug, "log-slug", defaults.LogSlug, "prefix of console lines")
	pf.StringVar(&a.flags.LogFormat, "log-format", defaults.LogFormat, "log format: text or json")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", defaults.Verbose, "print signing request details and crypto library logs")

	rootCmd.AddCommand(
		a.newServeCommand(),
		a.newInitCommand(),
		a.newIssueCommand(),
		a.newInspectCommand(),
		a.newVerifyCommand(),
		a.newMCPCommand(),
	)

	return rootCmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context, version string) error {
	return NewRootCommand(version).ExecuteContext(ctx)
}

// prepare loads the configuration, applies explicitly set flags, validates it
// and builds the logger.
func (a *app) prepare(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	a.applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	// Stdout is the protocol stream for mcp.
	out := cmd.OutOrStdout()
	if cmd.Name() == "mcp" {
		out = cmd.ErrOrStderr()
		if cfg.LogFormat == logger.FormatText {
			cfg.LogFormat = logger.FormatJSON
		}
	}
	a.log = logger.New(cfg.LogFormat, out, cfg.LogSlug, cfg.Silent)

	pki.SetLibraryLogging(cfg.Verbose)

	return nil
}

// applyFlags copies flags the user actually set over cfg.
func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("domain") {
		cfg.Domain = a.flags.Domain
	}
	if changed("alt-name") {
		cfg.AltNames = a.flags.AltNames
	}
	if changed("base-path") {
		cfg.BasePath = a.flags.BasePath
	}
	if changed("p12-filename") {
		cfg.P12Filename = a.flags.P12Filename
	}
	if changed("p12-key-filename") {
		cfg.P12KeyFilename = a.flags.P12KeyFilename
	}
	if changed("p12-cert-filename") {
		cfg.P12CertFilename = a.flags.P12CertFilename
	}
	if changed("password") {
		cfg.P12Password = a.flags.P12Password
	}
	if changed("port") {
		cfg.Port = a.flags.Port
	}
	if changed("silent") {
		cfg.Silent = a.flags.Silent
	}
	if changed("log-slug") {
		cfg.LogSlug = a.flags.LogSlug
	}
	if changed("log-format") {
		cfg.LogFormat = a.flags.LogFormat
	}
	if changed("verbose") {
		cfg.Verbose = a.flags.Verbose
	}
}

func (a *app) rootOptions() pki.RootOptions {
	return pki.RootOptions{
		BasePath: a.cfg.BasePath,
		Filename: a.cfg.P12Filename,
		Password: a.cfg.P12Password,
		Days:     a.cfg.RootDays,
	}
}

// ensureRoot runs the provisioner with the resolved configuration.
func (a *app) ensureRoot(ctx context.Context) (string, error) {
	return pki.EnsureRoot(ctx, a.rootOptions(), a.log)
}

// issueLeaf ensures the root and signs a leaf for the configured domain.
func (a *app) issueLeaf(ctx context.Context) (*pki.LeafCredential, error) {
	bundlePath, err := a.ensureRoot(ctx)
	if err != nil {
		return nil, err
	}

	return pki.IssueLeaf(ctx, pki.LeafOptions{
		Domain:     a.cfg.Domain,
		AltNames:   a.cfg.AltNames,
		BundlePath: bundlePath,
		Password:   a.cfg.P12Password,
		Days:       a.cfg.LeafDays,
		Verbose:    a.cfg.Verbose,
	}, a.log)
}

// readRoot ensures the root and returns the decoded bundle.
func (a *app) readRoot(ctx context.Context) (*pki.RootBundle, error) {
	bundlePath, err := a.ensureRoot(ctx)
	if err != nil {
		return nil, err
	}
	return pki.ReadRootBundle(bundlePath, a.cfg.P12Password)
}

func writeOut(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
