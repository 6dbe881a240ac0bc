// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pki

import (
	"context"
	"os"
	"path/filepath"

	"github.com/H0llyW00dzZ/local-ssl-server/src/logger"
)

// DefaultRootDays is the lifetime of a generated root when RootOptions.Days is zero.
const DefaultRootDays = 360

// generateRoot creates the root bundle; tests replace it to count generations.
var generateRoot = NewRootBundle

// RootOptions locates and protects the root bundle.
type RootOptions struct {
	BasePath string // directory holding the bundle
	Filename string // bundle file name inside BasePath
	Password string // PKCS#12 passphrase
	Days     int    // validity of a newly generated root
	WorkDir  string // directory whose .gitignore is patched; empty means the process cwd
}

// BundlePath returns BasePath/Filename.
func (o RootOptions) BundlePath() string { return filepath.Join(o.BasePath, o.Filename) }

// Provisioner ensures the root bundle exists.
type Provisioner struct {
	opts RootOptions
	log  logger.Logger
}

// NewProvisioner returns a Provisioner. A nil log discards output.
func NewProvisioner(opts RootOptions, log logger.Logger) *Provisioner {
	if opts.Days <= 0 {
		opts.Days = DefaultRootDays
	}
	if log == nil {
		log = logger.NewCLILogger("", true)
	}
	return &Provisioner{opts: opts, log: log}
}

// EnsureRoot is shorthand for NewProvisioner(opts, log).EnsureRoot(ctx).
func EnsureRoot(ctx context.Context, opts RootOptions, log logger.Logger) (string, error) {
	return NewProvisioner(opts, log).EnsureRoot(ctx)
}

// EnsureRoot returns the bundle path, generating the root first when no file
// exists there. An existing file is reused as is. After a generation the base
// directory is added to .gitignore when possible.
func (p *Provisioner) EnsureRoot(ctx context.Context) (string, error) {
	path := p.opts.BundlePath()

	ok, err := exists(path)
	if err != nil {
		return "", err
	}
	if ok {
		p.log.Printf("Using existing p12: %s", path)
		return path, nil
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	bundle, err := generateRoot(p.opts.Days)
	if err != nil {
		return "", err
	}

	data, err := bundle.Encode(p.opts.Password)
	if err != nil {
		return "", err
	}

	if err := WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	p.log.Printf("Created p12: %s", path)

	p.patchGitignore()

	return path, nil
}

// patchGitignore is best effort; failures are logged as warnings.
func (p *Provisioner) patchGitignore() {
	workDir := p.opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			p.log.Warnf("Skipping %s: %v", GitignoreName, err)
			return
		}
		workDir = wd
	}

	entry, added, err := PatchGitignore(workDir, p.opts.BasePath)
	switch {
	case err != nil:
		p.log.Warnf("Could not update %s: %v", GitignoreName, err)
	case added:
		p.log.Infof("Added %s to %s", entry, GitignoreName)
	}
}
