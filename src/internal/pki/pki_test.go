// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pki_test

import (
	"context"
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/local-ssl-server/src/internal/pki"
)

const testPassword = "localhost"

// provision creates a root bundle under a fresh working directory.
func provision(t *testing.T) (workDir string, opts pki.RootOptions, bundlePath string) {
	t.Helper()

	workDir = t.TempDir()
	opts = pki.RootOptions{
		BasePath: filepath.Join(workDir, ".local-ssl-server"),
		Filename: "local.p12",
		Password: testPassword,
		WorkDir:  workDir,
	}

	bundlePath, err := pki.EnsureRoot(context.Background(), opts, nil)
	require.NoError(t, err)

	return workDir, opts, bundlePath
}

func TestEnsureRoot_WritesDecodableBundle(t *testing.T) {
	_, opts, path := provision(t)

	assert.Equal(t, filepath.Join(opts.BasePath, "local.p12"), path)

	bundle, err := pki.ReadRootBundle(path, testPassword)
	require.NoError(t, err)

	root := bundle.Cert
	assert.True(t, root.IsCA)
	assert.Equal(t, pki.RootCommonName, root.Subject.CommonName)
	assert.Equal(t, []string{pki.RootOrganization}, root.Subject.Organization)
	assert.Equal(t, []string{pki.RootOrgUnit}, root.Subject.OrganizationalUnit)
	assert.Equal(t, []string{pki.RootCountry}, root.Subject.Country)
	assert.Equal(t, []string{pki.RootState}, root.Subject.Province)
	assert.Equal(t, []string{pki.RootLocality}, root.Subject.Locality)
	assert.NoError(t, root.CheckSignatureFrom(root), "root must be self-signed")
	assert.Equal(t, x509.ECDSA, root.PublicKeyAlgorithm)
	assert.WithinDuration(t, time.Now().Add(pki.DefaultRootDays*24*time.Hour), root.NotAfter, 24*time.Hour)

	entries, err := os.ReadDir(opts.BasePath)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files may be left behind")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestEnsureRoot_ReusesExistingFileWithoutValidation(t *testing.T) {
	dir := t.TempDir()
	opts := pki.RootOptions{BasePath: dir, Filename: "local.p12", Password: testPassword, WorkDir: dir}
	require.NoError(t, os.WriteFile(opts.BundlePath(), []byte("not a bundle"), 0o600))

	path, err := pki.NewProvisioner(opts, nil).EnsureRoot(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not a bundle", string(data))
}

func TestEnsureRoot_StatErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain-file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := pki.EnsureRoot(context.Background(), pki.RootOptions{
		BasePath: file,
		Filename: "local.p12",
		WorkDir:  dir,
	}, nil)
	require.Error(t, err)
}

func TestRootBundle_Decode(t *testing.T) {
	_, _, path := provision(t)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	tests := []struct {
		name     string
		data     []byte
		password string
		wantErr  error
	}{
		{"correct password", data, testPassword, nil},
		{"wrong password", data, "not-localhost", pki.ErrDecodeBundle},
		{"empty password", data, "", pki.ErrDecodeBundle},
		{"corrupt data", []byte("garbage"), testPassword, pki.ErrDecodeBundle},
		{"truncated data", data[:len(data)/2], testPassword, pki.ErrDecodeBundle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle, err := pki.DecodeRootBundle(tt.data, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, bundle)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, bundle.Key)
			assert.True(t, bundle.Cert.IsCA)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := pki.ReadRootBundle(filepath.Join(t.TempDir(), "nope.p12"), testPassword)
		require.ErrorIs(t, err, pki.ErrBundleMissing)
	})
}

func TestRootBundle_EncodeRoundTrip(t *testing.T) {
	bundle, err := pki.NewRootBundle(30)
	require.NoError(t, err)

	data, err := bundle.Encode("s3cret")
	require.NoError(t, err)

	decoded, err := pki.DecodeRootBundle(data, "s3cret")
	require.NoError(t, err)
	assert.True(t, decoded.Cert.Equal(bundle.Cert))
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), decoded.Cert.NotAfter, 24*time.Hour)
}

func TestEnsureRoot_Gitignore(t *testing.T) {
	tests := []struct {
		name     string
		initial  *string
		basePath func(workDir string) string
		want     *string
	}{
		{
			name:     "appends missing entry",
			initial:  ptr("node_modules\n"),
			basePath: func(wd string) string { return filepath.Join(wd, ".local-ssl-server") },
			want:     ptr("node_modules\n.local-ssl-server\n"),
		},
		{
			name:     "adds newline before entry",
			initial:  ptr("node_modules"),
			basePath: func(wd string) string { return filepath.Join(wd, ".local-ssl-server") },
			want:     ptr("node_modules\n.local-ssl-server\n"),
		},
		{
			name:     "appends to empty file",
			initial:  ptr(""),
			basePath: func(wd string) string { return filepath.Join(wd, ".local-ssl-server") },
			want:     ptr(".local-ssl-server\n"),
		},
		{
			name:     "keeps existing entry",
			initial:  ptr("dist\r\n.local-ssl-server\r\n"),
			basePath: func(wd string) string { return filepath.Join(wd, ".local-ssl-server") },
			want:     ptr("dist\r\n.local-ssl-server\r\n"),
		},
		{
			name:     "uses top level component",
			initial:  ptr("dist\n"),
			basePath: func(wd string) string { return filepath.Join(wd, "certs", "dev") },
			want:     ptr("dist\ncerts\n"),
		},
		{
			name:     "base path outside work dir",
			initial:  ptr("dist\n"),
			basePath: func(string) string { return filepath.Join(os.TempDir(), "local-ssl-server-outside-"+time.Now().Format("150405.000000000")) },
			want:     ptr("dist\n"),
		},
		{
			name:     "no gitignore",
			initial:  nil,
			basePath: func(wd string) string { return filepath.Join(wd, ".local-ssl-server") },
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir := t.TempDir()
			gitignore := filepath.Join(workDir, pki.GitignoreName)
			if tt.initial != nil {
				require.NoError(t, os.WriteFile(gitignore, []byte(*tt.initial), 0o644))
			}

			opts := pki.RootOptions{
				BasePath: tt.basePath(workDir),
				Filename: "local.p12",
				Password: testPassword,
				WorkDir:  workDir,
			}
			t.Cleanup(func() { os.RemoveAll(opts.BasePath) })

			for range 2 {
				_, err := pki.EnsureRoot(context.Background(), opts, nil)
				require.NoError(t, err)
			}

			data, err := os.ReadFile(gitignore)
			if tt.want == nil {
				assert.True(t, os.IsNotExist(err), "gitignore must not be created")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tt.want, string(data))
		})
	}
}

func TestEnsureRoot_GitignoreNotPatchedForExistingBundle(t *testing.T) {
	workDir, opts, _ := provision(t)

	gitignore := filepath.Join(workDir, pki.GitignoreName)
	require.NoError(t, os.WriteFile(gitignore, []byte("dist\n"), 0o644))

	_, err := pki.EnsureRoot(context.Background(), opts, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(gitignore)
	require.NoError(t, err)
	assert.Equal(t, "dist\n", string(data))
}

func TestPatchGitignore(t *testing.T) {
	workDir := t.TempDir()
	gitignore := filepath.Join(workDir, pki.GitignoreName)
	require.NoError(t, os.WriteFile(gitignore, []byte("dist\n"), 0o644))

	entry, added, err := pki.PatchGitignore(workDir, filepath.Join(workDir, ".ssl"))
	require.NoError(t, err)
	assert.Equal(t, ".ssl", entry)
	assert.True(t, added)

	_, added, err = pki.PatchGitignore(workDir, filepath.Join(workDir, ".ssl"))
	require.NoError(t, err)
	assert.False(t, added)

	_, added, err = pki.PatchGitignore(workDir, workDir)
	require.NoError(t, err)
	assert.False(t, added, "the work dir itself is never an entry")

	data, err := os.ReadFile(gitignore)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), ".ssl\n"))
}

func TestIssueLeaf(t *testing.T) {
	_, _, bundlePath := provision(t)
	bundle, err := pki.ReadRootBundle(bundlePath, testPassword)
	require.NoError(t, err)

	tests := []struct {
		name     string
		opts     pki.LeafOptions
		testFunc func(t *testing.T, cred *pki.LeafCredential)
	}{
		{
			name: "default alt name",
			opts: pki.LeafOptions{Domain: "example.com"},
			testFunc: func(t *testing.T, cred *pki.LeafCredential) {
				assert.Equal(t, "example.com", cred.Cert.Subject.CommonName)
				assert.Contains(t, cred.Cert.DNSNames, "www.example.com")
				assert.Equal(t, []string{"www.example.com"}, cred.Config.AltNames)
				assert.Contains(t, cred.Config.String(), "DNS.0 = www.example.com\n")
			},
		},
		{
			name: "explicit alt names",
			opts: pki.LeafOptions{Domain: "example.com", AltNames: []string{"api.example.com", "*.dev.example.com"}},
			testFunc: func(t *testing.T, cred *pki.LeafCredential) {
				assert.ElementsMatch(t, []string{"api.example.com", "*.dev.example.com"}, cred.Cert.DNSNames)
				assert.NoError(t, cred.Cert.VerifyHostname("foo.dev.example.com"))
			},
		},
		{
			name: "unicode domain",
			opts: pki.LeafOptions{Domain: "bücher.example"},
			testFunc: func(t *testing.T, cred *pki.LeafCredential) {
				assert.Equal(t, "xn--bcher-kva.example", cred.Cert.Subject.CommonName)
				assert.Equal(t, []string{"www.xn--bcher-kva.example"}, cred.Cert.DNSNames)
			},
		},
		{
			name: "wildcard domain",
			opts: pki.LeafOptions{Domain: "*.example.com"},
			testFunc: func(t *testing.T, cred *pki.LeafCredential) {
				assert.Equal(t, "*.example.com", cred.Cert.Subject.CommonName)
				assert.Equal(t, []string{"*.example.com"}, cred.Cert.DNSNames)
				assert.NoError(t, cred.Cert.VerifyHostname("api.example.com"))
			},
		},
		{
			name: "pkcs8 key",
			opts: pki.LeafOptions{Domain: "example.com"},
			testFunc: func(t *testing.T, cred *pki.LeafCredential) {
				block, _ := pem.Decode(cred.KeyPEM)
				require.NotNil(t, block)
				assert.Equal(t, "PRIVATE KEY", block.Type)
				key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
				require.NoError(t, err)
				pub := key.(crypto.Signer).Public().(interface{ Equal(crypto.PublicKey) bool })
				assert.True(t, pub.Equal(cred.Cert.PublicKey))
			},
		},
		{
			name: "signed by root for server auth",
			opts: pki.LeafOptions{Domain: "example.com"},
			testFunc: func(t *testing.T, cred *pki.LeafCredential) {
				roots := x509.NewCertPool()
				roots.AddCert(bundle.Cert)
				_, err := cred.Cert.Verify(x509.VerifyOptions{
					DNSName:   "www.example.com",
					Roots:     roots,
					KeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
				})
				assert.NoError(t, err)
				assert.False(t, cred.Cert.IsCA)
				assert.True(t, cred.Root.Equal(bundle.Cert))
				assert.NotZero(t, cred.Cert.KeyUsage&x509.KeyUsageDigitalSignature)
				assert.NotZero(t, cred.Cert.KeyUsage&x509.KeyUsageKeyEncipherment)
			},
		},
		{
			name: "fresh leaf key",
			opts: pki.LeafOptions{Domain: "example.com"},
			testFunc: func(t *testing.T, cred *pki.LeafCredential) {
				rootPub := bundle.Key.Public().(interface{ Equal(crypto.PublicKey) bool })
				assert.False(t, rootPub.Equal(cred.Cert.PublicKey), "leaf must not reuse the root key")
			},
		},
		{
			name: "validity capped by root",
			opts: pki.LeafOptions{Domain: "example.com", Days: 999},
			testFunc: func(t *testing.T, cred *pki.LeafCredential) {
				assert.False(t, cred.Cert.NotAfter.After(bundle.Cert.NotAfter))
			},
		},
		{
			name: "short validity",
			opts: pki.LeafOptions{Domain: "example.com", Days: 7},
			testFunc: func(t *testing.T, cred *pki.LeafCredential) {
				assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), cred.Cert.NotAfter, time.Hour)
			},
		},
		{
			name: "tls key pair",
			opts: pki.LeafOptions{Domain: "example.com"},
			testFunc: func(t *testing.T, cred *pki.LeafCredential) {
				tlsCert, err := cred.TLSCertificate()
				require.NoError(t, err)
				assert.Len(t, tlsCert.Certificate, 2, "leaf and root are presented")
				assert.Equal(t, cred.Cert, tlsCert.Leaf)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.BundlePath = bundlePath
			opts.Password = testPassword

			cred, err := pki.IssueLeaf(context.Background(), opts, nil)
			require.NoError(t, err)
			tt.testFunc(t, cred)
		})
	}
}

func TestIssueLeaf_Errors(t *testing.T) {
	_, _, bundlePath := provision(t)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		opts    pki.LeafOptions
		wantErr error
	}{
		{"wrong password", context.Background(), pki.LeafOptions{Domain: "example.com", BundlePath: bundlePath, Password: "nope"}, pki.ErrDecodeBundle},
		{"missing bundle", context.Background(), pki.LeafOptions{Domain: "example.com", BundlePath: bundlePath + ".missing", Password: testPassword}, pki.ErrBundleMissing},
		{"empty domain", context.Background(), pki.LeafOptions{Domain: " ", BundlePath: bundlePath, Password: testPassword}, pki.ErrInvalidDomain},
		{"ip domain", context.Background(), pki.LeafOptions{Domain: "127.0.0.1", BundlePath: bundlePath, Password: testPassword}, pki.ErrInvalidDomain},
		{"bad alt name", context.Background(), pki.LeafOptions{Domain: "example.com", AltNames: []string{"-bad.example.com"}, BundlePath: bundlePath, Password: testPassword}, pki.ErrInvalidDomain},
		{"canceled", canceled, pki.LeafOptions{Domain: "example.com", BundlePath: bundlePath, Password: testPassword}, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := pki.IssueLeaf(tt.ctx, tt.opts, nil)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, cred)
		})
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "example.com", want: "example.com"},
		{in: "Example.COM.", want: "example.com"},
		{in: "  localhost ", want: "localhost"},
		{in: "*.example.com", want: "*.example.com"},
		{in: "bücher.example", want: "xn--bcher-kva.example"},
		{in: "*.com", wantErr: true},
		{in: "*.", wantErr: true},
		{in: "under_score.example", wantErr: true},
		{in: "::1", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := pki.NormalizeDomain(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, pki.ErrInvalidDomain)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtensionConfig(t *testing.T) {
	ext := pki.NewExtensionConfig([]string{"www.example.com", "api.example.com"})

	want := "basicConstraints=CA:FALSE\n" +
		"keyUsage = nonRepudiation, digitalSignature, keyEncipherment\n" +
		"extendedKeyUsage = serverAuth\n" +
		"subjectAltName = @alt_names\n" +
		"\n" +
		"[alt_names]\n" +
		"DNS.0 = www.example.com\n" +
		"DNS.1 = api.example.com\n"
	assert.Equal(t, want, ext.String())

	profile, err := ext.SigningProfile(48 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"content commitment", "digital signature", "key encipherment", "server auth"}, profile.Usage)
	assert.Equal(t, 48*time.Hour, profile.Expiry)
	assert.False(t, profile.CAConstraint.IsCA)

	ext.KeyUsage = append(ext.KeyUsage, "teleport")
	_, err = ext.SigningProfile(time.Hour)
	require.ErrorIs(t, err, pki.ErrUnknownUsage)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	path := filepath.Join(dir, "file.pem")

	require.NoError(t, pki.WriteFileAtomic(path, []byte("one")))
	require.NoError(t, pki.WriteFileAtomic(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	t.Run("parent is a file", func(t *testing.T) {
		err := pki.WriteFileAtomic(filepath.Join(path, "child"), []byte("x"))
		require.Error(t, err)
	})
}

func ptr(s string) *string { return &s }
