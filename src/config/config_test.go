// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/local-ssl-server/src/config"
)

func TestDefault(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	cfg := config.Default()
	assert.Equal(t, "example.com", cfg.Domain)
	assert.Equal(t, filepath.Join(wd, ".local-ssl-server"), cfg.BasePath)
	assert.Equal(t, "local.p12", cfg.P12Filename)
	assert.Equal(t, "local.pem", cfg.P12KeyFilename)
	assert.Equal(t, "local.crt", cfg.P12CertFilename)
	assert.Equal(t, "localhost", cfg.P12Password)
	assert.Equal(t, 3000, cfg.Port)
	assert.False(t, cfg.Silent)
	assert.Equal(t, "[local-ssl-server]", cfg.LogSlug)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 360, cfg.RootDays)
	assert.Equal(t, 999, cfg.LeafDays)
	assert.Empty(t, cfg.AltNames)
	assert.Equal(t, filepath.Join(wd, ".local-ssl-server", "local.p12"), cfg.BundlePath())
	assert.Equal(t, ":3000", cfg.Addr())
	require.NoError(t, cfg.Validate())
}

func TestDefault_FreshValues(t *testing.T) {
	a := config.Default()
	a.Domain = "changed.test"
	b := config.Default()
	assert.Equal(t, "example.com", b.Domain)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		env      map[string]string
		testFunc func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "no file",
			testFunc: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "example.com", cfg.Domain)
			},
		},
		{
			name:    "json file",
			file:    "cfg.json",
			content: `{"domain":"dev.test","port":8443,"altNames":["a.dev.test","b.dev.test"]}`,
			testFunc: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "dev.test", cfg.Domain)
				assert.Equal(t, 8443, cfg.Port)
				assert.Equal(t, []string{"a.dev.test", "b.dev.test"}, cfg.AltNames)
				assert.Equal(t, "localhost", cfg.P12Password)
			},
		},
		{
			name:    "yaml file",
			file:    "cfg.yaml",
			content: "domain: yaml.test\nsilent: true\nlogFormat: json\n",
			testFunc: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "yaml.test", cfg.Domain)
				assert.True(t, cfg.Silent)
				assert.Equal(t, "json", cfg.LogFormat)
			},
		},
		{
			name:    "env overrides file",
			file:    "cfg.yml",
			content: "domain: yaml.test\nport: 1234\n",
			env: map[string]string{
				config.EnvDomain:      "env.test",
				config.EnvPort:        "4443",
				config.EnvAltNames:    " x.env.test, ,y.env.test ",
				config.EnvSilent:      "true",
				config.EnvP12Password: "s3cret",
			},
			testFunc: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "env.test", cfg.Domain)
				assert.Equal(t, 4443, cfg.Port)
				assert.Equal(t, []string{"x.env.test", "y.env.test"}, cfg.AltNames)
				assert.True(t, cfg.Silent)
				assert.Equal(t, "s3cret", cfg.P12Password)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = filepath.Join(t.TempDir(), tt.file)
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			}

			cfg, err := config.Load(path)
			require.NoError(t, err)
			tt.testFunc(t, cfg)
		})
	}
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"domain":"fromenv.test"}`), 0o600))
	t.Setenv(config.EnvConfigFile, path)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "fromenv.test", cfg.Domain)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		_, err := config.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse JSON config file")
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("domain: [unterminated"), 0o600))
		_, err := config.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse YAML config file")
	})

	t.Run("bad port env", func(t *testing.T) {
		t.Setenv(config.EnvPort, "https")
		_, err := config.Load("")
		require.ErrorIs(t, err, config.ErrInvalidPort)
	})

	t.Run("bad silent env", func(t *testing.T) {
		t.Setenv(config.EnvSilent, "maybe")
		_, err := config.Load("")
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr error
	}{
		{"empty domain", func(c *config.Config) { c.Domain = " " }, config.ErrDomainRequired},
		{"negative port", func(c *config.Config) { c.Port = -1 }, config.ErrInvalidPort},
		{"port too large", func(c *config.Config) { c.Port = 70000 }, config.ErrInvalidPort},
		{"empty base path", func(c *config.Config) { c.BasePath = "" }, config.ErrBasePathRequired},
		{"empty bundle name", func(c *config.Config) { c.P12Filename = "" }, config.ErrInvalidFilename},
		{"bundle name with separator", func(c *config.Config) { c.P12Filename = "a/b.p12" }, config.ErrInvalidFilename},
		{"key name dot dot", func(c *config.Config) { c.P12KeyFilename = ".." }, config.ErrInvalidFilename},
		{"cert name backslash", func(c *config.Config) { c.P12CertFilename = `a\b.crt` }, config.ErrInvalidFilename},
		{"bad log format", func(c *config.Config) { c.LogFormat = "xml" }, config.ErrInvalidLogFormat},
		{"zero root days", func(c *config.Config) { c.RootDays = 0 }, config.ErrInvalidValidity},
		{"zero leaf days", func(c *config.Config) { c.LeafDays = 0 }, config.ErrInvalidValidity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidate_ResolvesRelativeBasePath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	cfg := config.Default()
	cfg.BasePath = "certs"
	cfg.Port = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join(wd, "certs"), cfg.BasePath)
	assert.Equal(t, ":0", cfg.Addr())
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, config.SplitList(""))
	assert.Nil(t, config.SplitList(" , ,"))
	assert.Equal(t, []string{"a", "b"}, config.SplitList("a, b,"))
}
