// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultDomain          = "example.com"
	DefaultBaseDir         = ".local-ssl-server"
	DefaultP12Filename     = "local.p12"
	DefaultP12KeyFilename  = "local.pem"
	DefaultP12CertFilename = "local.crt"
	DefaultP12Password     = "localhost"
	DefaultPort            = 3000
	DefaultLogSlug         = "[local-ssl-server]"
	DefaultLogFormat       = "text"
	DefaultRootDays        = 360
	DefaultLeafDays        = 999
)

// Environment variables read by [Load].
const (
	EnvConfigFile      = "LOCAL_SSL_SERVER_CONFIG_FILE"
	EnvDomain          = "LOCAL_SSL_SERVER_DOMAIN"
	EnvAltNames        = "LOCAL_SSL_SERVER_ALT_NAMES"
	EnvBasePath        = "LOCAL_SSL_SERVER_BASE_PATH"
	EnvP12Filename     = "LOCAL_SSL_SERVER_P12_FILENAME"
	EnvP12KeyFilename  = "LOCAL_SSL_SERVER_P12_KEY_FILENAME"
	EnvP12CertFilename = "LOCAL_SSL_SERVER_P12_CERT_FILENAME"
	EnvP12Password     = "LOCAL_SSL_SERVER_P12_PASSWORD"
	EnvPort            = "LOCAL_SSL_SERVER_PORT"
	EnvSilent          = "LOCAL_SSL_SERVER_SILENT"
	EnvLogSlug         = "LOCAL_SSL_SERVER_LOG_SLUG"
	EnvLogFormat       = "LOCAL_SSL_SERVER_LOG_FORMAT"
)

var (
	// ErrDomainRequired indicates an empty domain.
	ErrDomainRequired = errors.New("config: domain is required")

	// ErrInvalidPort indicates a port outside 0-65535.
	ErrInvalidPort = errors.New("config: port must be between 0 and 65535")

	// ErrBasePathRequired indicates an empty base path.
	ErrBasePathRequired = errors.New("config: base path is required")

	// ErrInvalidFilename indicates a bundle, key or cert filename that is empty or contains a path separator.
	ErrInvalidFilename = errors.New("config: filename must be a plain file name")

	// ErrInvalidLogFormat indicates a log format other than text or json.
	ErrInvalidLogFormat = errors.New("config: log format must be text or json")

	// ErrInvalidValidity indicates a non-positive certificate lifetime.
	ErrInvalidValidity = errors.New("config: validity days must be positive")
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config is the explicit configuration value handed to the provisioner, the
// issuer and the listener.
type Config struct {
	// Domain: domain the leaf certificate is issued for
	Domain string `json:"domain" yaml:"domain"`
	// AltNames: DNS alt names for the leaf; empty means www.<domain>
	AltNames []string `json:"altNames,omitempty" yaml:"altNames,omitempty"`
	// BasePath: directory holding the root bundle and exported PEM files
	BasePath string `json:"basePath" yaml:"basePath"`
	// P12Filename: root bundle file name inside BasePath
	P12Filename string `json:"p12Filename" yaml:"p12Filename"`
	// P12KeyFilename: leaf private key PEM file name written by the issue command
	P12KeyFilename string `json:"p12KeyFilename" yaml:"p12KeyFilename"`
	// P12CertFilename: leaf certificate PEM file name written by the issue command
	P12CertFilename string `json:"p12CertFilename" yaml:"p12CertFilename"`
	// P12Password: passphrase protecting the root bundle
	P12Password string `json:"p12Password" yaml:"p12Password"`
	// Port: HTTPS listener port (0 picks a free port)
	Port int `json:"port" yaml:"port"`
	// Silent: suppress console output
	Silent bool `json:"silent" yaml:"silent"`
	// LogSlug: prefix of every console line
	LogSlug string `json:"logSlug" yaml:"logSlug"`
	// LogFormat: "text" or "json"
	LogFormat string `json:"logFormat" yaml:"logFormat"`
	// Verbose: print CSR metadata and crypto library diagnostics
	Verbose bool `json:"verbose" yaml:"verbose"`
	// RootDays: lifetime of a newly generated root certificate
	RootDays int `json:"rootDays" yaml:"rootDays"`
	// LeafDays: lifetime of an issued leaf certificate, capped by the root
	LeafDays int `json:"leafDays" yaml:"leafDays"`
}

// Default returns a new Config with the documented defaults. BasePath is
// resolved against the current working directory.
func Default() *Config {
	basePath := DefaultBaseDir
	if wd, err := os.Getwd(); err == nil {
		basePath = filepath.Join(wd, DefaultBaseDir)
	}

	return &Config{
		Domain:          DefaultDomain,
		BasePath:        basePath,
		P12Filename:     DefaultP12Filename,
		P12KeyFilename:  DefaultP12KeyFilename,
		P12CertFilename: DefaultP12CertFilename,
		P12Password:     DefaultP12Password,
		Port:            DefaultPort,
		LogSlug:         DefaultLogSlug,
		LogFormat:       DefaultLogFormat,
		RootDays:        DefaultRootDays,
		LeafDays:        DefaultLeafDays,
	}
}

// BundlePath returns the location of the root PKCS#12 bundle.
func (c *Config) BundlePath() string { return filepath.Join(c.BasePath, c.P12Filename) }

// KeyPath returns the location of the exported leaf private key.
func (c *Config) KeyPath() string { return filepath.Join(c.BasePath, c.P12KeyFilename) }

// CertPath returns the location of the exported leaf certificate.
func (c *Config) CertPath() string { return filepath.Join(c.BasePath, c.P12CertFilename) }

// Addr returns the listen address for the HTTPS listener.
func (c *Config) Addr() string { return ":" + strconv.Itoa(c.Port) }

// Validate reports the first invalid field as a named error and makes a
// relative BasePath absolute.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Domain) == "" {
		return ErrDomainRequired
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	if strings.TrimSpace(c.BasePath) == "" {
		return ErrBasePathRequired
	}
	for _, name := range []string{c.P12Filename, c.P12KeyFilename, c.P12CertFilename} {
		if !isPlainFilename(name) {
			return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
		}
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	if c.RootDays <= 0 || c.LeafDays <= 0 {
		return ErrInvalidValidity
	}

	abs, err := filepath.Abs(c.BasePath)
	if err != nil {
		return fmt.Errorf("config: resolve base path: %w", err)
	}
	c.BasePath = abs

	return nil
}

func isPlainFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// detectConfigFormat determines the configuration file format based on file extension.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load builds a Config from defaults, an optional file and the environment.
//
// Configuration Priority:
//  1. Default values are set
//  2. LOCAL_SSL_SERVER_CONFIG_FILE is consulted if configPath is empty
//  3. Config file values override defaults (.json, .yaml or .yml)
//  4. LOCAL_SSL_SERVER_* environment variables override file values
//
// The result is not validated; callers apply flag overrides first and then
// call [Config.Validate].
func Load(configPath string) (*Config, error) {
	config := Default()

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(config, os.LookupEnv); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnv overrides fields from environment variables found by lookup.
func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvDomain, &c.Domain},
		{EnvBasePath, &c.BasePath},
		{EnvP12Filename, &c.P12Filename},
		{EnvP12KeyFilename, &c.P12KeyFilename},
		{EnvP12CertFilename, &c.P12CertFilename},
		{EnvP12Password, &c.P12Password},
		{EnvLogSlug, &c.LogSlug},
		{EnvLogFormat, &c.LogFormat},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok {
			*s.dst = v
		}
	}

	if v, ok := lookup(EnvAltNames); ok {
		c.AltNames = SplitList(v)
	}

	if v, ok := lookup(EnvPort); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidPort, EnvPort, v)
		}
		c.Port = port
	}

	if v, ok := lookup(EnvSilent); ok {
		silent, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: invalid %s=%q: %w", EnvSilent, v, err)
		}
		c.Silent = silent
	}

	return nil
}

// SplitList splits a comma separated list, trimming blanks and dropping empty items.
func SplitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
