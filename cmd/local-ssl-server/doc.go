// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// local-ssl-server provisions a local root CA, issues a leaf certificate for a
// development domain and serves HTTPS with it.
//
// # Installation
//
//	go install github.com/H0llyW00dzZ/local-ssl-server/cmd/local-ssl-server@latest
//
// # Usage
//
//	local-ssl-server [command] [FLAGS]
//
// # Commands
//
//	serve    Provision, issue and serve HTTPS until interrupted (default)
//	init     Create the root CA bundle; --export FILE writes its certificate
//	issue    Write the leaf key and chain PEM files (--stdout, --print-config)
//	inspect  Show the chain as tree, table or json (--leaf, --remote host:port)
//	verify   Check that a certificate file chains to the local root
//	mcp      Serve the provisioning tools over MCP stdio
//
// # Flags
//
//	-c, --config             Config file (.json, .yaml, .yml)
//	-d, --domain             Leaf domain (default example.com)
//	    --alt-name           DNS alt name, repeatable (default www.<domain>)
//	    --base-path          Bundle directory (default ./.local-ssl-server)
//	    --p12-filename       Root bundle file name (default local.p12)
//	    --p12-key-filename   Leaf key file name (default local.pem)
//	    --p12-cert-filename  Leaf certificate file name (default local.crt)
//	    --password           Root bundle passphrase (default localhost)
//	-p, --port               HTTPS port (default 3000)
//	-s, --silent             Suppress console output
//	    --log-slug           Console line prefix
//	    --log-format         text or json
//	-v, --verbose            Signing request details
//
// Most flags also have a LOCAL_SSL_SERVER_* environment variable, and a .env
// file in the working directory is loaded on start.
//
// # Examples
//
// Serve https://www.example.com:3000 after mapping the name to 127.0.0.1:
//
//	local-ssl-server --domain example.com
//
// Trust the root on the local machine:
//
//	local-ssl-server init --export root.crt
//
// Check a running server:
//
//	local-ssl-server inspect --remote localhost:3000 --dns www.example.com --format table
package main
