// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config holds the configuration record passed to every entry point of the
// local SSL server. A fresh value with documented defaults comes from [Default];
// [Load] layers a JSON or YAML file and LOCAL_SSL_SERVER_* environment variables
// on top of it. There is no package-level mutable state.
package config
