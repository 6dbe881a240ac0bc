// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package server runs the HTTPS listener that presents the issued leaf
// certificate. Every request, whatever its method or path, receives
// status 200 and a fixed body. The listener stops gracefully when its
// context is canceled.
package server
