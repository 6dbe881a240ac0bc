// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutableName(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "Relative path", args: []string{"./local-ssl-server"}, expected: "local-ssl-server"},
		{name: "Absolute Unix path", args: []string{"/usr/local/bin/devtls"}, expected: "devtls"},
		{name: "Windows path", args: []string{`C:\tools\devtls.exe`}, expected: "devtls"},
		{name: "Just filename", args: []string{"devtls"}, expected: "devtls"},
		{name: "Trailing separator", args: []string{"/"}, expected: defaultExecutableName},
		{name: "Empty args", args: []string{}, expected: defaultExecutableName},
		{name: "Empty first arg", args: []string{""}, expected: defaultExecutableName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, executableName(tt.args))
		})
	}
}

func TestExecutableName_UsesOSArgs(t *testing.T) {
	assert.NotEmpty(t, ExecutableName())
}
