// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pki

import (
	"fmt"
	"net"
	"slices"
	"strings"

	"golang.org/x/net/idna"
)

// NormalizeDomain converts a DNS name to its lower-case ASCII form. Unicode
// labels are converted to punycode and a single leading "*." is allowed.
func NormalizeDomain(name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".")
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidDomain)
	}
	if net.ParseIP(name) != nil {
		return "", fmt.Errorf("%w: %q is an IP address", ErrInvalidDomain, name)
	}

	prefix := ""
	if rest, ok := strings.CutPrefix(name, "*."); ok {
		prefix, name = "*.", rest
	}

	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil || ascii == "" || (prefix != "" && !strings.Contains(ascii, ".")) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, prefix+name)
	}

	return prefix + ascii, nil
}

// altNamesFor normalizes names, drops duplicates and defaults to www.<domain>.
// A wildcard domain defaults to itself.
func altNamesFor(domain string, names []string) ([]string, error) {
	if len(names) == 0 {
		if strings.HasPrefix(domain, "*.") {
			return []string{domain}, nil
		}
		return []string{"www." + domain}, nil
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		ascii, err := NormalizeDomain(n)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, ascii) {
			out = append(out, ascii)
		}
	}
	return out, nil
}

// sameNames reports whether a and b hold the same names in any order.
func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
