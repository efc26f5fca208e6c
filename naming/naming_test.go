// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var normalizeTests = []struct {
	in  string
	out string
}{
	{"", ""},
	{"foo bar-baz.qux", "FooBarBazQux"},
	{"Groups", "Groups"},
	{"getGroup", "GetGroup"},
	{"Cloud Backups", "CloudBackups"},
	{"x509 Authentication for Database Users", "X509AuthenticationForDatabaseUsers"},
	{"createServerlessPrivateEndpoint", "CreateServerlessPrivateEndpoint"},
	{"a--b", "AB"},
	{"  leading", "Leading"},
	{"trailing. ", "Trailing"},
	{"under_score", "Under_score"},
	{"mIxEd CaSe", "MIxEdCaSe"},
	{"ünicode wörds", "ünicodeWörds"},
}

func TestNormalize(t *testing.T) {
	for _, tt := range normalizeTests {
		assert.Equal(t, tt.out, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, tt := range normalizeTests {
		once := Normalize(tt.in)
		assert.Equal(t, once, Normalize(once), "Normalize(Normalize(%q))", tt.in)
	}
}
