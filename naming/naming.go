// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package naming maps API labels such as tags and operation ids
// to the identifiers the SDK generator derives from them.
package naming

import "strings"

// Normalize returns label with space, period, and hyphen treated as word
// breaks: the breaks are dropped and the first byte of every word is upper-cased.
// All other bytes are copied unchanged, so Normalize is idempotent.
func Normalize(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	word := true
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch c {
		case ' ', '.', '-':
			word = true
			continue
		}
		if word && 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		b.WriteByte(c)
		word = false
	}
	return b.String()
}
