// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"rsc.io/oprename/naming"
	"rsc.io/oprename/opdiff"
)

// A Target is what a renamed identifier becomes.
type Target struct {
	Owner string // API group type the operation belongs to, such as ProjectsApi
	Name  string // new identifier
}

// A Lookup maps a normalized old operation identifier to its Target.
// It is built once and only read afterwards, so concurrent use is safe.
type Lookup map[string]Target

// BuildLookup indexes entries by normalized old identifier.
// The owner of each target is the normalized tag followed by ownerSuffix.
// When two entries share an old identifier, the later one wins.
func BuildLookup(entries []opdiff.Entry, ownerSuffix string) Lookup {
	l := make(Lookup, len(entries))
	for _, e := range entries {
		l[naming.Normalize(e.Before)] = Target{
			Owner: naming.Normalize(e.Tag) + ownerSuffix,
			Name:  naming.Normalize(e.After),
		}
	}
	return l
}

// Get returns the target for identifier id.
func (l Lookup) Get(id string) (Target, bool) {
	t, ok := l[naming.Normalize(id)]
	return t, ok
}
