// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opdiff

import (
	"cmp"
	"encoding/json"
	"os"
	"slices"

	"golang.org/x/xerrors"
)

// An Entry records one renamed operation.
type Entry struct {
	Tag    string `json:"tag"`
	Before string `json:"operation_id_before"`
	After  string `json:"operation_id_after"`
}

func compareEntries(a, b Entry) int {
	if c := cmp.Compare(a.Tag, b.Tag); c != 0 {
		return c
	}
	if c := cmp.Compare(a.After, b.After); c != 0 {
		return c
	}
	return cmp.Compare(a.Before, b.Before)
}

// A Report is the persisted result of a diff run.
// Readers must not depend on the order of Entries;
// the serialized form is always sorted by tag, new id, then old id.
type Report struct {
	Entries []Entry `json:"entries"`
}

// Len returns the number of renames in r.
func (r *Report) Len() int {
	return len(r.Entries)
}

// Sort orders r.Entries by tag, new id, then old id.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Entries, compareEntries)
}

func (r Report) MarshalJSON() ([]byte, error) {
	type report Report
	out := report{Entries: slices.Clone(r.Entries)}
	if out.Entries == nil {
		out.Entries = []Entry{}
	}
	slices.SortStableFunc(out.Entries, compareEntries)
	return json.Marshal(out)
}

// WriteReport writes r to path as indented JSON.
func WriteReport(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return xerrors.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0666); err != nil {
		return xerrors.Errorf("write report: %w", err)
	}
	return nil
}

// ReadReport reads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("read report: %w", err)
	}
	r := new(Report)
	if err := json.Unmarshal(data, r); err != nil {
		return nil, xerrors.Errorf("parse report %s: %w", path, err)
	}
	return r, nil
}
