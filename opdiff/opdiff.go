// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package opdiff detects operations whose identifier changed
// between two versions of an OpenAPI contract.
//
// An operation is identified across versions by its path and HTTP verb.
// Only operations that carry at least one tag take part: the first tag
// names the API group the SDK generator places the operation in.
package opdiff

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"golang.org/x/xerrors"
)

// OverrideExtension is the vendor extension that replaces an
// operation's declared operationId in generated code.
const OverrideExtension = "x-xgen-operation-id-override"

// An OperationKey identifies an operation within one contract version.
type OperationKey struct {
	Path string
	Verb string
}

// An OperationRecord is what the SDK generator derives from an operation:
// its group tag and its effective operation id.
type OperationRecord struct {
	Tag string
	ID  string
}

// Load reads and parses the contract document at path.
// JSON and YAML documents are both accepted.
func Load(ctx context.Context, path string) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, xerrors.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

// LoadData parses a contract document held in memory.
func LoadData(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, xerrors.Errorf("parse contract: %w", err)
	}
	return doc, nil
}

// Operations returns the tagged operations of doc that have an operation
// id, keyed by path and verb.
// Verbs are lower case.
func Operations(doc *openapi3.T) map[OperationKey]OperationRecord {
	ops := make(map[OperationKey]OperationRecord)
	if doc == nil || doc.Paths == nil {
		return ops
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for verb, op := range item.Operations() {
			// An override only applies to an operation that has an id.
			if op == nil || len(op.Tags) == 0 || op.OperationID == "" {
				continue
			}
			id := operationID(op)
			ops[OperationKey{Path: path, Verb: strings.ToLower(verb)}] = OperationRecord{Tag: op.Tags[0], ID: id}
		}
	}
	return ops
}

func operationID(op *openapi3.Operation) string {
	switch v := op.Extensions[OverrideExtension].(type) {
	case string:
		if v != "" {
			return v
		}
	case json.RawMessage:
		var s string
		if json.Unmarshal(v, &s) == nil && s != "" {
			return s
		}
	}
	return op.OperationID
}

// Compute returns the renames between before and after: one entry for
// every path and verb present in both documents whose operation id differs.
// Operations added or removed between the versions are not reported.
// An entry carries the tag from before, in case the operation also
// moved to another group.
func Compute(before, after *openapi3.T) *Report {
	old := Operations(before)
	r := new(Report)
	for key, cur := range Operations(after) {
		prev, ok := old[key]
		if !ok || prev.ID == cur.ID {
			continue
		}
		r.Entries = append(r.Entries, Entry{
			Tag:    prev.Tag,
			Before: prev.ID,
			After:  cur.ID,
		})
	}
	r.Sort()
	return r
}
