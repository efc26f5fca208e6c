// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"
	"rsc.io/oprename/edit"
)

// A Diagnostic reports a call left alone because its method was renamed
// in a different API group than the one it is called through.
type Diagnostic struct {
	Line   int
	Method string
	Have   string // owner in the source
	Want   string // owner the rename belongs to
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: skipping %s: called on %s, renamed in %s", d.Line, d.Method, d.Have, d.Want)
}

// Plan computes the edits that rename the outdated client method calls
// and parameter types in src.
func Plan(src *Source, lookup Lookup, cfg *Config) (*edit.Queue, []Diagnostic, error) {
	calls, err := src.MethodCalls()
	if err != nil {
		return nil, nil, xerrors.Errorf("find method calls: %w", err)
	}
	q, diags := planCalls(calls, lookup, cfg)

	imports, err := src.Imports()
	if err != nil {
		return nil, nil, xerrors.Errorf("find imports: %w", err)
	}
	alias, ok := resolveAlias(imports, cfg)
	if !ok {
		return q, diags, nil
	}
	params, err := src.ParamTypes()
	if err != nil {
		return nil, nil, xerrors.Errorf("find parameter types: %w", err)
	}
	q.Merge(planParams(params, alias, lookup, cfg))
	return q, diags, nil
}

// planCalls renames the method in each client call whose old name
// is in lookup. The CallSuffix of a parameterized call is kept.
// A call through another API group than the renamed operation's
// is not touched; it is reported as a Diagnostic instead.
func planCalls(calls []CallMatch, lookup Lookup, cfg *Config) (*edit.Queue, []Diagnostic) {
	q := new(edit.Queue)
	var diags []Diagnostic
	for _, c := range calls {
		if c.Receiver.Text != cfg.Receiver || c.Client.Text != cfg.ClientField {
			continue
		}
		name, suffixed := strings.CutSuffix(c.Method.Text, cfg.CallSuffix)
		target, ok := lookup.Get(name)
		if !ok {
			continue
		}
		if c.Owner.Text != target.Owner {
			diags = append(diags, Diagnostic{
				Line:   c.Method.Line,
				Method: c.Method.Text,
				Have:   c.Owner.Text,
				Want:   target.Owner,
			})
			continue
		}
		if name == target.Name {
			continue
		}
		end := c.Method.End
		if suffixed {
			end -= len(cfg.CallSuffix)
		}
		q.Push(edit.Edit{Start: c.Method.Start, End: end, New: target.Name})
	}
	return q, diags
}

// planParams renames the parameter types referred to through alias.
// Unlike planCalls it does not check the owner: a parameters
// type name already identifies its operation.
func planParams(params []ParamMatch, alias string, lookup Lookup, cfg *Config) *edit.Queue {
	q := new(edit.Queue)
	for _, p := range params {
		if p.Package.Text != alias {
			continue
		}
		name, ok := strings.CutSuffix(p.Type.Text, cfg.ParamsSuffix)
		if !ok {
			continue
		}
		target, ok := lookup.Get(name)
		if !ok || name == target.Name {
			continue
		}
		q.Push(edit.Edit{Start: p.Type.Start, End: p.Type.End - len(cfg.ParamsSuffix), New: target.Name})
	}
	return q
}

// resolveAlias returns the name the SDK package is referred to by in a file
// with the given imports. The result is false if the file does not import the SDK.
func resolveAlias(imports []ImportMatch, cfg *Config) (string, bool) {
	found := false
	for _, imp := range imports {
		if imp.ImportPath() != cfg.SDKImportPath {
			continue
		}
		if imp.HasName() {
			return imp.Name.Text, true
		}
		found = true
	}
	if found {
		return cfg.DefaultAlias, true
	}
	return "", false
}
