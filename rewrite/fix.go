// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rewrite renames references to renamed API operations
// in Go code that calls a generated SDK.
//
// Two kinds of references are rewritten, both located by
// tree-sitter queries over the file's concrete syntax tree:
// calls of client methods, as in
//
//	s.clientv2.ProjectsApi.CreateProjectWithParams(ctx, params)
//
// and generated parameter types, as in
//
//	&admin.CreateProjectApiParams{...}
//
// Only the identifier itself is replaced; every other byte of
// the file is preserved.
package rewrite

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"rsc.io/oprename/edit"
)

// A Fixer rewrites files using a shared, read-only Lookup.
type Fixer struct {
	cfg    *Config
	lookup Lookup
	log    *zap.Logger

	// DryRun computes the new file contents without writing them.
	DryRun bool
}

// NewFixer returns a Fixer applying the renames in lookup.
func NewFixer(cfg *Config, lookup Lookup, log *zap.Logger) *Fixer {
	return &Fixer{cfg: cfg, lookup: lookup, log: log}
}

// A Result describes the outcome of fixing one file.
type Result struct {
	Path        string
	Edits       int
	Old, New    []byte // set only when the file changed
	Diagnostics []Diagnostic
	Err         error
}

// Changed reports whether the file content was changed.
func (r *Result) Changed() bool {
	return r.Err == nil && r.New != nil
}

// FixFile rewrites the file at path in place.
// On error the file is left unmodified.
func (f *Fixer) FixFile(path string) Result {
	res := Result{Path: path}
	text, err := os.ReadFile(path)
	if err != nil {
		res.Err = fileError(path, "read", err)
		return res
	}
	src, err := Parse(path, text)
	if err != nil {
		res.Err = err
		return res
	}
	defer src.Close()

	q, diags, err := Plan(src, f.lookup, f.cfg)
	res.Diagnostics = diags
	if err != nil {
		res.Err = fileError(path, "plan", err)
		return res
	}
	res.Edits = q.Len()
	if res.Edits == 0 {
		return res
	}
	out, err := edit.Apply(text, q)
	if err != nil {
		res.Err = fileError(path, "apply", err)
		return res
	}
	if bytes.Equal(out, text) {
		return res
	}
	if !f.DryRun {
		if err := writeFile(path, out); err != nil {
			res.Err = fileError(path, "write", err)
			return res
		}
	}
	res.Old, res.New = text, out
	return res
}

func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, info.Mode().Perm())
}

// Run fixes files, at most cfg.Concurrency at a time.
// A failure on one file does not stop the others.
func (f *Fixer) Run(files []string) *Summary {
	results := make([]Result, len(files))
	var g errgroup.Group
	g.SetLimit(f.cfg.Concurrency)
	for i, file := range files {
		g.Go(func() error {
			results[i] = f.FixFile(file)
			f.report(&results[i])
			return nil
		})
	}
	g.Wait()

	s := &Summary{Results: results, DryRun: f.DryRun}
	for i := range results {
		r := &results[i]
		switch {
		case r.Err != nil:
			s.Errors.Add(r.Err)
		case r.Changed():
			s.Rewritten++
			s.Edits += r.Edits
		}
	}
	return s
}

func (f *Fixer) report(r *Result) {
	for _, d := range r.Diagnostics {
		f.log.Warn("skipping call renamed in another API group",
			zap.String("file", r.Path),
			zap.Int("line", d.Line),
			zap.String("method", d.Method),
			zap.String("have", d.Have),
			zap.String("want", d.Want))
	}
	if r.Err != nil {
		f.log.Error("file left unmodified", zap.String("file", r.Path), zap.Error(r.Err))
		return
	}
	if r.Changed() {
		f.log.Debug("rewrote file", zap.String("file", r.Path), zap.Int("edits", r.Edits))
	}
}

// A Summary collects the results of a Run, in the order of its files.
type Summary struct {
	Results   []Result
	DryRun    bool
	Rewritten int
	Edits     int
	Errors    ErrorList
}

// Write prints a one-line account of s to w, followed by any errors.
func (s *Summary) Write(w io.Writer) {
	verb := "rewrote"
	if s.DryRun {
		verb = "would rewrite"
	}
	fmt.Fprintf(w, "%s %d of %d files (%d edits), %d failed\n", verb, s.Rewritten, len(s.Results), s.Edits, s.Errors.Len())
	if s.Errors.Len() > 0 {
		fmt.Fprintf(w, "%s\n", s.Errors.Error())
	}
}
