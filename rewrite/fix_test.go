// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const storeBefore = `package store

import (
	"context"

	"go.mongodb.org/atlas-sdk/v20231115002/admin"
)

// OldName used to be called OldNameWithParams; this comment stays.
func (s *Store) Group(ctx context.Context, id string) (*admin.Group, error) {
	params := &admin.OldNameApiParams{GroupId: id}
	result, _, err := s.clientv2.GroupsApi.OldNameWithParams(ctx, params).Execute()
	OldNameHelper := "OldName"
	_ = OldNameHelper
	return result, err
}

func (s *Store) User(ctx context.Context) {
	s.clientv2.UsersApi.OldName(ctx).Execute()
}
`

const storeAfter = `package store

import (
	"context"

	"go.mongodb.org/atlas-sdk/v20231115002/admin"
)

// OldName used to be called OldNameWithParams; this comment stays.
func (s *Store) Group(ctx context.Context, id string) (*admin.Group, error) {
	params := &admin.NewNameApiParams{GroupId: id}
	result, _, err := s.clientv2.GroupsApi.NewNameWithParams(ctx, params).Execute()
	OldNameHelper := "OldName"
	_ = OldNameHelper
	return result, err
}

func (s *Store) User(ctx context.Context) {
	s.clientv2.UsersApi.OldName(ctx).Execute()
}
`

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, text := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0777))
		require.NoError(t, os.WriteFile(path, []byte(text), 0640))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFixFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"store.go": storeBefore})
	path := filepath.Join(dir, "store.go")

	f := NewFixer(testConfig(), groupsLookup, zap.NewNop())
	res := f.FixFile(path)
	require.NoError(t, res.Err)
	assert.True(t, res.Changed())
	assert.Equal(t, 2, res.Edits)
	assert.Len(t, res.Diagnostics, 1)
	assert.Equal(t, storeAfter, readFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	// A second pass finds nothing left to rename.
	res = f.FixFile(path)
	require.NoError(t, res.Err)
	assert.False(t, res.Changed())
	assert.Zero(t, res.Edits)
}

func TestFixFileDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"store.go": storeBefore})
	path := filepath.Join(dir, "store.go")

	f := NewFixer(testConfig(), groupsLookup, zap.NewNop())
	f.DryRun = true
	res := f.FixFile(path)
	require.NoError(t, res.Err)
	assert.Equal(t, storeBefore, string(res.Old))
	assert.Equal(t, storeAfter, string(res.New))
	assert.Equal(t, storeBefore, readFile(t, path))
}

func TestFixFileSyntaxError(t *testing.T) {
	dir := t.TempDir()
	broken := "package store\n\nfunc (s *Store) Group() {\n\ts.clientv2.GroupsApi.OldName(\n"
	writeFiles(t, dir, map[string]string{"broken.go": broken})
	path := filepath.Join(dir, "broken.go")

	res := NewFixer(testConfig(), groupsLookup, zap.NewNop()).FixFile(path)
	var e *Error
	require.True(t, errors.As(res.Err, &e), "err = %v", res.Err)
	assert.Equal(t, "syntax error", e.Msg)
	assert.Equal(t, path, e.Pos.Filename)
	assert.Positive(t, e.Pos.Line)
	assert.False(t, res.Changed())
	assert.Equal(t, broken, readFile(t, path))
}

func TestFixFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.go")
	res := NewFixer(testConfig(), groupsLookup, zap.NewNop()).FixFile(path)
	assert.ErrorIs(t, res.Err, os.ErrNotExist)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"store.go":           storeBefore,
		"other/unrelated.go": "package other\n\nfunc OldName() {}\n",
		"bad/broken.go":      "package bad\n\nfunc {\n",
	}
	for i := 0; i < 40; i++ {
		files[filepath.ToSlash(filepath.Join("many", strings.Repeat("x", i+1)+".go"))] = storeBefore
	}
	writeFiles(t, dir, files)

	core, logs := observer.New(zapcore.DebugLevel)
	cfg := testConfig()
	cfg.Concurrency = 4
	f := NewFixer(cfg, groupsLookup, zap.New(core))

	list, err := Collect(dir, cfg)
	require.NoError(t, err)
	list = append(list, filepath.Join(dir, "gone.go"))
	s := f.Run(list)

	assert.Len(t, s.Results, len(list))
	assert.Equal(t, 41, s.Rewritten)
	assert.Equal(t, 82, s.Edits)
	assert.Equal(t, 2, s.Errors.Len())
	assert.Equal(t, storeAfter, readFile(t, filepath.Join(dir, "store.go")))
	assert.Equal(t, storeAfter, readFile(t, filepath.Join(dir, "many", "xxx.go")))
	assert.Equal(t, "package bad\n\nfunc {\n", readFile(t, filepath.Join(dir, "bad", "broken.go")))

	assert.Equal(t, 41, logs.FilterMessage("skipping call renamed in another API group").Len())
	assert.Equal(t, 2, logs.FilterMessage("file left unmodified").Len())
	skip := logs.FilterMessage("skipping call renamed in another API group").All()[0]
	assert.Equal(t, "UsersApi", skip.ContextMap()["have"])
	assert.Equal(t, "GroupsApi", skip.ContextMap()["want"])

	var out strings.Builder
	s.Write(&out)
	assert.True(t, strings.HasPrefix(out.String(), "rewrote 41 of 44 files (82 edits), 2 failed\n"), out.String())
	assert.Contains(t, out.String(), "broken.go:")
	assert.Contains(t, out.String(), "gone.go: read:")
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.go":           "package a\n",
		"sub/b.go":       "package sub\n",
		"sub/deep/c.go":  "package deep\n",
		"sub/notes.txt":  "OldName\n",
		"vendor/v/v.go":  "package v\n",
		"sub/go.mod":     "module sub\n",
		"sub/d_test.go":  "package sub\n",
		"testdata/x.txt": "x\n",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dir.go"), 0777))

	cfg := testConfig()
	cfg.Exclude = []string{"vendor/**"}
	files, err := Collect(dir, cfg)
	require.NoError(t, err)
	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"a.go", "sub/b.go", "sub/d_test.go", "sub/deep/c.go"}, rel)
}

func TestCollectLiteralExtension(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.[x]":     "a\n",
		"sub/b.[x]": "b\n",
		"c.x":       "c\n",
		"d.go":      "package d\n",
	})
	cfg := testConfig()
	cfg.Extension = ".[x]"
	files, err := Collect(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.[x]"), filepath.Join(dir, "sub", "b.[x]")}, files)
}

func TestCollectErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Collect(filepath.Join(dir, "missing"), testConfig())
	assert.ErrorContains(t, err, "read directory")

	writeFiles(t, dir, map[string]string{"file.go": "package x\n"})
	_, err = Collect(filepath.Join(dir, "file.go"), testConfig())
	assert.ErrorContains(t, err, "not a directory")
}
