// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/xerrors"
)

// Collect returns the files under root with extension cfg.Extension,
// minus those matching a pattern in cfg.Exclude, in lexical order.
// Any error reading a directory aborts the walk.
func Collect(root string, cfg *Config) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, xerrors.Errorf("read directory: %w", err)
	}
	if !info.IsDir() {
		return nil, xerrors.Errorf("read directory: %s is not a directory", root)
	}

	var files []string
	walk := func(name string, d fs.DirEntry) error {
		if !strings.HasSuffix(name, cfg.Extension) {
			return nil
		}
		for _, pattern := range cfg.Exclude {
			if ok, _ := doublestar.Match(pattern, name); ok {
				return nil
			}
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(name)))
		return nil
	}
	// The extension is compared literally, not as part of the pattern.
	err = doublestar.GlobWalk(os.DirFS(root), "**", walk, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, xerrors.Errorf("read directory %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
