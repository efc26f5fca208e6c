// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"golang.org/x/xerrors"
	"rsc.io/oprename/diff"
	"rsc.io/oprename/opdiff"
	"rsc.io/oprename/rewrite"
)

type fixCmd struct {
	Renames string `short:"r" long:"renames" required:"true" value-name:"FILE" description:"rename report written by diff"`
	Dir     string `short:"d" long:"dir" required:"true" value-name:"DIR" description:"root of the Go source tree to fix"`
	SDK     string `short:"s" long:"sdk" value-name:"PATH" description:"import path of the generated SDK package"`
	Config  string `short:"c" long:"config" value-name:"FILE" description:"YAML configuration file"`
	Jobs    int    `short:"j" long:"jobs" description:"number of files to fix at once (default 16)"`
	Diff    bool   `long:"diff" description:"print a diff instead of writing files"`

	env *env
}

func (c *fixCmd) Execute(args []string) error {
	if len(args) > 0 {
		return newErrUsage("fix: unexpected arguments %q", args)
	}
	cfg := rewrite.DefaultConfig()
	if c.Config != "" {
		var err error
		if cfg, err = rewrite.LoadConfig(c.Config); err != nil {
			return err
		}
	}
	if c.SDK != "" {
		cfg.SDKImportPath = c.SDK
	}
	if c.Jobs != 0 {
		cfg.Concurrency = c.Jobs
	}
	if err := cfg.Validate(); err != nil {
		return newErrUsage("fix: %v", err)
	}

	report, err := opdiff.ReadReport(c.Renames)
	if err != nil {
		return err
	}
	files, err := rewrite.Collect(c.Dir, cfg)
	if err != nil {
		return err
	}
	log, err := c.env.logger()
	if err != nil {
		return err
	}

	f := rewrite.NewFixer(cfg, rewrite.BuildLookup(report.Entries, cfg.OwnerSuffix), log)
	f.DryRun = c.Diff
	s := f.Run(files)

	if c.Diff {
		for _, r := range s.Results {
			if !r.Changed() {
				continue
			}
			name, err := filepath.Rel(c.Dir, r.Path)
			if err != nil {
				name = r.Path
			}
			name = filepath.ToSlash(name)
			d, err := diff.Diff("old/"+name, r.Old, "new/"+name, r.New)
			if err != nil {
				return xerrors.Errorf("diff %s: %w", r.Path, err)
			}
			if _, err := c.env.stdout.Write(d); err != nil {
				return xerrors.Errorf("write diff: %w", err)
			}
		}
	}
	s.Write(c.env.stdout)
	return nil
}
