// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"golang.org/x/xerrors"
	"rsc.io/oprename/opdiff"
)

type diffCmd struct {
	Before string `short:"b" long:"before" required:"true" value-name:"FILE" description:"contract before the change"`
	After  string `short:"a" long:"after" required:"true" value-name:"FILE" description:"contract after the change"`
	Output string `short:"o" long:"output" required:"true" value-name:"FILE" description:"rename report to write"`

	env *env
}

func (c *diffCmd) Execute(args []string) error {
	if len(args) > 0 {
		return newErrUsage("diff: unexpected arguments %q", args)
	}
	ctx := context.Background()
	before, err := opdiff.Load(ctx, c.Before)
	if err != nil {
		return xerrors.Errorf("before contract: %w", err)
	}
	after, err := opdiff.Load(ctx, c.After)
	if err != nil {
		return xerrors.Errorf("after contract: %w", err)
	}

	r := opdiff.Compute(before, after)
	if err := opdiff.WriteReport(c.Output, r); err != nil {
		return err
	}
	fmt.Fprintf(c.env.stdout, "renamed operation ids: %d\n", r.Len())
	return nil
}
