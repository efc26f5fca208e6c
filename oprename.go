// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"rsc.io/oprename/logging"
)

func main() {
	log.SetPrefix("oprename: ")
	log.SetFlags(0)

	err := run(os.Args[1:], os.Stdout, nil)
	if err == nil {
		return
	}
	var usage *errUsage
	var ferr *flags.Error
	if errors.As(err, &usage) || errors.As(err, &ferr) {
		fmt.Fprintf(os.Stderr, "oprename: %v\n", err)
		os.Exit(2)
	}
	log.Fatal(err)
}

// An env is the state shared by the subcommands of one invocation.
type env struct {
	LogLevel string `long:"log-level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"level of diagnostic logging"`

	stdout io.Writer
	log    *zap.Logger
}

func (e *env) logger() (*zap.Logger, error) {
	if e.log == nil {
		l, err := logging.New(e.LogLevel)
		if err != nil {
			return nil, err
		}
		e.log = l
	}
	return e.log, nil
}

// run executes the command line args, writing results to stdout.
// If log is nil, a logger is built from the -log-level flag.
func run(args []string, stdout io.Writer, log *zap.Logger) error {
	e := &env{stdout: stdout, log: log}
	p := flags.NewParser(e, flags.HelpFlag|flags.PassDoubleDash)
	p.Name = "oprename"
	p.LongDescription = "Oprename follows renamed API operations from an OpenAPI contract into Go code calling the generated SDK."

	if _, err := p.AddCommand("diff",
		"find renamed operations",
		"Diff compares two versions of an OpenAPI contract and writes a report of the operations whose id changed.",
		&diffCmd{env: e}); err != nil {
		return err
	}
	if _, err := p.AddCommand("fix",
		"rename operations in Go code",
		"Fix rewrites the client method calls and parameter types named after renamed operations in a Go source tree.",
		&fixCmd{env: e}); err != nil {
		return err
	}

	if _, err := p.ParseArgs(args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, ferr.Message)
			return nil
		}
		return err
	}
	if e.log != nil {
		e.log.Sync()
	}
	return nil
}
