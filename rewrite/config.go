// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"golang.org/x/mod/module"
	"golang.org/x/xerrors"
)

// DefaultConcurrency is the number of files fixed at once.
const DefaultConcurrency = 16

// Config describes the generated SDK and the code that calls it.
type Config struct {
	// SDKImportPath is the import path of the generated SDK package,
	// such as go.mongodb.org/atlas-sdk/v20231115002/admin.
	SDKImportPath string `yaml:"sdk"`

	// Receiver and ClientField name the expression through which
	// calling code reaches the API client: Receiver.ClientField.OwnerApi.Method(...).
	Receiver    string `yaml:"receiver"`
	ClientField string `yaml:"clientField"`

	// CallSuffix marks the variant of a client method taking a parameters struct.
	CallSuffix string `yaml:"callSuffix"`

	// ParamsSuffix ends the name of every generated parameters struct.
	ParamsSuffix string `yaml:"paramsSuffix"`

	// OwnerSuffix is appended to a normalized tag to name the API
	// group type owning the tag's operations.
	OwnerSuffix string `yaml:"ownerSuffix"`

	// DefaultAlias is the package name the SDK is referred to by
	// when it is imported without an explicit name.
	DefaultAlias string `yaml:"defaultAlias"`

	// Extension selects the files to fix.
	Extension string `yaml:"extension"`

	// Exclude lists doublestar patterns, relative to the root directory,
	// of files to leave alone.
	Exclude []string `yaml:"exclude"`

	Concurrency int `yaml:"concurrency"`
}

// DefaultConfig returns the configuration for the Atlas CLI and Go SDK.
func DefaultConfig() *Config {
	return &Config{
		Receiver:     "s",
		ClientField:  "clientv2",
		CallSuffix:   "WithParams",
		ParamsSuffix: "ApiParams",
		OwnerSuffix:  "Api",
		DefaultAlias: "admin",
		Extension:    ".go",
		Concurrency:  DefaultConcurrency,
	}
}

// LoadConfig returns the default configuration overlaid
// with the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, xerrors.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first problem with c, if any.
func (c *Config) Validate() error {
	if c.SDKImportPath == "" {
		return xerrors.New("missing SDK import path")
	}
	if err := module.CheckImportPath(c.SDKImportPath); err != nil {
		return xerrors.Errorf("invalid SDK import path: %w", err)
	}
	for _, f := range []struct{ name, value string }{
		{"receiver", c.Receiver},
		{"clientField", c.ClientField},
		{"callSuffix", c.CallSuffix},
		{"paramsSuffix", c.ParamsSuffix},
		{"defaultAlias", c.DefaultAlias},
		{"extension", c.Extension},
	} {
		if f.value == "" {
			return xerrors.Errorf("missing %s", f.name)
		}
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return xerrors.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	if c.Concurrency <= 0 {
		return xerrors.Errorf("concurrency must be positive, have %d", c.Concurrency)
	}
	return nil
}
