// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	_ "embed"
	"go/token"
	"slices"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	"golang.org/x/xerrors"
)

var (
	//go:embed queries/calls.scm
	callsQuery string

	//go:embed queries/params.scm
	paramsQuery string

	//go:embed queries/imports.scm
	importsQuery string
)

var goLanguage = tree_sitter.NewLanguage(tree_sitter_go.Language())

// A Source is a Go file and its concrete syntax tree.
// A Source must not be shared between goroutines.
type Source struct {
	Name string
	Text []byte
	tree *tree_sitter.Tree
}

// Parse parses text, the content of the file name.
// A syntax error anywhere in the file is reported as an *Error.
func Parse(name string, text []byte) (*Source, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(goLanguage); err != nil {
		return nil, xerrors.Errorf("set language: %w", err)
	}
	tree := parser.Parse(text, nil)
	if tree == nil {
		return nil, &Error{Pos: token.Position{Filename: name}, Msg: "parse failed"}
	}
	if root := tree.RootNode(); root.HasError() {
		bad := firstError(root)
		if bad == nil {
			bad = root
		}
		tree.Close()
		return nil, &Error{Pos: position(name, bad), Msg: "syntax error"}
	}
	return &Source{Name: name, Text: text, tree: tree}, nil
}

// Close releases the syntax tree.
func (s *Source) Close() {
	s.tree.Close()
}

func firstError(n *tree_sitter.Node) *tree_sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil || !c.HasError() {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}

func position(name string, n *tree_sitter.Node) token.Position {
	p := n.StartPosition()
	return token.Position{
		Filename: name,
		Offset:   int(n.StartByte()),
		Line:     int(p.Row) + 1,
		Column:   int(p.Column) + 1,
	}
}

// A Capture is a node captured by a query.
type Capture struct {
	Text  string
	Start int // byte offset
	End   int // byte offset, exclusive
	Line  int
}

// A CallMatch is a call Receiver.Client.Owner.Method(...).
type CallMatch struct {
	Receiver Capture
	Client   Capture
	Owner    Capture
	Method   Capture
}

// A ParamMatch is a qualified type name Package.Type.
type ParamMatch struct {
	Package Capture
	Type    Capture
}

// An ImportMatch is one import declaration.
// Name is the zero Capture when the import has no explicit name.
type ImportMatch struct {
	Name Capture
	Path Capture
}

// HasName reports whether the import declares its package name.
func (m ImportMatch) HasName() bool {
	return m.Name.End > m.Name.Start
}

// ImportPath returns the unquoted import path.
func (m ImportMatch) ImportPath() string {
	p := m.Path.Text
	if len(p) >= 2 && (p[0] == '"' || p[0] == '`') && p[len(p)-1] == p[0] {
		p = p[1 : len(p)-1]
	}
	return p
}

// MethodCalls returns the client method calls in s, in source order.
func (s *Source) MethodCalls() ([]CallMatch, error) {
	var calls []CallMatch
	err := s.query(callsQuery, func(c map[string]Capture) {
		calls = append(calls, CallMatch{
			Receiver: c["receiver"],
			Client:   c["client"],
			Owner:    c["owner"],
			Method:   c["method"],
		})
	})
	slices.SortFunc(calls, func(a, b CallMatch) int { return a.Method.Start - b.Method.Start })
	return calls, err
}

// ParamTypes returns the qualified type names in s, in source order.
func (s *Source) ParamTypes() ([]ParamMatch, error) {
	var params []ParamMatch
	err := s.query(paramsQuery, func(c map[string]Capture) {
		params = append(params, ParamMatch{
			Package: c["package"],
			Type:    c["type"],
		})
	})
	slices.SortFunc(params, func(a, b ParamMatch) int { return a.Type.Start - b.Type.Start })
	return params, err
}

// Imports returns the import declarations in s, in source order.
func (s *Source) Imports() ([]ImportMatch, error) {
	var imports []ImportMatch
	err := s.query(importsQuery, func(c map[string]Capture) {
		imports = append(imports, ImportMatch{
			Name: c["name"],
			Path: c["path"],
		})
	})
	slices.SortFunc(imports, func(a, b ImportMatch) int { return a.Path.Start - b.Path.Start })
	return imports, err
}

// query runs the query src over the whole tree and calls fn
// with the captures of each match, keyed by capture name.
func (s *Source) query(src string, fn func(map[string]Capture)) error {
	q, qerr := tree_sitter.NewQuery(goLanguage, src)
	if qerr != nil {
		return xerrors.Errorf("compile query: %s", qerr.Message)
	}
	defer q.Close()

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	names := q.CaptureNames()
	matches := cursor.Matches(q, s.tree.RootNode(), s.Text)
	for m := matches.Next(); m != nil; m = matches.Next() {
		caps := make(map[string]Capture, len(m.Captures))
		for _, c := range m.Captures {
			caps[names[c.Index]] = Capture{
				Text:  c.Node.Utf8Text(s.Text),
				Start: int(c.Node.StartByte()),
				End:   int(c.Node.EndByte()),
				Line:  int(c.Node.StartPosition().Row) + 1,
			}
		}
		fn(caps)
	}
	return nil
}
