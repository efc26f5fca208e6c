// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"fmt"
	"go/token"
	"sort"
	"strings"
)

// An Error is a failure to fix one file, possibly at a position within it.
type Error struct {
	Pos token.Position
	Msg string
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Pos.IsValid():
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	case e.Pos.Filename != "":
		return fmt.Sprintf("%s: %s", e.Pos.Filename, e.Msg)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fileError(path, action string, err error) *Error {
	return &Error{Pos: token.Position{Filename: path}, Msg: action + ": " + err.Error(), Err: err}
}

type errorKey struct {
	pos token.Position
	msg string
}

// ErrorList is a set of Errors. It is also an error itself.
// The zero value is an empty list, ready to use.
type ErrorList struct {
	errs []*Error
	set  map[errorKey]bool
}

// Add adds err to l. Errors other than *Error are recorded
// without position. Duplicates (same position and message) are dropped.
func (l *ErrorList) Add(err error) {
	var e *Error
	switch err := err.(type) {
	case nil:
		return
	case *ErrorList:
		for _, e := range err.errs {
			l.Add(e)
		}
		return
	case *Error:
		e = err
	default:
		e = &Error{Msg: err.Error(), Err: err}
	}

	k := errorKey{e.Pos, e.Msg}
	if !l.set[k] {
		if l.set == nil {
			l.set = make(map[errorKey]bool)
		}
		l.errs = append(l.errs, e)
		l.set[k] = true
	}
}

// Len returns the number of errors in l.
func (l *ErrorList) Len() int {
	return len(l.errs)
}

// Error sorts l by position and returns a "\n" separated list
// of formatted errors, without a final "\n".
func (l *ErrorList) Error() string {
	if len(l.errs) == 0 {
		return "no errors"
	}

	sort.Slice(l.errs, func(i, j int) bool {
		p1, p2 := l.errs[i].Pos, l.errs[j].Pos
		if p1.Filename != p2.Filename {
			return p1.Filename < p2.Filename
		}
		return p1.Offset < p2.Offset
	})

	// A message repeated in many files usually has one cause;
	// print it once with a count.
	count := make(map[string]int)
	for _, e := range l.errs {
		count[e.Msg]++
	}

	buf := new(strings.Builder)
	for _, e := range l.errs {
		msg := e.Msg
		switch {
		case count[msg] > 3:
			n := count[msg]
			count[msg] = -1
			msg += fmt.Sprintf(" [× %d]", n)
		case count[msg] < 0:
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		e2 := *e
		e2.Msg = msg
		buf.WriteString(e2.Error())
	}
	return buf.String()
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}
