// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edit applies sets of byte-range replacements to a file text.
//
// Edits are queued in a Queue, which hands them back from the highest
// start offset to the lowest. Apply splices them into the text in that
// order, so the offsets of the edits still waiting in the queue, which
// all lie further left, keep referring to unchanged bytes.
package edit

import (
	"container/heap"
	"fmt"
	"slices"

	"golang.org/x/xerrors"
)

// An Edit replaces the bytes [Start, End) with New.
type Edit struct {
	Start int
	End   int
	New   string
}

func (e Edit) String() string {
	return fmt.Sprintf("[%d,%d)->%q", e.Start, e.End, e.New)
}

// A Queue is a max-heap of edits ordered by start offset.
// The zero value is an empty queue, ready to use.
type Queue struct {
	h edits
}

// Push adds e to the queue.
func (q *Queue) Push(e Edit) {
	heap.Push(&q.h, e)
}

// Pop removes and returns the queued edit with the highest start offset.
// The result is false if the queue is empty.
func (q *Queue) Pop() (Edit, bool) {
	if len(q.h) == 0 {
		return Edit{}, false
	}
	return heap.Pop(&q.h).(Edit), true
}

// Len returns the number of queued edits.
func (q *Queue) Len() int {
	return len(q.h)
}

// Merge moves all edits from other into q.
func (q *Queue) Merge(other *Queue) {
	for {
		e, ok := other.Pop()
		if !ok {
			return
		}
		q.Push(e)
	}
}

type edits []Edit

func (x edits) Len() int { return len(x) }
func (x edits) Less(i, j int) bool {
	if x[i].Start != x[j].Start {
		return x[i].Start > x[j].Start
	}
	return x[i].End > x[j].End
}
func (x edits) Swap(i, j int) { x[i], x[j] = x[j], x[i] }
func (x *edits) Push(e any)   { *x = append(*x, e.(Edit)) }
func (x *edits) Pop() any {
	old := *x
	e := old[len(old)-1]
	*x = old[:len(old)-1]
	return e
}

// Apply drains q and returns a copy of text with every edit applied.
// Edits are spliced in from right to left. If an edit lies outside text
// or overlaps another edit, Apply returns an error. Text itself is never
// modified, but q is left partly drained and should be discarded.
func Apply(text []byte, q *Queue) ([]byte, error) {
	out := slices.Clone(text)
	limit := len(text)
	var prev Edit
	for {
		e, ok := q.Pop()
		if !ok {
			break
		}
		if e.Start < 0 || e.End < e.Start || e.End > len(text) {
			return nil, xerrors.Errorf("invalid edit %v for text of length %d", e, len(text))
		}
		if e.End > limit {
			return nil, xerrors.Errorf("overlapping edits: %v, %v", e, prev)
		}
		out = slices.Replace(out, e.Start, e.End, []byte(e.New)...)
		limit = e.Start
		prev = e
	}
	return out, nil
}
