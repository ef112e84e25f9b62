// The MIT License (MIT)
//
// Copyright (c) 2026 The Voile Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package metautil

import (
	"github.com/benbjohnson/immutable"

	"github.com/voile-lang/voile/core"
)

type miComparer struct{}

func (miComparer) Compare(a, b interface{}) int {
	x, y := a.(core.MI), b.(core.MI)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

var emptyEntries = immutable.NewSortedMap(miComparer{})

// Entry records the scope of a metavariable and its solution, if any. Depth is the number
// of local bindings in scope when the metavariable was created; Solution is relative to
// that depth. Info locates the syntax the metavariable stands for.
type Entry struct {
	Depth    int
	Info     core.Info
	Solution core.Term
}

// Solved returns true if the metavariable has a solution.
func (e Entry) Solved() bool { return e.Solution != nil }

// Store is a persistent table of metavariables. Allocating or solving a metavariable
// returns a new store and leaves the receiver unchanged; indices are never reused by
// stores derived from the same lineage.
type Store struct {
	m    *immutable.SortedMap
	next core.MI
}

func (s Store) entries() *immutable.SortedMap {
	if s.m == nil {
		return emptyEntries
	}
	return s.m
}

// Len returns the number of allocated metavariables.
func (s Store) Len() int { return s.entries().Len() }

// Fresh allocates an unsolved metavariable scoped at depth.
func (s Store) Fresh(depth int, info core.Info) (Store, core.MI) {
	mi := s.next
	return Store{m: s.entries().Set(mi, Entry{Depth: depth, Info: info}), next: mi + 1}, mi
}

// Lookup returns the entry for mi.
func (s Store) Lookup(mi core.MI) (Entry, bool) {
	e, ok := s.entries().Get(mi)
	if !ok {
		return Entry{}, false
	}
	return e.(Entry), true
}

// Solve records a solution for mi. Solving an unknown metavariable panics.
func (s Store) Solve(mi core.MI, solution core.Term) Store {
	e, ok := s.Lookup(mi)
	if !ok {
		panic("solving unknown metavariable")
	}
	e.Solution = solution
	return Store{m: s.entries().Set(mi, e), next: s.next}
}

// Unsolved returns the unsolved metavariables in ascending order.
func (s Store) Unsolved() []core.MI {
	var unsolved []core.MI
	iter := s.entries().Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !v.(Entry).Solved() {
			unsolved = append(unsolved, k.(core.MI))
		}
	}
	return unsolved
}
