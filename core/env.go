// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
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

package core

import (
	"github.com/benbjohnson/immutable"
)

var emptyList = immutable.NewList()

// EmptyEnv contains no bindings.
var EmptyEnv = LocalEnv{emptyList}

// LocalEnv is a persistent stack of bindings addressed by de Bruijn index. Extending an
// environment never modifies it, so closures may share the prefix they captured.
type LocalEnv struct {
	l *immutable.List
}

func (e LocalEnv) list() *immutable.List {
	if e.l == nil {
		return emptyList
	}
	return e.l
}

// Len returns the number of bindings.
func (e LocalEnv) Len() int { return e.list().Len() }

// Cons binds t at index 0, shifting existing bindings outwards.
func (e LocalEnv) Cons(t Term) LocalEnv { return e.ConsInfo(TermInfo{Term: t}) }

// ConsInfo binds ti at index 0, shifting existing bindings outwards.
func (e LocalEnv) ConsInfo(ti TermInfo) LocalEnv { return LocalEnv{e.list().Append(ti)} }

// Pop removes the innermost binding.
func (e LocalEnv) Pop() LocalEnv {
	n := e.Len()
	if n == 0 {
		return e
	}
	return LocalEnv{e.l.Slice(0, n-1)}
}

// Project returns the term bound at index dbi.
func (e LocalEnv) Project(dbi DBI) (Term, bool) {
	ti, ok := e.ProjectInfo(dbi)
	return ti.Term, ok
}

// ProjectInfo returns the term bound at index dbi, with its syntax info.
func (e LocalEnv) ProjectInfo(dbi DBI) (TermInfo, bool) {
	n := e.Len()
	if dbi < 0 || int(dbi) >= n {
		return TermInfo{}, false
	}
	return e.l.Get(n - 1 - int(dbi)).(TermInfo), true
}

// Iterate over bindings from the innermost outwards.
// If f returns false, iteration will be stopped.
func (e LocalEnv) Range(f func(DBI, TermInfo) bool) {
	l := e.list()
	for i := l.Len() - 1; i >= 0; i-- {
		if !f(DBI(l.Len()-1-i), l.Get(i).(TermInfo)) {
			return
		}
	}
}

// Map creates an environment with each binding replaced by f(binding).
func (e LocalEnv) Map(f func(TermInfo) TermInfo) LocalEnv {
	l := e.list()
	if l.Len() == 0 {
		return e
	}
	b := immutable.NewListBuilder()
	itr := l.Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		b.Append(f(v.(TermInfo)))
	}
	return LocalEnv{b.List()}
}

// Concat places the bindings of inner inside the bindings of e: index 0 of the result is
// index 0 of inner.
func (e LocalEnv) Concat(inner LocalEnv) LocalEnv {
	il := inner.list()
	if il.Len() == 0 {
		return e
	}
	l := e.list()
	itr := il.Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		l = l.Append(v)
	}
	return LocalEnv{l}
}

// GlobalEnv is an append-only table of top-level bindings addressed by absolute index.
// Slots may be reserved before they are defined; a reserved slot holds a nil term.
type GlobalEnv struct {
	l *immutable.List
}

// EmptyGlobalEnv contains no bindings.
var EmptyGlobalEnv = GlobalEnv{emptyList}

func (g GlobalEnv) list() *immutable.List {
	if g.l == nil {
		return emptyList
	}
	return g.l
}

// Len returns the number of slots, including reserved slots.
func (g GlobalEnv) Len() int { return g.list().Len() }

// Push appends a binding and returns its index.
func (g GlobalEnv) Push(ti TermInfo) (GlobalEnv, DBI) {
	l := g.list()
	return GlobalEnv{l.Append(ti)}, DBI(l.Len())
}

// Define fills a reserved slot.
func (g GlobalEnv) Define(dbi DBI, ti TermInfo) GlobalEnv {
	return GlobalEnv{g.list().Set(int(dbi), ti)}
}

// Get returns the binding at dbi. The second result is false when dbi is out of range.
func (g GlobalEnv) Get(dbi DBI) (TermInfo, bool) {
	l := g.list()
	if dbi < 0 || int(dbi) >= l.Len() {
		return TermInfo{}, false
	}
	return l.Get(int(dbi)).(TermInfo), true
}
