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

package voile

import (
	"github.com/voile-lang/voile/core"
	"github.com/voile-lang/voile/internal/metautil"
)

// TCS is the type-checking state: the local context and environment, the global table and
// the metavariable store. A TCS is a value; every operation which changes it returns a new
// TCS and leaves its argument usable, so a state may be retained to roll back a failed check.
//
// Local types and values are stored relative to the depth just inside their binder and are
// shifted on lookup, so that they are valid at the depth of the reference.
type TCS struct {
	localGamma  core.LocalEnv
	localEnv    core.LocalEnv
	globalGamma core.GlobalEnv
	globalEnv   core.GlobalEnv
	metas       metautil.Store
	levels      LevelPolicy
}

// Option configures a new TCS.
type Option func(*TCS)

// Use a custom policy for universe levels.
func WithLevelPolicy(levels LevelPolicy) Option {
	return func(tcs *TCS) { tcs.levels = levels }
}

// Create an empty checking state.
func NewTCS(opts ...Option) TCS {
	tcs := TCS{
		localGamma:  core.EmptyEnv,
		localEnv:    core.EmptyEnv,
		globalGamma: core.EmptyGlobalEnv,
		globalEnv:   core.EmptyGlobalEnv,
		levels:      DefaultLevels{},
	}
	for _, opt := range opts {
		opt(&tcs)
	}
	return tcs
}

func (tcs TCS) levelPolicy() LevelPolicy {
	if tcs.levels == nil {
		return DefaultLevels{}
	}
	return tcs.levels
}

// Depth returns the number of local bindings in scope.
func (tcs TCS) Depth() int { return tcs.localGamma.Len() }

// Globals returns the number of global slots, including reserved slots.
func (tcs TCS) Globals() int { return tcs.globalGamma.Len() }

// PushLocal binds a local of type ty, valid at the current depth. val is the value of the
// binding, also valid at the current depth; a nil val binds an abstract variable.
func (tcs TCS) PushLocal(ty, val core.Term) TCS {
	if val == nil {
		val = core.Var(0)
	} else {
		val = core.Shift(val, 1, 0)
	}
	tcs.localGamma = tcs.localGamma.Cons(core.Shift(ty, 1, 0))
	tcs.localEnv = tcs.localEnv.Cons(val)
	return tcs
}

// PopLocal removes the innermost local binding.
func (tcs TCS) PopLocal() TCS {
	tcs.localGamma = tcs.localGamma.Pop()
	tcs.localEnv = tcs.localEnv.Pop()
	return tcs
}

// under runs f with one more local binding and removes the binding afterwards, whether or
// not f fails.
func (tcs TCS) under(ty, val core.Term, f func(TCS) (TCS, error)) (TCS, error) {
	inner, err := f(tcs.PushLocal(ty, val))
	return inner.PopLocal(), err
}

// LocalType returns the type of a local binding, valid at the current depth.
func (tcs TCS) LocalType(info core.Info, dbi core.DBI) (core.Term, error) {
	ty, ok := tcs.localGamma.Project(dbi)
	if !ok {
		return nil, &DbiOverflow{Info: info, Max: tcs.Depth(), Requested: dbi}
	}
	return core.Shift(ty, int(dbi), 0), nil
}

// LocalVal returns the value of a local binding, valid at the current depth.
func (tcs TCS) LocalVal(info core.Info, dbi core.DBI) (core.Term, error) {
	val, ok := tcs.localEnv.Project(dbi)
	if !ok {
		return nil, &DbiOverflow{Info: info, Max: tcs.Depth(), Requested: dbi}
	}
	return core.Shift(val, int(dbi), 0), nil
}

// GlobType returns the type of a global slot.
func (tcs TCS) GlobType(info core.Info, dbi core.DBI) (core.Term, error) {
	ti, ok := tcs.globalGamma.Get(dbi)
	if !ok {
		return nil, &DbiOverflow{Info: info, Max: tcs.Globals(), Requested: dbi}
	}
	if ti.Term == nil {
		return nil, &TypeNotInGamma{Info: info}
	}
	return ti.Term, nil
}

// GlobVal returns the value of a global slot.
func (tcs TCS) GlobVal(info core.Info, dbi core.DBI) (core.Term, error) {
	ti, ok := tcs.globalEnv.Get(dbi)
	if !ok {
		return nil, &DbiOverflow{Info: info, Max: tcs.Globals(), Requested: dbi}
	}
	if ti.Term == nil {
		return nil, &TypeNotInGamma{Info: info}
	}
	return ti.Term, nil
}

// ReserveGlobal appends an empty global slot, to be filled by DefineGlobal.
func (tcs TCS) ReserveGlobal() (TCS, core.DBI) {
	var dbi core.DBI
	tcs.globalGamma, dbi = tcs.globalGamma.Push(core.TermInfo{})
	tcs.globalEnv, _ = tcs.globalEnv.Push(core.TermInfo{})
	return tcs, dbi
}

// DefineGlobal fills a global slot with a closed type and value.
func (tcs TCS) DefineGlobal(dbi core.DBI, ty, val core.TermInfo) TCS {
	tcs.globalGamma = tcs.globalGamma.Define(dbi, ty)
	tcs.globalEnv = tcs.globalEnv.Define(dbi, val)
	return tcs
}
