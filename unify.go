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
)

// Unify checks that a and b are the same value, solving metavariables on either side.
func Unify(tcs TCS, a, b core.Term) (TCS, error) {
	a, b = tcs.Resolve(a), tcs.Resolve(b)
	if core.Equal(a, b) {
		return tcs, nil
	}
	if m, ok := a.(*core.Meta); ok {
		return tcs.solve(m.Index, b)
	}
	if m, ok := b.(*core.Meta); ok {
		return tcs.solve(m.Index, a)
	}

	switch a := a.(type) {
	case *core.Dt:
		if b, ok := b.(*core.Dt); ok && a.Visib == b.Visib && a.Kind == b.Kind {
			return unifyClosures(tcs, a.Closure, b.Closure)
		}

	case *core.Lam:
		if b, ok := b.(*core.Lam); ok {
			return unifyClosures(tcs, a.Closure, b.Closure)
		}

	case *core.Pair:
		if b, ok := b.(*core.Pair); ok {
			tcs, err := Unify(tcs, a.Fst, b.Fst)
			if err != nil {
				return tcs, err
			}
			return Unify(tcs, a.Snd, b.Snd)
		}

	case *core.Rec:
		if b, ok := b.(*core.Rec); ok && a.Fields.Len() == b.Fields.Len() {
			return unifyFields(tcs, a.Fields, b.Fields, a, b)
		}

	case *core.Cons:
		if b, ok := b.(*core.Cons); ok && a.Label == b.Label {
			return Unify(tcs, a.Value, b.Value)
		}

	case *core.CaseOr:
		if b, ok := b.(*core.CaseOr); ok && a.Label == b.Label {
			tcs, err := unifyClosures(tcs, a.Closure, b.Closure)
			if err != nil {
				return tcs, err
			}
			return Unify(tcs, a.Or, b.Or)
		}

	case *core.RowPoly:
		if b, ok := b.(*core.RowPoly); ok && a.Kind == b.Kind {
			return unifyRows(tcs, a, b)
		}

	case *core.NApp:
		if b, ok := b.(*core.NApp); ok {
			tcs, err := Unify(tcs, a.Func, b.Func)
			if err != nil {
				return tcs, err
			}
			return Unify(tcs, a.Arg, b.Arg)
		}

	case *core.NFst:
		if b, ok := b.(*core.NFst); ok {
			return Unify(tcs, a.Pair, b.Pair)
		}

	case *core.NSnd:
		if b, ok := b.(*core.NSnd); ok {
			return Unify(tcs, a.Pair, b.Pair)
		}

	case *core.NProj:
		if b, ok := b.(*core.NProj); ok && a.Label == b.Label {
			return Unify(tcs, a.Record, b.Record)
		}

	case *core.NSplit:
		if b, ok := b.(*core.NSplit); ok {
			tcs, err := Unify(tcs, a.Cases, b.Cases)
			if err != nil {
				return tcs, err
			}
			return Unify(tcs, a.Arg, b.Arg)
		}
	}

	return tcs, &CannotUnify{A: a, B: b}
}

// Unify the parameter types, then the bodies under a fresh variable.
func unifyClosures(tcs TCS, a, b core.Closure) (TCS, error) {
	tcs, err := Unify(tcs, a.ParamType, b.ParamType)
	if err != nil {
		return tcs, err
	}
	return tcs.under(a.ParamType, nil, func(tcs TCS) (TCS, error) {
		return Unify(tcs, a.Open(), b.Open())
	})
}

// Unify the terms of two maps with the same labels. a and b are reported on mismatch.
func unifyFields(tcs TCS, fa, fb core.FieldMap, a, b core.Term) (TCS, error) {
	var err error
	fa.Range(func(label string, ta core.Term) bool {
		tb, ok := fb.Get(label)
		if !ok {
			err = &CannotUnify{A: a, B: b}
			return false
		}
		tcs, err = Unify(tcs, ta, tb)
		return err == nil
	})
	return tcs, err
}
