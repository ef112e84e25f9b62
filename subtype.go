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
	"errors"

	"github.com/voile-lang/voile/core"
)

// CheckSubtype checks that a value of type sub can be used where super is expected.
//
// Universes are cumulative: Type(i) <: Type(j) iff i <= j. Pi types are contravariant in
// the domain and covariant in the codomain; sigma types are covariant in both. All other
// types are subtypes only of the types they unify with.
func CheckSubtype(tcs TCS, sub, super core.Term) (TCS, error) {
	sub, super = tcs.Resolve(sub), tcs.Resolve(super)

	switch a := sub.(type) {
	case *core.Type:
		if b, ok := super.(*core.Type); ok {
			if a.Level <= b.Level {
				return tcs, nil
			}
			return tcs, &NotSubtype{Sub: sub, Super: super}
		}

	case *core.Dt:
		b, ok := super.(*core.Dt)
		if !ok || a.Kind != b.Kind || a.Visib != b.Visib {
			break
		}
		var (
			err   error
			bound core.Term
		)
		if a.Kind == core.Pi {
			tcs, err = CheckSubtype(tcs, b.Closure.ParamType, a.Closure.ParamType)
			bound = b.Closure.ParamType
		} else {
			tcs, err = CheckSubtype(tcs, a.Closure.ParamType, b.Closure.ParamType)
			bound = a.Closure.ParamType
		}
		if err != nil {
			return tcs, err
		}
		return tcs.under(bound, nil, func(tcs TCS) (TCS, error) {
			return CheckSubtype(tcs, a.Closure.Open(), b.Closure.Open())
		})
	}

	next, err := Unify(tcs, sub, super)
	if err != nil {
		var mismatch *CannotUnify
		if errors.As(err, &mismatch) {
			return tcs, &NotSubtype{Sub: sub, Super: super}
		}
		return tcs, err
	}
	return next, nil
}
