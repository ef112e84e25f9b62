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

package abs

import "github.com/voile-lang/voile/core"

// Walk calls f for e and each of its sub-expressions, in evaluation order.
func Walk(e Abs, f func(Abs)) {
	WalkScoped(e, 0, func(e Abs, _ int) { f(e) })
}

// WalkScoped calls f for e and each of its sub-expressions, together with the number of
// local bindings in scope at the sub-expression. depth is the number in scope at e.
func WalkScoped(e Abs, depth int, f func(e Abs, depth int)) {
	switch e := e.(type) {
	case *Type, *Bot, *Local, *Var, *Meta, *Whatever:
		f(e, depth)

	case *Pair:
		f(e, depth)
		WalkScoped(e.Fst, depth, f)
		WalkScoped(e.Snd, depth+1, f)

	case *Fst:
		f(e, depth)
		WalkScoped(e.Pair, depth, f)

	case *Snd:
		f(e, depth)
		WalkScoped(e.Pair, depth, f)

	case *App:
		f(e, depth)
		WalkScoped(e.Func, depth, f)
		WalkScoped(e.Arg, depth, f)

	case *Lam:
		f(e, depth)
		WalkScoped(e.Body, depth+1, f)

	case *Dt:
		f(e, depth)
		WalkScoped(e.Param, depth, f)
		WalkScoped(e.Ret, depth+1, f)

	case *RecordType:
		f(e, depth)
		for _, field := range e.Fields {
			WalkScoped(field.Type, depth, f)
		}
		WalkScoped(e.Rest, depth, f)

	case *VariantType:
		f(e, depth)
		for _, field := range e.Fields {
			WalkScoped(field.Type, depth, f)
		}
		WalkScoped(e.Rest, depth, f)

	case *Record:
		f(e, depth)
		for _, field := range e.Fields {
			WalkScoped(field.Value, depth, f)
		}

	case *Proj:
		f(e, depth)
		WalkScoped(e.Record, depth, f)

	case *Cons:
		f(e, depth)
		WalkScoped(e.Value, depth, f)

	case *Case:
		f(e, depth)
		WalkScoped(e.Body, depth+1, f)
		WalkScoped(e.Or, depth, f)

	case nil:

	default:
		panic("unknown expression type: " + e.AbsName())
	}
}

// GlobalRefs returns the global indices referenced by e, in order of first reference.
func GlobalRefs(e Abs) []core.DBI {
	var refs []core.DBI
	seen := make(map[core.DBI]bool)
	Walk(e, func(e Abs) {
		if v, ok := e.(*Var); ok && !seen[v.Index] {
			seen[v.Index] = true
			refs = append(refs, v.Index)
		}
	})
	return refs
}
