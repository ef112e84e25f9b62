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

package core

// Equal reports whether two terms are structurally equal. Syntax info is ignored and
// record fields are compared irrespective of order.
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Type:
		b, ok := b.(*Type)
		return ok && a.Level == b.Level
	case *Bot:
		b, ok := b.(*Bot)
		return ok && a.Level == b.Level
	case *Whatever:
		_, ok := b.(*Whatever)
		return ok
	case *Gen:
		b, ok := b.(*Gen)
		return ok && a.Postulate == b.Postulate && a.Index == b.Index
	case *Meta:
		b, ok := b.(*Meta)
		return ok && a.Index == b.Index
	case *Pair:
		b, ok := b.(*Pair)
		return ok && Equal(a.Fst, b.Fst) && Equal(a.Snd, b.Snd)
	case *Rec:
		b, ok := b.(*Rec)
		return ok && equalFields(a.Fields, b.Fields)
	case *Cons:
		b, ok := b.(*Cons)
		return ok && a.Label == b.Label && Equal(a.Value, b.Value)
	case *Lam:
		b, ok := b.(*Lam)
		return ok && equalClosures(a.Closure, b.Closure)
	case *Dt:
		b, ok := b.(*Dt)
		return ok && a.Visib == b.Visib && a.Kind == b.Kind && equalClosures(a.Closure, b.Closure)
	case *CaseOr:
		b, ok := b.(*CaseOr)
		return ok && a.Label == b.Label && equalClosures(a.Closure, b.Closure) && Equal(a.Or, b.Or)
	case *RowPoly:
		b, ok := b.(*RowPoly)
		return ok && a.Kind == b.Kind && equalFields(a.Fields, b.Fields) && Equal(a.Rest, b.Rest)
	case *NApp:
		b, ok := b.(*NApp)
		return ok && Equal(a.Func, b.Func) && Equal(a.Arg, b.Arg)
	case *NFst:
		b, ok := b.(*NFst)
		return ok && Equal(a.Pair, b.Pair)
	case *NSnd:
		b, ok := b.(*NSnd)
		return ok && Equal(a.Pair, b.Pair)
	case *NProj:
		b, ok := b.(*NProj)
		return ok && a.Label == b.Label && Equal(a.Record, b.Record)
	case *NSplit:
		b, ok := b.(*NSplit)
		return ok && Equal(a.Cases, b.Cases) && Equal(a.Arg, b.Arg)
	}
	return false
}

func equalClosures(a, b Closure) bool {
	if !Equal(a.ParamType, b.ParamType) || !Equal(a.Body.Body.Term, b.Body.Body.Term) {
		return false
	}
	if a.Body.Env.Len() != b.Body.Env.Len() {
		return false
	}
	equal := true
	a.Body.Env.Range(func(i DBI, ati TermInfo) bool {
		bti, _ := b.Body.Env.ProjectInfo(i)
		equal = Equal(ati.Term, bti.Term)
		return equal
	})
	return equal
}

func equalFields(a, b FieldMap) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Range(func(label string, at Term) bool {
		bt, ok := b.Get(label)
		equal = ok && Equal(at, bt)
		return equal
	})
	return equal
}
