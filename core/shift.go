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

import (
	set "github.com/hashicorp/go-set/v2"
)

// Shift adds by to every free index of t which is at least cutoff.
func Shift(t Term, by, cutoff int) Term {
	if by == 0 {
		return t
	}
	switch t := t.(type) {
	case *Gen:
		if t.Postulate || int(t.Index) < cutoff {
			return t
		}
		return Var(t.Index + DBI(by))
	case *Meta, *Type, *Bot, *Whatever:
		return t
	case *Pair:
		return &Pair{Fst: Shift(t.Fst, by, cutoff), Snd: Shift(t.Snd, by, cutoff)}
	case *Rec:
		return &Rec{Fields: shiftFields(t.Fields, by, cutoff)}
	case *Cons:
		return &Cons{Label: t.Label, Value: Shift(t.Value, by, cutoff)}
	case *Lam:
		return &Lam{Closure: ShiftClosure(t.Closure, by, cutoff)}
	case *Dt:
		return &Dt{Visib: t.Visib, Kind: t.Kind, Closure: ShiftClosure(t.Closure, by, cutoff)}
	case *CaseOr:
		return &CaseOr{Label: t.Label, Closure: ShiftClosure(t.Closure, by, cutoff), Or: Shift(t.Or, by, cutoff)}
	case *RowPoly:
		r := &RowPoly{Kind: t.Kind, Fields: shiftFields(t.Fields, by, cutoff)}
		if t.Rest != nil {
			r.Rest = Shift(t.Rest, by, cutoff)
		}
		return r
	case *NApp:
		return &NApp{Func: Shift(t.Func, by, cutoff).(Neutral), Arg: Shift(t.Arg, by, cutoff)}
	case *NFst:
		return &NFst{Pair: Shift(t.Pair, by, cutoff).(Neutral)}
	case *NSnd:
		return &NSnd{Pair: Shift(t.Pair, by, cutoff).(Neutral)}
	case *NProj:
		return &NProj{Record: Shift(t.Record, by, cutoff).(Neutral), Label: t.Label}
	case *NSplit:
		return &NSplit{Cases: Shift(t.Cases, by, cutoff), Arg: Shift(t.Arg, by, cutoff).(Neutral)}
	}
	panic("unknown term " + t.TermName())
}

// ShiftClosure shifts the free indices of a closure. Indices of the body which refer to the
// argument or to the captured environment are bound.
func ShiftClosure(c Closure, by, cutoff int) Closure {
	if by == 0 {
		return c
	}
	env := c.Body.Env.Map(func(ti TermInfo) TermInfo {
		return TermInfo{Term: Shift(ti.Term, by, cutoff), Info: ti.Info}
	})
	body := c.Body.Body
	body.Term = Shift(body.Term, by, cutoff+1+c.Body.Env.Len())
	return Closure{
		ParamType: Shift(c.ParamType, by, cutoff),
		Body:      ClosureBody{Body: body, Env: env},
	}
}

func shiftFields(fields FieldMap, by, cutoff int) FieldMap {
	return fields.Map(func(_ string, t Term) Term { return Shift(t, by, cutoff) })
}

// Visit calls f for every sub-term of t. bound is the number of binders entered between t
// and the sub-term; an index of a sub-term is free if it is at least bound.
// If f returns false, the children of the sub-term are skipped.
func Visit(t Term, f func(t Term, bound int) bool) {
	visit(t, 0, f)
}

func visit(t Term, bound int, f func(Term, int) bool) {
	if t == nil || !f(t, bound) {
		return
	}
	switch t := t.(type) {
	case *Pair:
		visit(t.Fst, bound, f)
		visit(t.Snd, bound, f)
	case *Rec:
		visitFields(t.Fields, bound, f)
	case *Cons:
		visit(t.Value, bound, f)
	case *Lam:
		visitClosure(t.Closure, bound, f)
	case *Dt:
		visitClosure(t.Closure, bound, f)
	case *CaseOr:
		visitClosure(t.Closure, bound, f)
		visit(t.Or, bound, f)
	case *RowPoly:
		visitFields(t.Fields, bound, f)
		visit(t.Rest, bound, f)
	case *NApp:
		visit(t.Func, bound, f)
		visit(t.Arg, bound, f)
	case *NFst:
		visit(t.Pair, bound, f)
	case *NSnd:
		visit(t.Pair, bound, f)
	case *NProj:
		visit(t.Record, bound, f)
	case *NSplit:
		visit(t.Cases, bound, f)
		visit(t.Arg, bound, f)
	}
}

func visitClosure(c Closure, bound int, f func(Term, int) bool) {
	visit(c.ParamType, bound, f)
	c.Body.Env.Range(func(_ DBI, ti TermInfo) bool {
		visit(ti.Term, bound, f)
		return true
	})
	visit(c.Body.Body.Term, bound+1+c.Body.Env.Len(), f)
}

func visitFields(fields FieldMap, bound int, f func(Term, int) bool) {
	fields.Range(func(_ string, t Term) bool {
		visit(t, bound, f)
		return true
	})
}

// FreeIndices returns the free de Bruijn indices of t.
func FreeIndices(t Term) *set.Set[DBI] {
	free := set.New[DBI](0)
	Visit(t, func(t Term, bound int) bool {
		if g, ok := t.(*Gen); ok && !g.Postulate && int(g.Index) >= bound {
			free.Insert(g.Index - DBI(bound))
		}
		return true
	})
	return free
}

// Metas returns the metavariables occurring in t.
func Metas(t Term) *set.Set[MI] {
	metas := set.New[MI](0)
	Visit(t, func(t Term, _ int) bool {
		if m, ok := t.(*Meta); ok {
			metas.Insert(m.Index)
		}
		return true
	})
	return metas
}
