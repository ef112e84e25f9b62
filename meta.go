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

// FreshMeta allocates an unsolved metavariable scoped at the current depth. info locates
// the syntax that introduced it.
func (tcs TCS) FreshMeta(info core.Info) (TCS, *core.Meta) {
	var mi core.MI
	tcs.metas, mi = tcs.metas.Fresh(tcs.Depth(), info)
	return tcs, &core.Meta{Index: mi}
}

// metaInfo locates the syntax that introduced t, if t is a metavariable.
func (tcs TCS) metaInfo(t core.Term) core.Info {
	if m, ok := t.(*core.Meta); ok {
		if e, ok := tcs.metas.Lookup(m.Index); ok {
			return e.Info
		}
	}
	return core.Info{}
}

// solution returns the solution of mi, valid at depth.
func (tcs TCS) solution(mi core.MI, depth int) (core.Term, bool) {
	e, ok := tcs.metas.Lookup(mi)
	if !ok || !e.Solved() {
		return nil, false
	}
	return core.Shift(e.Solution, depth-e.Depth, 0), true
}

// Resolve replaces a solved metavariable at the head of t by its solution, and resumes
// computations which were stuck on it, until the head is no longer a solved metavariable.
func (tcs TCS) Resolve(t core.Term) core.Term {
	switch n := t.(type) {
	case *core.Meta:
		if sol, ok := tcs.solution(n.Index, tcs.Depth()); ok {
			return tcs.Resolve(sol)
		}
	case *core.NApp:
		if f := tcs.Resolve(n.Func); f != core.Term(n.Func) {
			return tcs.Resolve(core.Apply(f, n.Arg))
		}
	case *core.NFst:
		if p := tcs.Resolve(n.Pair); p != core.Term(n.Pair) {
			return tcs.Resolve(core.First(p))
		}
	case *core.NSnd:
		if p := tcs.Resolve(n.Pair); p != core.Term(n.Pair) {
			return tcs.Resolve(core.Second(p))
		}
	case *core.NProj:
		if r := tcs.Resolve(n.Record); r != core.Term(n.Record) {
			return tcs.Resolve(core.Project(r, n.Label))
		}
	case *core.NSplit:
		if arg := tcs.Resolve(n.Arg); arg != core.Term(n.Arg) {
			return tcs.Resolve(core.Apply(n.Cases, arg))
		}
	}
	return t
}

// Zonk replaces every solved metavariable in t by its solution.
func (tcs TCS) Zonk(t core.Term) core.Term {
	if tcs.metas.Len() == 0 {
		return t
	}
	return tcs.zonk(t, tcs.Depth())
}

func (tcs TCS) zonk(t core.Term, depth int) core.Term {
	switch t := t.(type) {
	case *core.Meta:
		if sol, ok := tcs.solution(t.Index, depth); ok {
			return tcs.zonk(sol, depth)
		}
		return t
	case *core.Pair:
		return &core.Pair{Fst: tcs.zonk(t.Fst, depth), Snd: tcs.zonk(t.Snd, depth)}
	case *core.Rec:
		return &core.Rec{Fields: tcs.zonkFields(t.Fields, depth)}
	case *core.Cons:
		return &core.Cons{Label: t.Label, Value: tcs.zonk(t.Value, depth)}
	case *core.Lam:
		return &core.Lam{Closure: tcs.zonkClosure(t.Closure, depth)}
	case *core.Dt:
		return core.DependentType(t.Visib, t.Kind, tcs.zonkClosure(t.Closure, depth))
	case *core.CaseOr:
		return &core.CaseOr{Label: t.Label, Closure: tcs.zonkClosure(t.Closure, depth), Or: tcs.zonk(t.Or, depth)}
	case *core.RowPoly:
		r := &core.RowPoly{Kind: t.Kind, Fields: tcs.zonkFields(t.Fields, depth)}
		if t.Rest != nil {
			r.Rest = tcs.zonk(t.Rest, depth)
		}
		return r
	case *core.NApp:
		return core.Apply(tcs.zonk(t.Func, depth), tcs.zonk(t.Arg, depth))
	case *core.NFst:
		return core.First(tcs.zonk(t.Pair, depth))
	case *core.NSnd:
		return core.Second(tcs.zonk(t.Pair, depth))
	case *core.NProj:
		return core.Project(tcs.zonk(t.Record, depth), t.Label)
	case *core.NSplit:
		return core.Apply(tcs.zonk(t.Cases, depth), tcs.zonk(t.Arg, depth))
	}
	// Type, Bot, Whatever, Gen
	return t
}

func (tcs TCS) zonkClosure(c core.Closure, depth int) core.Closure {
	env := c.Body.Env.Map(func(ti core.TermInfo) core.TermInfo {
		return core.TermInfo{Term: tcs.zonk(ti.Term, depth), Info: ti.Info}
	})
	body := c.Body.Body
	body.Term = tcs.zonk(body.Term, depth+1+c.Body.Env.Len())
	return core.Closure{
		ParamType: tcs.zonk(c.ParamType, depth),
		Body:      core.ClosureBody{Body: body, Env: env},
	}
}

func (tcs TCS) zonkFields(fields core.FieldMap, depth int) core.FieldMap {
	return fields.Map(func(_ string, t core.Term) core.Term { return tcs.zonk(t, depth) })
}

// solve assigns val, valid at the current depth, to an unsolved metavariable.
func (tcs TCS) solve(mi core.MI, val core.Term) (TCS, error) {
	entry, ok := tcs.metas.Lookup(mi)
	if !ok {
		panic("solving unknown metavariable")
	}
	val = tcs.Zonk(val)
	if core.Metas(val).Contains(mi) {
		return tcs, &MetaRecursion{Meta: mi, Value: val}
	}
	// bindings pushed after the metavariable was created are out of its scope
	scope := tcs.Depth() - entry.Depth
	for _, dbi := range core.FreeIndices(val).Slice() {
		if int(dbi) < scope {
			return tcs, &MetaWithNonVar{Meta: mi, Value: val}
		}
	}
	tcs.metas = tcs.metas.Solve(mi, core.Shift(val, -scope, 0))
	return tcs, nil
}

// Generalize zonks a finished result. Every metavariable allocated so far must be solved.
func (tcs TCS) Generalize(ti core.TermInfo) (core.TermInfo, error) {
	if unsolved := tcs.metas.Unsolved(); len(unsolved) > 0 {
		e, _ := tcs.metas.Lookup(unsolved[0])
		return ti, &MetaUnsolved{Info: e.Info, Meta: unsolved[0]}
	}
	return core.TermInfo{Term: tcs.Zonk(ti.Term), Info: ti.Info}, nil
}
