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

package core_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	. "github.com/voile-lang/voile/construct"
	"github.com/voile-lang/voile/core"
)

func TestApplyLam(t *testing.T) {
	id := TLam(TType(0), TVar(0))
	if v := core.Apply(id, TType(3)); !core.Equal(v, TType(3)) {
		t.Fatalf("expected Type3, found %s", core.TermString(v))
	}

	// \x. [1] refers to the binding outside the lambda, which is index 0 after instantiation
	k := TLam(TType(0), TVar(1))
	if v := core.Apply(k, TType(3)); !core.Equal(v, TVar(0)) {
		t.Fatalf("expected [0], found %s", core.TermString(v))
	}
}

func TestReduceCapturesEnv(t *testing.T) {
	k := TLam(TType(0), TVar(1))
	captured := core.Reduce(k, core.EmptyEnv.Cons(TType(1)))
	if _, ok := captured.(*core.Lam); !ok {
		t.Fatalf("expected a lambda, found %s", spew.Sdump(captured))
	}
	if v := core.Apply(captured, TType(0)); !core.Equal(v, TType(1)) {
		t.Fatalf("expected Type1, found %s", core.TermString(v))
	}
}

func TestReduceResumesNeutral(t *testing.T) {
	stuck := &core.NApp{Func: TVar(0), Arg: TType(2)}
	v := core.Reduce(stuck, core.EmptyEnv.Cons(TLam(TType(3), TVar(0))))
	if !core.Equal(v, TType(2)) {
		t.Fatalf("expected Type2, found %s", core.TermString(v))
	}

	// free indices past the environment are kept by Reduce and lowered by Substitute
	env := core.EmptyEnv.Cons(TType(0)).Cons(TType(1))
	if v = core.Reduce(TVar(3), env); !core.Equal(v, TVar(3)) {
		t.Fatalf("expected [3], found %s", core.TermString(v))
	}
	if v = core.Substitute(TVar(3), env); !core.Equal(v, TVar(1)) {
		t.Fatalf("expected [1], found %s", core.TermString(v))
	}
}

func TestReduceClosedIdempotent(t *testing.T) {
	terms := []core.Term{
		TType(0),
		TPi(TType(0), TVar(0)),
		TSigma(TType(1), TPi(TVar(0), TVar(1))),
		TRecord(map[string]core.Term{"a": TType(0), "b": TType(1)}, nil),
		TVariant(map[string]core.Term{"x": TType(0)}, nil),
		&core.Pair{Fst: TType(0), Snd: TRec(map[string]core.Term{"f": TType(2)})},
		TCons("a", TType(0)),
		core.NewPostulate(4),
	}
	for _, term := range terms {
		once := core.Reduce(term, core.EmptyEnv)
		twice := core.Reduce(once, core.EmptyEnv)
		if !core.Equal(term, once) || !core.Equal(once, twice) {
			t.Fatalf("reduction changed %s: %s", core.TermString(term), core.TermString(twice))
		}
	}
}

func TestReduceIdempotent(t *testing.T) {
	// [0] is Type1, [1] is Type0
	env := core.EmptyEnv.Cons(TType(0)).Cons(TType(1))
	cases := []struct {
		term, expected core.Term
	}{
		{TVar(0), TType(1)},
		{TVar(1), TType(0)},
		{TVar(2), TVar(2)},
		{TVar(3), TVar(3)},
		{&core.Pair{Fst: TVar(4), Snd: TVar(1)}, &core.Pair{Fst: TVar(4), Snd: TType(0)}},
		{&core.NApp{Func: TVar(5), Arg: TVar(0)}, &core.NApp{Func: TVar(5), Arg: TType(1)}},
		{TRecord(map[string]core.Term{"a": TVar(1), "b": TVar(2)}, TVar(3)), TRecord(map[string]core.Term{"a": TType(0), "b": TVar(2)}, TVar(3))},
		{TPi(TType(0), TVar(5)), TPi(TType(0), TVar(5))},
		{TLam(TVar(0), TVar(2)), nil},
		{TSigma(TVar(3), TPi(TVar(0), TVar(2))), nil},
	}
	for _, c := range cases {
		once := core.Reduce(c.term, env)
		twice := core.Reduce(once, env)
		if c.expected != nil && !core.Equal(once, c.expected) {
			t.Fatalf("expected %s, found %s", core.TermString(c.expected), core.TermString(once))
		}
		if !core.Equal(once, twice) {
			t.Fatalf("reducing %s twice: %s then %s", core.TermString(c.term), core.TermString(once), core.TermString(twice))
		}
	}

	// a captured lambda still sees its bindings
	k := core.Reduce(core.Reduce(TLam(TType(0), TVar(2)), env), env)
	if v := core.Apply(k, TType(3)); !core.Equal(v, TType(0)) {
		t.Fatalf("expected Type0, found %s", core.TermString(v))
	}
}

func TestProjections(t *testing.T) {
	p := &core.Pair{Fst: TType(0), Snd: TType(1)}
	if !core.Equal(core.First(p), TType(0)) || !core.Equal(core.Second(p), TType(1)) {
		t.Fatalf("unexpected projections of %s", core.TermString(p))
	}
	if _, ok := core.First(TVar(0)).(*core.NFst); !ok {
		t.Fatalf("expected a stuck first projection")
	}
	if _, ok := core.Second(TVar(0)).(*core.NSnd); !ok {
		t.Fatalf("expected a stuck second projection")
	}

	r := TRec(map[string]core.Term{"a": TType(0), "b": TType(5)})
	if !core.Equal(core.Project(r, "b"), TType(5)) {
		t.Fatalf("unexpected field b of %s", core.TermString(r))
	}
	if _, ok := core.Project(TVar(0), "b").(*core.NProj); !ok {
		t.Fatalf("expected a stuck field projection")
	}
}

func TestApplyCaseChain(t *testing.T) {
	cases := &core.CaseOr{
		Label:   "a",
		Closure: core.NewClosure(TType(0), core.TermInfo{Term: TVar(0)}),
		Or: &core.CaseOr{
			Label:   "b",
			Closure: core.NewClosure(TType(0), core.TermInfo{Term: TType(3)}),
			Or:      &core.Whatever{},
		},
	}
	if v := core.Apply(cases, TCons("a", TType(1))); !core.Equal(v, TType(1)) {
		t.Fatalf("case a: %s", core.TermString(v))
	}
	if v := core.Apply(cases, TCons("b", TType(1))); !core.Equal(v, TType(3)) {
		t.Fatalf("case b: %s", core.TermString(v))
	}
	if _, ok := core.Apply(cases, TVar(0)).(*core.NSplit); !ok {
		t.Fatalf("expected a stuck split")
	}
}

func TestApplyNonFunctionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	core.Apply(TType(0), TType(0))
}

func TestShift(t *testing.T) {
	if v := core.Shift(TVar(2), 1, 1); !core.Equal(v, TVar(3)) {
		t.Fatalf("expected [3], found %s", core.TermString(v))
	}
	if v := core.Shift(TVar(0), 1, 1); !core.Equal(v, TVar(0)) {
		t.Fatalf("expected [0], found %s", core.TermString(v))
	}
	// the body of a lambda is shifted past its parameter
	if v := core.Shift(TLam(TType(0), TVar(1)), 1, 0); !core.Equal(v, TLam(TType(0), TVar(2))) {
		t.Fatalf("unexpected lambda %s", core.TermString(v))
	}
	if v := core.Shift(core.NewPostulate(1), 5, 0); !core.Equal(v, core.NewPostulate(1)) {
		t.Fatalf("postulates must not be shifted: %s", core.TermString(v))
	}
	if v := core.Shift(core.Shift(TVar(4), 2, 0), -2, 0); !core.Equal(v, TVar(4)) {
		t.Fatalf("expected [4], found %s", core.TermString(v))
	}
}

func TestFreeIndices(t *testing.T) {
	free := core.FreeIndices(TLam(TVar(3), &core.NApp{Func: TVar(0), Arg: TVar(2)}))
	if free.Size() != 2 || !free.Contains(3) || !free.Contains(1) {
		t.Fatalf("unexpected free indices %v", free.Slice())
	}
	metas := core.Metas(&core.Pair{Fst: &core.Meta{Index: 2}, Snd: TPi(&core.Meta{Index: 0}, TVar(0))})
	if metas.Size() != 2 || !metas.Contains(0) || !metas.Contains(2) {
		t.Fatalf("unexpected metas %v", metas.Slice())
	}
}

func TestEqual(t *testing.T) {
	a := TRecord(map[string]core.Term{"a": TType(0), "b": TType(1)}, nil)
	b := &core.RowPoly{
		Kind:   core.RecordRow,
		Fields: core.NewFieldMap().Set("b", TType(1)).Set("a", TType(0)),
	}
	if !core.Equal(a, b) {
		t.Fatalf("field order must not matter")
	}
	if core.Equal(a, TVariant(map[string]core.Term{"a": TType(0), "b": TType(1)}, nil)) {
		t.Fatalf("records and variants must differ")
	}
	if core.Equal(core.NewPostulate(0), core.NewPostulate(1)) {
		t.Fatalf("distinct postulates must differ")
	}
	if core.Equal(TPi(TType(0), TVar(0)), TImplicitPi(TType(0), TVar(0))) {
		t.Fatalf("visibility must matter")
	}
	if core.Equal(TPi(TType(0), TVar(0)), TSigma(TType(0), TVar(0))) {
		t.Fatalf("kind must matter")
	}
}

func TestTermString(t *testing.T) {
	tests := []struct {
		term core.Term
		want string
	}{
		{TPi(TType(0), TVar(0)), "(Type0) -> [0]"},
		{TImplicitPi(TType(1), TVar(0)), "{Type1} -> [0]"},
		{TSigma(TType(0), TType(0)), "(Type0) * Type0"},
		{TRecord(map[string]core.Term{"b": TType(1), "a": TType(0)}, &core.Meta{Index: 3}), "{a : Type0, b : Type1 | ?3}"},
		{TVariant(map[string]core.Term{"x": TType(0)}, nil), "[x : Type0]"},
		{TRec(map[string]core.Term{"a": TType(0)}), "{|a = Type0|}"},
		{TCons("a", TType(0)), "@a Type0"},
		{TLam(TType(0), TVar(0)), "\\Type0. [0]"},
		{&core.Bot{Level: 2}, "!2"},
		{core.NewPostulate(3), "#3"},
		{core.Axiom(), "<postulate>"},
		{&core.NProj{Record: TVar(1), Label: "f"}, "[1].f"},
	}
	for _, test := range tests {
		if s := core.TermString(test.term); s != test.want {
			t.Fatalf("expected %q, found %q", test.want, s)
		}
	}
}

func TestLocalEnv(t *testing.T) {
	env := core.EmptyEnv.Cons(TType(0)).Cons(TType(1)).Cons(TType(2))
	if env.Len() != 3 {
		t.Fatalf("expected 3 bindings, found %d", env.Len())
	}
	if v, ok := env.Project(0); !ok || !core.Equal(v, TType(2)) {
		t.Fatalf("index 0 must be the innermost binding")
	}
	if _, ok := env.Project(3); ok {
		t.Fatalf("expected index 3 to be out of range")
	}

	popped := env.Pop()
	if popped.Len() != 2 || env.Len() != 3 {
		t.Fatalf("pop must not modify the original environment")
	}
	if v, _ := popped.Project(0); !core.Equal(v, TType(1)) {
		t.Fatalf("unexpected innermost binding after pop: %s", core.TermString(v))
	}

	var levels []core.Level
	env.Range(func(_ core.DBI, ti core.TermInfo) bool {
		levels = append(levels, ti.Term.(*core.Type).Level)
		return true
	})
	if len(levels) != 3 || levels[0] != 2 || levels[2] != 0 {
		t.Fatalf("unexpected iteration order %v", levels)
	}

	inner := core.EmptyEnv.Cons(TType(7))
	joined := popped.Concat(inner)
	if v, _ := joined.Project(0); joined.Len() != 3 || !core.Equal(v, TType(7)) {
		t.Fatalf("unexpected concatenation %s", spew.Sdump(joined.Len()))
	}
}

func TestGlobalEnv(t *testing.T) {
	g, slot := core.EmptyGlobalEnv.Push(core.TermInfo{})
	if slot != 0 || g.Len() != 1 {
		t.Fatalf("unexpected slot %d", slot)
	}
	defined := g.Define(slot, core.TermInfo{Term: TType(0)})
	if ti, ok := g.Get(slot); !ok || ti.Term != nil {
		t.Fatalf("define must not modify the original table")
	}
	if ti, ok := defined.Get(slot); !ok || !core.Equal(ti.Term, TType(0)) {
		t.Fatalf("expected Type0 at slot 0")
	}
	if _, ok := defined.Get(1); ok {
		t.Fatalf("expected slot 1 to be out of range")
	}
}

func TestFieldMap(t *testing.T) {
	m := core.FieldMapOf(map[string]core.Term{"c": TType(2), "a": TType(0), "b": TType(1)})
	labels := m.Labels()
	if len(labels) != 3 || labels[0] != "a" || labels[1] != "b" || labels[2] != "c" {
		t.Fatalf("labels must be sorted: %v", labels)
	}
	deleted := m.Delete("b")
	if deleted.Len() != 2 || m.Len() != 3 {
		t.Fatalf("delete must not modify the original map")
	}
}
