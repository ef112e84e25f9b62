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

package voile_test

import (
	"testing"

	. "github.com/voile-lang/voile"
	. "github.com/voile-lang/voile/construct"

	"github.com/voile-lang/voile/abs"
	"github.com/voile-lang/voile/core"
)

func BenchmarkCheckPolyId(b *testing.B) {
	tcs := NewTCS()
	// (A : Type0) -> A -> A
	idType := TPi(TType(0), TPi(TVar(0), TVar(1)))
	expr := Lam(Lam(Local(0)))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Check(tcs, expr, idType); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCheckCaseChain(b *testing.B) {
	tcs := NewTCS()
	labels := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	row := make(map[string]core.Term, len(labels))
	for _, label := range labels {
		row[label] = TType(1)
	}
	fn := TArrow(TVariant(row, nil), TType(1))

	var expr abs.Abs = Whatever()
	for i := len(labels) - 1; i >= 0; i-- {
		expr = Case(labels[i], Local(0), expr)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Check(tcs, expr, fn); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDeclareGroup(b *testing.B) {
	decls := []Decl{
		{Name: Ident("A", 1), Type: Type(0)},
		{Name: Ident("id", 2), Type: Pi(Type(0), Pi(Local(0), Local(1))), Body: Lam(Lam(Local(0)))},
		{Name: Ident("a", 3), Type: Var(0)},
		{Name: Ident("b", 4), Type: Var(0), Body: App(Var(1), Var(0), Var(2))},
		{Name: Ident("f", 5), Type: Pi(Type(0), Type(1)), Body: Lam(App(Var(5), Local(0)))},
		{Name: Ident("g", 6), Type: Pi(Type(0), Type(1)), Body: Lam(App(Var(4), Local(0)))},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewElaborator().DeclareAll(decls); err != nil {
			b.Fatal(err)
		}
	}
}
