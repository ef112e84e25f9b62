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
	"testing"

	"github.com/davecgh/go-spew/spew"

	. "github.com/voile-lang/voile/construct"
	"github.com/voile-lang/voile/core"
)

func rowOf(fields ...string) map[string]core.Term {
	m := make(map[string]core.Term, len(fields))
	for _, label := range fields {
		m[label] = TType(1)
	}
	return m
}

func TestRecordDuplicateField(t *testing.T) {
	rec := Record(FieldVal("x", Type(0)), FieldVal("x", Type(0)))
	var dup *DuplicateField
	if _, _, err := Check(NewTCS(), rec, TRecord(rowOf("x"), nil)); !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateField, found %v", err)
	}
	if dup.Label != "x" {
		t.Fatalf("unexpected label %q", dup.Label)
	}
	if _, _, err := Infer(NewTCS(), rec); !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateField, found %v", err)
	}
	// the duplicate is reported before the unexpected label
	if _, _, err := Check(NewTCS(), rec, TRecord(rowOf("y"), nil)); !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateField, found %v", err)
	}
}

func TestCheckRecord(t *testing.T) {
	tcs := NewTCS()
	v, _, err := Check(tcs, Record(FieldVal("b", Type(0)), FieldVal("a", Type(0))), TRecord(rowOf("a", "b"), nil))
	if err != nil {
		t.Fatal(err)
	}
	expected := TRec(map[string]core.Term{"a": TType(0), "b": TType(0)})
	if !core.Equal(v.Term, expected) {
		t.Fatalf("expected %s, found %s", core.TermString(expected), core.TermString(v.Term))
	}

	var missing *MissingVariant
	if _, _, err := Check(tcs, Record(FieldVal("a", Type(0))), TRecord(rowOf("a", "b"), nil)); !errors.As(err, &missing) {
		t.Fatalf("expected MissingVariant, found %v", err)
	}
	if missing.Label != "b" || missing.Kind != core.RecordRow {
		t.Fatalf("unexpected failure: %s", spew.Sdump(missing))
	}

	var unexpected *UnexpectedVariant
	if _, _, err := Check(tcs, Record(FieldVal("a", Type(0)), FieldVal("c", Type(0))), TRecord(rowOf("a"), nil)); !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedVariant, found %v", err)
	}
	if unexpected.Label != "c" {
		t.Fatalf("unexpected label %q", unexpected.Label)
	}

	var mismatch *LevelMismatch
	if _, _, err := Check(tcs, Record(FieldVal("a", Type(1))), TRecord(rowOf("a"), nil)); !errors.As(err, &mismatch) {
		t.Fatalf("expected LevelMismatch, found %v", err)
	}
}

func TestCheckRecordOpenRow(t *testing.T) {
	tcs, rest := NewTCS().FreshMeta(core.Info{})
	_, tcs, err := Check(tcs, Record(FieldVal("a", Type(0)), FieldVal("b", Type(0))), TRecord(rowOf("a"), rest))
	if err != nil {
		t.Fatal(err)
	}
	expected := TRecord(rowOf("b"), nil)
	if sol := tcs.Resolve(rest); !core.Equal(sol, expected) {
		t.Fatalf("expected %s, found %s", core.TermString(expected), core.TermString(sol))
	}
}

func TestInferRecord(t *testing.T) {
	ty, _, err := Infer(NewTCS(), Record(FieldVal("a", Type(0)), FieldVal("b", Type(0))))
	if err != nil {
		t.Fatal(err)
	}
	if expected := TRecord(rowOf("a", "b"), nil); !core.Equal(ty.Term, expected) {
		t.Fatalf("expected %s, found %s", core.TermString(expected), core.TermString(ty.Term))
	}
}

func TestInferProj(t *testing.T) {
	tcs := NewTCS().PushLocal(TType(0), nil)                                   // X : Type0
	tcs = tcs.PushLocal(TRecord(map[string]core.Term{"a": TVar(0)}, nil), nil) // r : {a : X}

	ty, _, err := Infer(tcs, Proj(Local(0), "a"))
	if err != nil {
		t.Fatal(err)
	}
	if !core.Equal(ty.Term, TVar(1)) {
		t.Fatalf("expected X, found %s", core.TermString(ty.Term))
	}

	var missing *MissingVariant
	if _, _, err := Infer(tcs, Proj(Local(0), "b")); !errors.As(err, &missing) {
		t.Fatalf("expected MissingVariant, found %v", err)
	}
	var notRec *NotRecVal
	if _, _, err := Infer(tcs, Proj(Local(1), "a")); !errors.As(err, &notRec) {
		t.Fatalf("expected NotRecVal, found %v", err)
	}

	// projections of a literal reduce
	v, vty, _, err := infer(NewTCS(), Proj(Record(FieldVal("a", Type(0))), "a"))
	if err != nil {
		t.Fatal(err)
	}
	if !core.Equal(v.Term, TType(0)) || !core.Equal(vty, TType(1)) {
		t.Fatalf("unexpected projection %s : %s", core.TermString(v.Term), core.TermString(vty))
	}
}

func TestInferProjOpenRow(t *testing.T) {
	tcs, rest := NewTCS().FreshMeta(core.Info{})
	tcs = tcs.PushLocal(TRecord(rowOf("a"), rest), nil) // r : {a : Type1 | ?0}

	ty, tcs, err := Infer(tcs, Proj(Local(0), "c"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ty.Term.(*core.Meta); !ok {
		t.Fatalf("expected a fresh field type, found %s", core.TermString(ty.Term))
	}
	ext, ok := tcs.Resolve(rest).(*core.RowPoly)
	if !ok {
		t.Fatalf("expected the rest to be extended, found %s", core.TermString(tcs.Resolve(rest)))
	}
	if c, ok := ext.Fields.Get("c"); !ok || !core.Equal(c, ty.Term) || ext.Rest == nil {
		t.Fatalf("unexpected extension %s", core.TermString(ext))
	}
}

func TestCheckCons(t *testing.T) {
	tcs := NewTCS()
	variant := TVariant(rowOf("a", "b"), nil)
	v, _, err := Check(tcs, Cons("a", Type(0)), variant)
	if err != nil {
		t.Fatal(err)
	}
	if !core.Equal(v.Term, TCons("a", TType(0))) {
		t.Fatalf("unexpected variant %s", core.TermString(v.Term))
	}

	var unexpected *UnexpectedVariant
	if _, _, err := Check(tcs, Cons("c", Type(0)), variant); !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedVariant, found %v", err)
	}
	var notRow *NotRowType
	if _, _, err := Check(tcs, Cons("a", Type(0)), TType(0)); !errors.As(err, &notRow) {
		t.Fatalf("expected NotRowType, found %v", err)
	}
	if _, _, err := Check(tcs, Cons("a", Type(0)), TRecord(rowOf("a"), nil)); !errors.As(err, &notRow) {
		t.Fatalf("expected NotRowType, found %v", err)
	}

	tcs, rest := tcs.FreshMeta(core.Info{})
	if _, tcs, err = Check(tcs, Cons("c", Type(0)), TVariant(rowOf("a"), rest)); err != nil {
		t.Fatal(err)
	}
	if sol := tcs.Resolve(rest); !core.Equal(sol, TVariant(rowOf("c"), nil)) {
		t.Fatalf("unexpected rest %s", core.TermString(sol))
	}
}

func TestCheckCase(t *testing.T) {
	tcs := NewTCS()
	fn := TArrow(TVariant(rowOf("a", "b"), nil), TType(1))

	cases := Case("a", Local(0), Case("b", Type(0), Whatever()))
	v, _, err := Check(tcs, cases, fn)
	if err != nil {
		t.Fatal(err)
	}
	if r := core.Apply(v.Term, TCons("a", TType(0))); !core.Equal(r, TType(0)) {
		t.Fatalf("case a: %s", core.TermString(r))
	}
	if r := core.Apply(v.Term, TCons("b", TType(0))); !core.Equal(r, TType(0)) {
		t.Fatalf("case b: %s", core.TermString(r))
	}

	// the rest of the chain may be a function on the remaining variants
	if _, _, err := Check(tcs, Case("a", Local(0), Lam(Type(0))), fn); err != nil {
		t.Fatal(err)
	}

	var missing *MissingVariant
	if _, _, err := Check(tcs, Case("a", Local(0), Whatever()), fn); !errors.As(err, &missing) {
		t.Fatalf("expected MissingVariant, found %v", err)
	}
	if missing.Label != "b" || missing.Kind != core.VariantRow {
		t.Fatalf("unexpected failure: %s", spew.Sdump(missing))
	}

	var overlapping *OverlappingVariant
	if _, _, err := Check(tcs, Case("a", Local(0), Case("a", Local(0), Whatever())), fn); !errors.As(err, &overlapping) {
		t.Fatalf("expected OverlappingVariant, found %v", err)
	}
	var unexpected *UnexpectedVariant
	if _, _, err := Check(tcs, Case("c", Local(0), Whatever()), fn); !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedVariant, found %v", err)
	}
	var notRow *NotRowType
	if _, _, err := Check(tcs, Case("a", Local(0), Whatever()), TArrow(TType(0), TType(1))); !errors.As(err, &notRow) {
		t.Fatalf("expected NotRowType, found %v", err)
	}
	var notPi *NotPi
	if _, _, err := Check(tcs, Case("a", Local(0), Whatever()), TType(1)); !errors.As(err, &notPi) {
		t.Fatalf("expected NotPi, found %v", err)
	}
}

func TestWhateverClosesRow(t *testing.T) {
	tcs, rest := NewTCS().FreshMeta(core.Info{})
	if _, tcs, err := Check(tcs, Whatever(), TArrow(TVariant(nil, rest), TType(0))); err != nil {
		t.Fatal(err)
	} else if sol := tcs.Resolve(rest); !core.Equal(sol, TVariant(nil, nil)) {
		t.Fatalf("expected an empty row, found %s", core.TermString(sol))
	}
}

func TestCheckRowType(t *testing.T) {
	tcs := NewTCS()
	v, _, err := CheckType(tcs, RecordType(nil, Field("a", Type(0)), Field("b", Type(1))))
	if err != nil {
		t.Fatal(err)
	}
	expected := TRecord(map[string]core.Term{"a": TType(0), "b": TType(1)}, nil)
	if !core.Equal(v.Term, expected) {
		t.Fatalf("expected %s, found %s", core.TermString(expected), core.TermString(v.Term))
	}

	v, _, err = CheckType(tcs, OpenVariantType(Field("a", Type(0))))
	if err != nil {
		t.Fatal(err)
	}
	if row := v.Term.(*core.RowPoly); row.Kind != core.VariantRow || row.Rest == nil {
		t.Fatalf("expected an open variant, found %s", core.TermString(v.Term))
	}

	var dup *DuplicateField
	if _, _, err := CheckType(tcs, RecordType(nil, Field("a", Type(0)), Field("a", Type(0)))); !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateField, found %v", err)
	}
	var overlapping *OverlappingVariant
	if _, _, err := CheckType(tcs, VariantType(nil, Field("a", Type(0)), Field("a", Type(0)))); !errors.As(err, &overlapping) {
		t.Fatalf("expected OverlappingVariant, found %v", err)
	}
	// labels of the rest must be distinct from the row's own
	if _, _, err := CheckType(tcs, RecordType(RecordType(nil, Field("a", Type(0))), Field("a", Type(0)))); !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateField, found %v", err)
	}
	var notRow *NotRowType
	if _, _, err := CheckType(tcs, RecordType(Type(0), Field("a", Type(0)))); !errors.As(err, &notRow) {
		t.Fatalf("expected NotRowType, found %v", err)
	}
	var notUniverse *NotUniverseVal
	if _, _, err := Check(tcs, RecordType(nil), TArrow(TType(0), TType(0))); !errors.As(err, &notUniverse) {
		t.Fatalf("expected NotUniverseVal, found %v", err)
	}
}
