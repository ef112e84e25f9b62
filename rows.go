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
	set "github.com/hashicorp/go-set/v2"
	"github.com/samber/lo"

	"github.com/voile-lang/voile/abs"
	"github.com/voile-lang/voile/core"
)

// Closed row without labels.
func emptyRow(kind core.RowKind) *core.RowPoly {
	return &core.RowPoly{Kind: kind, Fields: core.EmptyFieldMap}
}

func duplicateLabel(kind core.RowKind, info core.Info, label string) error {
	if kind == core.RecordRow {
		return &DuplicateField{Info: info, Label: label}
	}
	return &OverlappingVariant{Info: info, Label: label}
}

// flattenRow collects the labels of a row and of the rows its rest resolves to. The
// returned rest is nil for a closed row, and otherwise a neutral term (often a
// metavariable).
func (tcs TCS) flattenRow(row *core.RowPoly, info core.Info) (core.FieldMap, core.Term, error) {
	fields, rest := row.Fields, row.Rest
	for rest != nil {
		rest = tcs.Resolve(rest)
		switch r := rest.(type) {
		case *core.RowPoly:
			if r.Kind != row.Kind {
				return fields, nil, &NotRowType{Info: info, Kind: row.Kind, Actual: r}
			}
			var dup *string
			r.Fields.Range(func(label string, t core.Term) bool {
				if _, ok := fields.Get(label); ok {
					dup = &label
					return false
				}
				fields = fields.Set(label, t)
				return true
			})
			if dup != nil {
				return fields, nil, duplicateLabel(row.Kind, info, *dup)
			}
			rest = r.Rest
		case core.Neutral:
			return fields, r, nil
		default:
			return fields, nil, &NotRowType{Info: info, Kind: row.Kind, Actual: r}
		}
	}
	return fields, nil, nil
}

// Unify two rows of the same kind. Labels present in both rows are unified; labels present
// in only one row must be supplied by the rest of the other.
func unifyRows(tcs TCS, a, b *core.RowPoly) (TCS, error) {
	fa, ra, err := tcs.flattenRow(a, core.Info{})
	if err != nil {
		return tcs, err
	}
	fb, rb, err := tcs.flattenRow(b, core.Info{})
	if err != nil {
		return tcs, err
	}

	// labels missing from b/a
	xa, xb := core.NewFieldMapBuilder(), core.NewFieldMapBuilder()
	fa.Range(func(label string, ta core.Term) bool {
		tb, ok := fb.Get(label)
		if !ok {
			xa.Set(label, ta)
			return true
		}
		tcs, err = Unify(tcs, ta, tb)
		return err == nil
	})
	if err != nil {
		return tcs, err
	}
	fb.Range(func(label string, tb core.Term) bool {
		if _, ok := fa.Get(label); !ok {
			xb.Set(label, tb)
		}
		return true
	})

	kind := a.Kind
	za, zb := xa.Len() == 0, xb.Len() == 0
	switch {
	case za && zb: // all labels match
		return unifyRests(tcs, kind, ra, rb)
	case !za && zb: // labels of a missing in b
		if rb == nil {
			return tcs, &CannotUnify{A: a, B: b}
		}
		return Unify(tcs, rb, &core.RowPoly{Kind: kind, Fields: xa.Build(), Rest: ra})
	case za && !zb: // labels of b missing in a
		if ra == nil {
			return tcs, &CannotUnify{A: a, B: b}
		}
		return Unify(tcs, ra, &core.RowPoly{Kind: kind, Fields: xb.Build(), Rest: rb})
	default: // labels missing in both
		if ra == nil || rb == nil {
			return tcs, &CannotUnify{A: a, B: b}
		}
		tcs, rest := tcs.FreshMeta(tcs.metaInfo(rb))
		extA := &core.RowPoly{Kind: kind, Fields: xa.Build(), Rest: rest}
		if tcs, err = Unify(tcs, rb, extA); err != nil {
			return tcs, err
		}
		// both rows share their rest
		if m, ok := ra.(*core.Meta); ok && tcs.Resolve(m) != core.Term(m) {
			return tcs, &MetaRecursion{Meta: m.Index, Value: tcs.Zonk(extA)}
		}
		return Unify(tcs, ra, &core.RowPoly{Kind: kind, Fields: xb.Build(), Rest: rest})
	}
}

func unifyRests(tcs TCS, kind core.RowKind, ra, rb core.Term) (TCS, error) {
	switch {
	case ra == nil && rb == nil:
		return tcs, nil
	case ra == nil:
		return Unify(tcs, rb, emptyRow(kind))
	case rb == nil:
		return Unify(tcs, ra, emptyRow(kind))
	}
	return Unify(tcs, ra, rb)
}

// Build a row type. Labels must be distinct; the rest, if given, must be a row of the same
// kind or a neutral type. An open row without a rest gets a fresh metavariable.
func checkRowType(tcs TCS, kind core.RowKind, fields []abs.FieldType, rest abs.Abs, open bool, info core.Info) (core.TermInfo, TCS, error) {
	seen := set.New[string](len(fields))
	b := core.NewFieldMapBuilder()
	for _, f := range fields {
		if !seen.Insert(f.Label) {
			return core.TermInfo{}, tcs, duplicateLabel(kind, f.Info, f.Label)
		}
		ty, next, err := CheckType(tcs, f.Type)
		if tcs = next; err != nil {
			return core.TermInfo{}, tcs, err
		}
		b.Set(f.Label, ty.Term)
	}
	row := &core.RowPoly{Kind: kind, Fields: b.Build()}

	switch {
	case rest != nil:
		r, next, err := CheckType(tcs, rest)
		if tcs = next; err != nil {
			return core.TermInfo{}, tcs, err
		}
		row.Rest = r.Term
		if _, _, err := tcs.flattenRow(row, rest.SyntaxInfo()); err != nil {
			return core.TermInfo{}, tcs, err
		}
	case open:
		var m *core.Meta
		tcs, m = tcs.FreshMeta(info)
		row.Rest = m
	}
	return core.NewTermInfo(row, info), tcs, nil
}

// firstDuplicate returns the second occurrence of the first label which occurs twice.
func firstDuplicate(fields []abs.FieldValue) (abs.FieldValue, bool) {
	seen := set.New[string](len(fields))
	return lo.Find(fields, func(f abs.FieldValue) bool { return !seen.Insert(f.Label) })
}

// Check a record literal against a record type. Fields of the type must all be present.
// Fields missing from the type are only accepted by an open row, whose rest is then solved
// with the extra fields.
func checkRecord(tcs TCS, e *abs.Record, row *core.RowPoly) (core.TermInfo, TCS, error) {
	if dup, ok := firstDuplicate(e.Fields); ok {
		return core.TermInfo{}, tcs, &DuplicateField{Info: dup.Info, Label: dup.Label}
	}
	fields, rest, err := tcs.flattenRow(row, e.Info)
	if err != nil {
		return core.TermInfo{}, tcs, err
	}

	vals, extras := core.NewFieldMapBuilder(), core.NewFieldMapBuilder()
	for _, f := range e.Fields {
		if ty, ok := fields.Get(f.Label); ok {
			val, next, err := Check(tcs, f.Value, ty)
			if tcs = next; err != nil {
				return core.TermInfo{}, tcs, err
			}
			vals.Set(f.Label, val.Term)
			continue
		}
		if rest == nil {
			return core.TermInfo{}, tcs, &UnexpectedVariant{Info: f.Info, Kind: core.RecordRow, Label: f.Label}
		}
		val, ty, next, err := infer(tcs, f.Value)
		if tcs = next; err != nil {
			return core.TermInfo{}, tcs, err
		}
		vals.Set(f.Label, val.Term)
		extras.Set(f.Label, ty)
	}

	labels := lo.Map(e.Fields, func(f abs.FieldValue, _ int) string { return f.Label })
	for _, label := range fields.Labels() {
		if !lo.Contains(labels, label) {
			return core.TermInfo{}, tcs, &MissingVariant{Info: e.Info, Kind: core.RecordRow, Label: label}
		}
	}
	if rest != nil {
		if tcs, err = Unify(tcs, rest, &core.RowPoly{Kind: core.RecordRow, Fields: extras.Build()}); err != nil {
			return core.TermInfo{}, tcs, err
		}
	}
	return core.NewTermInfo(&core.Rec{Fields: vals.Build()}, e.Info), tcs, nil
}

// The type of a record literal is the closed row of its field types.
func inferRecord(tcs TCS, e *abs.Record) (core.TermInfo, core.Term, TCS, error) {
	if dup, ok := firstDuplicate(e.Fields); ok {
		return core.TermInfo{}, nil, tcs, &DuplicateField{Info: dup.Info, Label: dup.Label}
	}
	vals, types := core.NewFieldMapBuilder(), core.NewFieldMapBuilder()
	for _, f := range e.Fields {
		val, ty, next, err := infer(tcs, f.Value)
		if tcs = next; err != nil {
			return core.TermInfo{}, nil, tcs, err
		}
		vals.Set(f.Label, val.Term)
		types.Set(f.Label, ty)
	}
	row := &core.RowPoly{Kind: core.RecordRow, Fields: types.Build()}
	return core.NewTermInfo(&core.Rec{Fields: vals.Build()}, e.Info), row, tcs, nil
}

// Infer the type of a field. A field missing from an open record type extends its rest.
func inferProj(tcs TCS, e *abs.Proj) (core.TermInfo, core.Term, TCS, error) {
	rec, ty, tcs, err := infer(tcs, e.Record)
	if err != nil {
		return core.TermInfo{}, nil, tcs, err
	}
	ty = tcs.Resolve(ty)
	row, ok := ty.(*core.RowPoly)
	if !ok || row.Kind != core.RecordRow {
		return core.TermInfo{}, nil, tcs, &NotRecVal{Info: e.Info, Actual: ty}
	}
	fields, rest, err := tcs.flattenRow(row, e.Info)
	if err != nil {
		return core.TermInfo{}, nil, tcs, err
	}
	val := core.NewTermInfo(core.Project(rec.Term, e.Label), e.Info)
	if fieldType, ok := fields.Get(e.Label); ok {
		return val, fieldType, tcs, nil
	}
	m, ok := rest.(*core.Meta)
	if !ok {
		return core.TermInfo{}, nil, tcs, &MissingVariant{Info: e.Info, Kind: core.RecordRow, Label: e.Label}
	}
	tcs, fieldType := tcs.FreshMeta(e.Info)
	tcs, more := tcs.FreshMeta(e.Info)
	ext := &core.RowPoly{Kind: core.RecordRow, Fields: core.SingletonFieldMap(e.Label, fieldType), Rest: more}
	if tcs, err = Unify(tcs, m, ext); err != nil {
		return core.TermInfo{}, nil, tcs, err
	}
	return val, fieldType, tcs, nil
}

// Check a variant against a variant type. A label missing from an open row is added to it.
func checkCons(tcs TCS, e *abs.Cons, row *core.RowPoly) (core.TermInfo, TCS, error) {
	fields, rest, err := tcs.flattenRow(row, e.Info)
	if err != nil {
		return core.TermInfo{}, tcs, err
	}
	if ty, ok := fields.Get(e.Label); ok {
		val, tcs, err := Check(tcs, e.Value, ty)
		if err != nil {
			return core.TermInfo{}, tcs, err
		}
		return core.NewTermInfo(&core.Cons{Label: e.Label, Value: val.Term}, e.Info), tcs, nil
	}
	if rest == nil {
		return core.TermInfo{}, tcs, &UnexpectedVariant{Info: e.Info, Kind: core.VariantRow, Label: e.Label}
	}
	val, ty, tcs, err := infer(tcs, e.Value)
	if err != nil {
		return core.TermInfo{}, tcs, err
	}
	ext := &core.RowPoly{Kind: core.VariantRow, Fields: core.SingletonFieldMap(e.Label, ty)}
	if tcs, err = Unify(tcs, rest, ext); err != nil {
		return core.TermInfo{}, tcs, err
	}
	return core.NewTermInfo(&core.Cons{Label: e.Label, Value: val.Term}, e.Info), tcs, nil
}

// variantDomain returns the labels and rest of the variant a pi type is defined on.
func (tcs TCS) variantDomain(pi *core.Dt, info core.Info) (core.FieldMap, core.Term, error) {
	param := tcs.Resolve(pi.Closure.ParamType)
	row, ok := param.(*core.RowPoly)
	if !ok || row.Kind != core.VariantRow {
		return core.EmptyFieldMap, nil, &NotRowType{Info: info, Kind: core.VariantRow, Actual: param}
	}
	return tcs.flattenRow(row, info)
}

// Check a case chain against a function on variants.
func checkCase(tcs TCS, e *abs.Case, pi *core.Dt) (core.TermInfo, TCS, error) {
	fields, rest, err := tcs.variantDomain(pi, e.Info)
	if err != nil {
		return core.TermInfo{}, tcs, err
	}
	return checkCaseChain(tcs, e, pi, fields, rest, set.New[string](0))
}

// Each case handles one of the labels which remain; the rest of the chain handles the others.
func checkCaseChain(tcs TCS, e *abs.Case, pi *core.Dt, fields core.FieldMap, rest core.Term, handled *set.Set[string]) (core.TermInfo, TCS, error) {
	if !handled.Insert(e.Label) {
		return core.TermInfo{}, tcs, &OverlappingVariant{Info: e.Info, Label: e.Label}
	}
	payload, ok := fields.Get(e.Label)
	if !ok {
		return core.TermInfo{}, tcs, &UnexpectedVariant{Info: e.Info, Kind: core.VariantRow, Label: e.Label}
	}

	// the codomain at the variant built from the payload
	bodyType := core.ShiftClosure(pi.Closure, 1, 0).Body.Instantiate(&core.Cons{Label: e.Label, Value: core.Var(0)})
	var body core.TermInfo
	tcs, err := tcs.under(payload, nil, func(tcs TCS) (TCS, error) {
		var err error
		body, tcs, err = Check(tcs, e.Body, bodyType)
		if err == nil {
			body.Term = tcs.Zonk(body.Term)
		}
		return tcs, err
	})
	if err != nil {
		return core.TermInfo{}, tcs, err
	}

	remaining := fields.Delete(e.Label)
	var or core.TermInfo
	if next, ok := e.Or.(*abs.Case); ok {
		or, tcs, err = checkCaseChain(tcs, next, pi, remaining, rest, handled)
	} else {
		domain := &core.RowPoly{Kind: core.VariantRow, Fields: remaining, Rest: rest}
		tail := core.NewPi(pi.Visib, core.Closure{ParamType: domain, Body: pi.Closure.Body})
		or, tcs, err = Check(tcs, e.Or, tail)
	}
	if err != nil {
		return core.TermInfo{}, tcs, err
	}
	cases := &core.CaseOr{Label: e.Label, Closure: core.NewClosure(payload, body), Or: or.Term}
	return core.NewTermInfo(cases, e.Info), tcs, nil
}

// An exhausted case chain requires the variant to have no labels left. An open rest is
// closed.
func checkWhatever(tcs TCS, e *abs.Whatever, pi *core.Dt) (core.TermInfo, TCS, error) {
	fields, rest, err := tcs.variantDomain(pi, e.Info)
	if err != nil {
		return core.TermInfo{}, tcs, err
	}
	if fields.Len() > 0 {
		return core.TermInfo{}, tcs, &MissingVariant{Info: e.Info, Kind: core.VariantRow, Label: fields.Labels()[0]}
	}
	if rest != nil {
		if tcs, err = Unify(tcs, rest, emptyRow(core.VariantRow)); err != nil {
			return core.TermInfo{}, tcs, err
		}
	}
	return core.NewTermInfo(&core.Whatever{}, e.Info), tcs, nil
}
