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

package construct

import (
	"github.com/voile-lang/voile/abs"
	"github.com/voile-lang/voile/core"
)

// Types:

// TType creates a universe.
func TType(level core.Level) *core.Type { return core.NewType(level) }

// TVar creates a reference to a bound variable.
func TVar(index core.DBI) *core.Gen { return core.Var(index) }

// TPi creates an explicit pi type. ret is valid under a binding for the parameter.
func TPi(param, ret core.Term) *core.Dt {
	return core.NewPi(core.Explicit, core.NewClosure(param, core.TermInfo{Term: ret}))
}

// TImplicitPi creates an implicit pi type. ret is valid under a binding for the parameter.
func TImplicitPi(param, ret core.Term) *core.Dt {
	return core.NewPi(core.Implicit, core.NewClosure(param, core.TermInfo{Term: ret}))
}

// TArrow creates a non-dependent function type.
func TArrow(param, ret core.Term) *core.Dt { return TPi(param, core.Shift(ret, 1, 0)) }

// TSigma creates a sigma type. ret is valid under a binding for the first component.
func TSigma(param, ret core.Term) *core.Dt {
	return core.NewSig(core.Explicit, core.NewClosure(param, core.TermInfo{Term: ret}))
}

// TRecord creates a record type. A nil rest closes the row.
func TRecord(fields map[string]core.Term, rest core.Term) *core.RowPoly {
	return &core.RowPoly{Kind: core.RecordRow, Fields: core.FieldMapOf(fields), Rest: rest}
}

// TVariant creates a variant type. A nil rest closes the row.
func TVariant(fields map[string]core.Term, rest core.Term) *core.RowPoly {
	return &core.RowPoly{Kind: core.VariantRow, Fields: core.FieldMapOf(fields), Rest: rest}
}

// TLam creates a lambda. body is valid under a binding for the parameter.
func TLam(param, body core.Term) *core.Lam {
	return &core.Lam{Closure: core.NewClosure(param, core.TermInfo{Term: body})}
}

// TPair creates a sigma instance.
func TPair(fst, snd core.Term) *core.Pair { return &core.Pair{Fst: fst, Snd: snd} }

// TRec creates a record instance.
func TRec(fields map[string]core.Term) *core.Rec { return &core.Rec{Fields: core.FieldMapOf(fields)} }

// TCons creates a variant instance.
func TCons(label string, value core.Term) *core.Cons { return &core.Cons{Label: label, Value: value} }

// Expressions:

// At creates a source location.
func At(line, col int) core.Info { return core.Info{Line: line, Col: col} }

// Ident creates an identifier declared at the given line.
func Ident(name string, line int) abs.Ident {
	return abs.Ident{Info: core.Info{Line: line, Col: 1, Text: name}, Name: name}
}

func Type(level core.Level) *abs.Type { return &abs.Type{Level: level} }

func Bot() *abs.Bot { return &abs.Bot{} }

// Local refers to a local binding by de Bruijn index.
func Local(index core.DBI) *abs.Local { return &abs.Local{Index: index} }

// Var refers to a global slot.
func Var(index core.DBI) *abs.Var { return &abs.Var{Index: index} }

// Hole creates an expression to be solved by unification.
func Hole() *abs.Meta { return &abs.Meta{} }

func Pair(fst, snd abs.Abs) *abs.Pair { return &abs.Pair{Fst: fst, Snd: snd} }

func Fst(pair abs.Abs) *abs.Fst { return &abs.Fst{Pair: pair} }

func Snd(pair abs.Abs) *abs.Snd { return &abs.Snd{Pair: pair} }

// App applies f to each of args in turn.
func App(f abs.Abs, args ...abs.Abs) abs.Abs {
	for _, arg := range args {
		f = &abs.App{Visib: core.Explicit, Func: f, Arg: arg}
	}
	return f
}

// ImplicitApp supplies an implicit argument.
func ImplicitApp(f, arg abs.Abs) *abs.App {
	return &abs.App{Visib: core.Implicit, Func: f, Arg: arg}
}

func Lam(body abs.Abs) *abs.Lam { return &abs.Lam{Body: body} }

func Pi(param, ret abs.Abs) *abs.Dt {
	return &abs.Dt{Visib: core.Explicit, Kind: core.Pi, Param: param, Ret: ret}
}

func ImplicitPi(param, ret abs.Abs) *abs.Dt {
	return &abs.Dt{Visib: core.Implicit, Kind: core.Pi, Param: param, Ret: ret}
}

func Sigma(param, ret abs.Abs) *abs.Dt {
	return &abs.Dt{Visib: core.Explicit, Kind: core.Sigma, Param: param, Ret: ret}
}

func Field(label string, ty abs.Abs) abs.FieldType { return abs.FieldType{Label: label, Type: ty} }

// RecordType creates a record type. A nil rest closes the row.
func RecordType(rest abs.Abs, fields ...abs.FieldType) *abs.RecordType {
	return &abs.RecordType{Fields: fields, Rest: rest}
}

// OpenRecordType creates a record type whose rest is inferred.
func OpenRecordType(fields ...abs.FieldType) *abs.RecordType {
	return &abs.RecordType{Fields: fields, Open: true}
}

// VariantType creates a variant type. A nil rest closes the row.
func VariantType(rest abs.Abs, fields ...abs.FieldType) *abs.VariantType {
	return &abs.VariantType{Fields: fields, Rest: rest}
}

// OpenVariantType creates a variant type whose rest is inferred.
func OpenVariantType(fields ...abs.FieldType) *abs.VariantType {
	return &abs.VariantType{Fields: fields, Open: true}
}

func FieldVal(label string, value abs.Abs) abs.FieldValue {
	return abs.FieldValue{Label: label, Value: value}
}

func Record(fields ...abs.FieldValue) *abs.Record { return &abs.Record{Fields: fields} }

func Proj(record abs.Abs, label string) *abs.Proj { return &abs.Proj{Record: record, Label: label} }

func Cons(label string, value abs.Abs) *abs.Cons { return &abs.Cons{Label: label, Value: value} }

// Case handles one label; body is resolved under a binding for the payload.
func Case(label string, body, or abs.Abs) *abs.Case {
	return &abs.Case{Label: label, Body: body, Or: or}
}

func Whatever() *abs.Whatever { return &abs.Whatever{} }
