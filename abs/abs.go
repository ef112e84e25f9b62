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

package abs

import (
	"github.com/voile-lang/voile/core"
)

// Abs is the base for all scope-resolved expressions. Local references are de Bruijn
// indices into the local context; global references are indices into the global table.
type Abs interface {
	// Name of the syntax-type of the expression.
	AbsName() string
	// Source location of the expression.
	SyntaxInfo() core.Info
}

var (
	_ Abs = (*Type)(nil)
	_ Abs = (*Bot)(nil)
	_ Abs = (*Local)(nil)
	_ Abs = (*Var)(nil)
	_ Abs = (*Meta)(nil)
	_ Abs = (*Pair)(nil)
	_ Abs = (*Fst)(nil)
	_ Abs = (*Snd)(nil)
	_ Abs = (*App)(nil)
	_ Abs = (*Lam)(nil)
	_ Abs = (*Dt)(nil)
	_ Abs = (*RecordType)(nil)
	_ Abs = (*VariantType)(nil)
	_ Abs = (*Record)(nil)
	_ Abs = (*Proj)(nil)
	_ Abs = (*Cons)(nil)
	_ Abs = (*Case)(nil)
	_ Abs = (*Whatever)(nil)
)

// Identifier with its location.
type Ident struct {
	Info core.Info
	Name string
}

// Type universe: `Type0`
type Type struct {
	Info  core.Info
	Level core.Level
}

func (e *Type) AbsName() string       { return "Type" }
func (e *Type) SyntaxInfo() core.Info { return e.Info }

// Empty type: `!`
type Bot struct {
	Info core.Info
}

func (e *Bot) AbsName() string       { return "Bot" }
func (e *Bot) SyntaxInfo() core.Info { return e.Info }

// Reference to a local binding.
type Local struct {
	Info  core.Info
	Index core.DBI
}

func (e *Local) AbsName() string       { return "Local" }
func (e *Local) SyntaxInfo() core.Info { return e.Info }

// Reference to a global binding.
type Var struct {
	Info  core.Info
	Index core.DBI
}

func (e *Var) AbsName() string       { return "Var" }
func (e *Var) SyntaxInfo() core.Info { return e.Info }

// Hole to be filled by unification: `_`
type Meta struct {
	Info core.Info
}

func (e *Meta) AbsName() string       { return "Meta" }
func (e *Meta) SyntaxInfo() core.Info { return e.Info }

// Pair: `(a, b)`. Snd is resolved under a binding for Fst.
type Pair struct {
	Info     core.Info
	Fst, Snd Abs
}

func (e *Pair) AbsName() string       { return "Pair" }
func (e *Pair) SyntaxInfo() core.Info { return e.Info }

// First projection: `p.1`
type Fst struct {
	Info core.Info
	Pair Abs
}

func (e *Fst) AbsName() string       { return "Fst" }
func (e *Fst) SyntaxInfo() core.Info { return e.Info }

// Second projection: `p.2`
type Snd struct {
	Info core.Info
	Pair Abs
}

func (e *Snd) AbsName() string       { return "Snd" }
func (e *Snd) SyntaxInfo() core.Info { return e.Info }

// Application: `f a`. An implicit application supplies an implicit argument explicitly.
type App struct {
	Info  core.Info
	Visib core.Visib
	Func  Abs
	Arg   Abs
}

func (e *App) AbsName() string       { return "App" }
func (e *App) SyntaxInfo() core.Info { return e.Info }

// Abstraction: `\x. body`. Body is resolved under a binding for the parameter.
type Lam struct {
	Info      core.Info
	ParamInfo core.Info
	Body      Abs
}

func (e *Lam) AbsName() string       { return "Lam" }
func (e *Lam) SyntaxInfo() core.Info { return e.Info }

// Dependent type former: `(x : A) -> B` or `(x : A) * B`. Ret is resolved under a binding
// for the parameter.
type Dt struct {
	Info  core.Info
	Visib core.Visib
	Kind  core.DtKind
	Param Abs
	Ret   Abs
}

func (e *Dt) AbsName() string       { return "Dt" }
func (e *Dt) SyntaxInfo() core.Info { return e.Info }

// Labeled type within a row type.
type FieldType struct {
	Info  core.Info
	Label string
	Type  Abs
}

// Record type: `{a : A, b : B | r}` or `{a : A, ...}`. Rest is nil for a closed row;
// Open requests a fresh row to be inferred.
type RecordType struct {
	Info   core.Info
	Fields []FieldType
	Rest   Abs
	Open   bool
}

func (e *RecordType) AbsName() string       { return "RecordType" }
func (e *RecordType) SyntaxInfo() core.Info { return e.Info }

// Variant type: `[a : A, b : B | r]` or `[a : A, ...]`.
type VariantType struct {
	Info   core.Info
	Fields []FieldType
	Rest   Abs
	Open   bool
}

func (e *VariantType) AbsName() string       { return "VariantType" }
func (e *VariantType) SyntaxInfo() core.Info { return e.Info }

// Labeled value within a record literal.
type FieldValue struct {
	Info  core.Info
	Label string
	Value Abs
}

// Record literal: `{| a = x, b = y |}`
type Record struct {
	Info   core.Info
	Fields []FieldValue
}

func (e *Record) AbsName() string       { return "Record" }
func (e *Record) SyntaxInfo() core.Info { return e.Info }

// Selecting the value of a label: `r.a`
type Proj struct {
	Info   core.Info
	Record Abs
	Label  string
}

func (e *Proj) AbsName() string       { return "Proj" }
func (e *Proj) SyntaxInfo() core.Info { return e.Info }

// Tagged variant: `@a x`
type Cons struct {
	Info  core.Info
	Label string
	Value Abs
}

func (e *Cons) AbsName() string       { return "Cons" }
func (e *Cons) SyntaxInfo() core.Info { return e.Info }

// Case chain over a variant:
//
//	case @a x => body1
//	or case @b y => body2
//	or whatever
//
// Body is resolved under a binding for the payload. Or is another Case, Whatever, or a
// function handling the remaining variants.
type Case struct {
	Info       core.Info
	Label      string
	BinderInfo core.Info
	Body       Abs
	Or         Abs
}

func (e *Case) AbsName() string       { return "Case" }
func (e *Case) SyntaxInfo() core.Info { return e.Info }

// End of an exhaustive case chain: `whatever`
type Whatever struct {
	Info core.Info
}

func (e *Whatever) AbsName() string       { return "Whatever" }
func (e *Whatever) SyntaxInfo() core.Info { return e.Info }
