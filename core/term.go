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

// Universe level.
type Level uint32

// De Bruijn index. Index 0 refers to the innermost binding.
type DBI int

// Metavariable index.
type MI int

// Visibility of the parameter of a dependent type.
type Visib int

const (
	Explicit Visib = iota
	Implicit
)

func (v Visib) String() string {
	if v == Implicit {
		return "implicit"
	}
	return "explicit"
}

// Kinds of dependent types.
type DtKind int

const (
	Pi DtKind = iota
	Sigma
)

func (k DtKind) String() string {
	if k == Sigma {
		return "sigma"
	}
	return "pi"
}

// Kinds of row-polymorphic types.
type RowKind int

const (
	RecordRow RowKind = iota
	VariantRow
)

func (k RowKind) String() string {
	if k == VariantRow {
		return "variant"
	}
	return "record"
}

// Term is the base interface for all core terms. A term which is not a Neutral is canonical.
type Term interface {
	TermName() string
	isTerm()
}

// Neutral is a computation which is stuck on an unknown (a free variable, a postulate or
// an unsolved metavariable).
type Neutral interface {
	Term
	isNeutral()
}

var (
	_ Term = (*Type)(nil)
	_ Term = (*Bot)(nil)
	_ Term = (*Lam)(nil)
	_ Term = (*Dt)(nil)
	_ Term = (*Pair)(nil)
	_ Term = (*RowPoly)(nil)
	_ Term = (*Rec)(nil)
	_ Term = (*Cons)(nil)
	_ Term = (*CaseOr)(nil)
	_ Term = (*Whatever)(nil)

	_ Neutral = (*Gen)(nil)
	_ Neutral = (*Meta)(nil)
	_ Neutral = (*NApp)(nil)
	_ Neutral = (*NFst)(nil)
	_ Neutral = (*NSnd)(nil)
	_ Neutral = (*NProj)(nil)
	_ Neutral = (*NSplit)(nil)
)

func (t *Type) TermName() string     { return "Type" }
func (t *Bot) TermName() string      { return "Bot" }
func (t *Lam) TermName() string      { return "Lam" }
func (t *Dt) TermName() string       { return "Dt" }
func (t *Pair) TermName() string     { return "Pair" }
func (t *RowPoly) TermName() string  { return "RowPoly" }
func (t *Rec) TermName() string      { return "Rec" }
func (t *Cons) TermName() string     { return "Cons" }
func (t *CaseOr) TermName() string   { return "CaseOr" }
func (t *Whatever) TermName() string { return "Whatever" }
func (t *Gen) TermName() string      { return "Gen" }
func (t *Meta) TermName() string     { return "Meta" }
func (t *NApp) TermName() string     { return "App" }
func (t *NFst) TermName() string     { return "Fst" }
func (t *NSnd) TermName() string     { return "Snd" }
func (t *NProj) TermName() string    { return "Proj" }
func (t *NSplit) TermName() string   { return "Split" }

func (*Type) isTerm()     {}
func (*Bot) isTerm()      {}
func (*Lam) isTerm()      {}
func (*Dt) isTerm()       {}
func (*Pair) isTerm()     {}
func (*RowPoly) isTerm()  {}
func (*Rec) isTerm()      {}
func (*Cons) isTerm()     {}
func (*CaseOr) isTerm()   {}
func (*Whatever) isTerm() {}
func (*Gen) isTerm()      {}
func (*Meta) isTerm()     {}
func (*NApp) isTerm()     {}
func (*NFst) isTerm()     {}
func (*NSnd) isTerm()     {}
func (*NProj) isTerm()    {}
func (*NSplit) isTerm()   {}

func (*Gen) isNeutral()    {}
func (*Meta) isNeutral()   {}
func (*NApp) isNeutral()   {}
func (*NFst) isNeutral()   {}
func (*NSnd) isNeutral()   {}
func (*NProj) isNeutral()  {}
func (*NSplit) isNeutral() {}

// Type universe: `Type0`, `Type1`, ...
type Type struct {
	Level Level
}

// Empty type, graded by a universe level.
type Bot struct {
	Level Level
}

// Lambda abstraction.
type Lam struct {
	Closure Closure
}

// Pi-like (dependent) types. Since it affects type-checking, the visibility of the
// parameter is part of the type.
type Dt struct {
	Visib   Visib
	Kind    DtKind
	Closure Closure
}

// Sigma instance: `(a, b)`
type Pair struct {
	Fst, Snd Term
}

// Record or variant type: `{a : A, b : B | rest}` or `[a : A, b : B | rest]`.
// A nil Rest denotes a closed row.
type RowPoly struct {
	Kind   RowKind
	Fields FieldMap
	Rest   Term
}

// Record instance: `{| a = x, b = y |}`
type Rec struct {
	Fields FieldMap
}

// Variant instance: `@a x`
type Cons struct {
	Label string
	Value Term
}

// Case chain: `case @a x => body or rest`. The closure binds the payload of the variant.
type CaseOr struct {
	Label   string
	Closure Closure
	Or      Term
}

// Exhausted case chain.
type Whatever struct{}

// Generated variable, referred to by de Bruijn index. Postulate marks a postulated value
// instead; its index is then the global slot of the postulate, or -1 when it is anonymous.
type Gen struct {
	Index     DBI
	Postulate bool
}

// Metavariable.
type Meta struct {
	Index MI
}

// Stuck application.
type NApp struct {
	Func Neutral
	Arg  Term
}

// Stuck first projection of a pair.
type NFst struct {
	Pair Neutral
}

// Stuck second projection of a pair.
type NSnd struct {
	Pair Neutral
}

// Stuck projection of a record field.
type NProj struct {
	Record Neutral
	Label  string
}

// Case chain applied to a stuck variant.
type NSplit struct {
	Cases Term
	Arg   Neutral
}

// Create a universe at the given level.
func NewType(level Level) *Type { return &Type{Level: level} }

// Create a reference to a bound variable.
func Var(index DBI) *Gen { return &Gen{Index: index} }

// Create an anonymous postulate.
func Axiom() *Gen { return &Gen{Index: -1, Postulate: true} }

// Create the postulate declared at a global slot.
func NewPostulate(slot DBI) *Gen { return &Gen{Index: slot, Postulate: true} }

// Create a dependent type.
func DependentType(visib Visib, kind DtKind, closure Closure) *Dt {
	return &Dt{Visib: visib, Kind: kind, Closure: closure}
}

// Create a pi-type.
func NewPi(visib Visib, closure Closure) *Dt { return DependentType(visib, Pi, closure) }

// Create a sigma-type.
func NewSig(visib Visib, closure Closure) *Dt { return DependentType(visib, Sigma, closure) }

// IsUniverse returns true if t is a type universe.
func IsUniverse(t Term) bool {
	_, ok := t.(*Type)
	return ok
}
