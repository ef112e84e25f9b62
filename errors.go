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
	"strconv"

	"github.com/voile-lang/voile/abs"
	"github.com/voile-lang/voile/core"
)

// TCE is a type-checking error. Every failure of the checker is one of the error types
// declared in this file; match on them with errors.As.
type TCE interface {
	error
	tce()
}

var (
	_ TCE = (*CannotInfer)(nil)
	_ TCE = (*CannotUnify)(nil)
	_ TCE = (*NotSigma)(nil)
	_ TCE = (*NotPi)(nil)
	_ TCE = (*NotSubtype)(nil)
	_ TCE = (*NotTypeAbs)(nil)
	_ TCE = (*NotTypeVal)(nil)
	_ TCE = (*NotRowType)(nil)
	_ TCE = (*NotRecVal)(nil)
	_ TCE = (*NotUniverseVal)(nil)
	_ TCE = (*TypeNotInGamma)(nil)
	_ TCE = (*OverlappingVariant)(nil)
	_ TCE = (*DuplicateField)(nil)
	_ TCE = (*UnexpectedVariant)(nil)
	_ TCE = (*MissingVariant)(nil)
	_ TCE = (*DbiOverflow)(nil)
	_ TCE = (*LevelMismatch)(nil)
	_ TCE = (*LookUpFailed)(nil)
	_ TCE = (*Wrapped)(nil)
	_ TCE = (*ReDefine)(nil)
	_ TCE = (*MetaRecursion)(nil)
	_ TCE = (*MetaWithNonVar)(nil)
	_ TCE = (*MetaUnsolved)(nil)
	_ TCE = (*Unsupported)(nil)
)

// The expression must be checked against an expected type.
type CannotInfer struct {
	Info core.Info
}

// Two values are structurally incompatible.
type CannotUnify struct {
	A, B core.Term
}

type NotSigma struct {
	Info   core.Info
	Actual core.Term
}

type NotPi struct {
	Info   core.Info
	Actual core.Term
}

// Sub is not a subtype of Super.
type NotSubtype struct {
	Sub, Super core.Term
}

// The expression cannot denote a type.
type NotTypeAbs struct {
	Info core.Info
	Expr abs.Abs
}

// The value of the expression is not a type; Actual is its type.
type NotTypeVal struct {
	Info   core.Info
	Actual core.Term
}

type NotRowType struct {
	Info   core.Info
	Kind   core.RowKind
	Actual core.Term
}

type NotRecVal struct {
	Info   core.Info
	Actual core.Term
}

type NotUniverseVal struct {
	Info   core.Info
	Actual core.Term
}

// A global slot was referenced before its type was known.
type TypeNotInGamma struct {
	Info core.Info
}

// A case chain handles a label twice.
type OverlappingVariant struct {
	Info  core.Info
	Label string
}

type DuplicateField struct {
	Info  core.Info
	Label string
}

type UnexpectedVariant struct {
	Info  core.Info
	Kind  core.RowKind
	Label string
}

type MissingVariant struct {
	Info  core.Info
	Kind  core.RowKind
	Label string
}

// Max is the number of bindings in scope.
type DbiOverflow struct {
	Info      core.Info
	Max       int
	Requested core.DBI
}

// Small was expected to be smaller than Big.
type LevelMismatch struct {
	Info  core.Info
	Small core.Level
	Big   core.Level
}

type LookUpFailed struct {
	Ident abs.Ident
}

// Wrapped attaches the location of an enclosing construct to an error.
type Wrapped struct {
	Err  error
	Info core.Info
}

// New would shadow the definition Old.
type ReDefine struct {
	New, Old abs.Ident
}

type MetaRecursion struct {
	Meta  core.MI
	Value core.Term
}

type MetaWithNonVar struct {
	Meta  core.MI
	Value core.Term
}

type MetaUnsolved struct {
	Info core.Info
	Meta core.MI
}

type Unsupported struct {
	Info core.Info
	What string
}

func (*CannotInfer) tce()        {}
func (*CannotUnify) tce()        {}
func (*NotSigma) tce()           {}
func (*NotPi) tce()              {}
func (*NotSubtype) tce()         {}
func (*NotTypeAbs) tce()         {}
func (*NotTypeVal) tce()         {}
func (*NotRowType) tce()         {}
func (*NotRecVal) tce()          {}
func (*NotUniverseVal) tce()     {}
func (*TypeNotInGamma) tce()     {}
func (*OverlappingVariant) tce() {}
func (*DuplicateField) tce()     {}
func (*UnexpectedVariant) tce()  {}
func (*MissingVariant) tce()     {}
func (*DbiOverflow) tce()        {}
func (*LevelMismatch) tce()      {}
func (*LookUpFailed) tce()       {}
func (*Wrapped) tce()            {}
func (*ReDefine) tce()           {}
func (*MetaRecursion) tce()      {}
func (*MetaWithNonVar) tce()     {}
func (*MetaUnsolved) tce()       {}
func (*Unsupported) tce()        {}

func quote(t core.Term) string { return "`" + core.TermString(t) + "`" }

func (e *CannotInfer) Error() string { return "Could not infer type at " + e.Info.String() }

func (e *CannotUnify) Error() string {
	return "Failed to unify " + quote(e.A) + " with " + quote(e.B)
}

func (e *NotSigma) Error() string {
	return "Expected a sigma type, got " + quote(e.Actual) + " at " + e.Info.String()
}

func (e *NotPi) Error() string {
	return "Expected a pi type, got " + quote(e.Actual) + " at " + e.Info.String()
}

func (e *NotSubtype) Error() string {
	return quote(e.Sub) + " is not a subtype of " + quote(e.Super)
}

func (e *NotTypeAbs) Error() string {
	return "Expected a type expression, got " + e.Expr.AbsName() + " at " + e.Info.String()
}

func (e *NotTypeVal) Error() string {
	return "Expected a type, got a value of type " + quote(e.Actual) + " at " + e.Info.String()
}

func (e *NotRowType) Error() string {
	return "Expected a " + e.Kind.String() + " type, got " + quote(e.Actual) + " at " + e.Info.String()
}

func (e *NotRecVal) Error() string {
	return "Expected a record, got a value of type " + quote(e.Actual) + " at " + e.Info.String()
}

func (e *NotUniverseVal) Error() string {
	return "Expected a universe, got " + quote(e.Actual) + " at " + e.Info.String()
}

func (e *TypeNotInGamma) Error() string {
	return "Type info not in Gamma for " + e.Info.String()
}

func (e *OverlappingVariant) Error() string {
	return "Variant `" + e.Label + "` is handled more than once at " + e.Info.String()
}

func (e *DuplicateField) Error() string {
	return "Duplicate field `" + e.Label + "` at " + e.Info.String()
}

func (e *UnexpectedVariant) Error() string {
	return "Unexpected " + e.Kind.String() + " label `" + e.Label + "` at " + e.Info.String()
}

func (e *MissingVariant) Error() string {
	return "Missing " + e.Kind.String() + " label `" + e.Label + "` at " + e.Info.String()
}

func (e *DbiOverflow) Error() string {
	return "DBI overflow, maximum: " + strconv.Itoa(e.Max) + ", got: " + strconv.Itoa(int(e.Requested)) +
		" at " + e.Info.String()
}

func (e *LevelMismatch) Error() string {
	return "Expression at " + e.Info.String() + " has level " + levelString(e.Small) +
		", which is not smaller than " + levelString(e.Big)
}

func (e *LookUpFailed) Error() string {
	return "Look up failed for `" + e.Ident.Name + "` at " + e.Ident.Info.String()
}

func (e *Wrapped) Error() string { return e.Err.Error() + "\n  while checking " + e.Info.String() }

func (e *Wrapped) Unwrap() error { return e.Err }

func (e *ReDefine) Error() string {
	return "`" + e.New.Name + "` at " + e.New.Info.String() + " is already defined at " + e.Old.Info.String()
}

func (e *MetaRecursion) Error() string {
	return "Solving ?" + strconv.Itoa(int(e.Meta)) + " with " + quote(e.Value) + " would be recursive"
}

func (e *MetaWithNonVar) Error() string {
	return "Solution " + quote(e.Value) + " for ?" + strconv.Itoa(int(e.Meta)) +
		" refers to variables out of its scope"
}

func (e *MetaUnsolved) Error() string {
	return "Unsolved metavariable ?" + strconv.Itoa(int(e.Meta)) + " at " + e.Info.String()
}

func (e *Unsupported) Error() string {
	return "Unsupported " + e.What + " at " + e.Info.String()
}

func levelString(l core.Level) string { return strconv.FormatUint(uint64(l), 10) }
