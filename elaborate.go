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
	"io"
	"log/slog"

	"github.com/benbjohnson/immutable"
	"github.com/samber/lo"

	"github.com/voile-lang/voile/abs"
	"github.com/voile-lang/voile/core"
	"github.com/voile-lang/voile/internal/astutil"
)

// Decl is a top-level declaration. A declaration without a body is a postulate.
type Decl struct {
	Name abs.Ident
	Type abs.Abs
	Body abs.Abs
}

type binding struct {
	slot  core.DBI
	ident abs.Ident
}

// Elaborator checks top-level declarations and fills the global table with their types and
// values. A failed declaration leaves the elaborator unchanged.
//
// An elaborator cannot be used concurrently; State returns a snapshot which can be.
type Elaborator struct {
	tcs    TCS
	names  *immutable.Map // string -> binding
	logger *slog.Logger
}

// Create an elaborator with an empty global table.
func NewElaborator() *Elaborator {
	return &Elaborator{
		tcs:    NewTCS(),
		names:  immutable.NewMap(nil),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Log the progress of each declaration to logger.
func (e *Elaborator) SetLogger(logger *slog.Logger) { e.logger = logger }

// Use a custom policy for universe levels in subsequent declarations.
func (e *Elaborator) SetLevelPolicy(levels LevelPolicy) { e.tcs.levels = levels }

// State returns the checking state holding every declaration so far.
func (e *Elaborator) State() TCS { return e.tcs }

// Lookup returns the global slot of a declared name.
func (e *Elaborator) Lookup(name abs.Ident) (core.DBI, error) {
	b, ok := e.names.Get(name.Name)
	if !ok {
		return 0, &LookUpFailed{Ident: name}
	}
	return b.(binding).slot, nil
}

// Type returns the type of a declared name.
func (e *Elaborator) Type(name abs.Ident) (core.Term, error) {
	slot, err := e.Lookup(name)
	if err != nil {
		return nil, err
	}
	return e.tcs.GlobType(name.Info, slot)
}

// Value returns the value of a declared name. The value of a postulate is neutral.
func (e *Elaborator) Value(name abs.Ident) (core.Term, error) {
	slot, err := e.Lookup(name)
	if err != nil {
		return nil, err
	}
	return e.tcs.GlobVal(name.Info, slot)
}

// Declare checks a single declaration and returns its global slot.
func (e *Elaborator) Declare(d Decl) (core.DBI, error) {
	slots, err := e.DeclareAll([]Decl{d})
	if err != nil {
		return 0, err
	}
	return slots[0], nil
}

// DeclareAll checks a group of declarations which may refer to each other. One global slot
// is reserved per declaration, in order, before any declaration is checked; declarations
// are then checked in dependency order. Declaring a name again at the location it was first
// declared at has no effect.
//
// If any declaration fails, none of the group is added.
func (e *Elaborator) DeclareAll(decls []Decl) ([]core.DBI, error) {
	tcs, names := e.tcs, e.names
	slots := make([]core.DBI, len(decls))
	var group []int
	for i, d := range decls {
		if prev, ok := names.Get(d.Name.Name); ok {
			prev := prev.(binding)
			if prev.ident.Info != d.Name.Info {
				return nil, &ReDefine{New: d.Name, Old: prev.ident}
			}
			slots[i] = prev.slot
			continue
		}
		tcs, slots[i] = tcs.ReserveGlobal()
		names = names.Set(d.Name.Name, binding{slot: slots[i], ident: d.Name})
		group = append(group, i)
	}

	analysis := astutil.Analyze(
		lo.Map(group, func(i, _ int) core.DBI { return slots[i] }),
		lo.Map(group, func(i, _ int) []abs.Abs { return []abs.Abs{decls[i].Type, decls[i].Body} }),
	)
	for _, scc := range analysis.Sccs {
		members := lo.Map(scc, func(v, _ int) int { return group[v] })
		if analysis.Recursive(scc) {
			e.logger.Debug("checking recursive group", "names", lo.Map(members, func(i, _ int) string { return decls[i].Name.Name }))
		}
		var err error
		if tcs, err = e.checkGroup(tcs, decls, slots, members); err != nil {
			return nil, err
		}
	}

	e.tcs, e.names = tcs, names
	return slots, nil
}

// checkGroup checks the signatures of a strongly-connected group of declarations, then
// their bodies. While the bodies are checked, every member of the group is a postulate.
// Metavariables may be solved by any member, so the group is generalized only once every
// body has been checked.
func (e *Elaborator) checkGroup(tcs TCS, decls []Decl, slots []core.DBI, members []int) (TCS, error) {
	types := make([]core.TermInfo, len(decls))
	for _, i := range members {
		d := decls[i]
		if err := checkIndices(tcs, d.Type); err != nil {
			return tcs, e.failed(d, err)
		}
		ty, next, err := CheckType(tcs, d.Type)
		if tcs = next; err != nil {
			return tcs, e.failed(d, err)
		}
		types[i] = ty
		tcs = tcs.DefineGlobal(slots[i], ty, core.NewTermInfo(core.NewPostulate(slots[i]), d.Name.Info))
	}

	vals := make([]core.TermInfo, len(decls))
	for _, i := range members {
		d := decls[i]
		vals[i] = core.NewTermInfo(core.NewPostulate(slots[i]), d.Name.Info)
		if d.Body == nil {
			continue
		}
		if err := checkIndices(tcs, d.Body); err != nil {
			return tcs, e.failed(d, err)
		}
		body, next, err := Check(tcs, d.Body, types[i].Term)
		if tcs = next; err != nil {
			return tcs, e.failed(d, err)
		}
		vals[i] = body
	}

	if unsolved := tcs.metas.Unsolved(); len(unsolved) > 0 {
		mi := unsolved[0]
		err := &MetaUnsolved{Info: tcs.metaInfo(&core.Meta{Index: mi}), Meta: mi}
		return tcs, e.failed(decls[e.owner(tcs, types, vals, members, mi)], err)
	}
	for _, i := range members {
		d := decls[i]
		ty, _ := tcs.Generalize(types[i])
		val, _ := tcs.Generalize(vals[i])
		tcs = tcs.DefineGlobal(slots[i], ty, val)
		e.logger.Debug("declared", "name", d.Name.Name, "slot", int(slots[i]), "type", core.TermString(ty.Term))
	}
	return tcs, nil
}

// owner returns the member of a group whose signature or body mentions mi, or the first
// member if none does.
func (e *Elaborator) owner(tcs TCS, types, vals []core.TermInfo, members []int, mi core.MI) int {
	for _, i := range members {
		if core.Metas(tcs.Zonk(types[i].Term)).Contains(mi) || core.Metas(tcs.Zonk(vals[i].Term)).Contains(mi) {
			return i
		}
	}
	return members[0]
}

func (e *Elaborator) failed(d Decl, err error) error {
	e.logger.Debug("declaration failed", "name", d.Name.Name, "error", err)
	return &Wrapped{Err: err, Info: d.Name.Info}
}

// checkIndices validates the indices of a top-level expression.
func checkIndices(tcs TCS, expr abs.Abs) error {
	if bad := abs.CheckIndices(expr, tcs.Depth(), tcs.Globals()); bad != nil {
		return &DbiOverflow{Info: bad.Info, Max: bad.Max, Requested: bad.Requested}
	}
	return nil
}
