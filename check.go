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
	"github.com/voile-lang/voile/abs"
	"github.com/voile-lang/voile/core"
)

// Check elaborates expr against the expected type and returns the elaborated term, which is
// a value valid at the depth of tcs. The returned state has the same local depth as tcs, on
// success and on failure.
//
// Expressions which can only be analyzed (abstractions, case chains, type formers) must meet
// an expected type of the matching shape; everything else is inferred and compared with the
// expected type by subsumption.
func Check(tcs TCS, expr abs.Abs, expected core.Term) (core.TermInfo, TCS, error) {
	info := expr.SyntaxInfo()
	expected = tcs.Resolve(expected)

	switch e := expr.(type) {
	case *abs.Type:
		if u, ok := expected.(*core.Type); ok {
			if u.Level > e.Level {
				return core.NewTermInfo(core.NewType(e.Level), info), tcs, nil
			}
			small, err := nextLevel(e.Level)
			if err != nil {
				return core.TermInfo{}, tcs, err
			}
			return core.TermInfo{}, tcs, &LevelMismatch{Info: info, Small: small, Big: u.Level}
		}

	case *abs.Bot:
		u, ok := expected.(*core.Type)
		if !ok {
			return core.TermInfo{}, tcs, &NotUniverseVal{Info: info, Actual: expected}
		}
		level, err := tcs.levelPolicy().BotLevel(info, u.Level)
		if err != nil {
			return core.TermInfo{}, tcs, err
		}
		return core.NewTermInfo(&core.Bot{Level: level}, info), tcs, nil

	case *abs.Dt:
		u, ok := expected.(*core.Type)
		if !ok {
			return core.TermInfo{}, tcs, &NotUniverseVal{Info: info, Actual: expected}
		}
		dt, tcs, err := checkDt(tcs, e)
		if err != nil {
			return core.TermInfo{}, tcs, err
		}
		if err := tcs.levelPolicy().DtLevel(info, dt.Term.(*core.Dt), u.Level); err != nil {
			return core.TermInfo{}, tcs, err
		}
		return dt, tcs, nil

	case *abs.RecordType:
		if !core.IsUniverse(expected) {
			return core.TermInfo{}, tcs, &NotUniverseVal{Info: info, Actual: expected}
		}
		return checkRowType(tcs, core.RecordRow, e.Fields, e.Rest, e.Open, info)

	case *abs.VariantType:
		if !core.IsUniverse(expected) {
			return core.TermInfo{}, tcs, &NotUniverseVal{Info: info, Actual: expected}
		}
		return checkRowType(tcs, core.VariantRow, e.Fields, e.Rest, e.Open, info)

	case *abs.Pair:
		if sig, ok := expected.(*core.Dt); ok && sig.Kind == core.Sigma {
			return checkPair(tcs, e, sig)
		}

	case *abs.Lam:
		pi, ok := expected.(*core.Dt)
		if !ok || pi.Kind != core.Pi {
			return core.TermInfo{}, tcs, &NotPi{Info: info, Actual: expected}
		}
		return checkLam(tcs, e, pi)

	case *abs.Record:
		if row, ok := expected.(*core.RowPoly); ok && row.Kind == core.RecordRow {
			return checkRecord(tcs, e, row)
		}

	case *abs.Cons:
		row, ok := expected.(*core.RowPoly)
		if !ok || row.Kind != core.VariantRow {
			return core.TermInfo{}, tcs, &NotRowType{Info: info, Kind: core.VariantRow, Actual: expected}
		}
		return checkCons(tcs, e, row)

	case *abs.Case:
		pi, ok := expected.(*core.Dt)
		if !ok || pi.Kind != core.Pi {
			return core.TermInfo{}, tcs, &NotPi{Info: info, Actual: expected}
		}
		return checkCase(tcs, e, pi)

	case *abs.Whatever:
		pi, ok := expected.(*core.Dt)
		if !ok || pi.Kind != core.Pi {
			return core.TermInfo{}, tcs, &NotPi{Info: info, Actual: expected}
		}
		return checkWhatever(tcs, e, pi)

	case *abs.Meta:
		tcs, m := tcs.FreshMeta(info)
		return core.NewTermInfo(m, info), tcs, nil

	case *abs.Local, *abs.Var, *abs.App, *abs.Fst, *abs.Snd, *abs.Proj:

	default:
		return core.TermInfo{}, tcs, &Unsupported{Info: info, What: expr.AbsName()}
	}

	val, ty, tcs, err := infer(tcs, expr)
	if err != nil {
		return core.TermInfo{}, tcs, err
	}
	if tcs, err = CheckSubtype(tcs, ty, expected); err != nil {
		return core.TermInfo{}, tcs, err
	}
	return val, tcs, nil
}

// Check the first component against the domain, then the second component against the
// codomain instantiated with the first, with the first bound in the local context.
func checkPair(tcs TCS, e *abs.Pair, sig *core.Dt) (core.TermInfo, TCS, error) {
	fst, tcs, err := Check(tcs, e.Fst, sig.Closure.ParamType)
	if err != nil {
		return core.TermInfo{}, tcs, err
	}
	sndType := core.Shift(sig.Closure.Body.Instantiate(fst.Term), 1, 0)

	var snd core.TermInfo
	tcs, err = tcs.under(sig.Closure.ParamType, fst.Term, func(tcs TCS) (TCS, error) {
		var err error
		snd, tcs, err = Check(tcs, e.Snd, sndType)
		if err == nil {
			snd.Term = tcs.Zonk(snd.Term)
		}
		return tcs, err
	})
	if err != nil {
		return core.TermInfo{}, tcs, err
	}
	pair := &core.Pair{Fst: fst.Term, Snd: core.Substitute(snd.Term, core.EmptyEnv.Cons(fst.Term))}
	return core.NewTermInfo(pair, e.Info), tcs, nil
}

// Check the body against the codomain, with the parameter bound in the local context.
func checkLam(tcs TCS, e *abs.Lam, pi *core.Dt) (core.TermInfo, TCS, error) {
	var body core.TermInfo
	tcs, err := tcs.under(pi.Closure.ParamType, nil, func(tcs TCS) (TCS, error) {
		var err error
		body, tcs, err = Check(tcs, e.Body, pi.Closure.Open())
		if err == nil {
			body.Term = tcs.Zonk(body.Term)
		}
		return tcs, err
	})
	if err != nil {
		return core.TermInfo{}, tcs, err
	}
	lam := &core.Lam{Closure: core.NewClosure(pi.Closure.ParamType, body)}
	return core.NewTermInfo(lam, e.Info), tcs, nil
}

// Check the parameter is a type, then the return type with the parameter bound.
func checkDt(tcs TCS, e *abs.Dt) (core.TermInfo, TCS, error) {
	param, tcs, err := CheckType(tcs, e.Param)
	if err != nil {
		return core.TermInfo{}, tcs, err
	}
	var ret core.TermInfo
	tcs, err = tcs.under(param.Term, nil, func(tcs TCS) (TCS, error) {
		var err error
		ret, tcs, err = CheckType(tcs, e.Ret)
		if err == nil {
			ret.Term = tcs.Zonk(ret.Term)
		}
		return tcs, err
	})
	if err != nil {
		return core.TermInfo{}, tcs, err
	}
	dt := core.DependentType(e.Visib, e.Kind, core.NewClosure(param.Term, ret))
	return core.NewTermInfo(dt, e.Info), tcs, nil
}

// CheckType elaborates an expression which must denote a type: a universe, the empty type,
// a dependent type former, a row type, a hole, or a synthesizable expression whose type is a
// universe.
func CheckType(tcs TCS, expr abs.Abs) (core.TermInfo, TCS, error) {
	info := expr.SyntaxInfo()
	switch e := expr.(type) {
	case *abs.Type:
		return core.NewTermInfo(core.NewType(e.Level), info), tcs, nil

	case *abs.Bot:
		return core.NewTermInfo(&core.Bot{}, info), tcs, nil

	case *abs.Dt:
		return checkDt(tcs, e)

	case *abs.RecordType:
		return checkRowType(tcs, core.RecordRow, e.Fields, e.Rest, e.Open, info)

	case *abs.VariantType:
		return checkRowType(tcs, core.VariantRow, e.Fields, e.Rest, e.Open, info)

	case *abs.Meta:
		tcs, m := tcs.FreshMeta(info)
		return core.NewTermInfo(m, info), tcs, nil

	case *abs.Local, *abs.Var, *abs.App, *abs.Fst, *abs.Snd, *abs.Proj:
		val, ty, tcs, err := infer(tcs, expr)
		if err != nil {
			return core.TermInfo{}, tcs, err
		}
		if ty = tcs.Resolve(ty); !core.IsUniverse(ty) {
			return core.TermInfo{}, tcs, &NotTypeVal{Info: info, Actual: ty}
		}
		return val, tcs, nil
	}
	return core.TermInfo{}, tcs, &NotTypeAbs{Info: info, Expr: expr}
}

// Infer synthesizes the type of expr. The type carries the syntax info of expr.
func Infer(tcs TCS, expr abs.Abs) (core.TermInfo, TCS, error) {
	_, ty, tcs, err := infer(tcs, expr)
	if err != nil {
		return core.TermInfo{}, tcs, err
	}
	return core.NewTermInfo(ty, expr.SyntaxInfo()), tcs, nil
}

// infer elaborates expr and synthesizes its type.
func infer(tcs TCS, expr abs.Abs) (core.TermInfo, core.Term, TCS, error) {
	info := expr.SyntaxInfo()
	switch e := expr.(type) {
	case *abs.Type:
		up, err := nextLevel(e.Level)
		if err != nil {
			return core.TermInfo{}, nil, tcs, err
		}
		return core.NewTermInfo(core.NewType(e.Level), info), core.NewType(up), tcs, nil

	case *abs.Local:
		ty, err := tcs.LocalType(info, e.Index)
		if err != nil {
			return core.TermInfo{}, nil, tcs, err
		}
		val, err := tcs.LocalVal(info, e.Index)
		if err != nil {
			return core.TermInfo{}, nil, tcs, err
		}
		return core.NewTermInfo(val, info), ty, tcs, nil

	case *abs.Var:
		ty, err := tcs.GlobType(info, e.Index)
		if err != nil {
			return core.TermInfo{}, nil, tcs, err
		}
		val, err := tcs.GlobVal(info, e.Index)
		if err != nil {
			return core.TermInfo{}, nil, tcs, err
		}
		return core.NewTermInfo(val, info), ty, tcs, nil

	case *abs.Pair:
		return inferPair(tcs, e)

	case *abs.Fst:
		pair, sig, tcs, err := inferSigma(tcs, e.Pair, info)
		if err != nil {
			return core.TermInfo{}, nil, tcs, err
		}
		return core.NewTermInfo(core.First(pair), info), sig.Closure.ParamType, tcs, nil

	case *abs.Snd:
		pair, sig, tcs, err := inferSigma(tcs, e.Pair, info)
		if err != nil {
			return core.TermInfo{}, nil, tcs, err
		}
		ty := sig.Closure.Body.Instantiate(core.First(pair))
		return core.NewTermInfo(core.Second(pair), info), ty, tcs, nil

	case *abs.App:
		return inferApp(tcs, e)

	case *abs.Record:
		return inferRecord(tcs, e)

	case *abs.Proj:
		return inferProj(tcs, e)

	case *abs.Bot, *abs.Dt, *abs.RecordType, *abs.VariantType, *abs.Lam, *abs.Cons, *abs.Case, *abs.Whatever, *abs.Meta:
		return core.TermInfo{}, nil, tcs, &CannotInfer{Info: info}
	}
	return core.TermInfo{}, nil, tcs, &Unsupported{Info: info, What: expr.AbsName()}
}

// The type of a pair is a non-dependent sigma of the component types.
func inferPair(tcs TCS, e *abs.Pair) (core.TermInfo, core.Term, TCS, error) {
	fst, fstType, tcs, err := infer(tcs, e.Fst)
	if err != nil {
		return core.TermInfo{}, nil, tcs, err
	}
	var (
		snd     core.TermInfo
		sndType core.Term
	)
	tcs, err = tcs.under(fstType, fst.Term, func(tcs TCS) (TCS, error) {
		var err error
		snd, sndType, tcs, err = infer(tcs, e.Snd)
		if err == nil {
			snd.Term, sndType = tcs.Zonk(snd.Term), tcs.Zonk(sndType)
		}
		return tcs, err
	})
	if err != nil {
		return core.TermInfo{}, nil, tcs, err
	}
	env := core.EmptyEnv.Cons(fst.Term)
	sndType = core.Shift(core.Substitute(sndType, env), 1, 0)
	sig := core.NewSig(core.Explicit, core.NewClosure(fstType, core.NewTermInfo(sndType, snd.Info)))
	pair := &core.Pair{Fst: fst.Term, Snd: core.Substitute(snd.Term, env)}
	return core.NewTermInfo(pair, e.Info), sig, tcs, nil
}

func inferSigma(tcs TCS, expr abs.Abs, info core.Info) (core.Term, *core.Dt, TCS, error) {
	pair, ty, tcs, err := infer(tcs, expr)
	if err != nil {
		return nil, nil, tcs, err
	}
	ty = tcs.Resolve(ty)
	sig, ok := ty.(*core.Dt)
	if !ok || sig.Kind != core.Sigma {
		return nil, nil, tcs, &NotSigma{Info: info, Actual: ty}
	}
	return pair.Term, sig, tcs, nil
}

// Infer the type of the function, which must be a pi type, then check the argument against
// its domain. Implicit parameters are filled with fresh metavariables unless the application
// supplies the implicit argument itself.
func inferApp(tcs TCS, e *abs.App) (core.TermInfo, core.Term, TCS, error) {
	f, ty, tcs, err := infer(tcs, e.Func)
	if err != nil {
		return core.TermInfo{}, nil, tcs, err
	}
	fn := f.Term
	for {
		ty = tcs.Resolve(ty)
		pi, ok := ty.(*core.Dt)
		if !ok || pi.Kind != core.Pi {
			return core.TermInfo{}, nil, tcs, &NotPi{Info: e.Info, Actual: ty}
		}
		if pi.Visib == core.Implicit && e.Visib == core.Explicit {
			var m *core.Meta
			tcs, m = tcs.FreshMeta(e.Info)
			fn = core.Apply(fn, m)
			ty = pi.Closure.Body.Instantiate(m)
			continue
		}
		if pi.Visib == core.Explicit && e.Visib == core.Implicit {
			return core.TermInfo{}, nil, tcs, &NotPi{Info: e.Info, Actual: ty}
		}
		arg, tcs, err := Check(tcs, e.Arg, pi.Closure.ParamType)
		if err != nil {
			return core.TermInfo{}, nil, tcs, err
		}
		return core.NewTermInfo(core.Apply(fn, arg.Term), e.Info), pi.Closure.Body.Instantiate(arg.Term), tcs, nil
	}
}
