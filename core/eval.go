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

// Apply evaluates a beta-redex. f must be a lambda, a case chain or a neutral term; any
// other head means an ill-typed term reached evaluation.
func Apply(f, arg Term) Term {
	switch f := f.(type) {
	case *Lam:
		return f.Closure.Body.Instantiate(arg)
	case *CaseOr:
		switch arg := arg.(type) {
		case *Cons:
			if arg.Label == f.Label {
				return f.Closure.Body.Instantiate(arg.Value)
			}
			return Apply(f.Or, arg)
		case Neutral:
			return &NSplit{Cases: f, Arg: arg}
		}
	case Neutral:
		return &NApp{Func: f, Arg: arg}
	}
	panic("Cannot apply on " + TermString(f) + " to " + TermString(arg))
}

// First projects the first element of a pair.
func First(t Term) Term {
	switch t := t.(type) {
	case *Pair:
		return t.Fst
	case Neutral:
		return &NFst{Pair: t}
	}
	panic("Cannot project on " + TermString(t))
}

// Second projects the second element of a pair.
func Second(t Term) Term {
	switch t := t.(type) {
	case *Pair:
		return t.Snd
	case Neutral:
		return &NSnd{Pair: t}
	}
	panic("Cannot project on " + TermString(t))
}

// Project selects a field of a record.
func Project(t Term, label string) Term {
	switch t := t.(type) {
	case *Rec:
		if v, ok := t.Fields.Get(label); ok {
			return v
		}
	case Neutral:
		return &NProj{Record: t, Label: label}
	}
	panic("Cannot project " + label + " on " + TermString(t))
}

// Reduce evaluates t under env. Index n < env.Len() is replaced by its binding in env; a
// larger index is left as it is. The bindings are terms of the same context as t.
func Reduce(t Term, env LocalEnv) Term {
	n := env.Len()
	return Substitute(Shift(t, n, n), env)
}

// Substitute evaluates t with its innermost env.Len() binders removed. Index n < env.Len()
// is replaced by its binding in env; a larger index refers to the context outside the
// removed binders, and is lowered by env.Len().
//
// Instances are reduced component-wise and stuck computations are resumed. Closures are
// never entered: their parameter type is reduced and env is captured for later
// instantiation.
func Substitute(t Term, env LocalEnv) Term {
	switch t := t.(type) {
	case *Pair:
		return &Pair{Fst: Substitute(t.Fst, env), Snd: Substitute(t.Snd, env)}
	case *Rec:
		return &Rec{Fields: substFields(t.Fields, env)}
	case *Cons:
		return &Cons{Label: t.Label, Value: Substitute(t.Value, env)}
	case *Lam:
		return &Lam{Closure: t.Closure.capture(env)}
	case *Dt:
		return &Dt{Visib: t.Visib, Kind: t.Kind, Closure: t.Closure.capture(env)}
	case *CaseOr:
		return &CaseOr{Label: t.Label, Closure: t.Closure.capture(env), Or: Substitute(t.Or, env)}
	case *RowPoly:
		r := &RowPoly{Kind: t.Kind, Fields: substFields(t.Fields, env)}
		if t.Rest != nil {
			r.Rest = Substitute(t.Rest, env)
		}
		return r
	case Neutral:
		return substNeutral(t, env)
	}
	// Type, Bot and Whatever cannot be reduced
	return t
}

func substFields(fields FieldMap, env LocalEnv) FieldMap {
	if env.Len() == 0 {
		return fields
	}
	return fields.Map(func(_ string, t Term) Term { return Substitute(t, env) })
}

func substNeutral(n Neutral, env LocalEnv) Term {
	switch n := n.(type) {
	case *Gen:
		if n.Postulate {
			return n
		}
		if v, ok := env.Project(n.Index); ok {
			return v
		}
		if env.Len() == 0 {
			return n
		}
		return Var(n.Index - DBI(env.Len()))
	case *Meta:
		return n
	case *NApp:
		arg := Substitute(n.Arg, env)
		return Apply(Substitute(n.Func, env), arg)
	case *NFst:
		return First(Substitute(n.Pair, env))
	case *NSnd:
		return Second(Substitute(n.Pair, env))
	case *NProj:
		return Project(Substitute(n.Record, env), n.Label)
	case *NSplit:
		arg := Substitute(n.Arg, env)
		return Apply(Substitute(n.Cases, env), arg)
	}
	panic("unknown neutral term " + n.TermName())
}
