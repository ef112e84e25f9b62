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

// A closure with parameter type explicitly specified.
type Closure struct {
	ParamType Term
	Body      ClosureBody
}

// The instantiatable part of a closure. Index 0 of Body refers to the argument, the next
// Env.Len() indices refer to the captured environment, and the remaining indices refer to
// the context the closure was created in.
type ClosureBody struct {
	Body TermInfo
	Env  LocalEnv
}

// Create a closure with an empty captured environment.
func NewClosure(paramType Term, body TermInfo) Closure {
	return Closure{ParamType: paramType, Body: ClosureBody{Body: body, Env: EmptyEnv}}
}

// Instantiate reduces the body with arg bound at index 0. arg is a term of the context the
// closure was created in.
func (b ClosureBody) Instantiate(arg Term) Term {
	return Substitute(b.Body.Term, b.Env.Cons(arg))
}

// Open instantiates the closure with a fresh variable, for use under one more binder than
// the closure was created in. The fresh variable is index 0 of the result.
func (c Closure) Open() Term {
	return ShiftClosure(c, 1, 0).Body.Instantiate(Var(0))
}

// capture creates the closure obtained by substituting env into c. A closure which does
// not refer to env is only lowered.
func (c Closure) capture(env LocalEnv) Closure {
	n := env.Len()
	if n == 0 {
		return c
	}
	if !c.refersBelow(n) {
		return ShiftClosure(c, -n, 0)
	}
	inner := c.Body.Env.Map(func(ti TermInfo) TermInfo {
		return TermInfo{Term: Substitute(ti.Term, env), Info: ti.Info}
	})
	return Closure{
		ParamType: Substitute(c.ParamType, env),
		Body:      ClosureBody{Body: c.Body.Body, Env: env.Concat(inner)},
	}
}

// refersBelow reports whether c has a free index less than n.
func (c Closure) refersBelow(n int) bool {
	found := false
	visitClosure(c, 0, func(t Term, bound int) bool {
		if g, ok := t.(*Gen); ok && !g.Postulate && int(g.Index) >= bound && int(g.Index)-bound < n {
			found = true
		}
		return !found
	})
	return found
}
