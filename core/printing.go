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

package core

import (
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &termPrinter{} },
}

func newTermPrinter() *termPrinter { return printerPool.Get().(*termPrinter) }

func (p *termPrinter) Release() {
	p.sb.Reset()
	printerPool.Put(p)
}

type termPrinter struct {
	sb strings.Builder
}

// TermString returns a compact, de Bruijn-indexed representation of a Term.
func TermString(t Term) string {
	p := newTermPrinter()
	termString(p, false, t)
	s := p.sb.String()
	p.Release()
	return s
}

func (p *termPrinter) closure(c Closure) {
	termString(p, false, c.ParamType)
	p.sb.WriteString(". ")
	termString(p, false, c.Body.Body.Term)
}

func (p *termPrinter) fields(fields FieldMap, sep string) {
	i := 0
	fields.Range(func(label string, t Term) bool {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(label)
		p.sb.WriteString(sep)
		termString(p, false, t)
		i++
		return true
	})
}

func termString(p *termPrinter, simple bool, t Term) {
	switch t := t.(type) {
	case nil:
		p.sb.WriteString("<nil>")

	case *Type:
		p.sb.WriteString("Type")
		p.sb.WriteString(strconv.FormatUint(uint64(t.Level), 10))

	case *Bot:
		p.sb.WriteString("!")
		p.sb.WriteString(strconv.FormatUint(uint64(t.Level), 10))

	case *Gen:
		if t.Postulate && t.Index < 0 {
			p.sb.WriteString("<postulate>")
			return
		}
		if t.Postulate {
			p.sb.WriteByte('#')
			p.sb.WriteString(strconv.Itoa(int(t.Index)))
			return
		}
		p.sb.WriteByte('[')
		p.sb.WriteString(strconv.Itoa(int(t.Index)))
		p.sb.WriteByte(']')

	case *Meta:
		p.sb.WriteByte('?')
		p.sb.WriteString(strconv.Itoa(int(t.Index)))

	case *Lam:
		if simple {
			p.sb.WriteByte('(')
		}
		p.sb.WriteString("\\")
		p.closure(t.Closure)
		if simple {
			p.sb.WriteByte(')')
		}

	case *Dt:
		lhs, rhs := byte('('), byte(')')
		if t.Visib == Implicit {
			lhs, rhs = '{', '}'
		}
		p.sb.WriteByte(lhs)
		termString(p, false, t.Closure.ParamType)
		p.sb.WriteByte(rhs)
		if t.Kind == Pi {
			p.sb.WriteString(" -> ")
		} else {
			p.sb.WriteString(" * ")
		}
		termString(p, true, t.Closure.Body.Body.Term)

	case *Pair:
		p.sb.WriteByte('(')
		termString(p, false, t.Fst)
		p.sb.WriteString(", ")
		termString(p, false, t.Snd)
		p.sb.WriteByte(')')

	case *RowPoly:
		lhs, rhs := "{", "}"
		if t.Kind == VariantRow {
			lhs, rhs = "[", "]"
		}
		p.sb.WriteString(lhs)
		p.fields(t.Fields, " : ")
		if t.Rest != nil {
			p.sb.WriteString(" | ")
			termString(p, false, t.Rest)
		}
		p.sb.WriteString(rhs)

	case *Rec:
		p.sb.WriteString("{|")
		p.fields(t.Fields, " = ")
		p.sb.WriteString("|}")

	case *Cons:
		p.sb.WriteByte('@')
		p.sb.WriteString(t.Label)
		p.sb.WriteByte(' ')
		termString(p, true, t.Value)

	case *CaseOr:
		p.sb.WriteString("case @")
		p.sb.WriteString(t.Label)
		p.sb.WriteString(" => ")
		termString(p, true, t.Closure.Body.Body.Term)
		p.sb.WriteString(" or ")
		termString(p, false, t.Or)

	case *Whatever:
		p.sb.WriteString("whatever")

	case *NApp:
		if simple {
			p.sb.WriteByte('(')
		}
		termString(p, false, t.Func)
		p.sb.WriteByte(' ')
		termString(p, true, t.Arg)
		if simple {
			p.sb.WriteByte(')')
		}

	case *NFst:
		termString(p, true, t.Pair)
		p.sb.WriteString(".1")

	case *NSnd:
		termString(p, true, t.Pair)
		p.sb.WriteString(".2")

	case *NProj:
		termString(p, true, t.Record)
		p.sb.WriteByte('.')
		p.sb.WriteString(t.Label)

	case *NSplit:
		p.sb.WriteString("split(")
		termString(p, false, t.Arg)
		p.sb.WriteByte(')')
	}
}
