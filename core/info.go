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

import "strconv"

// Info locates a piece of syntax in its source. It is used for diagnostics only and never
// takes part in equality or evaluation.
type Info struct {
	Line, Col  int
	Start, End int
	Text       string
}

func (i Info) String() string {
	loc := strconv.Itoa(i.Line) + ":" + strconv.Itoa(i.Col)
	if i.Text == "" {
		return loc
	}
	return "`" + i.Text + "` at " + loc
}

// TermInfo is a term paired with the syntax it was elaborated from.
type TermInfo struct {
	Term Term
	Info Info
}

func NewTermInfo(t Term, info Info) TermInfo { return TermInfo{Term: t, Info: info} }
