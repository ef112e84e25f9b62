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
	"strconv"

	"github.com/voile-lang/voile/core"
)

// OutOfRange describes a reference whose index exceeds the bindings in scope.
type OutOfRange struct {
	Info      core.Info
	Global    bool
	Max       int // number of bindings in scope
	Requested core.DBI
}

func (e *OutOfRange) Error() string {
	kind := "local"
	if e.Global {
		kind = "global"
	}
	return kind + " index " + strconv.Itoa(int(e.Requested)) + " exceeds " + strconv.Itoa(e.Max) +
		" bindings at " + e.Info.String()
}

// CheckIndices validates the indices of e against locals bindings in the local context and
// globals slots in the global table. The first reference out of range is returned.
func CheckIndices(e Abs, locals, globals int) *OutOfRange {
	var bad *OutOfRange
	WalkScoped(e, locals, func(e Abs, depth int) {
		if bad != nil {
			return
		}
		switch e := e.(type) {
		case *Local:
			if e.Index < 0 || int(e.Index) >= depth {
				bad = &OutOfRange{Info: e.Info, Max: depth, Requested: e.Index}
			}
		case *Var:
			if e.Index < 0 || int(e.Index) >= globals {
				bad = &OutOfRange{Info: e.Info, Global: true, Max: globals, Requested: e.Index}
			}
		}
	})
	return bad
}
