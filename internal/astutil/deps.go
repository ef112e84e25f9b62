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

package astutil

import (
	"github.com/voile-lang/voile/abs"
	"github.com/voile-lang/voile/core"
	"github.com/voile-lang/voile/internal/util"
)

// Analysis for a group of top-level declarations which may refer to each other through
// their global slots. Declarations are sorted into strongly-connected components, and
// components are ordered so that every declaration follows the declarations it uses.
type Analysis struct {
	Graph util.Graph
	Sccs  [][]int // indices into the analyzed group, in dependency order
}

// Recursive returns true if the component refers to itself.
func (a *Analysis) Recursive(scc []int) bool {
	return len(scc) > 1 || a.Graph.HasSelfLoop(scc[0])
}

// Analyze computes the dependency order of a group of declarations. slots[i] is the global
// slot reserved for declaration i and exprs[i] holds its syntax (signature and body).
// References to slots outside the group are ignored.
func Analyze(slots []core.DBI, exprs [][]abs.Abs) *Analysis {
	verts := make(map[core.DBI]int, len(slots))
	for i, slot := range slots {
		verts[slot] = i
	}
	g := util.NewGraph(len(slots))
	for i, es := range exprs {
		for _, e := range es {
			if e == nil {
				continue
			}
			for _, ref := range abs.GlobalRefs(e) {
				if dep, ok := verts[ref]; ok {
					// edges lead from a dependency to its dependents
					g.AddEdge(dep, i)
				}
			}
		}
	}
	return &Analysis{Graph: g, Sccs: g.SCC()}
}
