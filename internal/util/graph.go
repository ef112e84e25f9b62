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

package util

import "sort"

// Graph is a directed graph over the vertices 0..len(g)-1, stored as adjacency lists.
type Graph [][]int

func NewGraph(numVerts int) Graph { return Graph(make([][]int, numVerts)) }

// AddEdge adds an edge unless it is already present.
func (g Graph) AddEdge(from, to int) {
	if !g.HasEdge(from, to) {
		g[from] = append(g[from], to)
	}
}

func (g Graph) HasEdge(from, to int) bool {
	for _, succ := range g[from] {
		if succ == to {
			return true
		}
	}
	return false
}

// HasSelfLoop reports whether v has an edge to itself.
func (g Graph) HasSelfLoop(v int) bool { return g.HasEdge(v, v) }

// SCC returns the strongly connected components of g in topological order: when an edge
// leads from component A to component B, A precedes B. Vertices within a component are
// sorted in ascending order.
func (g Graph) SCC() [][]int {
	state := sccState{
		indexTable: make([]int, len(g)),
		lowLink:    make([]int, len(g)),
		onStack:    make([]bool, len(g)),
	}
	for v := range g {
		if state.indexTable[v] == 0 {
			g.tarjan(&state, v)
		}
	}
	sccs := state.sccs
	// Tarjan emits sinks first
	for i, j := 0, len(sccs)-1; i < j; i, j = i+1, j-1 {
		sccs[i], sccs[j] = sccs[j], sccs[i]
	}
	for _, c := range sccs {
		sort.Ints(c)
	}
	return sccs
}

type sccState struct {
	index      int
	indexTable []int
	lowLink    []int
	onStack    []bool

	stack []int
	sccs  [][]int
}

// Tarjan's SCC algorithm, based on https://github.com/gonum/gonum/blob/master/graph/topo/tarjan.go
func (g Graph) tarjan(state *sccState, v int) {
	state.index++
	state.indexTable[v] = state.index
	state.lowLink[v] = state.index
	state.stack = append(state.stack, v)
	state.onStack[v] = true

	for _, succ := range g[v] {
		switch {
		case state.indexTable[succ] == 0:
			g.tarjan(state, succ)
			state.lowLink[v] = min(state.lowLink[v], state.lowLink[succ])
		case state.onStack[succ]:
			state.lowLink[v] = min(state.lowLink[v], state.indexTable[succ])
		}
	}

	if state.lowLink[v] != state.indexTable[v] {
		return
	}
	var c []int
	for {
		top := state.stack[len(state.stack)-1]
		state.stack = state.stack[:len(state.stack)-1]
		state.onStack[top] = false
		c = append(c, top)
		if top == v {
			break
		}
	}
	state.sccs = append(state.sccs, c)
}
