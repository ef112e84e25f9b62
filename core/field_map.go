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
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

var EmptyFieldMap = FieldMap{emptyMap}

// FieldMap contains immutable mappings from labels to terms. Entries are sorted by label,
// so two maps with the same entries compare equal regardless of insertion order.
type FieldMap struct {
	m *immutable.SortedMap
}

func NewFieldMap() FieldMap { return FieldMap{emptyMap} }

// Create a FieldMap with a single entry.
func SingletonFieldMap(label string, t Term) FieldMap {
	return FieldMap{emptyMap.Set(label, t)}
}

// Create a FieldMap from a Go map.
func FieldMapOf(m map[string]Term) FieldMap {
	b := NewFieldMapBuilder()
	for label, t := range m {
		b.Set(label, t)
	}
	return b.Build()
}

func (m FieldMap) sorted() *immutable.SortedMap {
	if m.m == nil {
		return emptyMap
	}
	return m.m
}

// Get the number of entries in the map.
func (m FieldMap) Len() int { return m.sorted().Len() }

// Get the term for a label.
func (m FieldMap) Get(label string) (Term, bool) {
	t, ok := m.sorted().Get(label)
	if !ok {
		return nil, false
	}
	return t.(Term), true
}

// Set the term for a label, without mutating the existing map.
func (m FieldMap) Set(label string, t Term) FieldMap { return FieldMap{m.sorted().Set(label, t)} }

// Delete a label, without mutating the existing map.
func (m FieldMap) Delete(label string) FieldMap { return FieldMap{m.sorted().Delete(label)} }

// Iterate over entries in the map, sorted by label.
// If f returns false, iteration will be stopped.
func (m FieldMap) Range(f func(string, Term) bool) {
	iter := m.sorted().Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(Term)) {
			return
		}
	}
}

// Labels returns the sorted labels of the map.
func (m FieldMap) Labels() []string {
	labels := make([]string, 0, m.Len())
	m.Range(func(label string, _ Term) bool {
		labels = append(labels, label)
		return true
	})
	return labels
}

// Map creates a map with each term replaced by f(label, term).
func (m FieldMap) Map(f func(string, Term) Term) FieldMap {
	if m.Len() == 0 {
		return m
	}
	b := NewFieldMapBuilder()
	m.Range(func(label string, t Term) bool {
		b.Set(label, f(label, t))
		return true
	})
	return b.Build()
}

// FieldMapBuilder enables in-place updates of a map before finalization.
type FieldMapBuilder struct {
	b *immutable.SortedMapBuilder
}

func NewFieldMapBuilder() FieldMapBuilder {
	return FieldMapBuilder{immutable.NewSortedMapBuilder(nil)}
}

// Get the number of entries in the builder.
func (b FieldMapBuilder) Len() int { return b.b.Len() }

// Set the term for the given label in the builder.
func (b FieldMapBuilder) Set(label string, t Term) FieldMapBuilder {
	b.b.Set(label, t)
	return b
}

// Finalize the builder into an immutable map.
func (b FieldMapBuilder) Build() FieldMap { return FieldMap{b.b.Map()} }
