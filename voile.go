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

// voile provides elaboration for a dependently-typed language with universe cumulativity and
// row-polymorphic records and variants.
//
// Scope-resolved expressions (package abs) are checked bidirectionally against the local
// context and the global table held in a TCS. Checking produces core terms (package core),
// which are values in normal form: evaluation is normalization by evaluation over closures,
// and variables are de Bruijn indices.
//
// Supported Features:
//
//   - Cumulative universes: Type(i) <: Type(j) for i <= j
//   - Dependent pi and sigma types, with implicit parameters
//   - Subtyping of pi types (contravariant domain) and sigma types (covariant components)
//   - Metavariables solved by first-order unification
//   - Extensible records and variants with open rows
//   - Exhaustive case chains over variants
//   - Mutually-recursive top-level declarations
//
// Links:
//
// Normalization by evaluation: https://en.wikipedia.org/wiki/Normalisation_by_evaluation
//
// Bidirectional type checking (Dunfield, Krishnaswami): https://arxiv.org/abs/1908.05839
//
// Extensible Records with Scoped Labels (Leijen, 2005): https://www.microsoft.com/en-us/research/publication/extensible-records-with-scoped-labels/
//
// De Bruijn index: https://en.wikipedia.org/wiki/De_Bruijn_index
package voile
