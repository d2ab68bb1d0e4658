// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
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

// lattice provides the core of a type-system for a statically typed, nominal language with declaration-site
// and use-site variance, nullable types and flexible (platform) types.
//
// The package computes over types built with the types package:
//
//   * Substitution of type parameters for generic instantiation, respecting variance
//   * Common supertypes (least upper bounds), with bounded recursion through self-referential hierarchies
//   * Intersections (greatest lower bounds), including detection of empty intersections
//   * Subtyping, capture of projections, and approximation of captured types
//
// Class hierarchies are declared within a TypeEnv. Supertypes of each class are resolved lazily, memoized,
// and checked for cycles; a cyclic hierarchy yields error types instead of failing.
//
//
// Links:
//
// Declaration-site and use-site variance: https://kotlinlang.org/docs/generics.html
//
// Least upper bounds and lattices: https://en.wikipedia.org/wiki/Join_and_meet
package lattice
