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

package types

import (
	"github.com/benbjohnson/immutable"
)

// Substitution maps type constructors (usually type parameters) to replacement projections.
type Substitution interface {
	// Get the replacement for a constructor.
	Get(c *Constructor) (Projection, bool)
	// IsEmpty reports whether the substitution has no replacements.
	IsEmpty() bool
	// ApproximateCapturedTypes reports whether substituted types should have captured types approximated.
	ApproximateCapturedTypes() bool
	// ApproximateContravariantCapturedTypes reports whether captured types in `in` projections should
	// be approximated too.
	ApproximateContravariantCapturedTypes() bool
	// FilterAnnotations filters the annotations of substituted types.
	FilterAnnotations(a Annotations) Annotations
}

type emptySubstitution struct{}

// EmptySubstitution replaces nothing.
var EmptySubstitution Substitution = emptySubstitution{}

func (emptySubstitution) Get(*Constructor) (Projection, bool)         { return Projection{}, false }
func (emptySubstitution) IsEmpty() bool                               { return true }
func (emptySubstitution) ApproximateCapturedTypes() bool              { return false }
func (emptySubstitution) ApproximateContravariantCapturedTypes() bool { return false }
func (emptySubstitution) FilterAnnotations(a Annotations) Annotations { return a }
func (emptySubstitution) String() string                              { return "{}" }

type constructorHasher struct{}

func (constructorHasher) Hash(key interface{}) uint32 {
	h := key.(*Constructor).Hash()
	return uint32(h ^ (h >> 32))
}

func (constructorHasher) Equal(a, b interface{}) bool {
	return a.(*Constructor).Equal(b.(*Constructor))
}

var emptyConstructorMap = immutable.NewMap(constructorHasher{})

// MapSubstitution is a substitution backed by a persistent map from constructors to projections.
type MapSubstitution struct {
	m *immutable.Map
}

// NewMapSubstitution creates a substitution from constructor mappings. Keys follow constructor equality,
// so classes with equal qualified names share a mapping.
func NewMapSubstitution(mappings map[*Constructor]Projection) MapSubstitution {
	m := emptyConstructorMap
	for c, p := range mappings {
		m = m.Set(c, p)
	}
	return MapSubstitution{m}
}

// NewParameterSubstitution creates a substitution from type parameters to projections.
func NewParameterSubstitution(mappings map[*TypeParameter]Projection) MapSubstitution {
	m := emptyConstructorMap
	for p, proj := range mappings {
		m = m.Set(p.ctor, proj)
	}
	return MapSubstitution{m}
}

// With returns a substitution with an added or replaced mapping.
func (s MapSubstitution) With(c *Constructor, p Projection) MapSubstitution {
	return MapSubstitution{s.mapping().Set(c, p)}
}

func (s MapSubstitution) mapping() *immutable.Map {
	if s.m == nil {
		return emptyConstructorMap
	}
	return s.m
}

func (s MapSubstitution) Get(c *Constructor) (Projection, bool) {
	v, ok := s.mapping().Get(c)
	if !ok {
		return Projection{}, false
	}
	return v.(Projection), true
}

func (s MapSubstitution) Len() int                                    { return s.mapping().Len() }
func (s MapSubstitution) IsEmpty() bool                               { return s.Len() == 0 }
func (s MapSubstitution) ApproximateCapturedTypes() bool              { return false }
func (s MapSubstitution) ApproximateContravariantCapturedTypes() bool { return false }
func (s MapSubstitution) FilterAnnotations(a Annotations) Annotations { return a }

// IndexedSubstitution maps the parameters of a class positionally to arguments.
type IndexedSubstitution struct {
	params []*TypeParameter
	args   []Projection
}

// NewIndexedSubstitution creates a positional substitution. Extra parameters or arguments are ignored.
func NewIndexedSubstitution(params []*TypeParameter, args []Projection) *IndexedSubstitution {
	n := len(params)
	if len(args) < n {
		n = len(args)
	}
	return &IndexedSubstitution{params: params[:n], args: args[:n]}
}

// TypeArgumentsSubstitution maps the parameters of the type's constructor to the type's arguments.
func TypeArgumentsSubstitution(t *Type) *IndexedSubstitution {
	return NewIndexedSubstitution(t.ctor.Parameters(), t.args)
}

func (s *IndexedSubstitution) Get(c *Constructor) (Projection, bool) {
	if c.kind != KindTypeParameter {
		return Projection{}, false
	}
	p := c.param
	if p.index < len(s.params) && s.params[p.index] == p {
		return s.args[p.index], true
	}
	return Projection{}, false
}

func (s *IndexedSubstitution) IsEmpty() bool                               { return len(s.args) == 0 }
func (s *IndexedSubstitution) ApproximateCapturedTypes() bool              { return false }
func (s *IndexedSubstitution) ApproximateContravariantCapturedTypes() bool { return false }
func (s *IndexedSubstitution) FilterAnnotations(a Annotations) Annotations { return a }

type chainedSubstitution struct {
	first, second Substitution
}

// Chain tries the first substitution and falls back to the second. Empty inputs are dropped.
func Chain(first, second Substitution) Substitution {
	if first.IsEmpty() {
		return second
	}
	if second.IsEmpty() {
		return first
	}
	return chainedSubstitution{first, second}
}

func (s chainedSubstitution) Get(c *Constructor) (Projection, bool) {
	if p, ok := s.first.Get(c); ok {
		return p, true
	}
	return s.second.Get(c)
}

func (s chainedSubstitution) IsEmpty() bool { return false }

func (s chainedSubstitution) ApproximateCapturedTypes() bool {
	return s.first.ApproximateCapturedTypes() || s.second.ApproximateCapturedTypes()
}

func (s chainedSubstitution) ApproximateContravariantCapturedTypes() bool {
	return s.first.ApproximateContravariantCapturedTypes() || s.second.ApproximateContravariantCapturedTypes()
}

func (s chainedSubstitution) FilterAnnotations(a Annotations) Annotations {
	return s.second.FilterAnnotations(s.first.FilterAnnotations(a))
}

type disjointUnion struct {
	chainedSubstitution
}

// DisjointUnion combines two substitutions whose keys must not overlap. A lookup which finds a key in
// both panics.
func DisjointUnion(a, b Substitution) Substitution {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	return disjointUnion{chainedSubstitution{a, b}}
}

func (s disjointUnion) Get(c *Constructor) (Projection, bool) {
	p, ok := s.first.Get(c)
	if _, overlap := s.second.Get(c); ok && overlap {
		panic("types: overlapping keys in disjoint substitution union: " + c.String())
	}
	if ok {
		return p, true
	}
	return s.second.Get(c)
}

type compositeSubstitution []Substitution

// Composite combines several substitutions; the first which maps a key wins.
func Composite(subs ...Substitution) Substitution {
	nonEmpty := make(compositeSubstitution, 0, len(subs))
	for _, s := range subs {
		if !s.IsEmpty() {
			nonEmpty = append(nonEmpty, s)
		}
	}
	switch len(nonEmpty) {
	case 0:
		return EmptySubstitution
	case 1:
		return nonEmpty[0]
	}
	return nonEmpty
}

func (s compositeSubstitution) Get(c *Constructor) (Projection, bool) {
	for _, sub := range s {
		if p, ok := sub.Get(c); ok {
			return p, true
		}
	}
	return Projection{}, false
}

func (s compositeSubstitution) IsEmpty() bool { return len(s) == 0 }

func (s compositeSubstitution) ApproximateCapturedTypes() bool {
	for _, sub := range s {
		if sub.ApproximateCapturedTypes() {
			return true
		}
	}
	return false
}

func (s compositeSubstitution) ApproximateContravariantCapturedTypes() bool {
	for _, sub := range s {
		if sub.ApproximateContravariantCapturedTypes() {
			return true
		}
	}
	return false
}

func (s compositeSubstitution) FilterAnnotations(a Annotations) Annotations {
	for _, sub := range s {
		a = sub.FilterAnnotations(a)
	}
	return a
}

type approximatingSubstitution struct {
	Substitution
	contravariant bool
}

// WithCapturedTypeApproximation wraps a substitution so that substituted types have their captured
// types approximated.
func WithCapturedTypeApproximation(s Substitution, contravariant bool) Substitution {
	return approximatingSubstitution{s, contravariant}
}

func (s approximatingSubstitution) ApproximateCapturedTypes() bool { return true }

func (s approximatingSubstitution) ApproximateContravariantCapturedTypes() bool {
	return s.contravariant
}
