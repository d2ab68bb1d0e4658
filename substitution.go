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

package lattice

import (
	"github.com/wdamron/lattice/internal/typeutil"
	"github.com/wdamron/lattice/types"
)

// Substitutor applies a substitution to types, respecting variance.
type Substitutor = typeutil.Substitutor

// SubstitutionError reports a failed substitution; it wraps ErrVarianceConflict or ErrRecursionTooDeep.
type SubstitutionError = typeutil.SubstitutionError

var (
	ErrVarianceConflict = typeutil.ErrVarianceConflict
	ErrRecursionTooDeep = typeutil.ErrRecursionTooDeep
)

// NewSubstitutor creates a substitutor with the default depth limit.
func NewSubstitutor(s types.Substitution) *Substitutor { return typeutil.NewSubstitutor(s) }

// SubstitutorForType creates a substitutor which maps the parameters of t's constructor to t's arguments.
func SubstitutorForType(t *types.Type) *Substitutor {
	return typeutil.NewSubstitutor(types.TypeArgumentsSubstitution(t))
}

// SubstitutorForTypeParameters creates a substitutor from a mapping of type parameters to projections.
func SubstitutorForTypeParameters(mappings map[*types.TypeParameter]types.Projection) *Substitutor {
	return typeutil.NewSubstitutor(types.NewParameterSubstitution(mappings))
}

// ConstantSubstitutor creates a substitutor which maps every given parameter to the same projection.
func ConstantSubstitutor(params []*types.TypeParameter, replacement types.Projection) *Substitutor {
	mappings := make(map[*types.TypeParameter]types.Projection, len(params))
	for _, p := range params {
		mappings[p] = replacement
	}
	return SubstitutorForTypeParameters(mappings)
}

// StarProjectionSubstitutor creates a substitutor which maps each parameter of the class to a star
// projection.
func StarProjectionSubstitutor(class *types.ClassDescriptor) *Substitutor {
	mappings := make(map[*types.TypeParameter]types.Projection, len(class.Parameters()))
	for _, p := range class.Parameters() {
		mappings[p] = types.StarProjection(p)
	}
	return SubstitutorForTypeParameters(mappings)
}

// SubstitutingScope wraps a member scope so that the types of found members are substituted. Members whose
// substitution fails get error types.
func SubstitutingScope(scope types.MemberScope, s *Substitutor) types.MemberScope {
	if s.IsEmpty() {
		return scope
	}
	return substitutingScope{scope, s}
}

type substitutingScope struct {
	scope types.MemberScope
	sub   *Substitutor
}

func (s substitutingScope) Members(name string) []types.Member {
	members := s.scope.Members(name)
	if len(members) == 0 {
		return nil
	}
	substituted := make([]types.Member, len(members))
	for i, m := range members {
		substituted[i] = types.Member{Name: m.Name, Type: s.sub.SafeSubstitute(m.Type, types.Invariant)}
	}
	return substituted
}

func (s substitutingScope) Names() []string { return s.scope.Names() }
