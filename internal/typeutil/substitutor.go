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

package typeutil

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/wdamron/lattice/types"
)

var (
	ErrVarianceConflict = errors.New("Variance conflict in substitution")
	ErrRecursionTooDeep = errors.New("Recursion too deep in substitution")
)

// VarianceConflict classifies a replacement whose projection kind disagrees with its position.
type VarianceConflict uint8

const (
	NoConflict VarianceConflict = iota
	// An `out` replacement in an `in` position.
	OutInInPosition
	// An `in` replacement in an `out` position.
	InInOutPosition
)

// ConflictType classifies the combination of a position and the projection kind of its argument.
func ConflictType(position, argument types.Variance) VarianceConflict {
	switch {
	case position == types.In && argument == types.Out:
		return OutInInPosition
	case position == types.Out && argument == types.In:
		return InInOutPosition
	}
	return NoConflict
}

// SubstitutionError reports a failed substitution.
type SubstitutionError struct {
	Err         error
	Type        *types.Type
	Replacement types.Projection
	Position    types.Variance
	Depth       int
}

func (e *SubstitutionError) Error() string {
	switch e.Err {
	case ErrVarianceConflict:
		return "Failed to substitute " + types.TypeString(e.Type) + ": " + e.Replacement.String() +
			" is not allowed in " + positionName(e.Position) + " position"
	case ErrRecursionTooDeep:
		return "Recursion too deep (" + strconv.Itoa(e.Depth) + ") while substituting " + types.TypeString(e.Type)
	}
	return e.Err.Error()
}

func (e *SubstitutionError) Unwrap() error { return e.Err }

func positionName(v types.Variance) string {
	if v == types.Invariant {
		return "invariant"
	}
	return v.String()
}

// Substitutor applies a substitution to types, respecting variance.
//
// A substitutor holds no mutable state and may be shared across goroutines.
type Substitutor struct {
	substitution types.Substitution
	maxDepth     int
	logger       *slog.Logger
}

// NewSubstitutor creates a substitutor which applies the substitution with the context's depth limit.
func (ctx *CommonContext) NewSubstitutor(s types.Substitution) *Substitutor {
	return &Substitutor{substitution: s, maxDepth: ctx.MaxSubstitutionDepth, logger: ctx.logger()}
}

// NewSubstitutor creates a substitutor with the default depth limit and no logger.
func NewSubstitutor(s types.Substitution) *Substitutor {
	return &Substitutor{substitution: s, maxDepth: DefaultMaxSubstitutionDepth}
}

func (s *Substitutor) Substitution() types.Substitution { return s.substitution }

func (s *Substitutor) IsEmpty() bool { return s.substitution.IsEmpty() }

// Substitute replaces occurrences of the substitution's keys in t, which is used at the given variance.
// The identity substitution returns t itself.
func (s *Substitutor) Substitute(t *types.Type, howThisTypeIsUsed types.Variance) (*types.Type, error) {
	if s.IsEmpty() {
		return t, nil
	}
	p, err := s.SubstituteProjection(types.NewProjection(howThisTypeIsUsed, t))
	if err != nil {
		return nil, err
	}
	return p.Type(), nil
}

// SubstituteProjection replaces occurrences of the substitution's keys in a projection.
func (s *Substitutor) SubstituteProjection(p types.Projection) (types.Projection, error) {
	if s.IsEmpty() {
		return p, nil
	}
	result, err := s.unsafeSubstitute(p, 0)
	if err != nil {
		return types.Projection{}, err
	}
	if s.substitution.ApproximateCapturedTypes() {
		result = ApproximateCapturedProjection(result, s.substitution.ApproximateContravariantCapturedTypes())
	}
	return result, nil
}

// SafeSubstitute is like Substitute, but a failed substitution yields an error type carrying the reason.
func (s *Substitutor) SafeSubstitute(t *types.Type, howThisTypeIsUsed types.Variance) *types.Type {
	if s.IsEmpty() {
		return t
	}
	result, err := s.Substitute(t, howThisTypeIsUsed)
	if err != nil {
		if s.logger != nil {
			s.logger.Debug("substitution failed", "type", types.TypeString(t), "error", err)
		}
		return types.CreateErrorType(err.Error())
	}
	return result
}

func (s *Substitutor) unsafeSubstitute(original types.Projection, depth int) (types.Projection, error) {
	if depth > s.maxDepth {
		return types.Projection{}, &SubstitutionError{Err: ErrRecursionTooDeep, Type: original.Type(), Depth: depth}
	}
	if original.IsStar() {
		return original, nil
	}
	t := original.Type()
	switch t.FlexCapability() {
	case types.FlexDynamic, types.FlexRaw:
		return original, nil
	case types.FlexPlatform:
		return s.substituteFlexible(original, depth)
	}
	if types.IsNothing(t) || t.IsError() {
		return original, nil
	}

	if replacement, ok := s.substitution.Get(t.Constructor()); ok {
		return s.substituteReplacement(original, replacement)
	}

	switch t.Constructor().Kind() {
	case types.KindTypeParameter, types.KindIntersection, types.KindCaptured, types.KindSpecial:
		return original, nil
	}
	return s.substituteCompound(original, depth)
}

func (s *Substitutor) substituteFlexible(original types.Projection, depth int) (types.Projection, error) {
	t, kind := original.Type(), original.Kind()
	lower, err := s.unsafeSubstitute(types.NewProjection(kind, t.LowerBound()), depth+1)
	if err != nil {
		return types.Projection{}, err
	}
	upper, err := s.unsafeSubstitute(types.NewProjection(kind, t.UpperBound()), depth+1)
	if err != nil {
		return types.Projection{}, err
	}
	if lower.Kind() != upper.Kind() || (kind != types.Invariant && kind != lower.Kind()) {
		panic("typeutil: unexpected substituted projection kinds " + lower.String() + " and " + upper.String() +
			" for flexible type " + types.TypeString(t))
	}
	if lower.Type() == t.LowerBound() && upper.Type() == t.UpperBound() && lower.Kind() == kind {
		return original, nil
	}
	return types.NewProjection(lower.Kind(), types.NewFlexibleType(lower.Type(), upper.Type(), t.FlexCapability())), nil
}

func (s *Substitutor) substituteReplacement(original, replacement types.Projection) (types.Projection, error) {
	if replacement.IsStar() {
		return replacement, nil
	}
	t, kind := original.Type(), original.Kind()
	// A captured type may be substituted at the opposite variance:
	// in Captured(out Int) = in Int, out Captured(in Int) = out Any?
	allowConflict := t.Constructor().Kind() == types.KindCaptured
	switch ConflictType(kind, replacement.Kind()) {
	case OutInInPosition:
		if !allowConflict {
			return types.Projection{}, &SubstitutionError{Err: ErrVarianceConflict, Type: t, Replacement: replacement, Position: kind}
		}
		return types.NewProjection(types.In, replacement.Type()), nil
	case InInOutPosition:
		if !allowConflict {
			return types.Projection{}, &SubstitutionError{Err: ErrVarianceConflict, Type: t, Replacement: replacement, Position: kind}
		}
		return types.NewProjection(types.Out, types.NullableAny()), nil
	}

	substituted := replacement.Type()
	if t.IsMarkedNullable() {
		substituted = substituted.MakeNullable()
	}
	if annotations := t.Annotations(); !annotations.IsEmpty() {
		filtered := filterOutUnsafeVariance(s.substitution.FilterAnnotations(annotations))
		substituted = substituted.WithAnnotations(substituted.Annotations().Union(filtered))
	}
	return types.NewProjection(types.Combine(kind, replacement.Kind()), substituted), nil
}

func (s *Substitutor) substituteCompound(original types.Projection, depth int) (types.Projection, error) {
	t := original.Type()
	params, args := t.Constructor().Parameters(), t.Arguments()
	var substitutedArgs []types.Projection
	for i, arg := range args {
		substituted, err := s.unsafeSubstitute(arg, depth+1)
		if err != nil {
			return types.Projection{}, err
		}
		if i < len(params) {
			param := params[i]
			switch {
			case substituted.IsStar():
				if substituted.Param() != param {
					substituted = types.StarProjection(param)
				}
			case ConflictType(param.Variance(), substituted.Kind()) != NoConflict:
				substituted = types.StarProjection(param)
			}
		}
		if substitutedArgs == nil && !sameProjection(substituted, arg) {
			substitutedArgs = make([]types.Projection, len(args))
			copy(substitutedArgs, args[:i])
		}
		if substitutedArgs != nil {
			substitutedArgs[i] = substituted
		}
	}

	annotations := filterOutUnsafeVariance(s.substitution.FilterAnnotations(t.Annotations()))
	if substitutedArgs == nil && annotations.Equal(t.Annotations()) {
		return original, nil
	}
	result := t
	if substitutedArgs != nil {
		result = result.WithArguments(substitutedArgs)
	}
	return types.NewProjection(original.Kind(), result.WithAnnotations(annotations)), nil
}

func sameProjection(a, b types.Projection) bool {
	if a.IsStar() || b.IsStar() {
		return a.IsStar() == b.IsStar() && a.Param() == b.Param()
	}
	return a.Kind() == b.Kind() && a.Type() == b.Type()
}

func filterOutUnsafeVariance(a types.Annotations) types.Annotations {
	return a.Without(types.UnsafeVariance)
}
