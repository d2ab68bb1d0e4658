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
	"github.com/wdamron/lattice/types"
)

// NewCapturedType creates a type standing for the unknown type captured by a projection.
func NewCapturedType(p types.Projection) *types.Type {
	return types.NewSimpleType(types.NewCapturedConstructor(p), nil, false)
}

func IsCaptured(t *types.Type) bool { return t.Constructor().Kind() == types.KindCaptured }

// CaptureFromArguments replaces every projected argument of t with an invariant captured type.
func CaptureFromArguments(t *types.Type) *types.Type {
	args := t.Arguments()
	var captured []types.Projection
	for i, arg := range args {
		if !arg.IsStar() && arg.Kind() == types.Invariant {
			continue
		}
		if captured == nil {
			captured = append([]types.Projection(nil), args...)
		}
		captured[i] = types.NewProjection(types.Invariant, NewCapturedType(arg))
	}
	if captured == nil {
		return t
	}
	return t.WithArguments(captured)
}

// ContainsCapturedTypes reports whether t or any of its arguments is a captured type.
func ContainsCapturedTypes(t *types.Type) bool {
	if t == nil {
		return false
	}
	if IsCaptured(t) {
		return true
	}
	if t.IsFlexible() {
		return ContainsCapturedTypes(t.LowerBound()) || ContainsCapturedTypes(t.UpperBound())
	}
	for _, arg := range t.Arguments() {
		if !arg.IsStar() && ContainsCapturedTypes(arg.Type()) {
			return true
		}
	}
	return false
}

// ApproximateCapturedTypes returns the closest denotable types below and above t which contain no
// captured types.
func ApproximateCapturedTypes(t *types.Type) (lower, upper *types.Type) {
	if !ContainsCapturedTypes(t) {
		return t, t
	}
	if t.IsFlexible() {
		lower, _ = ApproximateCapturedTypes(t.LowerBound())
		_, upper = ApproximateCapturedTypes(t.UpperBound())
		return lower, upper
	}
	nullable := t.IsMarkedNullable()
	if IsCaptured(t) {
		p := t.Constructor().Captured()
		switch {
		case p.IsStar():
			lower, upper = types.Nothing(), p.Type()
		case p.Kind() == types.In:
			lower, _ = ApproximateCapturedTypes(p.Type())
			upper = types.NullableAny()
		case p.Kind() == types.Out:
			lower = types.Nothing()
			_, upper = ApproximateCapturedTypes(p.Type())
		default:
			lower, upper = ApproximateCapturedTypes(p.Type())
		}
		if nullable {
			lower, upper = lower.MakeNullable(), upper.MakeNullable()
		}
		return lower, upper
	}

	params := t.Constructor().Parameters()
	args := make([]types.Projection, len(t.Arguments()))
	for i, arg := range t.Arguments() {
		var param *types.TypeParameter
		if i < len(params) {
			param = params[i]
		}
		args[i] = approximateArgument(arg, param)
	}
	return types.Nothing().MakeNullableAsSpecified(nullable), t.WithArguments(args)
}

func approximateArgument(arg types.Projection, param *types.TypeParameter) types.Projection {
	if arg.IsStar() || !ContainsCapturedTypes(arg.Type()) {
		return arg
	}
	if arg.Kind() == types.Invariant && IsCaptured(arg.Type()) && !arg.Type().IsMarkedNullable() {
		p := arg.Type().Constructor().Captured()
		if p.IsStar() {
			return types.StarProjection(param)
		}
		return p
	}
	lower, upper := ApproximateCapturedTypes(arg.Type())
	if arg.Kind() == types.In {
		return types.NewProjection(types.In, lower)
	}
	return types.NewProjection(types.Out, upper)
}

// ApproximateCapturedProjection approximates captured types in a substituted projection. Projections of
// kind `in` are approximated only when contravariant is true.
func ApproximateCapturedProjection(p types.Projection, contravariant bool) types.Projection {
	if p.IsStar() || !ContainsCapturedTypes(p.Type()) {
		return p
	}
	lower, upper := ApproximateCapturedTypes(p.Type())
	switch p.Kind() {
	case types.Out:
		return types.NewProjection(types.Out, upper)
	case types.In:
		if !contravariant {
			return p
		}
		return types.NewProjection(types.In, lower)
	}
	if IsCaptured(p.Type()) && !p.Type().IsMarkedNullable() {
		return p.Type().Constructor().Captured()
	}
	return types.NewProjection(types.Out, upper)
}
