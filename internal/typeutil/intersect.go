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
	"strings"

	"github.com/samber/lo"

	"github.com/wdamron/lattice/types"
)

// IntersectTypes computes the greatest common subtype of the types, or nil if no value can belong to all
// of them. Several unrelated types produce a synthetic intersection type.
func (ctx *CommonContext) IntersectTypes(ts []*types.Type) *types.Type {
	switch len(ts) {
	case 0:
		return types.NullableAny()
	case 1:
		return ts[0]
	}

	valid := lo.Filter(ts, func(t *types.Type, _ int) bool { return !t.IsError() })
	switch len(valid) {
	case 0:
		return types.CreateErrorType("Intersection of error types " + typeListString(ts))
	case 1:
		return valid[0]
	}

	allNullable, nothing := true, false
	nullabilityStripped := make([]*types.Type, len(valid))
	for i, t := range valid {
		allNullable = allNullable && t.IsMarkedNullable()
		nothing = nothing || types.IsNothing(t)
		nullabilityStripped[i] = t.MakeNotNullable()
	}
	if nothing {
		return types.Nothing().MakeNullableAsSpecified(allNullable)
	}

	var retained []*types.Type
outer:
	for _, t := range nullabilityStripped {
		if !ctx.CanHaveSubtypes(t) {
			for _, other := range nullabilityStripped {
				if !ctx.MayBeEqual(t, other) && !ctx.IsSubtypeOf(t, other) && !ctx.IsSubtypeOf(other, t) {
					ctx.logger().Debug("empty intersection", "type", types.TypeString(t), "other", types.TypeString(other))
					return nil
				}
			}
			if rep := ctx.singleBestRepresentative(nullabilityStripped, false); rep != nil {
				t = rep
			}
			return t.MakeNullableAsSpecified(allNullable)
		}
		for _, other := range nullabilityStripped {
			if !t.Equal(other) && ctx.IsSubtypeOf(other, t) {
				continue outer
			}
		}
		for _, other := range retained {
			if ctx.EqualTypes(other, t) {
				continue outer
			}
		}
		retained = append(retained, t)
	}

	switch len(retained) {
	case 0:
		if rep := ctx.singleBestRepresentative(nullabilityStripped, false); rep != nil {
			return rep.MakeNullableAsSpecified(allNullable)
		}
		return nullabilityStripped[0].MakeNullableAsSpecified(allNullable)
	case 1:
		return retained[0].MakeNullableAsSpecified(allNullable)
	}
	return types.NewSimpleType(types.NewIntersectionConstructor(retained), nil, allNullable)
}

// IsIntersectionEmpty reports whether no value can belong to both a and b.
func (ctx *CommonContext) IsIntersectionEmpty(a, b *types.Type) bool {
	return ctx.IntersectTypes([]*types.Type{a, b}) == nil
}

// CanHaveSubtypes reports whether some type other than t itself may be a subtype of t.
func (ctx *CommonContext) CanHaveSubtypes(t *types.Type) bool {
	if t.IsMarkedNullable() || !t.Constructor().IsFinal() {
		return true
	}
	params := t.Constructor().Parameters()
	for i, arg := range t.Arguments() {
		if arg.IsStar() || i >= len(params) {
			return true
		}
		param := params[i]
		switch param.Variance() {
		case types.Invariant:
			switch arg.Kind() {
			case types.In:
				if ctx.lowerThanBound(arg.Type(), param) {
					return true
				}
			default:
				if ctx.CanHaveSubtypes(arg.Type()) {
					return true
				}
			}
		case types.In:
			if arg.Kind() != types.Out {
				if ctx.lowerThanBound(arg.Type(), param) {
					return true
				}
			} else if ctx.CanHaveSubtypes(arg.Type()) {
				return true
			}
		case types.Out:
			if arg.Kind() != types.In {
				if ctx.CanHaveSubtypes(arg.Type()) {
					return true
				}
			} else if ctx.lowerThanBound(arg.Type(), param) {
				return true
			}
		}
	}
	return false
}

// lowerThanBound reports whether t is a proper subtype of one of the parameter's upper bounds.
func (ctx *CommonContext) lowerThanBound(t *types.Type, param *types.TypeParameter) bool {
	for _, bound := range param.UpperBounds() {
		if ctx.IsSubtypeOf(t, bound) && !t.Constructor().Equal(bound.Constructor()) {
			return true
		}
	}
	return false
}

func typeListString(ts []*types.Type) string {
	return "(" + strings.Join(types.TypeStrings(ts), ", ") + ")"
}
