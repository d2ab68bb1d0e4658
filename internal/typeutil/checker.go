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
	"github.com/hashicorp/go-set/v2"

	"github.com/wdamron/lattice/types"
)

// IsSubtypeOf reports whether every value of sub is a value of super. Error types are subtypes and
// supertypes of every type.
func (ctx *CommonContext) IsSubtypeOf(sub, super *types.Type) bool {
	return ctx.isSubtypeOf(sub, super, 0)
}

// EqualTypes reports whether a and b are subtypes of each other.
func (ctx *CommonContext) EqualTypes(a, b *types.Type) bool {
	return ctx.equalTypes(a, b, 0)
}

func (ctx *CommonContext) equalTypes(a, b *types.Type, depth int) bool {
	if a.Equal(b) {
		return true
	}
	return ctx.isSubtypeOf(a, b, depth) && ctx.isSubtypeOf(b, a, depth)
}

func (ctx *CommonContext) isSubtypeOf(sub, super *types.Type, depth int) bool {
	if depth > ctx.MaxSubstitutionDepth {
		return false
	}
	if sub.Equal(super) {
		return true
	}
	if sub.IsError() || super.IsError() {
		return true
	}
	if types.IsSpecialType(sub) || types.IsSpecialType(super) {
		return false
	}
	sub, super = sub.LowerBound(), super.UpperBound()
	if sub.Equal(super) {
		return true
	}

	if sub.IsNullable() && !super.IsNullable() {
		return false
	}
	if types.IsNothing(sub) || types.IsAny(super) {
		return true
	}
	subNN, superNN := sub.MakeNotNullable(), super.MakeNotNullable()

	switch superNN.Constructor().Kind() {
	case types.KindIntersection:
		for _, m := range superNN.Constructor().Members() {
			if !ctx.isSubtypeOf(sub, m, depth+1) {
				return false
			}
		}
		return true
	case types.KindCaptured:
		p := superNN.Constructor().Captured()
		if !p.IsStar() && p.Kind() != types.Out && !subNN.Constructor().Equal(superNN.Constructor()) {
			if p.Kind() == types.In {
				return ctx.isSubtypeOf(subNN, p.Type(), depth+1)
			}
			return ctx.equalTypes(subNN, p.Type(), depth+1)
		}
	}
	if subNN.Constructor().Kind() == types.KindIntersection {
		for _, m := range subNN.Constructor().Members() {
			if ctx.isSubtypeOf(m, superNN, depth+1) {
				return true
			}
		}
		return false
	}

	corresponding := ctx.findCorrespondingSupertype(subNN, superNN.Constructor())
	if corresponding == nil {
		return false
	}
	return ctx.checkArguments(corresponding.MakeNotNullable(), superNN, depth)
}

// findCorrespondingSupertype finds the nearest supertype of t (or t itself) with the given constructor.
func (ctx *CommonContext) findCorrespondingSupertype(t *types.Type, c *types.Constructor) *types.Type {
	visited := set.New[types.ConstructorKey](8)
	queue := []*types.Type{t}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next.Constructor().Equal(c) {
			return next
		}
		if !visited.Insert(next.Constructor().Key()) {
			continue
		}
		queue = append(queue, ctx.substitutedSupertypes(next)...)
	}
	return nil
}

// effectiveVariance is the variance of an argument seen through its parameter's declared variance.
// ok is false when the two conflict.
func effectiveVariance(declared, projection types.Variance) (v types.Variance, ok bool) {
	switch {
	case declared == types.Invariant:
		return projection, true
	case projection == types.Invariant || projection == declared:
		return declared, true
	}
	return types.Invariant, false
}

func (ctx *CommonContext) checkArguments(sub, super *types.Type, depth int) bool {
	subArgs, superArgs := sub.Arguments(), super.Arguments()
	if len(subArgs) != len(superArgs) {
		return len(superArgs) == 0
	}
	params := super.Constructor().Parameters()
	for i, b := range superArgs {
		if b.IsStar() {
			continue
		}
		declared := types.Invariant
		var param *types.TypeParameter
		if i < len(params) {
			param = params[i]
			declared = param.Variance()
		}
		eb, ok := effectiveVariance(declared, b.Kind())
		if !ok {
			continue
		}
		a := subArgs[i]
		ea, ok := effectiveVariance(declared, a.Kind())
		aStar := a.IsStar() || !ok
		aType := a.Type()
		if !ok && param != nil {
			aType = param.UpperBound()
		}

		switch eb {
		case types.Invariant:
			if aStar || ea != types.Invariant || !ctx.equalTypes(aType, b.Type(), depth+1) {
				return false
			}
		case types.Out:
			if !aStar && ea == types.In {
				aType = types.NullableAny()
				if param != nil {
					aType = param.UpperBound()
				}
			}
			if !ctx.isSubtypeOf(aType, b.Type(), depth+1) {
				return false
			}
		case types.In:
			if aStar || ea == types.Out {
				return false
			}
			if !ctx.isSubtypeOf(b.Type(), aType, depth+1) {
				return false
			}
		}
	}
	return true
}
