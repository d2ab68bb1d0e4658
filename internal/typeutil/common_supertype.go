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
	"github.com/samber/lo"

	"github.com/wdamron/lattice/types"
)

// CommonSupertype computes the least common supertype of a non-empty list of types. The result is exact
// where the hierarchy permits; generic arguments which cannot be reconciled are widened, and recursion
// through self-referential generic supertypes is bounded by the deepest argument nesting of the inputs
// plus the configured slack.
func (ctx *CommonContext) CommonSupertype(ts []*types.Type) *types.Type {
	if len(ts) == 0 {
		return types.CreateErrorType("Common supertype of an empty list of types")
	}
	return ctx.commonSupertype(ts, 0, MaxNestingDepth(ts)+ctx.SupertypeDepthSlack)
}

// CommonSupertypeForNonDenotableTypes is like CommonSupertype, but a single intersection type is replaced
// by the common supertype of its members and a single captured type by its upper approximation.
func (ctx *CommonContext) CommonSupertypeForNonDenotableTypes(ts []*types.Type) *types.Type {
	if len(ts) == 1 {
		t := ts[0]
		switch t.Constructor().Kind() {
		case types.KindIntersection:
			return ctx.CommonSupertypeForNonDenotableTypes(t.Constructor().Members())
		case types.KindCaptured:
			_, upper := ApproximateCapturedTypes(t)
			return upper
		}
	}
	return ctx.CommonSupertype(ts)
}

func (ctx *CommonContext) commonSupertype(ts []*types.Type, depth, maxDepth int) *types.Type {
	if rep := ctx.singleBestRepresentative(ts, true); rep != nil {
		return rep
	}
	if lo.SomeBy(ts, (*types.Type).IsFlexible) {
		return ctx.commonFlexibleSupertype(ts, depth, maxDepth)
	}
	return ctx.commonRigidSupertype(ts, depth, maxDepth)
}

// singleBestRepresentative returns a type which equals every other type, treating flexible types as equal
// to the types within their bounds, or nil if there is none. When several types qualify, flexible types
// are preferred if preferFlexible is set and rigid types otherwise; remaining ties go to the least
// qualified rendering, so the choice does not depend on the order of ts.
func (ctx *CommonContext) singleBestRepresentative(ts []*types.Type, preferFlexible bool) *types.Type {
	if len(ts) == 1 {
		return ts[0]
	}
	candidates := lo.Filter(ts, func(candidate *types.Type, _ int) bool {
		return lo.EveryBy(ts, func(other *types.Type) bool {
			return candidate.Equal(other) || ((candidate.IsFlexible() || other.IsFlexible()) && ctx.EqualTypes(candidate, other))
		})
	})
	if len(candidates) == 0 {
		return nil
	}
	return lo.MinBy(candidates, func(a, b *types.Type) bool { return representativeLess(a, b, preferFlexible) })
}

func representativeLess(a, b *types.Type, preferFlexible bool) bool {
	if a.IsFlexible() != b.IsFlexible() {
		return a.IsFlexible() == preferFlexible
	}
	return types.QualifiedTypeString(a) < types.QualifiedTypeString(b)
}

func (ctx *CommonContext) commonFlexibleSupertype(ts []*types.Type, depth, maxDepth int) *types.Type {
	var capability types.FlexCapability
	for _, t := range ts {
		if !t.IsFlexible() {
			continue
		}
		if capability == 0 {
			capability = t.FlexCapability()
		} else if capability != t.FlexCapability() {
			panic("typeutil: common supertype of flexible types with different capabilities: " +
				capability.String() + " and " + t.FlexCapability().String())
		}
	}
	lowers := lo.Map(ts, func(t *types.Type, _ int) *types.Type { return t.LowerBound() })
	uppers := lo.Map(ts, func(t *types.Type, _ int) *types.Type { return t.UpperBound() })
	lower := ctx.commonRigidSupertype(lowers, depth, maxDepth)
	upper := ctx.commonRigidSupertype(uppers, depth, maxDepth)
	return types.NewFlexibleType(lower, upper, capability)
}

func (ctx *CommonContext) commonRigidSupertype(ts []*types.Type, depth, maxDepth int) *types.Type {
	nullable := false
	distinct := types.NewTypeSet()
	for _, t := range ts {
		if t.IsError() {
			return types.CreateErrorType("Supertype of error type " + types.TypeString(t))
		}
		nullable = nullable || t.IsMarkedNullable()
		if types.IsNothing(t) {
			continue
		}
		distinct.Insert(t)
	}

	switch distinct.Len() {
	case 0:
		return types.Nothing().MakeNullableAsSpecified(nullable)
	case 1:
		return makeNullableIfNeeded(distinct.Slice()[0], nullable)
	}

	common := ctx.commonRawSupertypes(distinct.Slice())
	for len(common) > 1 {
		merged := types.NewTypeSet()
		for _, c := range common {
			for _, t := range c.Instances.Slice() {
				merged.Insert(t)
			}
		}
		common = ctx.commonRawSupertypes(merged.Slice())
	}
	if len(common) == 0 {
		ctx.logger().Debug("no common supertype constructor, falling back to Any", "types", types.TypeStrings(ts))
		return types.Any().MakeNullableAsSpecified(nullable)
	}

	result := ctx.supertypeWithProjections(common[0], depth, maxDepth)
	return makeNullableIfNeeded(result, nullable)
}

func makeNullableIfNeeded(t *types.Type, nullable bool) *types.Type {
	if nullable {
		return t.MakeNullable()
	}
	return t
}

// commonRawSupertypes finds the constructors shared by the supertypes of all the types which are not
// supertypes of another shared constructor, with every instantiation of each.
func (ctx *CommonContext) commonRawSupertypes(ts []*types.Type) []*SupertypeInstances {
	instances := make(map[types.ConstructorKey]*SupertypeInstances)
	var (
		common *set.Set[types.ConstructorKey]
		order  []*types.Constructor
	)
	for _, t := range ts {
		visited := set.New[types.ConstructorKey](8)
		order = ctx.TopologicallySortSuperclasses(t, instances, visited)
		if common == nil {
			common = visited
			continue
		}
		for _, key := range common.Slice() {
			if !visited.Contains(key) {
				common.Remove(key)
			}
		}
	}

	notSource := set.New[types.ConstructorKey](len(order))
	var result []*SupertypeInstances
	for _, c := range order {
		key := c.Key()
		if !common.Contains(key) || notSource.Contains(key) {
			continue
		}
		result = append(result, instances[key])
		markAll(c, notSource)
	}
	return result
}

func markAll(c *types.Constructor, marked *set.Set[types.ConstructorKey]) {
	if !marked.Insert(c.Key()) {
		return
	}
	for _, s := range c.Supertypes() {
		markAll(s.Constructor(), marked)
	}
}

func (ctx *CommonContext) supertypeWithProjections(common *SupertypeInstances, depth, maxDepth int) *types.Type {
	instances := common.Instances.Slice()
	if len(instances) == 1 {
		return instances[0]
	}
	params := common.Constructor.Parameters()
	args := make([]types.Projection, len(params))
	for i, param := range params {
		var projections []types.Projection
		for _, t := range instances {
			p := types.StarProjection(param)
			if i < len(t.Arguments()) {
				p = t.Arguments()[i]
			}
			if !lo.ContainsBy(projections, p.Equal) {
				projections = append(projections, p)
			}
		}
		args[i] = ctx.commonSupertypeProjection(param, projections, depth, maxDepth)
	}
	nullable := lo.SomeBy(instances, (*types.Type).IsMarkedNullable)
	return types.NewSimpleType(common.Constructor, args, nullable)
}

// commonSupertypeProjection reconciles the arguments given to one parameter by several instantiations.
func (ctx *CommonContext) commonSupertypeProjection(param *types.TypeParameter, projections []types.Projection, depth, maxDepth int) types.Projection {
	if rep := ctx.singleBestProjection(projections); rep != nil {
		return *rep
	}
	if depth >= maxDepth {
		ctx.logger().Debug("common supertype recursion limit reached", "parameter", param.Name(), "depth", depth)
		return types.NewProjection(types.Out, types.NullableAny())
	}

	declared := param.Variance()
	var ins, outs *types.TypeSet
	if declared != types.In {
		outs = types.NewTypeSet()
	}
	if declared != types.Out {
		ins = types.NewTypeSet()
	}
	for _, p := range projections {
		if p.Kind().AllowsOutPosition() {
			if outs != nil {
				outs.Insert(p.Type())
			}
		} else {
			outs = nil
		}
		if p.Kind().AllowsInPosition() && !p.IsStar() {
			if ins != nil {
				ins.Insert(p.Type())
			}
		} else {
			ins = nil
		}
	}

	if outs != nil {
		kind := types.Out
		if declared == types.Out {
			kind = types.Invariant
		}
		super := ctx.commonSupertype(outs.Slice(), depth+1, maxDepth)
		for _, bound := range param.UpperBounds() {
			if !ctx.IsSubtypeOf(super, bound) {
				return ctx.upperBoundProjection(param)
			}
		}
		return types.NewProjection(kind, super)
	}
	if ins != nil {
		intersection := ctx.IntersectTypes(ins.Slice())
		if intersection == nil {
			return ctx.upperBoundProjection(param)
		}
		kind := types.In
		if declared == types.In {
			kind = types.Invariant
		}
		return types.NewProjection(kind, intersection)
	}
	return ctx.upperBoundProjection(param)
}

func (ctx *CommonContext) singleBestProjection(projections []types.Projection) *types.Projection {
	if len(projections) == 1 {
		return &projections[0]
	}
	best := -1
	for i, candidate := range projections {
		if candidate.IsStar() {
			continue
		}
		if !lo.EveryBy(projections, func(other types.Projection) bool {
			if candidate.Equal(other) {
				return true
			}
			return !other.IsStar() && candidate.Kind() == other.Kind() &&
				(candidate.Type().IsFlexible() || other.Type().IsFlexible()) && ctx.EqualTypes(candidate.Type(), other.Type())
		}) {
			continue
		}
		if best < 0 || representativeLess(candidate.Type(), projections[best].Type(), true) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return &projections[best]
}

// upperBoundProjection projects the upper bound of a parameter `out`, or invariantly for a parameter
// declared `out`.
func (ctx *CommonContext) upperBoundProjection(param *types.TypeParameter) types.Projection {
	bounds := param.UpperBounds()
	bound := bounds[0]
	if len(bounds) > 1 {
		if bound = ctx.IntersectTypes(bounds); bound == nil {
			bound = types.NullableAny()
		}
	}
	if param.Variance() == types.Out {
		return types.NewProjection(types.Invariant, bound)
	}
	return types.NewProjection(types.Out, bound)
}
