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

// substitutedSupertypes returns the supertypes of t's constructor with t's arguments substituted.
func (ctx *CommonContext) substitutedSupertypes(t *types.Type) []*types.Type {
	t = t.LowerBound()
	supers := t.Constructor().Supertypes()
	if len(supers) == 0 {
		return nil
	}
	sub := ctx.NewSubstitutor(types.TypeArgumentsSubstitution(t))
	result := make([]*types.Type, len(supers))
	for i, s := range supers {
		result[i] = sub.SafeSubstitute(s, types.Invariant)
	}
	return result
}

// ImmediateSupertypes returns the direct supertypes of t, substituted with t's arguments. Supertypes of a
// nullable type are nullable.
func (ctx *CommonContext) ImmediateSupertypes(t *types.Type) []*types.Type {
	supers := ctx.substitutedSupertypes(t)
	if t.IsMarkedNullable() {
		for i, s := range supers {
			supers[i] = s.MakeNullable()
		}
	}
	return supers
}

// AllSupertypes returns every transitive supertype of t, excluding t, in breadth-first order.
func (ctx *CommonContext) AllSupertypes(t *types.Type) []*types.Type {
	seen := types.NewTypeSet(t)
	queue := []*types.Type{t}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for _, s := range ctx.ImmediateSupertypes(next) {
			if seen.Insert(s) {
				queue = append(queue, s)
			}
		}
	}
	return seen.Slice()[1:]
}

// SupertypeInstances are the instantiations of one constructor found among the supertypes of some types.
type SupertypeInstances struct {
	Constructor *types.Constructor
	Instances   *types.TypeSet
}

// TopologicallySortSuperclasses visits the supertypes of t depth-first, recording every instantiation
// of each constructor in instances and every visited constructor in visited. The returned constructors
// are ordered so that each precedes its supertypes.
func (ctx *CommonContext) TopologicallySortSuperclasses(t *types.Type, instances map[types.ConstructorKey]*SupertypeInstances, visited *set.Set[types.ConstructorKey]) []*types.Constructor {
	var order []*types.Constructor
	var visit func(t *types.Type)
	visit = func(t *types.Type) {
		key := t.Constructor().Key()
		if !visited.Insert(key) {
			return
		}
		recorded := instances[key]
		if recorded == nil {
			recorded = &SupertypeInstances{Constructor: t.Constructor(), Instances: types.NewTypeSet()}
			instances[key] = recorded
		}
		recorded.Instances.Insert(t)
		for _, s := range ctx.substitutedSupertypes(t) {
			if !visited.Contains(s.Constructor().Key()) {
				visit(s)
			}
		}
		order = append(order, t.Constructor())
	}
	visit(t)
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// MaxNestingDepth returns the deepest nesting of type arguments among the types. A type without
// arguments has depth 1.
func MaxNestingDepth(ts []*types.Type) int {
	deepest := 0
	for _, t := range ts {
		deepest = max(deepest, nestingDepth(t))
	}
	return deepest
}

func nestingDepth(t *types.Type) int {
	if t.IsFlexible() {
		return max(nestingDepth(t.LowerBound()), nestingDepth(t.UpperBound()))
	}
	depth := 0
	for _, arg := range t.Arguments() {
		if arg.IsStar() {
			continue
		}
		depth = max(depth, nestingDepth(arg.Type()))
	}
	return depth + 1
}

// DependsOnTypeParameters reports whether t mentions any of the given type parameters.
func DependsOnTypeParameters(t *types.Type, params []*types.TypeParameter) bool {
	return TypeConstructorUsedInType(t, func(c *types.Constructor) bool {
		for _, p := range params {
			if c == p.Constructor() {
				return true
			}
		}
		return false
	})
}

// TypeConstructorUsedInType reports whether the constructor of t, or of any type nested in its
// arguments or flexible bounds, satisfies the predicate.
func TypeConstructorUsedInType(t *types.Type, pred func(*types.Constructor) bool) bool {
	if t.IsFlexible() {
		return TypeConstructorUsedInType(t.LowerBound(), pred) || TypeConstructorUsedInType(t.UpperBound(), pred)
	}
	if pred(t.Constructor()) {
		return true
	}
	for _, arg := range t.Arguments() {
		if !arg.IsStar() && TypeConstructorUsedInType(arg.Type(), pred) {
			return true
		}
	}
	return false
}
