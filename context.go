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
	"log/slog"

	"github.com/wdamron/lattice/internal/typeutil"
	"github.com/wdamron/lattice/types"
)

// Context is a reusable context for computing over types.
//
// A context cannot be used concurrently; create a context for each goroutine. Types and type-environments
// which are no longer being declared into may be shared.
type Context struct {
	common *typeutil.CommonContext
}

// Create a new context with default options: a substitution depth limit of 100, a common-supertype
// depth slack of 3, and no logging.
func NewContext() *Context {
	return &Context{common: typeutil.NewCommonContext(typeutil.Options{})}
}

// Set the maximum nesting of substitutions before a substitution fails with ErrRecursionTooDeep.
func (ctx *Context) SetMaxSubstitutionDepth(depth int) {
	if depth <= 0 {
		depth = typeutil.DefaultMaxSubstitutionDepth
	}
	ctx.common.MaxSubstitutionDepth = depth
}

// Set the slack added to the deepest argument nesting of the inputs of CommonSupertype, which bounds the
// recursion through self-referential generic supertypes.
func (ctx *Context) SetSupertypeDepthSlack(slack int) {
	if slack <= 0 {
		slack = typeutil.DefaultSupertypeDepthSlack
	}
	ctx.common.SupertypeDepthSlack = slack
}

// Set the logger for debug events, such as failed substitutions and widened arguments.
func (ctx *Context) SetLogger(logger *slog.Logger) {
	if logger == nil {
		ctx.common.Logger = nil
		ctx.common.Init()
		return
	}
	ctx.common.Logger = logger.With("section", "lattice")
}

// CommonSupertype computes the least common supertype of a non-empty list of types.
//
// Nothing types contribute only their nullability; any error type makes the result an error type.
// Arguments which cannot be reconciled exactly are widened to projections of the parameter's upper bound.
func (ctx *Context) CommonSupertype(ts ...*types.Type) *types.Type {
	return ctx.common.CommonSupertype(ts)
}

// CommonSupertypeForNonDenotableTypes is like CommonSupertype, but a single intersection type is replaced by
// the common supertype of its members.
func (ctx *Context) CommonSupertypeForNonDenotableTypes(ts ...*types.Type) *types.Type {
	return ctx.common.CommonSupertypeForNonDenotableTypes(ts)
}

// IntersectTypes computes the greatest common subtype of the types. It returns nil if the intersection
// is provably empty. An empty list yields `Any?`.
func (ctx *Context) IntersectTypes(ts ...*types.Type) *types.Type {
	ctx.common.ClearBindings()
	return ctx.common.IntersectTypes(ts)
}

// IsIntersectionEmpty reports whether no value can belong to both types.
func (ctx *Context) IsIntersectionEmpty(a, b *types.Type) bool {
	ctx.common.ClearBindings()
	return ctx.common.IsIntersectionEmpty(a, b)
}

func (ctx *Context) IsSubtypeOf(sub, super *types.Type) bool { return ctx.common.IsSubtypeOf(sub, super) }

func (ctx *Context) EqualTypes(a, b *types.Type) bool { return ctx.common.EqualTypes(a, b) }

// CanHaveSubtypes reports whether a type other than t may be a subtype of t.
func (ctx *Context) CanHaveSubtypes(t *types.Type) bool { return ctx.common.CanHaveSubtypes(t) }

// MayBeEqual reports whether a and b could denote the same type for some choice of the type parameters
// mentioned in either.
func (ctx *Context) MayBeEqual(a, b *types.Type) bool {
	ctx.common.ClearBindings()
	return ctx.common.MayBeEqual(a, b)
}

// Create a substitutor which applies the substitution with the context's depth limit and logger.
func (ctx *Context) NewSubstitutor(s types.Substitution) *Substitutor {
	return ctx.common.NewSubstitutor(s)
}

// ImmediateSupertypes returns the direct supertypes of t, with t's arguments substituted.
func (ctx *Context) ImmediateSupertypes(t *types.Type) []*types.Type {
	return ctx.common.ImmediateSupertypes(t)
}

// AllSupertypes returns every transitive supertype of t, excluding t.
func (ctx *Context) AllSupertypes(t *types.Type) []*types.Type { return ctx.common.AllSupertypes(t) }

// CaptureFromArguments replaces the projected arguments of t with captured types.
func (ctx *Context) CaptureFromArguments(t *types.Type) *types.Type {
	return typeutil.CaptureFromArguments(t)
}

// ApproximateCapturedTypes returns the closest types below and above t which contain no captured types.
func (ctx *Context) ApproximateCapturedTypes(t *types.Type) (lower, upper *types.Type) {
	return typeutil.ApproximateCapturedTypes(t)
}
