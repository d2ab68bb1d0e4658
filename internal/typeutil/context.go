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
	"io"
	"log/slog"

	"github.com/wdamron/lattice/types"
)

const (
	DefaultMaxSubstitutionDepth = 100
	DefaultSupertypeDepthSlack  = 3
)

// Options configure the algorithms of a CommonContext.
type Options struct {
	// Maximum nesting of substitutions before a substitution fails with ErrRecursionTooDeep.
	MaxSubstitutionDepth int
	// Added to the deepest argument nesting of the inputs to bound the recursion of common supertypes.
	SupertypeDepthSlack int
	Logger              *slog.Logger
}

type StashedBinding struct {
	key   types.ConstructorKey
	prev  *types.Type
	bound bool
}

// CommonContext holds configuration and unifier state shared by the algorithms over types.
//
// A context cannot be used concurrently.
type CommonContext struct {
	Options

	Bindings     map[types.ConstructorKey]*types.Type // type-parameter bindings (during unification)
	BindingStash []StashedBinding                     // stashed bindings (during speculative unification)
	Speculate    bool

	// initial space:
	_bindingStash [32]StashedBinding
}

func (ctx *CommonContext) Init() {
	ctx.BindingStash, ctx.Bindings = ctx._bindingStash[:0], make(map[types.ConstructorKey]*types.Type, 16)
	if ctx.MaxSubstitutionDepth <= 0 {
		ctx.MaxSubstitutionDepth = DefaultMaxSubstitutionDepth
	}
	if ctx.SupertypeDepthSlack <= 0 {
		ctx.SupertypeDepthSlack = DefaultSupertypeDepthSlack
	}
	if ctx.Logger == nil {
		ctx.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// NewCommonContext creates an initialized context with the given options. Zero options take defaults.
func NewCommonContext(opts Options) *CommonContext {
	ctx := &CommonContext{Options: opts}
	ctx.Init()
	return ctx
}

func (ctx *CommonContext) Reset() {
	for i := range ctx._bindingStash {
		ctx._bindingStash[i] = StashedBinding{}
	}
	ctx.BindingStash, ctx.Speculate = ctx._bindingStash[:0], false
	ctx.ClearBindings()
}

func (ctx *CommonContext) ClearBindings() {
	for k := range ctx.Bindings {
		delete(ctx.Bindings, k)
	}
}

func (ctx *CommonContext) logger() *slog.Logger {
	if ctx.Logger == nil {
		ctx.Init()
	}
	return ctx.Logger
}

func (ctx *CommonContext) Bind(param *types.Constructor, t *types.Type) {
	key := param.Key()
	if ctx.Speculate {
		prev, bound := ctx.Bindings[key]
		ctx.BindingStash = append(ctx.BindingStash, StashedBinding{key, prev, bound})
	}
	ctx.Bindings[key] = t
}

func (ctx *CommonContext) UnstashBindings(count int) {
	if count <= 0 {
		return
	}
	stash := ctx.BindingStash
	for i := len(stash) - 1; i > len(stash)-1-count; i-- {
		if stash[i].bound {
			ctx.Bindings[stash[i].key] = stash[i].prev
		} else {
			delete(ctx.Bindings, stash[i].key)
		}
	}
}
