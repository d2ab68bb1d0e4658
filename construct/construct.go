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

package construct

import (
	"github.com/wdamron/lattice/types"
)

// Projections

// Invariant projection: `T`
func Inv(t *types.Type) types.Projection { return types.NewProjection(types.Invariant, t) }

// Covariant projection: `out T`
func Out(t *types.Type) types.Projection { return types.NewProjection(types.Out, t) }

// Contravariant projection: `in T`
func In(t *types.Type) types.Projection { return types.NewProjection(types.In, t) }

// Star projection for a parameter: `*`
func Star(param *types.TypeParameter) types.Projection { return types.StarProjection(param) }

// Types

// Class application: `List<out Int>`
func Apply(class *types.ClassDescriptor, args ...types.Projection) *types.Type {
	return types.NewSimpleType(class.Constructor(), args, false)
}

// Class application with invariant arguments: `Map<String, Int>`
func ApplyInv(class *types.ClassDescriptor, args ...*types.Type) *types.Type {
	projections := make([]types.Projection, len(args))
	for i, t := range args {
		projections[i] = Inv(t)
	}
	return Apply(class, projections...)
}

// Class application with star projections for every parameter: `Map<*, *>`
func ApplyStars(class *types.ClassDescriptor) *types.Type {
	params := class.Parameters()
	projections := make([]types.Projection, len(params))
	for i, p := range params {
		projections[i] = Star(p)
	}
	return Apply(class, projections...)
}

// Type parameter use: `T`
func Param(p *types.TypeParameter) *types.Type { return p.DefaultType() }

// Nullable type: `T?`
func Nullable(t *types.Type) *types.Type { return t.MakeNullable() }

// Platform type: `T!`
func Platform(t *types.Type) *types.Type {
	return types.NewFlexibleType(t.MakeNotNullable(), t.MakeNullable(), types.FlexPlatform)
}

// Flexible type: `(L..U)`
func Flexible(lower, upper *types.Type) *types.Type {
	return types.NewFlexibleType(lower, upper, types.FlexPlatform)
}

// Annotated type: `@A T`
func Annotated(t *types.Type, annotations ...string) *types.Type {
	list := make([]types.Annotation, len(annotations))
	for i, name := range annotations {
		list[i] = types.Annotation{Name: name}
	}
	return t.WithAnnotations(t.Annotations().Union(types.NewAnnotations(list...)))
}
