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

package types

import "sync/atomic"

// Declaration is a named declaration nested in an optional container.
type Declaration interface {
	Name() string
	Container() Declaration
}

// ModuleDescriptor is the root container of class declarations.
type ModuleDescriptor struct {
	name string
}

func NewModule(name string) *ModuleDescriptor { return &ModuleDescriptor{name: name} }

func (m *ModuleDescriptor) Name() string { return m.name }

func (m *ModuleDescriptor) Container() Declaration { return nil }

// ScopeFactory creates the member scope of a class instantiated with the given arguments.
type ScopeFactory func(args []Projection) MemberScope

// ClassDescriptor declares a class, interface or object.
type ClassDescriptor struct {
	fqName    FqName
	container Declaration
	outer     *ClassDescriptor
	params    []*TypeParameter
	ctor      *Constructor

	final, local, isError bool

	supertypes func() []*Type
	scope      ScopeFactory

	defaultType atomic.Pointer[Type]
}

// NewClass declares a class. The build function, if not nil, declares type parameters, supertypes
// and modifiers before the class is published.
func NewClass(container Declaration, name FqName, build func(*ClassBuilder)) *ClassDescriptor {
	c := &ClassDescriptor{fqName: name, container: container}
	c.ctor = newConstructor(KindClass, "")
	c.ctor.class = c
	if build != nil {
		build(&ClassBuilder{c})
	}
	return c
}

func (c *ClassDescriptor) Name() string { return c.fqName.ShortName() }

func (c *ClassDescriptor) FqName() FqName { return c.fqName }

func (c *ClassDescriptor) Container() Declaration { return c.container }

// Outer returns the class in which the class is nested, if any.
func (c *ClassDescriptor) Outer() *ClassDescriptor { return c.outer }

func (c *ClassDescriptor) Constructor() *Constructor { return c.ctor }

func (c *ClassDescriptor) Parameters() []*TypeParameter { return c.params }

func (c *ClassDescriptor) IsFinal() bool { return c.final }

func (c *ClassDescriptor) IsLocal() bool { return c.local }

func (c *ClassDescriptor) IsError() bool { return c.isError }

// DeclaredSupertypes returns the supertypes written in the declaration, without cycle checks.
func (c *ClassDescriptor) DeclaredSupertypes() []*Type {
	if c.supertypes == nil {
		return nil
	}
	return c.supertypes()
}

// MemberScope returns the scope of the class instantiated with the given arguments.
func (c *ClassDescriptor) MemberScope(args []Projection) MemberScope {
	if c.scope == nil {
		return EmptyScope
	}
	return c.scope(args)
}

// DefaultType returns the class applied to its own type parameters.
func (c *ClassDescriptor) DefaultType() *Type {
	if t := c.defaultType.Load(); t != nil {
		return t
	}
	args := make([]Projection, len(c.params))
	for i, p := range c.params {
		args[i] = NewProjection(Invariant, p.DefaultType())
	}
	c.defaultType.CompareAndSwap(nil, NewSimpleType(c.ctor, args, false))
	return c.defaultType.Load()
}

// ClassBuilder declares the parts of a class before it is published.
type ClassBuilder struct {
	c *ClassDescriptor
}

func (b *ClassBuilder) Class() *ClassDescriptor { return b.c }

// Param declares the next type parameter of the class.
func (b *ClassBuilder) Param(name string, variance Variance, upperBounds ...*Type) *TypeParameter {
	p := NewTypeParameter(b.c, name, len(b.c.params), variance, upperBounds...)
	b.c.params = append(b.c.params, p)
	return p
}

func (b *ClassBuilder) Final() { b.c.final = true }

func (b *ClassBuilder) Local() { b.c.local = true }

// NestedIn marks the class as nested in outer.
func (b *ClassBuilder) NestedIn(outer *ClassDescriptor) {
	b.c.outer = outer
	b.c.container = outer
}

// Supertypes declares the supertypes of the class.
func (b *ClassBuilder) Supertypes(ts ...*Type) {
	ts = append([]*Type(nil), ts...)
	b.c.supertypes = func() []*Type { return ts }
}

// LazySupertypes declares supertypes which are resolved on first use, for hierarchies which refer to
// classes declared later.
func (b *ClassBuilder) LazySupertypes(resolve func() []*Type) { b.c.supertypes = resolve }

func (b *ClassBuilder) Scope(f ScopeFactory) { b.c.scope = f }

// TypeParameter declares a type parameter of a class or function.
type TypeParameter struct {
	name     string
	index    int
	variance Variance
	owner    Declaration
	bounds   []*Type
	ctor     *Constructor
	def      *Type
}

// NewTypeParameter declares a type parameter. Without upper bounds the parameter is bounded by `Any?`.
func NewTypeParameter(owner Declaration, name string, index int, variance Variance, upperBounds ...*Type) *TypeParameter {
	p := &TypeParameter{name: name, index: index, variance: variance, owner: owner}
	p.bounds = append(p.bounds, upperBounds...)
	p.ctor = newConstructor(KindTypeParameter, name)
	p.ctor.param = p
	p.def = NewSimpleType(p.ctor, nil, false)
	return p
}

func (p *TypeParameter) Name() string { return p.name }

func (p *TypeParameter) Container() Declaration { return p.owner }

func (p *TypeParameter) Index() int { return p.index }

func (p *TypeParameter) Variance() Variance { return p.variance }

func (p *TypeParameter) Constructor() *Constructor { return p.ctor }

// DefaultType returns the type `T` of the parameter `T`.
func (p *TypeParameter) DefaultType() *Type { return p.def }

// AddUpperBound adds a bound to the parameter. Bounds may refer to the parameter itself, so they may be
// added after declaration; they must not change once the parameter is in use.
func (p *TypeParameter) AddUpperBound(t *Type) { p.bounds = append(p.bounds, t) }

// UpperBounds returns the declared upper bounds, or `Any?` if none were declared.
func (p *TypeParameter) UpperBounds() []*Type {
	if len(p.bounds) == 0 {
		return []*Type{NullableAny()}
	}
	return p.bounds
}

// UpperBound returns the first upper bound of the parameter.
func (p *TypeParameter) UpperBound() *Type { return p.UpperBounds()[0] }

func (p *TypeParameter) String() string {
	if p.variance == Invariant {
		return p.name
	}
	return p.variance.String() + " " + p.name
}
