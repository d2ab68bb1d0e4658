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

import (
	"strconv"
	"sync/atomic"
)

var nextConstructorId atomic.Uint64

func freshConstructorId() uint64 { return nextConstructorId.Add(1) }

// ConstructorKey is a comparable key which identifies a type constructor under its equality regime.
// Non-local classes are keyed by qualified name; all other constructors are keyed by identity.
type ConstructorKey struct {
	Kind Kind
	Name string
	Id   uint64
}

// Constructor is the head of a type: a class, a type parameter, or a synthetic constructor
// created for errors, intersections, captured projections or sentinels.
//
// Constructors are immutable after creation and may be shared across goroutines.
type Constructor struct {
	id    uint64
	kind  Kind
	label string

	class   *ClassDescriptor
	param   *TypeParameter
	params  []*TypeParameter
	members []*Type
	capture Projection
}

func newConstructor(kind Kind, label string) *Constructor {
	return &Constructor{id: freshConstructorId(), kind: kind, label: label}
}

// Id returns the unique, stable index of the constructor.
func (c *Constructor) Id() uint64 { return c.id }

func (c *Constructor) Kind() Kind { return c.kind }

// Class returns the declaring class, for class constructors.
func (c *Constructor) Class() *ClassDescriptor { return c.class }

// TypeParameter returns the declaring type parameter, for type-parameter and uninferred constructors.
func (c *Constructor) TypeParameter() *TypeParameter { return c.param }

// Captured returns the captured projection, for captured constructors.
func (c *Constructor) Captured() Projection { return c.capture }

// Members returns the member types, for intersection constructors.
func (c *Constructor) Members() []*Type { return c.members }

// Declaration returns the classifier which declared the constructor, if any.
func (c *Constructor) Declaration() Declaration {
	switch {
	case c.class != nil:
		return c.class
	case c.param != nil && c.kind == KindTypeParameter:
		return c.param
	}
	return nil
}

// Parameters returns the type parameters of the constructor; arguments of types built from the
// constructor correspond to these positionally.
func (c *Constructor) Parameters() []*TypeParameter {
	if c.class != nil {
		return c.class.params
	}
	return c.params
}

// IsFinal reports whether the constructor may not have subtypes other than itself.
func (c *Constructor) IsFinal() bool {
	if c.class != nil {
		return c.class.final
	}
	return false
}

// IsDenotable reports whether types with the constructor may be written in source.
func (c *Constructor) IsDenotable() bool {
	switch c.kind {
	case KindClass, KindTypeParameter, KindError:
		return true
	default:
		return false
	}
}

func (c *Constructor) comparesByName() bool {
	return c.kind == KindClass && !c.class.local && !c.class.isError
}

// Key returns a comparable key for the constructor.
func (c *Constructor) Key() ConstructorKey {
	if c.comparesByName() {
		return ConstructorKey{Kind: KindClass, Name: c.class.fqName.name}
	}
	return ConstructorKey{Kind: c.kind, Id: c.id}
}

// Equal reports whether two constructors are the same. Non-local classes are equal when their qualified
// names are equal; all other constructors are equal only to themselves.
func (c *Constructor) Equal(other *Constructor) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil || !c.comparesByName() || !other.comparesByName() {
		return false
	}
	return c.class.fqName.Equal(other.class.fqName)
}

// Hash returns a hash consistent with Equal.
func (c *Constructor) Hash() uint64 {
	if c.comparesByName() {
		return c.class.fqName.hash
	}
	// splitmix64 finalizer
	x := c.id + 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Supertypes returns the immediate supertypes of the constructor, unsubstituted. The result is computed
// once and memoized. Cyclic class hierarchies are broken with loop-in-supertypes error types.
func (c *Constructor) Supertypes() []*Type { return supertypesOf(c) }

func (c *Constructor) String() string {
	switch c.kind {
	case KindClass:
		return c.class.fqName.ShortName()
	case KindTypeParameter:
		return c.param.name
	case KindError, KindUninferred, KindSpecial:
		return c.label
	case KindIntersection:
		return intersectionString(c.members)
	case KindCaptured:
		return "Captured(" + c.capture.String() + ")"
	}
	return "<constructor " + strconv.FormatUint(c.id, 10) + ">"
}

// NewIntersectionConstructor creates a synthetic constructor whose supertypes are exactly the members.
func NewIntersectionConstructor(members []*Type) *Constructor {
	c := newConstructor(KindIntersection, "")
	c.members = append([]*Type(nil), members...)
	return c
}

// NewCapturedConstructor creates a synthetic constructor for a captured projection.
func NewCapturedConstructor(p Projection) *Constructor {
	c := newConstructor(KindCaptured, "")
	c.capture = p
	return c
}
