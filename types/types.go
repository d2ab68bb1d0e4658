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
	"encoding/binary"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/slices"
)

// FlexCapability tags the kind of a flexible type.
type FlexCapability uint8

const (
	// A type from a platform without nullability information, such as `String!`.
	FlexPlatform FlexCapability = iota + 1
	// A raw (unparameterized) platform type.
	FlexRaw
	// The dynamic type.
	FlexDynamic
)

func (c FlexCapability) String() string {
	switch c {
	case FlexPlatform:
		return "platform"
	case FlexRaw:
		return "raw"
	case FlexDynamic:
		return "dynamic"
	}
	return ""
}

type flexibility struct {
	lower, upper *Type
	capability   FlexCapability
}

// Type is an immutable type value: a constructor applied to projections, with nullability, annotations and
// optional flexible bounds. Types may be shared across goroutines.
//
// A flexible type behaves as its lower bound for constructor, arguments and nullability.
type Type struct {
	ctor        *Constructor
	args        []Projection
	nullable    bool
	annotations Annotations
	flex        *flexibility
	scope       MemberScope

	hash atomic.Uint64
}

// NewSimpleType creates a non-flexible type. Arguments are matched positionally with the parameters
// of the constructor.
func NewSimpleType(ctor *Constructor, args []Projection, nullable bool) *Type {
	return &Type{ctor: ctor, args: args, nullable: nullable, annotations: NoAnnotations}
}

// NewFlexibleType creates a flexible type ranging from lower to upper.
func NewFlexibleType(lower, upper *Type, capability FlexCapability) *Type {
	lower, upper = lower.LowerBound(), upper.UpperBound()
	t := lower.clone()
	t.flex = &flexibility{lower: lower, upper: upper, capability: capability}
	return t
}

func (t *Type) clone() *Type {
	return &Type{
		ctor:        t.ctor,
		args:        t.args,
		nullable:    t.nullable,
		annotations: t.annotations,
		flex:        t.flex,
		scope:       t.scope,
	}
}

func (t *Type) Constructor() *Constructor { return t.ctor }

// Arguments returns the type arguments. The returned slice must not be modified.
func (t *Type) Arguments() []Projection { return t.args }

// IsMarkedNullable reports whether the type carries the nullable marker.
func (t *Type) IsMarkedNullable() bool { return t.nullable }

// IsNullable reports whether null is a value of the type, including through flexible bounds and
// nullable upper bounds of type parameters.
func (t *Type) IsNullable() bool {
	if t.nullable {
		return true
	}
	if t.flex != nil {
		return t.flex.upper.IsNullable()
	}
	switch t.ctor.kind {
	case KindTypeParameter:
		for _, bound := range t.ctor.param.UpperBounds() {
			if bound.IsNullable() {
				return true
			}
		}
	case KindIntersection:
		for _, m := range t.ctor.members {
			if !m.IsNullable() {
				return false
			}
		}
		return true
	case KindCaptured:
		p := t.ctor.capture
		return p.Kind() != Out || p.Type().IsNullable()
	}
	return false
}

func (t *Type) Annotations() Annotations { return t.annotations }

func (t *Type) IsFlexible() bool { return t.flex != nil }

// FlexCapability returns the capability of a flexible type, or zero.
func (t *Type) FlexCapability() FlexCapability {
	if t.flex == nil {
		return 0
	}
	return t.flex.capability
}

// LowerBound returns the lower bound of a flexible type, or the type itself.
func (t *Type) LowerBound() *Type {
	if t.flex == nil {
		return t
	}
	return t.flex.lower
}

// UpperBound returns the upper bound of a flexible type, or the type itself.
func (t *Type) UpperBound() *Type {
	if t.flex == nil {
		return t
	}
	return t.flex.upper
}

// IsError reports whether the type is an error type (including uninferred parameter types).
func (t *Type) IsError() bool { return t.ctor.kind.IsError() }

// IsDynamic reports whether the type is the dynamic type.
func (t *Type) IsDynamic() bool { return t.FlexCapability() == FlexDynamic }

// MemberScope returns the scope of members which may be looked up on values of the type.
func (t *Type) MemberScope() MemberScope {
	if t.scope != nil {
		return t.scope
	}
	switch t.ctor.kind {
	case KindClass:
		return t.ctor.class.MemberScope(t.args)
	case KindTypeParameter:
		bounds := t.ctor.param.UpperBounds()
		scopes := make([]MemberScope, len(bounds))
		for i, b := range bounds {
			scopes[i] = b.MemberScope()
		}
		return NewChainedScope("upper bounds of "+t.ctor.param.name, scopes...)
	case KindIntersection:
		scopes := make([]MemberScope, len(t.ctor.members))
		for i, m := range t.ctor.members {
			scopes[i] = m.MemberScope()
		}
		return NewChainedScope("member scope for intersection type "+t.ctor.String(), scopes...)
	case KindError, KindUninferred:
		return CreateErrorScope(t.ctor.label, false)
	case KindSpecial:
		return CreateErrorScope(t.ctor.label, true)
	}
	return EmptyScope
}

// WithScope returns a copy of the type with an explicit member scope.
func (t *Type) WithScope(scope MemberScope) *Type {
	c := t.clone()
	c.scope = scope
	return c
}

// WithAnnotations returns a copy of the type with replaced annotations.
func (t *Type) WithAnnotations(annotations Annotations) *Type {
	if t.annotations.Equal(annotations) {
		return t
	}
	c := t.clone()
	c.annotations = annotations
	return c
}

// WithArguments returns a copy of a non-flexible type with replaced arguments.
func (t *Type) WithArguments(args []Projection) *Type {
	if slices.EqualFunc(t.args, args, projectionsIdentical) {
		return t
	}
	c := t.clone()
	c.args, c.scope = args, nil
	return c
}

func projectionsIdentical(a, b Projection) bool {
	return a.star == b.star && a.kind == b.kind && a.typ == b.typ && a.param == b.param
}

// MakeNullableAsSpecified returns the type with the nullable marker set or cleared. Flexible types
// update both bounds.
func (t *Type) MakeNullableAsSpecified(nullable bool) *Type {
	if t.flex != nil {
		lower := t.flex.lower.MakeNullableAsSpecified(nullable)
		upper := t.flex.upper.MakeNullableAsSpecified(nullable)
		if lower == t.flex.lower && upper == t.flex.upper {
			return t
		}
		return NewFlexibleType(lower, upper, t.flex.capability)
	}
	if t.nullable == nullable {
		return t
	}
	c := t.clone()
	c.nullable = nullable
	return c
}

func (t *Type) MakeNullable() *Type { return t.MakeNullableAsSpecified(true) }

func (t *Type) MakeNotNullable() *Type { return t.MakeNullableAsSpecified(false) }

// Equal reports whether two types are structurally equal. Annotations do not participate.
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if (t.flex == nil) != (other.flex == nil) {
		return false
	}
	if t.flex != nil {
		return t.flex.capability == other.flex.capability &&
			t.flex.lower.Equal(other.flex.lower) && t.flex.upper.Equal(other.flex.upper)
	}
	if t.nullable != other.nullable || !t.ctor.Equal(other.ctor) {
		return false
	}
	return slices.EqualFunc(t.args, other.args, Projection.Equal)
}

// Hash returns a hash consistent with Equal. The hash is computed once; concurrent first calls compute
// the same value.
func (t *Type) Hash() uint64 {
	if h := t.hash.Load(); h != 0 {
		return h
	}
	d := xxhash.New()
	t.writeHash(d)
	h := d.Sum64()
	if h == 0 {
		h = 1
	}
	t.hash.Store(h)
	return h
}

func (t *Type) writeHash(d *xxhash.Digest) {
	var buf [9]byte
	if t.flex != nil {
		buf[0] = byte(t.flex.capability)
		d.Write(buf[:1])
		binary.LittleEndian.PutUint64(buf[:8], t.flex.lower.Hash())
		d.Write(buf[:8])
		binary.LittleEndian.PutUint64(buf[:8], t.flex.upper.Hash())
		d.Write(buf[:8])
		return
	}
	binary.LittleEndian.PutUint64(buf[:8], t.ctor.Hash())
	if t.nullable {
		buf[8] = 1
	}
	d.Write(buf[:])
	for _, arg := range t.args {
		binary.LittleEndian.PutUint64(buf[:8], arg.Hash())
		d.Write(buf[:8])
	}
}

func (t *Type) String() string { return TypeString(t) }
