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

// Projection is a type argument: a type with a projection kind, or a star projection standing for an
// unknown argument of a parameter.
type Projection struct {
	kind  Variance
	typ   *Type
	star  bool
	param *TypeParameter
}

// NewProjection creates a projection `kind T`.
func NewProjection(kind Variance, t *Type) Projection { return Projection{kind: kind, typ: t} }

// StarProjection creates a star projection for a parameter. The parameter may be nil, in which case the
// projection reads as `out Any?`.
func StarProjection(param *TypeParameter) Projection { return Projection{kind: Out, star: true, param: param} }

func (p Projection) IsStar() bool { return p.star }

// IsValid reports whether the projection is a star or carries a type.
func (p Projection) IsValid() bool { return p.star || p.typ != nil }

// Kind returns the projection kind. A star projection reads as `out`.
func (p Projection) Kind() Variance { return p.kind }

// Type returns the projected type. A star projection reads as the upper bound of its parameter.
func (p Projection) Type() *Type {
	if p.star {
		if p.param == nil {
			return NullableAny()
		}
		return p.param.UpperBound()
	}
	return p.typ
}

// Param returns the parameter of a star projection.
func (p Projection) Param() *TypeParameter { return p.param }

// WithType returns a projection of the same kind over another type.
func (p Projection) WithType(t *Type) Projection { return Projection{kind: p.kind, typ: t} }

// Equal reports whether two projections are equal. Star projections are equal when they project the
// same parameter.
func (p Projection) Equal(other Projection) bool {
	if p.star || other.star {
		return p.star == other.star && p.param == other.param
	}
	return p.kind == other.kind && p.typ.Equal(other.typ)
}

func (p Projection) Hash() uint64 {
	if p.star {
		return 0x2a2a2a2a
	}
	return p.typ.Hash()*31 + uint64(p.kind)
}

func (p Projection) String() string {
	if p.star {
		return "*"
	}
	if p.typ == nil {
		return "<absent>"
	}
	if p.kind == Invariant {
		return TypeString(p.typ)
	}
	return p.kind.String() + " " + TypeString(p.typ)
}
