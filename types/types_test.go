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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClass(name string, build func(*ClassBuilder)) *ClassDescriptor {
	return NewClass(NewModule("test"), MustParseFqName(name), build)
}

func inv(t *Type) Projection { return NewProjection(Invariant, t) }

func TestCombineVariance(t *testing.T) {
	assert.Equal(t, Out, Combine(Invariant, Out))
	assert.Equal(t, In, Combine(In, Invariant))
	assert.Equal(t, Out, Combine(Out, Out))
	assert.Panics(t, func() { Combine(In, Out) })

	assert.Equal(t, Out, In.Superpose(In))
	assert.Equal(t, In, Out.Superpose(In))
	assert.Equal(t, Invariant, Invariant.Superpose(Out))
	assert.True(t, Invariant.AllowsInPosition() && Invariant.AllowsOutPosition())
	assert.False(t, Out.AllowsInPosition())
	assert.False(t, In.AllowsOutPosition())
}

func TestFqName(t *testing.T) {
	for _, valid := range []string{"a", "lang.List", "_x.y1", "é.ü"} {
		if _, err := ParseFqName(valid); err != nil {
			t.Fatalf("expected %q to be valid: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", ".", "a..b", "1a", "a.b-c", "a."} {
		if _, err := ParseFqName(invalid); err != ErrInvalidName {
			t.Fatalf("expected %q to be invalid", invalid)
		}
	}
	name := MustParseFqName("lang.collections.List")
	assert.Equal(t, "List", name.ShortName())
	assert.Equal(t, "lang.collections", name.Parent().String())
	assert.True(t, name.Parent().Child("List").Equal(name))
	assert.Equal(t, name.Hash(), MustParseFqName("lang.collections.List").Hash())
	assert.True(t, MustParseFqName("x").Parent().IsRoot())
}

func TestTypeEquality(t *testing.T) {
	box1 := newTestClass("test.Box", func(b *ClassBuilder) { b.Param("T", Out) })
	box2 := newTestClass("test.Box", func(b *ClassBuilder) { b.Param("T", Out) })
	str := newTestClass("test.Str", nil).DefaultType()

	a := NewSimpleType(box1.Constructor(), []Projection{inv(str)}, false)
	b := NewSimpleType(box2.Constructor(), []Projection{inv(str)}, false)
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())

	assert.False(t, a.Equal(a.MakeNullable()))
	assert.True(t, a.MakeNullable().MakeNotNullable().Equal(a))
	assert.Same(t, a, a.MakeNotNullable())
	assert.False(t, a.Equal(NewSimpleType(box1.Constructor(), []Projection{NewProjection(Out, str)}, false)))

	annotated := a.WithAnnotations(NewAnnotations(Annotation{Name: "test.Marker"}))
	assert.True(t, annotated.Equal(a))
	assert.Equal(t, a.Hash(), annotated.Hash())

	p1 := NewTypeParameter(nil, "T", 0, Invariant)
	p2 := NewTypeParameter(nil, "T", 0, Invariant)
	assert.False(t, p1.DefaultType().Equal(p2.DefaultType()))
	assert.True(t, p1.DefaultType().Equal(p1.DefaultType()))

	e1, e2 := CreateErrorType("x"), CreateErrorType("x")
	assert.False(t, e1.Equal(e2))
	assert.Equal(t, e1.Constructor().Key(), e1.Constructor().Key())
	assert.NotEqual(t, e1.Constructor().Key(), e2.Constructor().Key())
}

func TestFlexibleTypes(t *testing.T) {
	str := newTestClass("test.Str", nil).DefaultType()
	platform := NewFlexibleType(str, str.MakeNullable(), FlexPlatform)

	assert.True(t, platform.IsFlexible())
	assert.False(t, platform.IsMarkedNullable())
	assert.True(t, platform.IsNullable())
	assert.Equal(t, "Str!", TypeString(platform))
	assert.Equal(t, "(Str?..Str?)", TypeString(platform.MakeNullable()))
	assert.False(t, platform.Equal(str))

	raw := NewFlexibleType(str, NullableAny(), FlexRaw)
	assert.Equal(t, "(Str..Any?)", TypeString(raw))
	assert.Equal(t, "dynamic", TypeString(Dynamic()))
	assert.True(t, Dynamic().IsDynamic())
	assert.True(t, IsNothing(Dynamic().LowerBound()))
	assert.True(t, IsNullableAny(Dynamic().UpperBound()))
}

func TestPrinting(t *testing.T) {
	box := newTestClass("test.Box", func(b *ClassBuilder) { b.Param("T", Out) })
	str := newTestClass("test.Str", nil).DefaultType()
	param := box.Parameters()[0]

	cases := []struct {
		t        *Type
		expected string
	}{
		{NewSimpleType(box.Constructor(), []Projection{inv(str)}, true), "Box<Str>?"},
		{NewSimpleType(box.Constructor(), []Projection{NewProjection(In, str)}, false), "Box<in Str>"},
		{NewSimpleType(box.Constructor(), []Projection{StarProjection(param)}, false), "Box<*>"},
		{box.DefaultType(), "Box<T>"},
		{NewSimpleType(NewIntersectionConstructor([]*Type{str, Any()}), nil, false), "{Str & Any}"},
		{NewSimpleType(NewCapturedConstructor(NewProjection(Out, str)), nil, false), "Captured(out Str)"},
		{CreateErrorType("boom"), "[ERROR : boom]"},
		{DontCare(), "DONT_CARE"},
		{nil, "<nil>"},
	}
	for _, c := range cases {
		if s := TypeString(c.t); s != c.expected {
			t.Fatalf("expected %s, found %s", c.expected, s)
		}
	}
	assert.Equal(t, "test.Box<test.Str>", QualifiedTypeString(NewSimpleType(box.Constructor(), []Projection{inv(str)}, false)))
}

func TestStarProjection(t *testing.T) {
	bound := newTestClass("test.Bound", nil).DefaultType()
	box := newTestClass("test.Box", func(b *ClassBuilder) { b.Param("T", Invariant, bound) })
	param := box.Parameters()[0]

	star := StarProjection(param)
	assert.True(t, star.IsStar())
	assert.Equal(t, Out, star.Kind())
	assert.Same(t, bound, star.Type())
	assert.True(t, IsNullableAny(StarProjection(nil).Type()))
	assert.True(t, star.Equal(StarProjection(param)))
	assert.False(t, star.Equal(StarProjection(NewTypeParameter(nil, "T", 0, Invariant))))
	assert.False(t, Projection{}.IsValid())
}

func TestSentinels(t *testing.T) {
	for _, e := range []*Type{DontCare(), CantInferTypeParameter(), PlaceholderFunctionType(), CantInferLambdaParamType()} {
		assert.True(t, e.IsError(), TypeString(e))
		assert.True(t, IsErrorScope(e.MemberScope()))
	}
	assert.Same(t, DontCare(), DontCare())

	assert.True(t, IsSpecialType(NoExpectedType()))
	assert.False(t, NoExpectedType().IsError())
	assert.Panics(t, func() { UnitExpectedType().MemberScope().Names() })

	assert.True(t, IsErrorDeclaration(ErrorClass()))
	assert.True(t, IsErrorDeclaration(ErrorModule()))
	assert.False(t, IsErrorDeclaration(AnyClass()))

	param := NewTypeParameter(nil, "T", 0, Invariant)
	uninferred := CreateUninferredParameterType(param)
	assert.True(t, uninferred.IsError())
	p, ok := UninferredParameter(uninferred)
	assert.True(t, ok)
	assert.Same(t, param, p)

	box := newTestClass("test.Box", func(b *ClassBuilder) { b.Param("T", Out) })
	assert.True(t, ContainsErrorType(NewSimpleType(box.Constructor(), []Projection{inv(CreateErrorType("x"))}, false)))
	assert.False(t, ContainsErrorType(box.DefaultType()))
}

func TestAnnotations(t *testing.T) {
	a := NewAnnotations(Annotation{Name: "b"}, Annotation{Name: "a", Arguments: []string{"1"}})
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, "@a(1) @b ", a.String())

	withC := a.Union(NewAnnotations(Annotation{Name: "c"}))
	assert.Equal(t, 3, withC.Len())
	assert.Equal(t, 2, a.Len())

	withoutA := withC.Without("a")
	assert.False(t, withoutA.Has("a"))
	assert.True(t, withoutA.Has("c"))
	assert.True(t, withC.Without("missing").Equal(withC))

	onlyB := withC.Filter(func(ann Annotation) bool { return ann.Name == "b" })
	assert.True(t, onlyB.Equal(NewAnnotations(Annotation{Name: "b"})))
	assert.True(t, NoAnnotations.IsEmpty())
	assert.True(t, Annotations{}.Equal(NoAnnotations))
}

func TestTypeSet(t *testing.T) {
	str := newTestClass("test.Str", nil).DefaultType()
	other := newTestClass("test.Str", nil).DefaultType()
	s := NewTypeSet(str, other, Any(), str.MakeNullable())
	assert.Equal(t, 3, s.Len())
	assert.Same(t, str, s.Slice()[0])
	assert.True(t, s.Contains(other))
	assert.False(t, s.Insert(Any()))
}

func TestSubstitutionCombinators(t *testing.T) {
	str := newTestClass("test.Str", nil).DefaultType()
	p1 := NewTypeParameter(nil, "A", 0, Invariant)
	p2 := NewTypeParameter(nil, "B", 1, Invariant)

	s1 := NewParameterSubstitution(map[*TypeParameter]Projection{p1: inv(str)})
	s2 := NewParameterSubstitution(map[*TypeParameter]Projection{p2: inv(Any())})
	overlap := NewParameterSubstitution(map[*TypeParameter]Projection{p1: inv(Any())})

	assert.True(t, EmptySubstitution.IsEmpty())
	assert.Equal(t, Substitution(s1), Chain(EmptySubstitution, s1))

	chained := Chain(overlap, s1)
	got, ok := chained.Get(p1.Constructor())
	require.True(t, ok)
	assert.True(t, IsAny(got.Type()))

	union := DisjointUnion(s1, s2)
	got, ok = union.Get(p2.Constructor())
	require.True(t, ok)
	assert.True(t, IsAny(got.Type()))
	assert.Panics(t, func() { DisjointUnion(s1, overlap).Get(p1.Constructor()) })

	composite := Composite(EmptySubstitution, s2, s1)
	_, ok = composite.Get(p1.Constructor())
	assert.True(t, ok)
	assert.False(t, composite.ApproximateCapturedTypes())
	assert.True(t, WithCapturedTypeApproximation(composite, true).ApproximateContravariantCapturedTypes())

	indexed := NewIndexedSubstitution([]*TypeParameter{p1, p2}, []Projection{inv(str)})
	_, ok = indexed.Get(p2.Constructor())
	assert.False(t, ok)
	got, ok = indexed.Get(p1.Constructor())
	require.True(t, ok)
	assert.Same(t, str, got.Type())

	// classes with equal names share a mapping
	c1, c2 := newTestClass("test.Key", nil), newTestClass("test.Key", nil)
	byName := NewMapSubstitution(map[*Constructor]Projection{c1.Constructor(): inv(str)})
	_, ok = byName.Get(c2.Constructor())
	assert.True(t, ok)
	assert.Equal(t, 2, byName.With(p1.Constructor(), inv(str)).Len())
}

func TestSupertypesOfPartiallyMemoizedLoop(t *testing.T) {
	var x, y *ClassDescriptor
	x = newTestClass("test.X", func(b *ClassBuilder) {
		b.LazySupertypes(func() []*Type { return []*Type{y.DefaultType()} })
	})
	y = newTestClass("test.Y", func(b *ClassBuilder) { b.Supertypes(x.DefaultType()) })

	// X stored by another computation which has not reached Y yet
	stored := []*Type{createLoopInSupertypes(x)}
	supertypeTable.Store(x.ctor.id, stored)

	supers := y.Constructor().Supertypes()
	require.Len(t, supers, 1)
	assert.True(t, supers[0].IsError())
	assert.Contains(t, TypeString(supers[0]), "Loop in supertypes involving test.Y")
	assert.Same(t, stored[0], x.Constructor().Supertypes()[0])
}
