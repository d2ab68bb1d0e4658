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
	"testing"

	"github.com/kr/pretty"
	"github.com/sanity-io/litter"
	"golang.org/x/exp/slices"

	"github.com/wdamron/lattice/construct"
	"github.com/wdamron/lattice/types"
)

// Hierarchy used by the tests below:
//
//	class Base<T>; class BaseIn<in T>; class Derived<T> : Base<T>; class DDerived<T> : Derived<T>
//	class Parent; class A : Parent; class B : Parent
//	class Rec<T>; class ARec : Rec<ARec>; class BRec : Rec<BRec>
func newTestEnv() *TypeEnv {
	env := NewTypeEnv(NewPreludeEnv())
	env.MustDeclareClass("test.Base", func(d *ClassDecl) { d.Param("T", types.Invariant) })
	env.MustDeclareClass("test.BaseIn", func(d *ClassDecl) { d.Param("T", types.In) })
	env.MustDeclareClass("test.Derived", func(d *ClassDecl) {
		t := d.Param("T", types.Invariant)
		d.Supertypes(d.Type("test.Base", construct.Inv(t.DefaultType())))
	})
	env.MustDeclareClass("test.DDerived", func(d *ClassDecl) {
		t := d.Param("T", types.Invariant)
		d.Supertypes(d.Type("test.Derived", construct.Inv(t.DefaultType())))
	})
	env.MustDeclareClass("test.Parent", nil)
	env.MustDeclareClass("test.A", func(d *ClassDecl) { d.Supertypes(d.Type("test.Parent")) })
	env.MustDeclareClass("test.B", func(d *ClassDecl) { d.Supertypes(d.Type("test.Parent")) })
	env.MustDeclareClass("test.Rec", func(d *ClassDecl) { d.Param("T", types.Invariant) })
	env.MustDeclareClass("test.ARec", func(d *ClassDecl) { d.Supertypes(d.Type("test.Rec", construct.Inv(d.Self()))) })
	env.MustDeclareClass("test.BRec", func(d *ClassDecl) { d.Supertypes(d.Type("test.Rec", construct.Inv(d.Self()))) })
	return env
}

type typeNamer struct{ env *TypeEnv }

func (n typeNamer) lang(name string, args ...types.Projection) *types.Type {
	return n.env.Type("lang."+name, args...)
}

func (n typeNamer) test(name string, args ...types.Projection) *types.Type {
	return n.env.Type("test."+name, args...)
}

func (n typeNamer) star(name string) *types.Type {
	return construct.ApplyStars(n.env.LookupClass(name))
}

func TestCommonSupertype(t *testing.T) {
	env := newTestEnv()
	ctx := NewContext()
	n := typeNamer{env}
	inv, in := construct.Inv, construct.In

	cases := []struct {
		inputs   []*types.Type
		expected string
	}{
		{[]*types.Type{n.lang("Int"), n.lang("Int")}, "Int"},
		{[]*types.Type{n.lang("Int"), types.Nothing()}, "Int"},
		{[]*types.Type{n.lang("Int"), types.NullableNothing()}, "Int?"},
		{[]*types.Type{types.Nothing(), types.NullableNothing()}, "Nothing?"},
		{[]*types.Type{n.lang("Char"), n.lang("Number")}, "Any"},
		{[]*types.Type{n.lang("Int"), n.lang("Char")}, "Comparable<out Any?>"},
		{[]*types.Type{n.lang("Int").MakeNullable(), n.lang("String")}, "Comparable<out Any?>?"},
		{[]*types.Type{n.lang("Int"), n.lang("Long")}, "Any"},
		{[]*types.Type{n.star("test.Base"), n.star("test.Derived")}, "Base<*>"},
		{[]*types.Type{n.star("test.BaseIn"), n.star("test.Derived")}, "Any"},
		{[]*types.Type{n.test("DDerived", inv(n.lang("Int"))), n.test("Derived", inv(n.lang("Int")))}, "Derived<Int>"},
		{[]*types.Type{n.test("Base", inv(n.lang("Int"))), n.test("Base", in(n.lang("Int")))}, "Base<in Int>"},
		{[]*types.Type{n.test("Base", inv(n.test("A"))), n.test("Base", inv(n.test("B")))}, "Base<out Parent>"},
		{[]*types.Type{n.lang("List", inv(n.lang("Int"))), n.lang("List", inv(n.lang("String")))}, "List<Comparable<out Any?>>"},
		{[]*types.Type{n.lang("List", inv(n.lang("Int"))), n.lang("MutableList", inv(n.lang("Int")))}, "List<Int>"},
		{[]*types.Type{n.test("ARec"), n.test("BRec")}, "Rec<out Rec<out Rec<out Rec<out Rec<out Any?>>>>>"},
		{[]*types.Type{construct.Platform(n.lang("String")), n.lang("String")}, "String!"},
		{[]*types.Type{n.lang("String"), construct.Platform(n.lang("String"))}, "String!"},
		{[]*types.Type{n.lang("List", inv(construct.Platform(n.lang("String")))), n.lang("List", inv(n.lang("String")))}, "List<String!>"},
		{[]*types.Type{n.lang("List", inv(n.lang("String"))), n.lang("List", inv(construct.Platform(n.lang("String"))))}, "List<String!>"},
		{[]*types.Type{construct.Platform(n.lang("String")), n.lang("Int")}, "Comparable<out Any?>!"},
	}

	expected := make([]string, len(cases))
	got := make([]string, len(cases))
	for i, c := range cases {
		expected[i] = c.expected
		got[i] = types.TypeString(ctx.CommonSupertype(c.inputs...))
	}
	if !slices.Equal(expected, got) {
		t.Errorf("unexpected common supertypes:\n%s", litter.Sdump(got))
		pretty.Ldiff(t, expected, got)
	}
}

func TestCommonSupertypeIsSymmetric(t *testing.T) {
	env := newTestEnv()
	ctx := NewContext()
	n := typeNamer{env}
	pairs := [][2]*types.Type{
		{n.lang("Int"), n.lang("Char")},
		{n.test("A"), n.test("B")},
		{n.test("ARec"), n.test("BRec")},
		{n.lang("List", construct.Inv(n.lang("Int"))), n.lang("MutableList", construct.Inv(n.lang("String")))},
		{construct.Platform(n.lang("String")), n.lang("String")},
		{construct.Platform(n.lang("String")), construct.Nullable(n.lang("String"))},
		{construct.Platform(n.lang("String")), n.lang("Int")},
		{n.lang("List", construct.Inv(construct.Platform(n.lang("String")))), n.lang("List", construct.Inv(n.lang("String")))},
	}
	for _, p := range pairs {
		ab := ctx.CommonSupertype(p[0], p[1])
		ba := ctx.CommonSupertype(p[1], p[0])
		if !ab.Equal(ba) || types.TypeString(ab) != types.TypeString(ba) {
			t.Fatalf("common supertype is not symmetric: %s vs %s", ab, ba)
		}
		for _, input := range p {
			if !ctx.IsSubtypeOf(input, ab) {
				t.Fatalf("type: %s is not a subtype of common supertype %s", input, ab)
			}
		}
	}
}

func TestCommonSupertypeOfErrorType(t *testing.T) {
	env := newTestEnv()
	ctx := NewContext()
	result := ctx.CommonSupertype(env.Type("lang.Int"), types.CreateErrorType("unresolved"))
	if !result.IsError() {
		t.Fatalf("expected error type, found %s", result)
	}
}

func TestRecursionDepthSlack(t *testing.T) {
	env := newTestEnv()
	ctx := NewContext()
	ctx.SetSupertypeDepthSlack(1)
	result := ctx.CommonSupertype(env.Type("test.ARec"), env.Type("test.BRec"))
	if s := types.TypeString(result); s != "Rec<out Rec<out Rec<out Any?>>>" {
		t.Fatalf("type: %s", s)
	}
}

func TestCommonSupertypeForNonDenotableTypes(t *testing.T) {
	env := newTestEnv()
	ctx := NewContext()
	n := typeNamer{env}
	intersection := ctx.IntersectTypes(n.lang("CharSequence"), n.lang("Comparable", construct.Inv(n.lang("String"))))
	result := ctx.CommonSupertypeForNonDenotableTypes(intersection)
	if s := types.TypeString(result); s != "Any" {
		t.Fatalf("type: %s", s)
	}
}

func TestIntersectTypes(t *testing.T) {
	env := newTestEnv()
	ctx := NewContext()
	n := typeNamer{env}
	nullable := construct.Nullable

	cases := []struct {
		inputs   []*types.Type
		expected string
	}{
		{nil, "Any?"},
		{[]*types.Type{n.lang("Int")}, "Int"},
		{[]*types.Type{nullable(n.lang("Long")), n.lang("Number")}, "Long"},
		{[]*types.Type{nullable(n.lang("Number")), n.lang("Number")}, "Number"},
		{[]*types.Type{nullable(n.lang("Number")), nullable(n.lang("Number"))}, "Number?"},
		{[]*types.Type{nullable(n.lang("Int")), n.lang("Int")}, "Int"},
		{[]*types.Type{types.Any(), nullable(n.lang("Int"))}, "Int"},
		{[]*types.Type{types.Nothing(), types.NullableNothing()}, "Nothing"},
		{[]*types.Type{types.NullableNothing(), nullable(n.lang("String"))}, "Nothing?"},
		{[]*types.Type{n.lang("Int"), types.CreateErrorType("unresolved")}, "Int"},
		{[]*types.Type{n.test("Parent"), n.test("A")}, "A"},
		{[]*types.Type{n.lang("CharSequence"), n.lang("Comparable", construct.Inv(n.lang("String")))}, "{CharSequence & Comparable<String>}"},
		{[]*types.Type{construct.Platform(n.lang("String")), n.lang("String")}, "String"},
		{[]*types.Type{n.lang("String"), construct.Platform(n.lang("String"))}, "String"},
		{[]*types.Type{construct.Platform(n.lang("String")), nullable(n.lang("String"))}, "String"},
	}
	expected := make([]string, len(cases))
	got := make([]string, len(cases))
	for i, c := range cases {
		expected[i] = c.expected
		got[i] = types.TypeString(ctx.IntersectTypes(c.inputs...))
	}
	if !slices.Equal(expected, got) {
		t.Errorf("unexpected intersections:\n%s", litter.Sdump(got))
		pretty.Ldiff(t, expected, got)
	}
}

func TestEmptyIntersection(t *testing.T) {
	env := newTestEnv()
	ctx := NewContext()
	n := typeNamer{env}
	if r := ctx.IntersectTypes(n.lang("Int"), n.lang("String")); r != nil {
		t.Fatalf("expected empty intersection, found %s", r)
	}
	if !ctx.IsIntersectionEmpty(n.lang("Int"), n.lang("String")) {
		t.Fatalf("expected empty intersection of Int and String")
	}
	if ctx.IsIntersectionEmpty(n.lang("Int"), n.lang("Number")) {
		t.Fatalf("expected non-empty intersection of Int and Number")
	}
	param := types.NewTypeParameter(nil, "T", 0, types.Invariant)
	if ctx.IsIntersectionEmpty(n.lang("Int"), param.DefaultType()) {
		t.Fatalf("expected non-empty intersection of Int and a type parameter")
	}
	if r := ctx.IntersectTypes(n.lang("Int"), param.DefaultType()); types.TypeString(r) != "Int" {
		t.Fatalf("type: %s", r)
	}
}

func TestIntersectionMembers(t *testing.T) {
	env := newTestEnv()
	ctx := NewContext()
	n := typeNamer{env}
	str := n.lang("String")
	comparable := n.lang("Comparable", construct.Inv(str))
	intersection := ctx.IntersectTypes(n.lang("CharSequence"), comparable)
	if intersection.Constructor().Kind() != types.KindIntersection {
		t.Fatalf("expected intersection type, found %s", intersection)
	}
	if !ctx.IsSubtypeOf(str, intersection) {
		t.Fatalf("String should be a subtype of %s", intersection)
	}
	if !ctx.IsSubtypeOf(intersection, comparable) {
		t.Fatalf("%s should be a subtype of %s", intersection, comparable)
	}
	members := intersection.MemberScope().Members("compareTo")
	if len(members) != 1 || types.TypeString(members[0].Type) != "String" {
		t.Fatalf("unexpected members: %s", litter.Sdump(members))
	}
}

func TestSubtyping(t *testing.T) {
	env := newTestEnv()
	ctx := NewContext()
	n := typeNamer{env}
	inv, out, in := construct.Inv, construct.Out, construct.In
	intT, number := n.lang("Int"), n.lang("Number")

	cases := []struct {
		sub, super *types.Type
		expected   bool
	}{
		{intT, number, true},
		{number, intT, false},
		{intT.MakeNullable(), intT, false},
		{intT, intT.MakeNullable(), true},
		{types.Nothing(), n.lang("String"), true},
		{types.NullableNothing(), n.lang("String"), false},
		{types.NullableNothing(), n.lang("String").MakeNullable(), true},
		{intT.MakeNullable(), types.NullableAny(), true},
		{n.lang("List", inv(intT)), n.lang("List", inv(number)), true},
		{n.lang("MutableList", inv(intT)), n.lang("List", inv(number)), true},
		{n.lang("MutableList", inv(intT)), n.lang("MutableList", inv(number)), false},
		{n.lang("MutableList", inv(intT)), n.lang("MutableList", out(number)), true},
		{n.lang("MutableList", inv(number)), n.lang("MutableList", in(intT)), true},
		{n.lang("MutableList", in(intT)), n.lang("MutableList", inv(number)), false},
		{n.lang("Comparable", inv(number)), n.lang("Comparable", inv(intT)), true},
		{n.lang("Comparable", inv(intT)), n.lang("Comparable", inv(number)), false},
		{n.test("Derived", inv(intT)), n.star("test.Base"), true},
		{construct.Platform(n.lang("String")), n.lang("String"), true},
		{n.lang("String").MakeNullable(), construct.Platform(n.lang("String")), true},
		{types.CreateErrorType("unresolved"), intT, true},
	}
	for _, c := range cases {
		if got := ctx.IsSubtypeOf(c.sub, c.super); got != c.expected {
			t.Errorf("IsSubtypeOf(%s, %s) = %v, expected %v", c.sub, c.super, got, c.expected)
		}
	}
}

func TestCanHaveSubtypes(t *testing.T) {
	env := newTestEnv()
	ctx := NewContext()
	n := typeNamer{env}
	cases := []struct {
		t        *types.Type
		expected bool
	}{
		{n.lang("Int"), false},
		{n.lang("Int").MakeNullable(), true},
		{n.lang("Number"), true},
		{n.lang("Array", construct.Inv(n.lang("Int"))), false},
		{n.lang("Array", construct.Inv(n.lang("Number"))), true},
		{n.lang("Array", construct.Out(n.lang("Int"))), false},
		{n.lang("Array", construct.In(n.lang("Int"))), true},
		{n.star("lang.Array"), true},
	}
	for _, c := range cases {
		if got := ctx.CanHaveSubtypes(c.t); got != c.expected {
			t.Errorf("CanHaveSubtypes(%s) = %v, expected %v", c.t, got, c.expected)
		}
	}
}

func BenchmarkCommonSupertype(b *testing.B) {
	env := newTestEnv()
	ctx := NewContext()
	intT, char := env.Type("lang.Int"), env.Type("lang.Char")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.CommonSupertype(intT, char)
	}
}

func BenchmarkRecursiveCommonSupertype(b *testing.B) {
	env := newTestEnv()
	ctx := NewContext()
	a, c := env.Type("test.ARec"), env.Type("test.BRec")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.CommonSupertype(a, c)
	}
}
