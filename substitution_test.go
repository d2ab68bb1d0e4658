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
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/lattice/construct"
	"github.com/wdamron/lattice/types"
)

func TestSubstituteTypeParameter(t *testing.T) {
	env := NewPreludeEnv()
	intT := env.Type("lang.Int")
	list, mutableList := env.LookupClass("lang.List"), env.LookupClass("lang.MutableList")
	comparable, array := env.LookupClass("lang.Comparable"), env.LookupClass("lang.Array")
	param := types.NewTypeParameter(nil, "T", 0, types.Invariant)
	tt := param.DefaultType()

	cases := []struct {
		replacement types.Projection
		t           *types.Type
		position    types.Variance
		expected    string
	}{
		{construct.Inv(intT), construct.ApplyInv(list, tt), types.Invariant, "List<Int>"},
		{construct.Out(intT), construct.ApplyInv(list, tt), types.Invariant, "List<out Int>"},
		{construct.In(intT), construct.ApplyInv(mutableList, tt), types.Invariant, "MutableList<in Int>"},
		{construct.In(intT), construct.ApplyInv(list, tt), types.Invariant, "List<*>"},
		{construct.Out(intT), construct.ApplyInv(comparable, tt), types.Invariant, "Comparable<*>"},
		{construct.Inv(intT), construct.Nullable(tt), types.Invariant, "Int?"},
		{construct.Out(intT), tt, types.Out, "Int"},
		{construct.Inv(intT), construct.Platform(tt), types.Invariant, "Int!"},
		{construct.Inv(intT), construct.ApplyInv(list, construct.ApplyInv(array, tt)), types.Invariant, "List<Array<Int>>"},
		{construct.Star(param), construct.ApplyInv(array, tt), types.Invariant, "Array<*>"},
	}
	for _, c := range cases {
		sub := SubstitutorForTypeParameters(map[*types.TypeParameter]types.Projection{param: c.replacement})
		result, err := sub.Substitute(c.t, c.position)
		if err != nil {
			t.Fatalf("substituting %s in %s: %v", c.replacement, c.t, err)
		}
		if s := types.TypeString(result); s != c.expected {
			t.Fatalf("expected %s, found %s", c.expected, s)
		}
	}
}

func TestSubstitutionVarianceConflict(t *testing.T) {
	env := NewPreludeEnv()
	intT := env.Type("lang.Int")
	param := types.NewTypeParameter(nil, "T", 0, types.Invariant)

	for _, c := range []struct {
		replacement types.Projection
		position    types.Variance
	}{
		{construct.Out(intT), types.In},
		{construct.In(intT), types.Out},
	} {
		sub := SubstitutorForTypeParameters(map[*types.TypeParameter]types.Projection{param: c.replacement})
		_, err := sub.Substitute(param.DefaultType(), c.position)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrVarianceConflict), "unexpected error: %v", err)

		var serr *SubstitutionError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, c.position, serr.Position)

		safe := sub.SafeSubstitute(param.DefaultType(), c.position)
		assert.True(t, safe.IsError())
		assert.Contains(t, types.TypeString(safe), "is not allowed in")
	}
}

func TestIdentitySubstitutionSharesTypes(t *testing.T) {
	env := NewPreludeEnv()
	intT := env.Type("lang.Int")
	list := env.LookupClass("lang.List")
	listInt := construct.ApplyInv(list, intT)

	got, err := NewSubstitutor(types.EmptySubstitution).Substitute(listInt, types.Invariant)
	require.NoError(t, err)
	if got != listInt {
		t.Fatalf("expected the empty substitution to return the same type")
	}

	param := types.NewTypeParameter(nil, "T", 0, types.Invariant)
	sub := SubstitutorForTypeParameters(map[*types.TypeParameter]types.Projection{param: construct.Inv(intT)})
	got, err = sub.Substitute(listInt, types.Invariant)
	require.NoError(t, err)
	if got != listInt {
		t.Fatalf("expected a type without substituted parameters to be shared, found %s", got)
	}
}

func TestSubstitutionFiltersUnsafeVariance(t *testing.T) {
	env := NewPreludeEnv()
	param := types.NewTypeParameter(nil, "T", 0, types.Invariant)
	annotated := construct.Annotated(param.DefaultType(), types.UnsafeVariance, "test.Marker")
	sub := SubstitutorForTypeParameters(map[*types.TypeParameter]types.Projection{param: construct.Inv(env.Type("lang.Int"))})

	result, err := sub.Substitute(annotated, types.Invariant)
	require.NoError(t, err)
	assert.Equal(t, "Int", types.TypeString(result))
	assert.True(t, result.Annotations().Has("test.Marker"))
	assert.False(t, result.Annotations().Has(types.UnsafeVariance))
}

func TestSubstitutionRecursionTooDeep(t *testing.T) {
	env := NewPreludeEnv()
	array := env.LookupClass("lang.Array")
	param := types.NewTypeParameter(nil, "T", 0, types.Invariant)
	nested := param.DefaultType()
	for i := 0; i < 150; i++ {
		nested = construct.ApplyInv(array, nested)
	}
	mappings := map[*types.TypeParameter]types.Projection{param: construct.Inv(env.Type("lang.Int"))}

	_, err := SubstitutorForTypeParameters(mappings).Substitute(nested, types.Invariant)
	if !errors.Is(err, ErrRecursionTooDeep) {
		t.Fatalf("expected recursion error, found %v", err)
	}

	ctx := NewContext()
	ctx.SetMaxSubstitutionDepth(200)
	result, err := ctx.NewSubstitutor(types.NewParameterSubstitution(mappings)).Substitute(nested, types.Invariant)
	require.NoError(t, err)
	if !strings.HasSuffix(types.TypeString(result), "<Int>"+strings.Repeat(">", 149)) {
		t.Fatalf("unexpected result: %s", result)
	}
}

func TestSubstitutorForType(t *testing.T) {
	env := NewPreludeEnv()
	list := env.LookupClass("lang.List")
	elem := list.Parameters()[0].DefaultType()
	listInt := construct.ApplyInv(list, env.Type("lang.Int"))

	result, err := SubstitutorForType(listInt).Substitute(construct.ApplyInv(env.LookupClass("lang.Iterable"), elem), types.Invariant)
	require.NoError(t, err)
	assert.Equal(t, "Iterable<Int>", types.TypeString(result))

	result, err = StarProjectionSubstitutor(list).Substitute(list.DefaultType(), types.Invariant)
	require.NoError(t, err)
	assert.Equal(t, "List<*>", types.TypeString(result))

	result, err = ConstantSubstitutor(list.Parameters(), construct.Inv(types.NullableAny())).Substitute(list.DefaultType(), types.Invariant)
	require.NoError(t, err)
	assert.Equal(t, "List<Any?>", types.TypeString(result))
}

func TestSubstitutionApproximatesCapturedTypes(t *testing.T) {
	env := NewPreludeEnv()
	ctx := NewContext()
	intT := env.Type("lang.Int")
	list := env.LookupClass("lang.List")

	captured := ctx.CaptureFromArguments(construct.Apply(list, construct.Out(intT)))
	assert.Equal(t, "List<Captured(out Int)>", types.TypeString(captured))
	lower, upper := ctx.ApproximateCapturedTypes(captured)
	assert.Equal(t, "Nothing", types.TypeString(lower))
	assert.Equal(t, "List<out Int>", types.TypeString(upper))

	param := types.NewTypeParameter(nil, "T", 0, types.Invariant)
	mappings := types.NewParameterSubstitution(map[*types.TypeParameter]types.Projection{param: captured.Arguments()[0]})
	sub := NewSubstitutor(types.WithCapturedTypeApproximation(mappings, false))
	result, err := sub.Substitute(construct.ApplyInv(list, param.DefaultType()), types.Invariant)
	require.NoError(t, err)
	assert.Equal(t, "List<out Int>", types.TypeString(result))
}

func TestMemberScopeSubstitution(t *testing.T) {
	env := NewPreludeEnv()
	intT := env.Type("lang.Int")

	members := env.Type("lang.List", construct.Inv(intT)).MemberScope().Members("get")
	require.Len(t, members, 1)
	assert.Equal(t, "Int", types.TypeString(members[0].Type))

	members = env.Type("lang.MutableList", construct.Inv(intT)).MemberScope().Members("get")
	assert.Empty(t, members)

	assert.True(t, types.IsErrorScope(env.Type("lang.Missing").MemberScope()))
	assert.Panics(t, func() { types.NoExpectedType().MemberScope().Members("get") })
}

func TestSubstitutionLogging(t *testing.T) {
	env := NewPreludeEnv()
	var buf bytes.Buffer
	ctx := NewContext()
	ctx.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	param := types.NewTypeParameter(nil, "T", 0, types.Invariant)
	sub := ctx.NewSubstitutor(types.NewParameterSubstitution(map[*types.TypeParameter]types.Projection{
		param: construct.Out(env.Type("lang.Int")),
	}))
	if result := sub.SafeSubstitute(param.DefaultType(), types.In); !result.IsError() {
		t.Fatalf("expected error type, found %s", result)
	}
	out := buf.String()
	if !strings.Contains(out, "substitution failed") || !strings.Contains(out, "section=lattice") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestDisjointSubstitutionsCommute(t *testing.T) {
	env := NewTypeEnv(NewPreludeEnv())
	pair := env.MustDeclareClass("test.Pair", func(d *ClassDecl) {
		d.Param("A", types.Invariant)
		d.Param("B", types.Invariant)
	})
	p1 := types.NewTypeParameter(nil, "P1", 0, types.Invariant)
	p2 := types.NewTypeParameter(nil, "P2", 1, types.Invariant)
	input := construct.ApplyInv(pair, p1.DefaultType(), construct.Nullable(p2.DefaultType()))

	s1 := types.NewParameterSubstitution(map[*types.TypeParameter]types.Projection{p1: construct.Inv(env.Type("lang.Int"))})
	s2 := types.NewParameterSubstitution(map[*types.TypeParameter]types.Projection{p2: construct.Out(env.Type("lang.String"))})

	apply := func(s types.Substitution, typ *types.Type) *types.Type {
		result, err := NewSubstitutor(s).Substitute(typ, types.Invariant)
		require.NoError(t, err)
		return result
	}
	union := apply(types.DisjointUnion(s1, s2), input)
	assert.Equal(t, "Pair<Int, out String?>", types.TypeString(union))
	for _, got := range []*types.Type{
		apply(types.Chain(s1, s2), input),
		apply(types.Chain(s2, s1), input),
		apply(s2, apply(s1, input)),
		apply(s1, apply(s2, input)),
		apply(types.Composite(s2, s1), input),
	} {
		if !got.Equal(union) {
			t.Fatalf("expected %s, found %s", union, got)
		}
	}
}

func TestSubstitutionKeepsErrorTypes(t *testing.T) {
	param := types.NewTypeParameter(nil, "T", 0, types.Invariant)
	sub := SubstitutorForTypeParameters(map[*types.TypeParameter]types.Projection{param: construct.Inv(types.Any())})
	errorType := types.CreateErrorTypeWithArguments("unresolved", []types.Projection{construct.Inv(param.DefaultType())})
	if got := sub.SafeSubstitute(errorType, types.Invariant); got != errorType {
		t.Fatalf("expected error type to pass through substitution, found %s", got)
	}
	if got := sub.SafeSubstitute(types.NullableNothing(), types.Out); got != types.NullableNothing() {
		t.Fatalf("expected Nothing? to pass through substitution, found %s", got)
	}
}
