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
	"github.com/wdamron/lattice/types"
)

// Create a type-environment containing the built-in classes of the `lang` package:
//
//	Any, Nothing, Unit, Number, Comparable<in T>, CharSequence,
//	Int, Long, Short, Byte, Double, Float, Char, Boolean, String,
//	Iterable<out T>, Collection<out E>, List<out E>, MutableList<E>, Array<T>
//
// Numeric types, Char, Boolean and String are final and comparable with themselves.
func NewPreludeEnv() *TypeEnv {
	env := NewTypeEnv(nil)
	env.Module = types.BuiltinsModule()
	env.Classes["lang.Any"] = types.AnyClass()
	env.Classes["lang.Nothing"] = types.NothingClass()

	inv := func(t *types.Type) types.Projection { return types.NewProjection(types.Invariant, t) }

	env.MustDeclareClass("lang.Unit", func(d *ClassDecl) { d.Final() })
	env.MustDeclareClass("lang.Number", nil)
	comparable := env.MustDeclareClass("lang.Comparable", func(d *ClassDecl) {
		t := d.Param("T", types.In)
		d.Member("compareTo", t.DefaultType())
	})
	env.MustDeclareClass("lang.CharSequence", nil)

	comparableSelf := func(d *ClassDecl) *types.Type {
		return types.NewSimpleType(comparable.Constructor(), []types.Projection{inv(d.Self())}, false)
	}
	for _, name := range []string{"Int", "Long", "Short", "Byte", "Double", "Float"} {
		env.MustDeclareClass("lang."+name, func(d *ClassDecl) {
			d.Final()
			d.Supertypes(d.Type("lang.Number"), comparableSelf(d))
		})
	}
	env.MustDeclareClass("lang.Char", func(d *ClassDecl) {
		d.Final()
		d.Supertypes(comparableSelf(d))
	})
	env.MustDeclareClass("lang.Boolean", func(d *ClassDecl) {
		d.Final()
		d.Supertypes(comparableSelf(d))
	})
	env.MustDeclareClass("lang.String", func(d *ClassDecl) {
		d.Final()
		d.Supertypes(comparableSelf(d), d.Type("lang.CharSequence"))
	})

	env.MustDeclareClass("lang.Iterable", func(d *ClassDecl) {
		t := d.Param("T", types.Out)
		d.Member("iterator", t.DefaultType())
	})
	env.MustDeclareClass("lang.Collection", func(d *ClassDecl) {
		e := d.Param("E", types.Out)
		d.Supertypes(d.Type("lang.Iterable", inv(e.DefaultType())))
	})
	env.MustDeclareClass("lang.List", func(d *ClassDecl) {
		e := d.Param("E", types.Out)
		d.Supertypes(d.Type("lang.Collection", inv(e.DefaultType())))
		d.Member("get", e.DefaultType())
	})
	env.MustDeclareClass("lang.MutableList", func(d *ClassDecl) {
		e := d.Param("E", types.Invariant)
		d.Supertypes(d.Type("lang.List", inv(e.DefaultType())))
		d.Member("add", e.DefaultType())
	})
	env.MustDeclareClass("lang.Array", func(d *ClassDecl) {
		d.Final()
		t := d.Param("T", types.Invariant)
		d.Member("get", t.DefaultType())
	})
	return env
}
