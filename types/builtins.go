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

import "sync"

var builtins struct {
	once    sync.Once
	module  *ModuleDescriptor
	any     *ClassDescriptor
	nothing *ClassDescriptor

	anyType, nullableAny, nothingType, nullableNothing, dynamic *Type
}

func initBuiltins() {
	builtins.once.Do(func() {
		b := &builtins
		b.module = NewModule("<builtins>")
		b.any = NewClass(b.module, unsafeFqName("lang.Any"), nil)
		b.nothing = NewClass(b.module, unsafeFqName("lang.Nothing"), func(cb *ClassBuilder) { cb.Final() })
		b.anyType = b.any.DefaultType()
		b.nullableAny = b.anyType.MakeNullable()
		b.nothingType = b.nothing.DefaultType()
		b.nullableNothing = b.nothingType.MakeNullable()
		b.dynamic = NewFlexibleType(b.nothingType, b.nullableAny, FlexDynamic)
	})
}

// BuiltinsModule returns the module which declares `Any` and `Nothing`.
func BuiltinsModule() *ModuleDescriptor { initBuiltins(); return builtins.module }

// AnyClass returns the root of the class hierarchy.
func AnyClass() *ClassDescriptor { initBuiltins(); return builtins.any }

// NothingClass returns the bottom of the class hierarchy.
func NothingClass() *ClassDescriptor { initBuiltins(); return builtins.nothing }

func Any() *Type { initBuiltins(); return builtins.anyType }

func NullableAny() *Type { initBuiltins(); return builtins.nullableAny }

func Nothing() *Type { initBuiltins(); return builtins.nothingType }

func NullableNothing() *Type { initBuiltins(); return builtins.nullableNothing }

// Dynamic returns the dynamic type, a flexible type ranging from `Nothing` to `Any?`.
func Dynamic() *Type { initBuiltins(); return builtins.dynamic }

// IsAny reports whether the type is `Any` or `Any?`.
func IsAny(t *Type) bool { return t.flex == nil && t.ctor.Equal(AnyClass().ctor) }

// IsNullableAny reports whether the type is `Any?`.
func IsNullableAny(t *Type) bool { return IsAny(t) && t.nullable }

// IsNothing reports whether the type is `Nothing` or `Nothing?`.
func IsNothing(t *Type) bool { return t.flex == nil && t.ctor.Equal(NothingClass().ctor) }

