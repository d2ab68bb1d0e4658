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

var sentinels struct {
	once   sync.Once
	module *ModuleDescriptor
	class  *ClassDescriptor

	dontCare, cantInferTypeParameter, placeholderFunction, cantInferLambdaParam *Type
	noExpectedType, unitExpectedType                                            *Type
}

func initSentinels() {
	sentinels.once.Do(func() {
		s := &sentinels
		s.module = NewModule("<ERROR MODULE>")
		s.class = NewClass(s.module, unsafeFqName("<ERROR CLASS>"), nil)
		s.class.isError = true
		s.dontCare = CreateErrorTypeWithCustomDebugName("DONT_CARE")
		s.cantInferTypeParameter = CreateErrorTypeWithCustomDebugName("CANT_INFER_TYPE_PARAMETER")
		s.placeholderFunction = CreateErrorTypeWithCustomDebugName("PLACEHOLDER_FUNCTION_TYPE")
		s.cantInferLambdaParam = CreateErrorTypeWithCustomDebugName("CANT_INFER_LAMBDA_PARAM_TYPE")
		s.noExpectedType = newSpecialType("NO_EXPECTED_TYPE")
		s.unitExpectedType = newSpecialType("UNIT_EXPECTED_TYPE")
	})
}

// ErrorModule returns the module which contains all error declarations.
func ErrorModule() *ModuleDescriptor { initSentinels(); return sentinels.module }

// ErrorClass returns the class which stands for unresolved classes.
func ErrorClass() *ClassDescriptor { initSentinels(); return sentinels.class }

// Sentinel error types, for positions where a type is not yet known or not needed.
func DontCare() *Type                 { initSentinels(); return sentinels.dontCare }
func CantInferTypeParameter() *Type   { initSentinels(); return sentinels.cantInferTypeParameter }
func PlaceholderFunctionType() *Type  { initSentinels(); return sentinels.placeholderFunction }
func CantInferLambdaParamType() *Type { initSentinels(); return sentinels.cantInferLambdaParam }

// NoExpectedType stands for the absence of an expected type. Its scope panics on access.
func NoExpectedType() *Type { initSentinels(); return sentinels.noExpectedType }

// UnitExpectedType stands for a position where the unit type is expected. Its scope panics on access.
func UnitExpectedType() *Type { initSentinels(); return sentinels.unitExpectedType }

func newSpecialType(name string) *Type {
	t := NewSimpleType(newConstructor(KindSpecial, name), nil, false)
	t.scope = CreateErrorScope(name+" should not be inspected", true)
	return t
}

// IsSpecialType reports whether the type is one of the expected-type sentinels.
func IsSpecialType(t *Type) bool { return t.ctor.kind == KindSpecial }

// CreateErrorTypeConstructor creates a fresh error constructor. Error constructors are equal only to
// themselves.
func CreateErrorTypeConstructor(debugMessage string) *Constructor {
	return CreateErrorTypeConstructorWithParameters(debugMessage, nil)
}

func CreateErrorTypeConstructorWithParameters(debugMessage string, params []*TypeParameter) *Constructor {
	c := newConstructor(KindError, "[ERROR : "+debugMessage+"]")
	c.params = params
	return c
}

// CreateErrorType creates a fresh error type whose label carries the message.
func CreateErrorType(debugMessage string) *Type {
	return CreateErrorTypeWithArguments(debugMessage, nil)
}

// CreateErrorTypeWithArguments creates a fresh error type which keeps the arguments of the type it
// replaces.
func CreateErrorTypeWithArguments(debugMessage string, args []Projection) *Type {
	t := NewSimpleType(CreateErrorTypeConstructor(debugMessage), args, false)
	t.scope = CreateErrorScope(debugMessage, false)
	return t
}

// CreateErrorTypeWithCustomDebugName creates a fresh error type which renders as the given name.
func CreateErrorTypeWithCustomDebugName(debugName string) *Type {
	t := NewSimpleType(newConstructor(KindError, debugName), nil, false)
	t.scope = CreateErrorScope(debugName, false)
	return t
}

// CreateUninferredParameterType creates an error type standing for the argument of a type parameter
// which could not be inferred.
func CreateUninferredParameterType(param *TypeParameter) *Type {
	c := newConstructor(KindUninferred, "[ERROR : Uninferred type for "+param.name+"]")
	c.param = param
	t := NewSimpleType(c, nil, false)
	t.scope = CreateErrorScope("Scope for error type "+c.label, false)
	return t
}

// UninferredParameter returns the parameter of an uninferred parameter type.
func UninferredParameter(t *Type) (*TypeParameter, bool) {
	if t.ctor.kind != KindUninferred {
		return nil, false
	}
	return t.ctor.param, true
}

func createLoopInSupertypes(class *ClassDescriptor) *Type {
	return CreateErrorType("Loop in supertypes involving " + class.fqName.name)
}

// IsErrorDeclaration reports whether the declaration is the error class, the error module, or is
// contained in either.
func IsErrorDeclaration(d Declaration) bool {
	for ; d != nil; d = d.Container() {
		switch d := d.(type) {
		case *ModuleDescriptor:
			return d == ErrorModule()
		case *ClassDescriptor:
			if d.isError {
				return true
			}
		}
	}
	return false
}

// ContainsErrorType reports whether the type, its flexible bounds or any of its arguments is an error
// type.
func ContainsErrorType(t *Type) bool {
	if t == nil {
		return false
	}
	if t.IsError() {
		return true
	}
	if t.flex != nil {
		return ContainsErrorType(t.flex.lower) || ContainsErrorType(t.flex.upper)
	}
	for _, arg := range t.args {
		if !arg.star && ContainsErrorType(arg.typ) {
			return true
		}
	}
	return false
}
