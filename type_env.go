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
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/wdamron/lattice/internal/typeutil"
	"github.com/wdamron/lattice/types"
)

var (
	ErrInvalidName          = types.ErrInvalidName
	ErrDuplicateDeclaration = errors.New("Duplicate class declaration")
)

// TypeEnv is a type-environment containing class declarations by qualified name.
//
// A type-environment cannot be declared into concurrently; once declarations are complete, the environment
// and its types may be shared. To extend a shared environment, create a new environment which inherits
// from it.
type TypeEnv struct {
	// Declarations in the parent of the current type-environment
	Parent *TypeEnv
	// Module which contains the classes declared in the current type-environment
	Module *types.ModuleDescriptor
	// Classes declared in the current type-environment
	Classes map[string]*types.ClassDescriptor
}

// Create a type-environment. The new environment will inherit declarations from the parent, if the parent is
// not nil.
func NewTypeEnv(parent *TypeEnv) *TypeEnv {
	env := &TypeEnv{Parent: parent, Classes: make(map[string]*types.ClassDescriptor)}
	if parent != nil {
		env.Module = parent.Module
	} else {
		env.Module = types.NewModule("<root>")
	}
	return env
}

// ClassDecl declares the parts of a class within a type-environment.
type ClassDecl struct {
	*types.ClassBuilder
	env     *TypeEnv
	members []types.Member
}

// Self returns the class applied to its own type parameters.
func (d *ClassDecl) Self() *types.Type { return d.Class().DefaultType() }

// Type resolves a class by name and applies it to arguments, as TypeEnv.Type does.
func (d *ClassDecl) Type(fqName string, args ...types.Projection) *types.Type {
	return d.env.Type(fqName, args...)
}

// Member declares a member of the class. Member types may refer to the class's type parameters, which are
// substituted when the member is found through an instantiated type.
func (d *ClassDecl) Member(name string, t *types.Type) {
	d.members = append(d.members, types.Member{Name: name, Type: t})
}

// Declare a class in the type-environment. The bind function, if not nil, declares type parameters,
// supertypes, modifiers and members before the class is published.
//
// Supertypes which refer to classes declared later must be declared with LazySupertypes.
func (e *TypeEnv) DeclareClass(fqName string, bind func(*ClassDecl)) (*types.ClassDescriptor, error) {
	name, err := types.ParseFqName(fqName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, fqName)
	}
	if e.LookupClass(fqName) != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateDeclaration, fqName)
	}
	class := types.NewClass(e.Module, name, func(b *types.ClassBuilder) {
		if bind == nil {
			return
		}
		decl := &ClassDecl{ClassBuilder: b, env: e}
		bind(decl)
		if len(decl.members) > 0 {
			params, static := b.Class().Parameters(), types.NewStaticScope(decl.members...)
			b.Scope(func(args []types.Projection) types.MemberScope {
				return SubstitutingScope(static, typeutil.NewSubstitutor(types.NewIndexedSubstitution(params, args)))
			})
		}
	})
	e.Classes[fqName] = class
	return class, nil
}

// MustDeclareClass is like DeclareClass but panics if the class cannot be declared.
func (e *TypeEnv) MustDeclareClass(fqName string, bind func(*ClassDecl)) *types.ClassDescriptor {
	class, err := e.DeclareClass(fqName, bind)
	if err != nil {
		panic(err)
	}
	return class
}

// Declare a local class. Local classes are not registered by name and are equal only to themselves.
func (e *TypeEnv) NewLocalClass(name string, bind func(*ClassDecl)) (*types.ClassDescriptor, error) {
	fq, err := types.ParseFqName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, name)
	}
	return types.NewClass(e.Module, fq, func(b *types.ClassBuilder) {
		b.Local()
		if bind != nil {
			bind(&ClassDecl{ClassBuilder: b, env: e})
		}
	}), nil
}

// Lookup the class declared with a qualified name in the environment or its parent environment(s).
func (e *TypeEnv) LookupClass(fqName string) *types.ClassDescriptor {
	for env := e; env != nil; env = env.Parent {
		if class, ok := env.Classes[fqName]; ok {
			return class
		}
	}
	return nil
}

// Type resolves a class by qualified name and applies it to the arguments. An unresolved name or a wrong
// number of arguments produces an error type which keeps the arguments.
func (e *TypeEnv) Type(fqName string, args ...types.Projection) *types.Type {
	class := e.LookupClass(fqName)
	if class == nil {
		return types.CreateErrorTypeWithArguments("Unresolved class "+fqName, args)
	}
	if len(args) != len(class.Parameters()) {
		return types.CreateErrorTypeWithArguments(fmt.Sprintf("Wrong number of type arguments for %s: expected %d, found %d",
			fqName, len(class.Parameters()), len(args)), args)
	}
	return types.NewSimpleType(class.Constructor(), args, false)
}

// ClassNames returns the sorted names of the classes declared in the current type-environment.
func (e *TypeEnv) ClassNames() []string {
	names := maps.Keys(e.Classes)
	sort.Strings(names)
	return names
}
