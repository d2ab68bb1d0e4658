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
	"sort"
)

// Member is a named member of a scope.
type Member struct {
	Name string
	Type *Type
}

// MemberScope looks up members by name.
type MemberScope interface {
	Members(name string) []Member
	Names() []string
}

// EmptyScope contains no members.
var EmptyScope MemberScope = staticScope{}

type staticScope struct {
	members map[string][]Member
}

// NewStaticScope creates a scope containing the given members.
func NewStaticScope(members ...Member) MemberScope {
	if len(members) == 0 {
		return EmptyScope
	}
	s := staticScope{members: make(map[string][]Member, len(members))}
	for _, m := range members {
		s.members[m.Name] = append(s.members[m.Name], m)
	}
	return s
}

func (s staticScope) Members(name string) []Member { return s.members[name] }

func (s staticScope) Names() []string {
	names := make([]string, 0, len(s.members))
	for name := range s.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ChainedScope looks up members in each of its scopes, in order.
type ChainedScope struct {
	debugName string
	scopes    []MemberScope
}

func NewChainedScope(debugName string, scopes ...MemberScope) *ChainedScope {
	return &ChainedScope{debugName: debugName, scopes: scopes}
}

func (s *ChainedScope) Members(name string) []Member {
	var members []Member
	for _, scope := range s.scopes {
		members = append(members, scope.Members(name)...)
	}
	return members
}

func (s *ChainedScope) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, scope := range s.scopes {
		for _, name := range scope.Names() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (s *ChainedScope) String() string { return s.debugName }

// ErrorScope is the scope of error types. Lookups find nothing.
type ErrorScope struct {
	debugMessage string
}

func (s *ErrorScope) Members(name string) []Member { return nil }

func (s *ErrorScope) Names() []string { return nil }

func (s *ErrorScope) String() string { return "ErrorScope{" + s.debugMessage + "}" }

// ThrowingScope is the scope of sentinel types which must never be inspected. Every lookup panics.
type ThrowingScope struct {
	ErrorScope
}

func (s *ThrowingScope) Members(name string) []Member {
	panic(s.debugMessage + ", required name: " + name)
}

func (s *ThrowingScope) Names() []string { panic(s.debugMessage) }

func (s *ThrowingScope) String() string { return "ThrowingScope{" + s.debugMessage + "}" }

// CreateErrorScope creates the scope of an error type. A throwing scope panics on every lookup.
func CreateErrorScope(debugMessage string, throwOnAccess bool) MemberScope {
	if throwOnAccess {
		return &ThrowingScope{ErrorScope{debugMessage}}
	}
	return &ErrorScope{debugMessage}
}

// IsErrorScope reports whether the scope belongs to an error type.
func IsErrorScope(s MemberScope) bool {
	switch s.(type) {
	case *ErrorScope, *ThrowingScope:
		return true
	}
	return false
}
