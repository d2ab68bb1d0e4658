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
	"github.com/hashicorp/go-set/v2"
)

// TypeSet is a set of types under structural equality which remembers insertion order.
type TypeSet struct {
	seen  *set.HashSet[*Type, uint64]
	items []*Type
}

func NewTypeSet(ts ...*Type) *TypeSet {
	s := &TypeSet{seen: set.NewHashSet[*Type, uint64](len(ts))}
	for _, t := range ts {
		s.Insert(t)
	}
	return s
}

// Insert adds a type to the set, returning true if it was not already present.
func (s *TypeSet) Insert(t *Type) bool {
	if !s.seen.Insert(t) {
		return false
	}
	s.items = append(s.items, t)
	return true
}

func (s *TypeSet) Contains(t *Type) bool { return s.seen.Contains(t) }

func (s *TypeSet) Len() int { return len(s.items) }

// Slice returns the types in insertion order. The returned slice must not be modified.
func (s *TypeSet) Slice() []*Type { return s.items }
