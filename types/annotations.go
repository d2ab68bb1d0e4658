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
	"strings"

	"github.com/benbjohnson/immutable"
)

// UnsafeVariance is the name of the annotation which suppresses variance checks on a type use. It is
// removed from types produced by substitution.
const UnsafeVariance = "lang.UnsafeVariance"

// Annotation is a named annotation with its literal arguments.
type Annotation struct {
	Name      string
	Arguments []string
}

var emptyAnnotationMap = immutable.NewSortedMap(nil)

var NoAnnotations = Annotations{emptyAnnotationMap}

// Annotations contains immutable mappings from annotation names to annotations, sorted by name.
type Annotations struct {
	m *immutable.SortedMap
}

// NewAnnotations creates a set of annotations. A later annotation replaces an earlier one with the
// same name.
func NewAnnotations(annotations ...Annotation) Annotations {
	if len(annotations) == 0 {
		return NoAnnotations
	}
	b := immutable.NewSortedMapBuilder(emptyAnnotationMap)
	for _, a := range annotations {
		b.Set(a.Name, a)
	}
	return Annotations{b.Map()}
}

func (a Annotations) sorted() *immutable.SortedMap {
	if a.m == nil {
		return emptyAnnotationMap
	}
	return a.m
}

// Get the number of annotations.
func (a Annotations) Len() int { return a.sorted().Len() }

func (a Annotations) IsEmpty() bool { return a.Len() == 0 }

// Get an annotation by name.
func (a Annotations) Get(name string) (Annotation, bool) {
	v, ok := a.sorted().Get(name)
	if !ok {
		return Annotation{}, false
	}
	return v.(Annotation), true
}

func (a Annotations) Has(name string) bool {
	_, ok := a.sorted().Get(name)
	return ok
}

// Iterate over annotations in name order.
// If f returns false, iteration will be stopped.
func (a Annotations) Range(f func(Annotation) bool) {
	iter := a.sorted().Iterator()
	for !iter.Done() {
		_, v := iter.Next()
		if !f(v.(Annotation)) {
			return
		}
	}
}

// Union returns the annotations of a, with annotations of b added. Annotations in b replace
// annotations in a with the same name.
func (a Annotations) Union(b Annotations) Annotations {
	if b.IsEmpty() {
		return a
	}
	if a.IsEmpty() {
		return b
	}
	m := a.sorted()
	b.Range(func(ann Annotation) bool {
		m = m.Set(ann.Name, ann)
		return true
	})
	return Annotations{m}
}

// Without returns the annotations with the named annotation removed.
func (a Annotations) Without(name string) Annotations {
	if !a.Has(name) {
		return a
	}
	return Annotations{a.sorted().Delete(name)}
}

// Filter returns the annotations for which keep returns true.
func (a Annotations) Filter(keep func(Annotation) bool) Annotations {
	m := a.sorted()
	a.Range(func(ann Annotation) bool {
		if !keep(ann) {
			m = m.Delete(ann.Name)
		}
		return true
	})
	return Annotations{m}
}

// Equal reports whether both sets contain the same annotation names.
func (a Annotations) Equal(b Annotations) bool {
	if a.sorted() == b.sorted() {
		return true
	}
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Range(func(ann Annotation) bool {
		equal = b.Has(ann.Name)
		return equal
	})
	return equal
}

func (a Annotations) String() string {
	var sb strings.Builder
	a.Range(func(ann Annotation) bool {
		sb.WriteByte('@')
		sb.WriteString(ann.Name)
		if len(ann.Arguments) > 0 {
			sb.WriteByte('(')
			sb.WriteString(strings.Join(ann.Arguments, ", "))
			sb.WriteByte(')')
		}
		sb.WriteByte(' ')
		return true
	})
	return sb.String()
}
