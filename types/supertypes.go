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
	"sync"

	"github.com/wdamron/lattice/internal/util"
)

// memoized supertypes of class constructors, by constructor id
var supertypeTable sync.Map

func supertypesOf(c *Constructor) []*Type {
	switch c.kind {
	case KindClass:
		return classSupertypes(c.class)
	case KindTypeParameter:
		return c.param.UpperBounds()
	case KindIntersection:
		return c.members
	case KindCaptured:
		if p := c.capture; !p.star && p.kind != In {
			return []*Type{p.typ}
		}
		return []*Type{NullableAny()}
	}
	return nil
}

func classSupertypes(c *ClassDescriptor) []*Type {
	if v, ok := supertypeTable.Load(c.ctor.id); ok {
		return v.([]*Type)
	}
	computeSupertypes(c)
	v, _ := supertypeTable.Load(c.ctor.id)
	return v.([]*Type)
}

func declaredOrDefaultSupertypes(c *ClassDescriptor) []*Type {
	declared := c.DeclaredSupertypes()
	if len(declared) == 0 && !c.isError && c != AnyClass() && c != NothingClass() {
		return []*Type{Any()}
	}
	return declared
}

// computeSupertypes resolves the supertypes of every class reachable from root. Supertype edges inside a
// strongly connected component are replaced by loop-in-supertypes error types. A supertype nested in
// another class makes the containing class reachable too, but the containment edge never closes a loop.
//
// Memoized classes are traversed again rather than skipped: a concurrent computation may have stored only
// part of a component, and each class must get the same broken edges whichever goroutine stores it.
func computeSupertypes(root *ClassDescriptor) {
	var (
		index    = make(map[*ClassDescriptor]int)
		classes  []*ClassDescriptor
		declared [][]*Type
	)
	var visit func(c *ClassDescriptor)
	visit = func(c *ClassDescriptor) {
		if _, ok := index[c]; ok {
			return
		}
		index[c] = len(classes)
		classes = append(classes, c)
		supers := declaredOrDefaultSupertypes(c)
		declared = append(declared, supers)
		for _, s := range supers {
			sc := s.ctor.class
			if s.ctor.kind != KindClass {
				continue
			}
			visit(sc)
			if sc.outer != nil {
				visit(sc.outer)
			}
		}
	}
	visit(root)

	g := util.NewGraph(len(classes))
	for i, supers := range declared {
		for _, s := range supers {
			if s.ctor.kind != KindClass {
				continue
			}
			if j, ok := index[s.ctor.class]; ok {
				g.AddEdge(i, j)
			}
		}
	}
	component := make([]int, len(classes))
	cyclic := make([]bool, len(classes))
	for n, scc := range g.SCC() {
		for _, v := range scc {
			component[v] = n
		}
		if g.Cyclic(scc) {
			for _, v := range scc {
				cyclic[v] = true
			}
		}
	}

	for i, c := range classes {
		supers := declared[i]
		if cyclic[i] {
			broken := make([]*Type, len(supers))
			for k, s := range supers {
				broken[k] = s
				if s.ctor.kind != KindClass {
					continue
				}
				if j, ok := index[s.ctor.class]; ok && component[j] == component[i] {
					broken[k] = createLoopInSupertypes(c)
					log().Debug("loop in supertypes", "class", c.fqName.name, "supertype", s.String())
				}
			}
			supers = broken
		}
		supertypeTable.LoadOrStore(c.ctor.id, supers)
	}
}
