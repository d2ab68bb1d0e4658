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
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &typePrinter{} },
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	p.sb.Reset()
	p.qualified = false
	printerPool.Put(p)
}

type typePrinter struct {
	sb        strings.Builder
	qualified bool
}

// TypeString returns a string representation of a Type, using short class names.
func TypeString(t *Type) string {
	p := newTypePrinter()
	typeString(p, t)
	s := p.sb.String()
	p.Release()
	return s
}

// QualifiedTypeString returns a string representation of a Type, using qualified class names.
func QualifiedTypeString(t *Type) string {
	p := newTypePrinter()
	p.qualified = true
	typeString(p, t)
	s := p.sb.String()
	p.Release()
	return s
}

// TypeStrings returns the string representations of several types.
func TypeStrings(ts []*Type) []string {
	strs := make([]string, len(ts))
	for i, t := range ts {
		strs[i] = TypeString(t)
	}
	return strs
}

func typeString(p *typePrinter, t *Type) {
	if t == nil {
		p.sb.WriteString("<nil>")
		return
	}
	if t.flex != nil {
		flexibleString(p, t)
		return
	}
	c := t.ctor
	switch c.kind {
	case KindClass:
		if p.qualified {
			p.sb.WriteString(c.class.fqName.name)
		} else {
			p.sb.WriteString(c.class.fqName.ShortName())
		}
	case KindIntersection:
		p.sb.WriteByte('{')
		for i, m := range c.members {
			if i > 0 {
				p.sb.WriteString(" & ")
			}
			typeString(p, m)
		}
		p.sb.WriteByte('}')
	case KindCaptured:
		p.sb.WriteString("Captured(")
		projectionString(p, c.capture)
		p.sb.WriteByte(')')
	default:
		p.sb.WriteString(c.String())
	}
	if len(t.args) > 0 {
		p.sb.WriteByte('<')
		for i, arg := range t.args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			projectionString(p, arg)
		}
		p.sb.WriteByte('>')
	}
	if t.nullable {
		p.sb.WriteByte('?')
	}
}

func projectionString(p *typePrinter, proj Projection) {
	switch {
	case proj.star:
		p.sb.WriteByte('*')
		return
	case proj.kind != Invariant:
		p.sb.WriteString(proj.kind.String())
		p.sb.WriteByte(' ')
	}
	typeString(p, proj.typ)
}

// Platform types which differ only in nullability render as `T!`; dynamic renders as `dynamic`;
// other flexible types render as `(L..U)`.
func flexibleString(p *typePrinter, t *Type) {
	lower, upper := t.flex.lower, t.flex.upper
	switch {
	case t.flex.capability == FlexDynamic:
		p.sb.WriteString("dynamic")
	case !lower.nullable && upper.nullable && lower.Equal(upper.MakeNotNullable()):
		typeString(p, lower)
		p.sb.WriteByte('!')
	default:
		p.sb.WriteByte('(')
		typeString(p, lower)
		p.sb.WriteString("..")
		typeString(p, upper)
		p.sb.WriteByte(')')
	}
}

func intersectionString(members []*Type) string {
	p := newTypePrinter()
	p.sb.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			p.sb.WriteString(" & ")
		}
		typeString(p, m)
	}
	p.sb.WriteByte('}')
	s := p.sb.String()
	p.Release()
	return s
}
