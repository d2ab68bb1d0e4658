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
	"errors"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/smasher164/xid"
)

var ErrInvalidName = errors.New("Invalid qualified name")

// FqName is a dot-separated fully-qualified name, such as `lang.collections.List`.
type FqName struct {
	name string
	hash uint64
}

// ParseFqName validates each segment of a qualified name as an identifier.
func ParseFqName(name string) (FqName, error) {
	if name == "" {
		return FqName{}, ErrInvalidName
	}
	for _, segment := range strings.Split(name, ".") {
		if !isIdentifier(segment) {
			return FqName{}, ErrInvalidName
		}
	}
	return unsafeFqName(name), nil
}

// MustParseFqName is like ParseFqName but panics when the name is invalid.
func MustParseFqName(name string) FqName {
	fq, err := ParseFqName(name)
	if err != nil {
		panic(err.Error() + ": " + name)
	}
	return fq
}

// names of synthetic declarations are not identifiers
func unsafeFqName(name string) FqName { return FqName{name, xxhash.Sum64String(name)} }

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if r != '_' && !xid.Start(r) {
				return false
			}
			continue
		}
		if !xid.Continue(r) {
			return false
		}
	}
	return true
}

func (n FqName) String() string { return n.name }

func (n FqName) IsRoot() bool { return n.name == "" }

// Hash returns the precomputed hash of the name.
func (n FqName) Hash() uint64 { return n.hash }

func (n FqName) Equal(other FqName) bool { return n.hash == other.hash && n.name == other.name }

// ShortName returns the last segment of the name.
func (n FqName) ShortName() string {
	if i := strings.LastIndexByte(n.name, '.'); i >= 0 {
		return n.name[i+1:]
	}
	return n.name
}

// Parent returns the name without its last segment.
func (n FqName) Parent() FqName {
	if i := strings.LastIndexByte(n.name, '.'); i >= 0 {
		return unsafeFqName(n.name[:i])
	}
	return FqName{}
}

// Child appends a segment to the name.
func (n FqName) Child(segment string) FqName {
	if n.name == "" {
		return unsafeFqName(segment)
	}
	return unsafeFqName(n.name + "." + segment)
}
