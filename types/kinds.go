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

// Kind distinguishes the variants of type constructors.
type Kind uint8

const (
	// A (possibly generic) class, interface or object. Non-local classes compare by qualified name.
	KindClass Kind = iota
	// A type parameter. Compares by identity.
	KindTypeParameter
	// An unresolved or otherwise erroneous type. Compares by identity.
	KindError
	// A synthetic intersection of several types. Compares by identity.
	KindIntersection
	// A type parameter whose argument could not be inferred. Compares by identity.
	KindUninferred
	// A captured projection. Compares by identity.
	KindCaptured
	// A sentinel standing in for an expected type. Compares by identity.
	KindSpecial
)

var kindNames = [...]string{
	KindClass:         "class",
	KindTypeParameter: "type parameter",
	KindError:         "error",
	KindIntersection:  "intersection",
	KindUninferred:    "uninferred",
	KindCaptured:      "captured",
	KindSpecial:       "special",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsError reports whether constructors of the kind produce error types.
func (k Kind) IsError() bool { return k == KindError || k == KindUninferred }
