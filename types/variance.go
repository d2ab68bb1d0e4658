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

// Variance is the variance of a type parameter or type projection.
type Variance uint8

const (
	Invariant Variance = iota
	In
	Out
)

func (v Variance) String() string {
	switch v {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return ""
	}
}

// AllowsInPosition reports whether a type with the variance may be used as an input.
func (v Variance) AllowsInPosition() bool { return v != Out }

// AllowsOutPosition reports whether a type with the variance may be used as an output.
func (v Variance) AllowsOutPosition() bool { return v != In }

func (v Variance) Opposite() Variance {
	switch v {
	case In:
		return Out
	case Out:
		return In
	default:
		return Invariant
	}
}

// Superpose returns the variance of a position nested inside a position of variance v.
func (v Variance) Superpose(inner Variance) Variance {
	if v == Invariant {
		return Invariant
	}
	if v == In {
		return inner.Opposite()
	}
	return inner
}

// Combine merges the variance of a use-site position with the projection kind of a replacement.
// An invariant position adopts the other side. Disagreeing non-invariant variances are an internal
// fault and must be ruled out by the caller.
func Combine(position, projection Variance) Variance {
	if position == Invariant {
		return projection
	}
	if projection == Invariant || projection == position {
		return position
	}
	panic("types: variance conflict: position " + position.String() + " with projection " + projection.String())
}
