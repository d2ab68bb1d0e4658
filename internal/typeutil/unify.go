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

package typeutil

import (
	"errors"

	"github.com/wdamron/lattice/types"
)

type UnifyTxn struct {
	Speculate    bool
	BindingStash []StashedBinding
}

func (ctx *CommonContext) NewUnifyTxn() UnifyTxn {
	txn := UnifyTxn{ctx.Speculate, ctx.BindingStash}
	ctx.Speculate = true
	return txn
}

func (ctx *CommonContext) Rollback(txn UnifyTxn) {
	ctx.UnstashBindings(len(ctx.BindingStash) - len(txn.BindingStash))
	ctx.Speculate, ctx.BindingStash = txn.Speculate, txn.BindingStash
}

func (ctx *CommonContext) Commit(txn UnifyTxn) {
	ctx.Speculate, ctx.BindingStash = txn.Speculate, txn.BindingStash
}

// CanUnify reports whether a and b unify, treating type parameters as variables. Bindings made while
// checking are rolled back.
func (ctx *CommonContext) CanUnify(a, b *types.Type) bool {
	txn := ctx.NewUnifyTxn()
	err := ctx.Unify(a, b)
	ctx.Rollback(txn)
	return err == nil
}

// TryUnify unifies a and b, keeping the bindings only if unification succeeds.
func (ctx *CommonContext) TryUnify(a, b *types.Type) error {
	txn := ctx.NewUnifyTxn()
	if err := ctx.Unify(a, b); err != nil {
		ctx.Rollback(txn)
		return err
	}
	ctx.Commit(txn)
	return nil
}

// MayBeEqual reports whether a and b could denote the same type for some choice of the type parameters
// they mention.
func (ctx *CommonContext) MayBeEqual(a, b *types.Type) bool {
	if ctx.Bindings == nil {
		ctx.Init()
	}
	return ctx.CanUnify(a, b)
}

func (ctx *CommonContext) resolve(t *types.Type) *types.Type {
	for t.Constructor().Kind() == types.KindTypeParameter {
		bound, ok := ctx.Bindings[t.Constructor().Key()]
		if !ok {
			return t
		}
		if t.IsMarkedNullable() {
			bound = bound.MakeNullable()
		}
		t = bound
	}
	return t
}

// Unify binds type parameters in a and b so that both denote the same type.
func (ctx *CommonContext) Unify(a, b *types.Type) error {
	a, b = ctx.resolve(a), ctx.resolve(b)
	if a.Equal(b) {
		return nil
	}
	if a.IsError() || b.IsError() {
		return nil
	}
	if a.Constructor().Kind() == types.KindTypeParameter {
		return ctx.bindVariable(a, b)
	}
	if b.Constructor().Kind() == types.KindTypeParameter {
		return ctx.bindVariable(b, a)
	}
	if a.IsFlexible() || b.IsFlexible() {
		if err := ctx.Unify(a.LowerBound(), b.LowerBound()); err != nil {
			return err
		}
		return ctx.Unify(a.UpperBound(), b.UpperBound())
	}
	if a.IsMarkedNullable() != b.IsMarkedNullable() {
		return errors.New("Failed to unify nullable type with non-nullable type: " + types.TypeString(a) + " and " + types.TypeString(b))
	}
	if !a.Constructor().Equal(b.Constructor()) {
		return errors.New("Failed to unify type constructors " + a.Constructor().String() + " and " + b.Constructor().String())
	}
	aArgs, bArgs := a.Arguments(), b.Arguments()
	if len(aArgs) != len(bArgs) {
		return errors.New("Failed to unify types with different argument counts: " + types.TypeString(a) + " and " + types.TypeString(b))
	}
	for i := range aArgs {
		pa, pb := aArgs[i], bArgs[i]
		if pa.IsStar() || pb.IsStar() {
			continue
		}
		if pa.Kind() != pb.Kind() {
			return errors.New("Failed to unify projections " + pa.String() + " and " + pb.String())
		}
		if err := ctx.Unify(pa.Type(), pb.Type()); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *CommonContext) bindVariable(v, t *types.Type) error {
	if v.IsMarkedNullable() {
		if !t.IsMarkedNullable() {
			return errors.New("Failed to unify nullable type-parameter " + types.TypeString(v) + " with " + types.TypeString(t))
		}
		t = t.MakeNotNullable()
	}
	if occurs(v.Constructor(), t) {
		return errors.New("Implicitly recursive types are not supported: " + types.TypeString(v) + " in " + types.TypeString(t))
	}
	ctx.Bind(v.Constructor(), t)
	return nil
}

func occurs(c *types.Constructor, t *types.Type) bool {
	return TypeConstructorUsedInType(t, c.Equal)
}
