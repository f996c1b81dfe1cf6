// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// Comparator orders two entities the way cmp.Compare orders two values.
type Comparator[T any] func(a, b T) int

func (c Comparator[T]) Reversed() Comparator[T] {
	return func(a, b T) int {
		return c(b, a)
	}
}

// Then returns a comparator consulting next whenever c considers both entities equal.
func (c Comparator[T]) Then(next Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		if result := c(a, b); result != 0 {
			return result
		}
		return next(a, b)
	}
}

func Ordered[T any, V constraints.Ordered](get func(T) V) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(get(a), get(b))
	}
}

// NullsLast orders nil values after all present values.
func NullsLast[T any, V constraints.Ordered](get func(T) *V) Comparator[T] {
	return func(a, b T) int {
		va, vb := get(a), get(b)
		switch {
		case va == nil && vb == nil:
			return 0
		case va == nil:
			return 1
		case vb == nil:
			return -1
		default:
			return cmp.Compare(*va, *vb)
		}
	}
}

// Bools orders false before true.
func Bools[T any](get func(T) bool) Comparator[T] {
	return func(a, b T) int {
		va, vb := get(a), get(b)
		switch {
		case va == vb:
			return 0
		case !va:
			return -1
		default:
			return 1
		}
	}
}
