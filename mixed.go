package quantity

import (
	"fmt"
	"math"
)

// Convert returns quantity q represented by N.
// Infinity is preserved.
// See also function [Narrow].
//
// Convert returns an error wrapping [ErrNarrowing] if a conversion from M to N
// could lose values, for example from int64 to int32.
func Convert[N, M Signed](q Quantity[M]) (Quantity[N], error) {
	if !IsNonNarrowing[M, N]() {
		return Quantity[N]{}, fmt.Errorf("converting %v from %T to %T: %w", q, q, Quantity[N]{}, ErrNarrowing)
	}
	return Narrow[N](q), nil
}

// Narrow returns quantity q represented by N, even if N is narrower than M.
// Infinity and finite values greater than MAX(N) become [Infinity].
// It is the intentional way to move a quantity into a smaller representation.
// See also function [Convert].
func Narrow[N, M Signed](q Quantity[M]) Quantity[N] {
	if q.IsInf() {
		return Infinity[N]()
	}
	return fromInt[N](q.v)
}

// common converts quantities a and b to their common representation C.
func common[C, A, B Signed](a Quantity[A], b Quantity[B]) (Quantity[C], Quantity[C], error) {
	if !IsCommon[C, A, B]() {
		var c Quantity[C]
		return c, c, fmt.Errorf("%T and %T into %T: %w", a, b, c, ErrNarrowing)
	}
	return Narrow[C](a), Narrow[C](b), nil
}

// commonInt converts quantity q and integer v to their common representation C.
func commonInt[C, N Signed, T Integer](q Quantity[N], v T) (Quantity[C], Quantity[C], error) {
	if !IsNonNarrowing[N, C]() || !IsNonNarrowing[T, C]() {
		var c Quantity[C]
		return c, c, fmt.Errorf("%T and %T into %T: %w", q, v, c, ErrNarrowing)
	}
	return Narrow[C](q), fromInt[C](v), nil
}

// Add returns the sum of quantities a and b represented by their common type C.
// See also method [Quantity.Add].
//
// Add returns an error if C is not a common type of A and B,
// see function [IsCommon].
func Add[C, A, B Signed](a Quantity[A], b Quantity[B]) (Quantity[C], error) {
	x, y, err := common[C](a, b)
	if err != nil {
		return Quantity[C]{}, fmt.Errorf("computing [%v + %v]: %w", a, b, err)
	}
	return x.Add(y), nil
}

// Sub returns the difference between quantities a and b represented by their
// common type C.
// See also method [Quantity.Sub].
//
// Sub returns an error if C is not a common type of A and B,
// see function [IsCommon].
func Sub[C, A, B Signed](a Quantity[A], b Quantity[B]) (Quantity[C], error) {
	x, y, err := common[C](a, b)
	if err != nil {
		return Quantity[C]{}, fmt.Errorf("computing [%v - %v]: %w", a, b, err)
	}
	return x.Sub(y), nil
}

// Mul returns the product of quantities a and b represented by their common
// type C.
// See also method [Quantity.Mul].
//
// Mul returns an error if C is not a common type of A and B,
// see function [IsCommon].
func Mul[C, A, B Signed](a Quantity[A], b Quantity[B]) (Quantity[C], error) {
	x, y, err := common[C](a, b)
	if err != nil {
		return Quantity[C]{}, fmt.Errorf("computing [%v * %v]: %w", a, b, err)
	}
	return x.Mul(y), nil
}

// AddInt returns the sum of quantity q and integer v as a plain integer of the
// common type C. Negative integers count as 0.
// An infinite result is returned as MAX(C).
//
// AddInt returns an error if C is not a common type of N and T.
func AddInt[C, N Signed, T Integer](q Quantity[N], v T) (C, error) {
	x, y, err := commonInt[C](q, v)
	if err != nil {
		return 0, fmt.Errorf("computing [%v + %v]: %w", q, v, err)
	}
	return x.Add(y).Count(), nil
}

// IntAdd is like [AddInt] with the operands swapped.
func IntAdd[C Signed, T Integer, N Signed](v T, q Quantity[N]) (C, error) {
	x, y, err := commonInt[C](q, v)
	if err != nil {
		return 0, fmt.Errorf("computing [%v + %v]: %w", v, q, err)
	}
	return y.Add(x).Count(), nil
}

// SubInt returns the difference between quantity q and integer v as a plain
// integer of the common type C. The difference never goes below 0 and
// negative integers count as 0.
// An infinite result is returned as MAX(C).
//
// SubInt returns an error if C is not a common type of N and T.
func SubInt[C, N Signed, T Integer](q Quantity[N], v T) (C, error) {
	x, y, err := commonInt[C](q, v)
	if err != nil {
		return 0, fmt.Errorf("computing [%v - %v]: %w", q, v, err)
	}
	return x.Sub(y).Count(), nil
}

// IntSub returns the difference between integer v and quantity q as a plain
// integer of the common type C.
// It is not the negation of [SubInt]: both floor at 0.
//
// IntSub returns an error if C is not a common type of T and N.
func IntSub[C Signed, T Integer, N Signed](v T, q Quantity[N]) (C, error) {
	x, y, err := commonInt[C](q, v)
	if err != nil {
		return 0, fmt.Errorf("computing [%v - %v]: %w", v, q, err)
	}
	return y.Sub(x).Count(), nil
}

// MulInt returns the product of quantity q and integer v as a plain integer
// of the common type C. Negative integers count as 0.
// An infinite result is returned as MAX(C).
//
// MulInt returns an error if C is not a common type of N and T.
func MulInt[C, N Signed, T Integer](q Quantity[N], v T) (C, error) {
	x, y, err := commonInt[C](q, v)
	if err != nil {
		return 0, fmt.Errorf("computing [%v * %v]: %w", q, v, err)
	}
	return x.Mul(y).Count(), nil
}

// IntMul is like [MulInt] with the operands swapped.
func IntMul[C Signed, T Integer, N Signed](v T, q Quantity[N]) (C, error) {
	x, y, err := commonInt[C](q, v)
	if err != nil {
		return 0, fmt.Errorf("computing [%v * %v]: %w", v, q, err)
	}
	return y.Mul(x).Count(), nil
}

// Cmp compares quantities with different representations and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
//
// See also method [Quantity.Cmp].
func Cmp[A, B Signed](a Quantity[A], b Quantity[B]) int {
	return Narrow[int64](a).Cmp(Narrow[int64](b))
}

// CmpInt compares quantity q with integer v and returns:
//
//	-1 if q < v
//	 0 if q = v
//	+1 if q > v
//
// The integer is always finite, so an infinite quantity is greater than
// any integer. Every quantity is greater than a negative integer.
func CmpInt[N Signed, T Integer](q Quantity[N], v T) int {
	switch {
	case q.IsInf(), v < 0:
		return 1
	case IsUnsigned[T]() && uint64(v) > math.MaxInt64:
		return -1
	}
	switch w := int64(v); {
	case int64(q.v) < w:
		return -1
	case int64(q.v) > w:
		return 1
	}
	return 0
}
