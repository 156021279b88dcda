package quantity

import "unsafe"

//go:generate go run scripts/repr/codegen.go

// Signed is a constraint that permits any signed integer type.
// Quantities are always represented by a signed integer, because the
// negative half of the representation is where infinity is stored.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	Signed | Unsigned
}

// bitsOf returns the width of T in bits.
func bitsOf[T Integer]() int {
	var z T
	return int(unsafe.Sizeof(z)) * 8
}

// maxOf returns the largest value representable by N.
func maxOf[N Signed]() N {
	return N(uint64(1)<<(bitsOf[N]()-1) - 1)
}

// fits reports whether a non-negative v is at most the largest value
// representable by N.
func fits[N Signed, T Integer](v T) bool {
	if IsUnsigned[T]() {
		return uint64(v) <= uint64(maxOf[N]())
	}
	return int64(v) <= int64(maxOf[N]())
}

// IsUnsigned returns true if T is an unsigned integer type.
func IsUnsigned[T Integer]() bool {
	var z T
	return ^z > 0
}

// IsNonNarrowing returns true if every value of type From can be converted
// to type To without loss:
//
//   - signed to signed and unsigned to unsigned conversions are non-narrowing
//     if To is at least as wide as From;
//   - unsigned to signed conversions are non-narrowing if To is strictly
//     wider than From;
//   - signed to unsigned conversions are always narrowing.
func IsNonNarrowing[From, To Integer]() bool {
	fb, tb := bitsOf[From](), bitsOf[To]()
	switch fu, tu := IsUnsigned[From](), IsUnsigned[To](); {
	case fu == tu:
		return fb <= tb
	case fu:
		return fb < tb
	default:
		return false
	}
}

// IsCommon returns true if C can hold every value of both A and B,
// that is, if C is a valid common type for an operation on A and B.
// See also function [IsNonNarrowing].
func IsCommon[C, A, B Integer]() bool {
	return IsNonNarrowing[A, C]() && IsNonNarrowing[B, C]()
}

// Limits describes the range of quantities represented by N.
// It is supplied alongside [Quantity] for generic code that needs
// to know the canonical bounds of a representation.
// The zero value is ready to use.
type Limits[N Signed] struct{}

// Bits returns the width of the representation in bits.
func (Limits[N]) Bits() int {
	return bitsOf[N]()
}

// Lowest returns the smallest quantity, which is always zero.
func (Limits[N]) Lowest() Quantity[N] {
	return Zero[N]()
}

// Min returns the smallest quantity, which is always zero.
func (Limits[N]) Min() Quantity[N] {
	return Zero[N]()
}

// Max returns the largest finite quantity.
func (Limits[N]) Max() Quantity[N] {
	return Max[N]()
}

// Infinity returns the infinite quantity.
func (Limits[N]) Infinity() Quantity[N] {
	return Infinity[N]()
}

// HasInfinity always returns true.
func (Limits[N]) HasInfinity() bool {
	return true
}

// IsSigned always returns false: quantities are never negative,
// even though they are represented by a signed integer.
func (Limits[N]) IsSigned() bool {
	return false
}

// IsInteger always returns true.
func (Limits[N]) IsInteger() bool {
	return true
}
