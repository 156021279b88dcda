package quantity

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/govalues/decimal"
)

var (
	// ErrNarrowing is returned when a conversion between representation
	// types could lose values.
	// See also function [IsNonNarrowing].
	ErrNarrowing = errors.New("narrowing conversion")

	errInvalidQuantity  = errors.New("invalid quantity")
	errNegativeQuantity = errors.New("negative quantity")
	errInvalidRange     = errors.New("invalid range")
)

// infVal is the only negative value a quantity ever stores.
const infVal = -1

// Quantity type represents a non-negative count that is either finite,
// in the range [0, MAX(N)], or infinite.
// Its zero value corresponds to 0.
//
// Arithmetic on quantities saturates at [Max] instead of overflowing and
// treats [Infinity] as an absorbing state.
// Quantity is designed to be safe for concurrent use by multiple goroutines.
type Quantity[N Signed] struct {
	v N // finite value, or infVal
}

// New returns a quantity equal to v.
// Negative values are clamped to 0.
func New[N Signed](v N) Quantity[N] {
	if v < 0 {
		return Zero[N]()
	}
	return Quantity[N]{v: v}
}

// NewFrom returns a quantity equal to v, where v may be of any integer type.
// Negative values are clamped to 0 and values greater than MAX(N)
// become [Infinity].
//
// NewFrom returns an error wrapping [ErrNarrowing] if a conversion from T to N
// could lose values, even if v itself fits.
// For example, NewFrom[int32](int64(1)) fails, while NewFrom[int64](int32(1))
// and NewFrom[int64](uint32(1)) succeed.
func NewFrom[N Signed, T Integer](v T) (Quantity[N], error) {
	if !IsNonNarrowing[T, N]() {
		return Quantity[N]{}, fmt.Errorf("converting %T to %T: %w", v, Quantity[N]{}, ErrNarrowing)
	}
	return fromInt[N](v), nil
}

// MustNewFrom is like [NewFrom] but panics if the conversion is narrowing.
// It simplifies safe initialization of global variables holding quantities.
func MustNewFrom[N Signed, T Integer](v T) Quantity[N] {
	q, err := NewFrom[N](v)
	if err != nil {
		panic(fmt.Sprintf("NewFrom(%v) failed: %v", v, err))
	}
	return q
}

// fromInt converts an integer to a quantity without checking for narrowing.
func fromInt[N Signed, T Integer](v T) Quantity[N] {
	switch {
	case v < 0:
		return Zero[N]()
	case !fits[N](v):
		return Infinity[N]()
	}
	return Quantity[N]{v: N(v)}
}

// NewFromDecimal converts a decimal to a quantity.
// Negative decimals are clamped to 0 and decimals greater than MAX(N)
// become [Infinity].
// See also method [Quantity.Decimal].
//
// NewFromDecimal returns an error if the decimal has a non-zero fractional part.
func NewFromDecimal[N Signed](d decimal.Decimal) (Quantity[N], error) {
	if !d.IsInt() {
		return Quantity[N]{}, fmt.Errorf("converting decimal %v: %w", d, errInvalidQuantity)
	}
	if d.IsNeg() {
		return Zero[N](), nil
	}
	whole, _, ok := d.Int64(0)
	if !ok {
		return Infinity[N](), nil
	}
	return fromInt[N](whole), nil
}

// Zero returns the quantity 0.
func Zero[N Signed]() Quantity[N] {
	return Quantity[N]{}
}

// Max returns the largest finite quantity, MAX(N).
func Max[N Signed]() Quantity[N] {
	return Quantity[N]{v: maxOf[N]()}
}

// Infinity returns the infinite quantity.
func Infinity[N Signed]() Quantity[N] {
	return Quantity[N]{v: infVal}
}

// Count returns the finite value of the quantity.
// For an infinite quantity it returns MAX(N), so the sentinel encoding
// is never observable.
// See also method [Quantity.Int64].
func (q Quantity[N]) Count() N {
	if q.IsInf() {
		return maxOf[N]()
	}
	return q.v
}

// Int64 returns the value of the quantity as an int64.
// If the quantity is infinite, then false is returned.
func (q Quantity[N]) Int64() (v int64, ok bool) {
	if q.IsInf() {
		return 0, false
	}
	return int64(q.v), true
}

// Float64 returns the value of the quantity as a float.
// An infinite quantity is converted to +Inf.
// This conversion may lose data, as float64 has a smaller precision
// than int64.
func (q Quantity[N]) Float64() float64 {
	if q.IsInf() {
		return math.Inf(1)
	}
	return float64(q.v)
}

// Decimal returns the decimal representation of the quantity.
// If the quantity is infinite, then false is returned.
// See also constructor [NewFromDecimal].
func (q Quantity[N]) Decimal() (d decimal.Decimal, ok bool) {
	if q.IsInf() {
		return decimal.Decimal{}, false
	}
	d, err := decimal.New(int64(q.v), 0)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// IsInf returns:
//
//	true  if q = ∞
//	false otherwise
func (q Quantity[N]) IsInf() bool {
	return q.v < 0
}

// IsFinite returns:
//
//	true  if q ≠ ∞
//	false otherwise
//
// Zero is finite. See also method [Quantity.IsPos].
func (q Quantity[N]) IsFinite() bool {
	return !q.IsInf()
}

// IsPos returns:
//
//	true  if 0 < q < ∞
//	false otherwise
func (q Quantity[N]) IsPos() bool {
	return q.v > 0
}

// IsZero returns:
//
//	true  if q = 0
//	false otherwise
func (q Quantity[N]) IsZero() bool {
	return q.v == 0
}

// IsMax returns:
//
//	true  if q = MAX(N)
//	false otherwise
func (q Quantity[N]) IsMax() bool {
	return q.v == maxOf[N]()
}

// Add returns the sum of quantities q and b.
// If the sum exceeds MAX(N), the result is MAX(N).
// If either quantity is infinite, the result is infinite.
func (q Quantity[N]) Add(b Quantity[N]) Quantity[N] {
	switch {
	case q.IsInf() || b.IsInf():
		return Infinity[N]()
	case maxOf[N]()-q.v < b.v:
		return Max[N]()
	}
	return Quantity[N]{v: q.v + b.v}
}

// Sub returns the difference between quantities q and b.
// The difference never goes below 0:
//
//	  ∞ - ∞ = 0
//	  ∞ - b = ∞
//	  q - ∞ = 0
//	  q - b = 0      if q <= b
func (q Quantity[N]) Sub(b Quantity[N]) Quantity[N] {
	switch {
	case q.IsInf() && b.IsInf():
		return Zero[N]()
	case q.IsInf():
		return Infinity[N]()
	case b.IsInf(), q.v <= b.v:
		return Zero[N]()
	}
	return Quantity[N]{v: q.v - b.v}
}

// Mul returns the product of quantities q and b.
// Zero is absorbing, even against infinity:
//
//	0 * ∞ = 0
//	q * ∞ = ∞      if q > 0
//
// If the product exceeds MAX(N), the result is MAX(N).
func (q Quantity[N]) Mul(b Quantity[N]) Quantity[N] {
	switch {
	case q.IsZero() || b.IsZero():
		return Zero[N]()
	case q.IsInf() || b.IsInf():
		return Infinity[N]()
	case q.v > maxOf[N]()/b.v:
		return Max[N]()
	}
	return Quantity[N]{v: q.v * b.v}
}

// Inc returns q + 1.
// Infinity and MAX(N) are returned unchanged.
func (q Quantity[N]) Inc() Quantity[N] {
	if q.IsInf() || q.IsMax() {
		return q
	}
	return Quantity[N]{v: q.v + 1}
}

// Dec returns q - 1.
// Zero and infinity are returned unchanged.
func (q Quantity[N]) Dec() Quantity[N] {
	if !q.IsPos() {
		return q
	}
	return Quantity[N]{v: q.v - 1}
}

// Sum returns the sum of the quantities.
// Sum of no quantities is 0.
// See also method [Quantity.Add].
func Sum[N Signed](qs ...Quantity[N]) Quantity[N] {
	s := Zero[N]()
	for _, q := range qs {
		s = s.Add(q)
		if s.IsInf() {
			break
		}
	}
	return s
}

// Cmp compares quantities and returns:
//
//	-1 if q < b
//	 0 if q = b
//	+1 if q > b
//
// Infinity is greater than every finite quantity and equal to itself.
func (q Quantity[N]) Cmp(b Quantity[N]) int {
	switch {
	case q.IsInf() && b.IsInf():
		return 0
	case q.IsInf():
		return 1
	case b.IsInf():
		return -1
	case q.v < b.v:
		return -1
	case q.v > b.v:
		return 1
	}
	return 0
}

// Equal returns true if quantities are both infinite or have the same
// finite value.
func (q Quantity[N]) Equal(b Quantity[N]) bool {
	return (q.IsInf() && b.IsInf()) || (!q.IsInf() && !b.IsInf() && q.v == b.v)
}

// Less returns true if q < b.
func (q Quantity[N]) Less(b Quantity[N]) bool {
	return !q.IsInf() && (b.IsInf() || q.v < b.v)
}

// LessEq returns true if q <= b.
func (q Quantity[N]) LessEq(b Quantity[N]) bool {
	return b.IsInf() || (!q.IsInf() && q.v <= b.v)
}

// Greater returns true if q > b.
func (q Quantity[N]) Greater(b Quantity[N]) bool {
	return !b.IsInf() && (q.IsInf() || q.v > b.v)
}

// GreaterEq returns true if q >= b.
func (q Quantity[N]) GreaterEq(b Quantity[N]) bool {
	return q.IsInf() || (!b.IsInf() && q.v >= b.v)
}

// Min returns the smaller quantity.
// See also method [Quantity.Cmp].
func (q Quantity[N]) Min(b Quantity[N]) Quantity[N] {
	if q.LessEq(b) {
		return q
	}
	return b
}

// Max returns the larger quantity.
// See also method [Quantity.Cmp].
func (q Quantity[N]) Max(b Quantity[N]) Quantity[N] {
	if q.GreaterEq(b) {
		return q
	}
	return b
}

// Clamp compares quantities and returns:
//
//	min if q < min
//	max if q > max
//	  q otherwise
//
// Clamp returns an error if min is greater than max.
func (q Quantity[N]) Clamp(min, max Quantity[N]) (Quantity[N], error) {
	switch {
	case min.Greater(max):
		return Quantity[N]{}, fmt.Errorf("clamping %v to [%v, %v]: %w", q, min, max, errInvalidRange)
	case q.Less(min):
		return min, nil
	case q.Greater(max):
		return max, nil
	}
	return q, nil
}

// appendTo appends the plain text form of the quantity to text.
func (q Quantity[N]) appendTo(text []byte) []byte {
	if q.IsInf() {
		return append(text, "inf"...)
	}
	return strconv.AppendInt(text, int64(q.v), 10)
}

// String implements the [fmt.Stringer] interface and returns the decimal
// digits of the quantity, or "inf" if the quantity is infinite.
// See also method [Quantity.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (q Quantity[N]) String() string {
	return string(q.appendTo(make([]byte, 0, 20)))
}

// LogValue implements the [slog.LogValuer] interface.
// Finite quantities are logged as integers, infinity as "inf".
//
// [slog.LogValuer]: https://pkg.go.dev/log/slog#LogValuer
func (q Quantity[N]) LogValue() slog.Value {
	if q.IsInf() {
		return slog.StringValue("inf")
	}
	return slog.Int64Value(int64(q.v))
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb       | Example | Infinity | Description     |
//	| ---------- | ------- | -------- | --------------- |
//	| %s, %v, %d | 42      | inf      | Quantity        |
//	| %q         | "42"    | "inf"    | Quoted quantity |
//	| %#v        | #42     | oo       | Pretty quantity |
//
// The '#' flag selects the pretty form and can be used with all verbs.
// The '-' format flag can be used with all verbs.
// The '0' format flag can be used with the %d verb on finite quantities.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (q Quantity[N]) Format(state fmt.State, verb rune) {
	// Symbols
	var syms []byte
	switch pretty := state.Flag('#'); {
	case pretty && q.IsInf():
		syms = []byte("oo")
	case pretty:
		syms = q.appendTo([]byte{'#'})
	default:
		syms = q.appendTo(nil)
	}

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + len(syms) + tquote
	lspaces, lzeros, tspaces := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0') && (verb == 'd' || verb == 'D') && !state.Flag('#') && !q.IsInf():
			lzeros = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, width)
	pos := width - 1

	// Trailing spaces
	for range tspaces {
		buf[pos] = ' '
		pos--
	}

	// Closing quote
	for range tquote {
		buf[pos] = '"'
		pos--
	}

	// Symbols
	for i := range len(syms) {
		buf[pos] = syms[len(syms)-i-1]
		pos--
	}

	// Leading zeros
	for range lzeros {
		buf[pos] = '0'
		pos--
	}

	// Opening quote
	for range lquote {
		buf[pos] = '"'
		pos--
	}

	// Leading spaces
	for range lspaces {
		buf[pos] = ' '
		pos--
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'd', 'D':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(quantity.Quantity="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}
