package quantity

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Parse converts a string to a quantity.
// The input string must be in one of the following formats:
//
//	42
//	+42
//	#42
//	inf
//	Infinity
//	oo
//
// Digits denoting a value greater than MAX(N) produce [Infinity].
// See also method [Quantity.String].
//
// Parse returns an error if the string is empty, negative,
// or contains anything but decimal digits.
func Parse[N Signed](s string) (Quantity[N], error) {
	q, err := parseQuantity[N](s)
	if err != nil {
		return Quantity[N]{}, fmt.Errorf("parsing quantity %q: %w", s, err)
	}
	return q, nil
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding quantities.
func MustParse[N Signed](s string) Quantity[N] {
	q, err := Parse[N](s)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q) failed: %v", s, err))
	}
	return q
}

func parseQuantity[N Signed](s string) (Quantity[N], error) {
	switch strings.ToLower(s) {
	case "inf", "+inf", "infinity", "+infinity", "oo", "∞":
		return Infinity[N](), nil
	}

	// Prefix
	if len(s) > 0 && (s[0] == '+' || s[0] == '#') {
		s = s[1:]
	}
	if len(s) == 0 {
		return Quantity[N]{}, errInvalidQuantity
	}
	if s[0] == '-' {
		return Quantity[N]{}, errNegativeQuantity
	}

	// Digits
	m := uint64(maxOf[N]())
	u, over := uint64(0), false
	for i := range len(s) {
		c := s[i]
		if c < '0' || c > '9' {
			return Quantity[N]{}, fmt.Errorf("%w: unexpected character %q", errInvalidQuantity, c)
		}
		if over {
			continue
		}
		d := uint64(c - '0')
		if u > (m-d)/10 {
			over = true
			continue
		}
		u = u*10 + d
	}
	if over {
		return Infinity[N](), nil
	}
	return Quantity[N]{v: N(u)}, nil
}

// NewFromUint64 converts an unsigned integer literal to a quantity.
// Literals greater than [math.MaxInt64] produce [Infinity].
// Unlike [NewFrom], it never reports a narrowing conversion:
// the range check is the intent.
func NewFromUint64(x uint64) Quantity[int64] {
	return fromInt[int64](x)
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (q *Quantity[N]) UnmarshalText(text []byte) error {
	var err error
	*q, err = Parse[N](string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", *q, err)
	}
	return nil
}

// AppendText implements the [encoding.TextAppender] interface.
// See also method [Quantity.String].
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (q Quantity[N]) AppendText(text []byte) ([]byte, error) {
	return q.appendTo(text), nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Quantity.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (q Quantity[N]) MarshalText() ([]byte, error) {
	return q.appendTo(nil), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
// The binary form is the same as the text form.
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (q *Quantity[N]) UnmarshalBinary(data []byte) error {
	var err error
	*q, err = Parse[N](string(data))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", *q, err)
	}
	return nil
}

// AppendBinary implements the [encoding.BinaryAppender] interface.
//
// [encoding.BinaryAppender]: https://pkg.go.dev/encoding#BinaryAppender
func (q Quantity[N]) AppendBinary(data []byte) ([]byte, error) {
	return q.appendTo(data), nil
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
func (q Quantity[N]) MarshalBinary() ([]byte, error) {
	return q.appendTo(nil), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Both JSON numbers and strings are accepted.
// See also constructor [Parse].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (q *Quantity[N]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	var err error
	*q, err = Parse[N](string(data))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", *q, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// Finite quantities are marshaled as JSON numbers, infinity as the string "inf".
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (q Quantity[N]) MarshalJSON() ([]byte, error) {
	if q.IsInf() {
		return []byte(`"inf"`), nil
	}
	return q.appendTo(nil), nil
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
// The following BSON types are supported: double, string, 32-bit integer
// and 64-bit integer. A double must be integral or +Inf.
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (q *Quantity[N]) UnmarshalBSONValue(typ byte, data []byte) error {
	// constants are from https://bsonspec.org/spec.html
	var err error
	switch typ {
	case 1:
		*q, err = parseBSONFloat64[N](data)
	case 2:
		*q, err = parseBSONString[N](data)
	case 10:
		// null, do nothing
	case 16:
		*q, err = parseBSONInt32[N](data)
	case 18:
		*q, err = parseBSONInt64[N](data)
	default:
		err = fmt.Errorf("BSON type %d is not supported", typ)
	}
	if err != nil {
		err = fmt.Errorf("converting from BSON type %d to %T: %w", typ, *q, err)
	}
	return err
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// Finite quantities are marshaled as 64-bit integers, infinity as +Inf double.
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (q Quantity[N]) MarshalBSONValue() (typ byte, data []byte, err error) {
	data = make([]byte, 8)
	if q.IsInf() {
		binary.LittleEndian.PutUint64(data, math.Float64bits(math.Inf(1)))
		return 1, data, nil
	}
	binary.LittleEndian.PutUint64(data, uint64(q.v))
	return 18, data, nil
}

// parseBSONFloat64 parses a BSON double to a quantity.
// The byte order of the input data must be little-endian.
func parseBSONFloat64[N Signed](data []byte) (Quantity[N], error) {
	if len(data) < 8 {
		return Quantity[N]{}, fmt.Errorf("%w: invalid data length %v", errInvalidQuantity, len(data))
	}
	f := math.Float64frombits(binary.LittleEndian.Uint64(data))
	return fromFloat64[N](f)
}

// parseBSONString parses a BSON string to a quantity.
// The byte order of the input data must be little-endian.
func parseBSONString[N Signed](data []byte) (Quantity[N], error) {
	if len(data) < 4 {
		return Quantity[N]{}, fmt.Errorf("%w: invalid data length %v", errInvalidQuantity, len(data))
	}
	l := int(int32(binary.LittleEndian.Uint32(data))) //nolint:gosec
	if l < 1 || len(data) < l+4 {
		return Quantity[N]{}, fmt.Errorf("%w: invalid string length %v", errInvalidQuantity, l)
	}
	if data[l+4-1] != 0 {
		return Quantity[N]{}, fmt.Errorf("%w: invalid null terminator %v", errInvalidQuantity, data[l+4-1])
	}
	return parseQuantity[N](string(data[4 : l+4-1]))
}

// parseBSONInt32 parses a BSON 32-bit integer to a quantity.
func parseBSONInt32[N Signed](data []byte) (Quantity[N], error) {
	if len(data) < 4 {
		return Quantity[N]{}, fmt.Errorf("%w: invalid data length %v", errInvalidQuantity, len(data))
	}
	v := int32(binary.LittleEndian.Uint32(data)) //nolint:gosec
	if v < 0 {
		return Quantity[N]{}, errNegativeQuantity
	}
	return fromInt[N](v), nil
}

// parseBSONInt64 parses a BSON 64-bit integer to a quantity.
func parseBSONInt64[N Signed](data []byte) (Quantity[N], error) {
	if len(data) < 8 {
		return Quantity[N]{}, fmt.Errorf("%w: invalid data length %v", errInvalidQuantity, len(data))
	}
	v := int64(binary.LittleEndian.Uint64(data)) //nolint:gosec
	if v < 0 {
		return Quantity[N]{}, errNegativeQuantity
	}
	return fromInt[N](v), nil
}

// fromFloat64 converts an integral float or +Inf to a quantity.
// Floats greater than MAX(N) produce [Infinity].
func fromFloat64[N Signed](f float64) (Quantity[N], error) {
	switch {
	case math.IsInf(f, 1):
		return Infinity[N](), nil
	case math.IsNaN(f), math.IsInf(f, -1):
		return Quantity[N]{}, fmt.Errorf("%w: special value %v", errInvalidQuantity, f)
	case f < 0:
		return Quantity[N]{}, errNegativeQuantity
	case f != math.Trunc(f):
		return Quantity[N]{}, fmt.Errorf("%w: fractional value %v", errInvalidQuantity, f)
	case f >= math.MaxInt64:
		return Infinity[N](), nil
	}
	return fromInt[N](int64(f)), nil
}

// Scan implements the [sql.Scanner] interface.
// Integers, integral floats, +Inf and strings accepted by [Parse] are supported.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (q *Quantity[N]) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case int64:
		if value < 0 {
			err = errNegativeQuantity
			break
		}
		*q = fromInt[N](value)
	case float64:
		*q, err = fromFloat64[N](value)
	case string:
		*q, err = parseQuantity[N](value)
	case []byte:
		*q, err = parseQuantity[N](string(value))
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T or *%T", *q, NullQuantity[N]{}, *q)
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, *q, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// Finite quantities are stored as int64, infinity as the string "inf".
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (q Quantity[N]) Value() (driver.Value, error) {
	if q.IsInf() {
		return "inf", nil
	}
	return int64(q.v), nil
}

// NullQuantity represents a quantity that can be null.
// Its zero value is null.
// NullQuantity is not thread-safe.
type NullQuantity[N Signed] struct {
	Quantity Quantity[N]
	Valid    bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Quantity.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullQuantity[N]) Scan(value any) error {
	if value == nil {
		n.Quantity = Quantity[N]{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Quantity.Scan(value)
}

// Value implements the [driver.Valuer] interface.
// See also method [Quantity.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullQuantity[N]) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Quantity.Value()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also method [Quantity.UnmarshalJSON].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (n *NullQuantity[N]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Quantity = Quantity[N]{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Quantity.UnmarshalJSON(data)
}

// MarshalJSON implements the [json.Marshaler] interface.
// See also method [Quantity.MarshalJSON].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (n NullQuantity[N]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Quantity.MarshalJSON()
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
// See also method [Quantity.UnmarshalBSONValue].
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (n *NullQuantity[N]) UnmarshalBSONValue(typ byte, data []byte) error {
	if typ == 10 {
		n.Quantity = Quantity[N]{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Quantity.UnmarshalBSONValue(typ, data)
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// See also method [Quantity.MarshalBSONValue].
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (n NullQuantity[N]) MarshalBSONValue() (typ byte, data []byte, err error) {
	if !n.Valid {
		return 10, nil, nil
	}
	return n.Quantity.MarshalBSONValue()
}
