/*
Package quantity implements saturating non-negative integer counts with
an explicit infinity.
A [Quantity] is an element of the extended non-negative integers
{0, 1, …, MAX, ∞}: it is never negative, never overflows silently and
never wraps around.

# Features

  - Immutable quantities, ensuring safe usage across multiple goroutines
  - Any signed integer type as the representation, see [Int8], [Int16], [Int32] and [Int64]
  - Saturating addition, subtraction and multiplication
  - Total ordering with infinity greater than every finite quantity
  - Interoperation between representations and with plain integers
  - Conversion to and from decimals, text, JSON, BSON and SQL values

# Representation

A Quantity[N] stores a single value of type N.
Finite quantities are stored as themselves, in the range [0, MAX(N)].
Infinity is stored as the only negative value the type ever holds.
The encoding is canonical, so quantities can be compared with == and used
as map keys, but it is never observable through the API: [Quantity.Count]
returns MAX(N) for an infinite quantity.

# Operations

Addition saturates at [Max]; infinity absorbs any finite operand.

Subtraction floors at 0; ∞ - ∞ is 0 and q - ∞ is 0 for finite q.

Multiplication saturates at [Max]; 0 is absorbing even against infinity,
so 0 * ∞ is 0.

Division is not provided.

# Representations

Quantities with different representations are combined in a common
representation chosen by the caller, see [Add], [Sub], [Mul] and [IsCommon].
Combining a quantity with a plain integer returns a plain integer,
see [AddInt], [SubInt] and [MulInt].
Conversions that could lose values are reported with [ErrNarrowing];
[Narrow] is the explicit way to move a quantity into a smaller representation,
turning values that do not fit into infinity.

# Errors

Arithmetic on quantities of the same representation never fails.
Errors are returned when parsing quantities, when converting between
representations would be narrowing, and when decoding invalid data.
*/
package quantity
