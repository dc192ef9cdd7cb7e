package thirdvm

import "math"

// Value is a 32-bit cell with four interpretive views: i32, u32, f32, and an
// opaque pointer-sized payload. Storage is raw bits; the accessors are pure
// reinterpretations, never conversions. Equality is bitwise.
type Value uint32

// I32Value constructs a Value from its signed 32-bit view.
func I32Value(v int32) Value { return Value(uint32(v)) }

// U32Value constructs a Value from its unsigned 32-bit view.
func U32Value(v uint32) Value { return Value(v) }

// F32Value constructs a Value from its 32-bit float view.
func F32Value(v float32) Value { return Value(math.Float32bits(v)) }

// OpaqueValue constructs a Value from an opaque 32-bit payload, e.g. an
// address or dictionary id carried without further interpretation.
func OpaqueValue(v uint32) Value { return Value(v) }

// I32 reinterprets the cell as a signed 32-bit integer.
func (v Value) I32() int32 { return int32(v) }

// U32 reinterprets the cell as an unsigned 32-bit integer.
func (v Value) U32() uint32 { return uint32(v) }

// F32 reinterprets the cell as an IEEE-754 single-precision float.
func (v Value) F32() float32 { return math.Float32frombits(uint32(v)) }

// Opaque reinterprets the cell as an opaque 32-bit payload.
func (v Value) Opaque() uint32 { return uint32(v) }
