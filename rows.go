// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

import "math"

// Kind identifies the variant held by a Value. KindNone has no ColumnType
// counterpart: it marks a cell with neither row storage nor a default.
type Kind int8

// KindNone and the 13 typed kinds, numerically aligned with ColumnType so a
// column's type tag can be widened directly into a Kind.
const (
	KindNone    Kind = -1
	KindUint8   Kind = Kind(TypeUint8)
	KindInt8    Kind = Kind(TypeInt8)
	KindUint16  Kind = Kind(TypeUint16)
	KindInt16   Kind = Kind(TypeInt16)
	KindUint32  Kind = Kind(TypeUint32)
	KindInt32   Kind = Kind(TypeInt32)
	KindUint64  Kind = Kind(TypeUint64)
	KindInt64   Kind = Kind(TypeInt64)
	KindFloat32 Kind = Kind(TypeFloat32)
	KindFloat64 Kind = Kind(TypeFloat64)
	KindString  Kind = Kind(TypeString)
	KindData    Kind = Kind(TypeData)
	KindGuid    Kind = Kind(TypeGuid)
)

// Data addresses a byte range in a table's data pool.
type Data struct {
	Offset uint32
	Length uint32
}

// IsZero reports whether this reference addresses an empty range, which the
// format treats as equivalent to absent.
func (d Data) IsZero() bool { return d.Length == 0 }

// Value is a tagged union over the 13 UTF table cell types plus None. Use
// Kind to discriminate, then the matching accessor. A String cell holds its
// string-pool offset, read with Uint32; String returns the empty string for
// values decoded from a table.
type Value struct {
	Kind Kind
	bits uint64
	str  string
	data Data
	guid [16]byte
}

func (v Value) Uint8() uint8     { return uint8(v.bits) }
func (v Value) Int8() int8       { return int8(v.bits) }
func (v Value) Uint16() uint16   { return uint16(v.bits) }
func (v Value) Int16() int16     { return int16(v.bits) }
func (v Value) Uint32() uint32   { return uint32(v.bits) }
func (v Value) Int32() int32     { return int32(v.bits) }
func (v Value) Uint64() uint64   { return v.bits }
func (v Value) Int64() int64     { return int64(v.bits) }
func (v Value) Float32() float32 { return math.Float32frombits(uint32(v.bits)) }
func (v Value) Float64() float64 { return math.Float64frombits(v.bits) }
func (v Value) String() string   { return v.str }
func (v Value) Data() Data       { return v.data }
func (v Value) Guid() [16]byte   { return v.guid }

// IsNone reports whether this cell carries no value at all.
func (v Value) IsNone() bool { return v.Kind == KindNone }

// readValue decodes a single value of the given type at offset, returning
// the value and the number of bytes consumed. string/data values resolve
// string-pool/data-pool references lazily elsewhere; here they are captured
// as raw offsets (String) or an Offset/Length pair (Data).
func readValue(s *source, offset uint64, typ ColumnType) (Value, uint64, error) {
	switch typ {
	case TypeUint8:
		b, err := s.uint8At(offset)
		return Value{Kind: Kind(typ), bits: uint64(b)}, 1, err
	case TypeInt8:
		b, err := s.uint8At(offset)
		return Value{Kind: Kind(typ), bits: uint64(b)}, 1, err
	case TypeUint16:
		x, err := s.beUint16At(offset)
		return Value{Kind: Kind(typ), bits: uint64(x)}, 2, err
	case TypeInt16:
		x, err := s.beUint16At(offset)
		return Value{Kind: Kind(typ), bits: uint64(x)}, 2, err
	case TypeUint32:
		x, err := s.beUint32At(offset)
		return Value{Kind: Kind(typ), bits: uint64(x)}, 4, err
	case TypeInt32:
		x, err := s.beUint32At(offset)
		return Value{Kind: Kind(typ), bits: uint64(x)}, 4, err
	case TypeUint64:
		x, err := s.beUint64At(offset)
		return Value{Kind: Kind(typ), bits: x}, 8, err
	case TypeInt64:
		x, err := s.beUint64At(offset)
		return Value{Kind: Kind(typ), bits: x}, 8, err
	case TypeFloat32:
		x, err := s.beUint32At(offset)
		return Value{Kind: Kind(typ), bits: uint64(x)}, 4, err
	case TypeFloat64:
		x, err := s.beUint64At(offset)
		return Value{Kind: Kind(typ), bits: x}, 8, err
	case TypeString:
		x, err := s.beUint32At(offset)
		return Value{Kind: Kind(typ), bits: uint64(x)}, 4, err
	case TypeData:
		off, err := s.beUint32At(offset)
		if err != nil {
			return Value{}, 8, err
		}
		length, err := s.beUint32At(offset + 4)
		return Value{Kind: Kind(typ), data: Data{Offset: off, Length: length}}, 8, err
	case TypeGuid:
		b, err := s.bytesAt(offset, 16)
		if err != nil {
			return Value{}, 16, err
		}
		var g [16]byte
		copy(g[:], b)
		return Value{Kind: Kind(typ), guid: g}, 16, nil
	default:
		return Value{}, 0, ErrUnknownColumnType
	}
}

// Row is one decoded table row: one Value per column, in column order.
type Row []Value

// readRows decodes h.rowCount rows of h.rowSize bytes each, starting at
// h.rowsOffset. Only a row-stored column reads its cell from the row bytes;
// every other column (whether or not it carries a default) yields KindNone
// here — default substitution is the caller's responsibility, matching
// create_row in the schema this format is ported from.
func readRows(s *source, h tableHeader, cols []column) ([]Row, error) {
	rows := make([]Row, h.rowCount)
	for r := uint32(0); r < h.rowCount; r++ {
		rowBase := uint64(h.rowsOffset) + uint64(r)*uint64(h.rowSize)
		row := make(Row, len(cols))
		cellOffset := rowBase
		for ci, col := range cols {
			if col.hasStorage {
				val, consumed, err := readValue(s, cellOffset, col.typ)
				if err != nil {
					return nil, err
				}
				row[ci] = val
				cellOffset += consumed
				continue
			}
			row[ci] = Value{Kind: KindNone}
		}
		rows[r] = row
	}
	return rows, nil
}
