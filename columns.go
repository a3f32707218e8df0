// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

// ColumnType is the low-nibble type tag of a column descriptor flag byte.
type ColumnType uint8

// The 13 column types a UTF table column may declare.
const (
	TypeUint8 ColumnType = iota
	TypeInt8
	TypeUint16
	TypeInt16
	TypeUint32
	TypeInt32
	TypeUint64
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeData
	TypeGuid
)

// size returns the on-disk width of a row cell or default constant of this
// type; Data is the 8-byte (offset, length) pair, not the referenced bytes.
func (t ColumnType) size() (uint32, error) {
	switch t {
	case TypeUint8, TypeInt8:
		return 1, nil
	case TypeUint16, TypeInt16:
		return 2, nil
	case TypeUint32, TypeInt32, TypeFloat32, TypeString:
		return 4, nil
	case TypeUint64, TypeInt64, TypeFloat64, TypeData:
		return 8, nil
	case TypeGuid:
		return 16, nil
	default:
		return 0, ErrUnknownColumnType
	}
}

// columnFlag holds the three independent bits packed into a column
// descriptor's high nibble.
type columnFlag uint8

const (
	flagName         columnFlag = 1 << 4
	flagDefaultValue columnFlag = 1 << 5
	flagRowStorage   columnFlag = 1 << 6
)

const columnTypeMask = 0x0f

// column is one parsed column descriptor: its type, storage mode, the
// string-pool offset naming it, and (if present) its inline default value.
type column struct {
	typ         ColumnType
	hasName     bool
	hasDefault  bool
	hasStorage  bool
	nameOffset  uint32
	defaultVal  Value
}

// readColumns decodes h.columnCount column descriptors from the byte range
// starting immediately after the table header, advancing past any inline
// default constants as it goes. It returns the byte offset just past the
// last column, which must not exceed h.rowsOffset.
func readColumns(s *source, h tableHeader) ([]column, uint64, error) {
	cols := make([]column, 0, h.columnCount)
	offset := uint64(headerSize)

	for i := uint16(0); i < h.columnCount; i++ {
		flagByte, err := s.uint8At(offset)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		offset++

		nameOff, err := s.beUint32At(offset)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		offset += 4

		typ := ColumnType(flagByte & columnTypeMask)
		if _, err := typ.size(); err != nil {
			return nil, 0, err
		}
		flags := columnFlag(flagByte &^ columnTypeMask)

		col := column{
			typ:        typ,
			hasName:    flags&flagName != 0,
			hasStorage: flags&flagRowStorage != 0,
			nameOffset: nameOff,
		}

		if flags&flagDefaultValue != 0 {
			val, consumed, err := readValue(s, offset, typ)
			if err != nil {
				return nil, 0, err
			}
			col.hasDefault = true
			col.defaultVal = val
			offset += consumed
		}

		cols = append(cols, col)
	}

	if offset > uint64(h.rowsOffset) {
		return nil, 0, ErrMalformedHeader
	}
	return cols, offset, nil
}
