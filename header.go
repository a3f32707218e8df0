// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

// headerOffset is the byte bias applied to every offset field in the table
// header: offsets on disk are relative to the byte following the
// signature/length pair, not to the start of the table.
const headerOffset = 0x8

// headerSize is the fixed size of the table header preamble.
const headerSize = 0x20

// stringEncoding selects how the string pool's bytes are decoded.
type stringEncoding uint8

const (
	encodingShiftJIS stringEncoding = 0
	encodingUTF8     stringEncoding = 1
)

// tableHeader is a thin, bounds-checked view over the first 0x20 bytes of a
// UTF table. All offset accessors return table-relative offsets (already
// biased by headerOffset), matching the layout:
//
//	0x0  u32 signature
//	0x4  u32 length
//	0x9  u8  encoding tag
//	0xa  u16 rows offset       (+headerOffset)
//	0xc  u32 string pool offset (+headerOffset)
//	0x10 u32 data pool offset   (+headerOffset)
//	0x14 u32 table name string ref
//	0x18 u16 column count
//	0x1a u16 row size
//	0x1c u32 row count
type tableHeader struct {
	size            uint32
	encoding        stringEncoding
	rowsOffset      uint32
	stringPoolOff   uint32
	dataPoolOff     uint32
	nameRef         uint32
	columnCount     uint16
	rowSize         uint16
	rowCount        uint32
}

// parseTableHeader reads a table header out of a table's own byte slice
// (i.e. the slice starts at the table's signature, not at the container
// frame). tbl must be at least headerSize bytes long.
func parseTableHeader(tbl []byte) (tableHeader, error) {
	if len(tbl) < headerSize {
		return tableHeader{}, ErrMalformedHeader
	}
	s := newSource(tbl)

	size, err := s.beUint32At(0x4)
	if err != nil {
		return tableHeader{}, ErrMalformedHeader
	}
	encByte, err := s.uint8At(0x9)
	if err != nil {
		return tableHeader{}, ErrMalformedHeader
	}
	rowsOff, err := s.beUint16At(0xa)
	if err != nil {
		return tableHeader{}, ErrMalformedHeader
	}
	strPoolOff, err := s.beUint32At(0xc)
	if err != nil {
		return tableHeader{}, ErrMalformedHeader
	}
	dataPoolOff, err := s.beUint32At(0x10)
	if err != nil {
		return tableHeader{}, ErrMalformedHeader
	}
	nameRef, err := s.beUint32At(0x14)
	if err != nil {
		return tableHeader{}, ErrMalformedHeader
	}
	colCount, err := s.beUint16At(0x18)
	if err != nil {
		return tableHeader{}, ErrMalformedHeader
	}
	rowSize, err := s.beUint16At(0x1a)
	if err != nil {
		return tableHeader{}, ErrMalformedHeader
	}
	rowCount, err := s.beUint32At(0x1c)
	if err != nil {
		return tableHeader{}, ErrMalformedHeader
	}

	enc := encodingUTF8
	if encByte == 0 {
		enc = encodingShiftJIS
	}

	h := tableHeader{
		size:          size,
		encoding:      enc,
		rowsOffset:    uint32(rowsOff) + headerOffset,
		stringPoolOff: strPoolOff + headerOffset,
		dataPoolOff:   dataPoolOff + headerOffset,
		nameRef:       nameRef,
		columnCount:   colCount,
		rowSize:       rowSize,
		rowCount:      rowCount,
	}

	// Monotonic-offsets invariant (§3/§9): rows <= strings <= data <= length.
	if h.rowsOffset > h.stringPoolOff || h.stringPoolOff > h.dataPoolOff || uint64(h.dataPoolOff) > uint64(h.size)+headerOffset {
		return tableHeader{}, ErrMalformedHeader
	}
	return h, nil
}
