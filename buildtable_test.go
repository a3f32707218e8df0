// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

import "encoding/binary"

// putBE32 overwrites 4 bytes at offset in buf with v, big-endian. Used by
// tests that need to patch a cell after buildUTFTable has already laid out
// the table (e.g. to point a string cell at a pool offset computed later).
func putBE32(buf []byte, offset uint64, v uint32) {
	binary.BigEndian.PutUint32(buf[offset:offset+4], v)
}

// colSpec describes one column of a synthesized UTF table for testing.
// defaultVal is only consulted when hasDefault is true; row cells for a
// hasStorage column come from buildUTFTable's rows argument.
type colSpec struct {
	name       string
	typ        ColumnType
	hasDefault bool
	defaultVal []byte
	hasStorage bool
}

// encodeUint BE-encodes a single cell value of typ for inclusion in either a
// row's storage bytes or a column's inline default, matching the layouts
// readValue expects.
func encodeUint(typ ColumnType, v uint64) []byte {
	switch typ {
	case TypeUint8, TypeInt8:
		return []byte{byte(v)}
	case TypeUint16, TypeInt16:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(v))
		return b
	case TypeUint32, TypeInt32, TypeFloat32, TypeString:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(v))
		return b
	default:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, v)
		return b
	}
}

// buildUTFTable assembles a complete, unencrypted UTF table (starting at its
// "@UTF" signature) out of a column spec list and per-row storage cells.
// rows[r][i] supplies the encoded bytes for cols[i] when cols[i].hasStorage;
// it is ignored otherwise. Every column is named, and names plus any string
// cell values (passed pre-resolved as pool offsets by the caller through
// encodeUint(TypeString, offset)) share one eagerly built string pool.
func buildUTFTable(enc stringEncoding, cols []colSpec, rows [][][]byte, extraPoolStrings []string) ([]byte, []uint32) {
	// String pool: column names first, then any extra strings the caller
	// wants addressable (e.g. row string-cell targets), each NUL-terminated.
	pool := []byte{}
	nameOffsets := make([]uint32, len(cols))
	for i, c := range cols {
		nameOffsets[i] = uint32(len(pool))
		pool = append(pool, []byte(c.name)...)
		pool = append(pool, 0)
	}
	extraOffsets := make([]uint32, len(extraPoolStrings))
	for i, s := range extraPoolStrings {
		extraOffsets[i] = uint32(len(pool))
		pool = append(pool, []byte(s)...)
		pool = append(pool, 0)
	}

	// Column descriptor area.
	colArea := []byte{}
	for i, c := range cols {
		var flag byte = byte(c.typ)
		flag |= byte(flagName)
		if c.hasDefault {
			flag |= byte(flagDefaultValue)
		}
		if c.hasStorage {
			flag |= byte(flagRowStorage)
		}
		colArea = append(colArea, flag)
		nameBytes := make([]byte, 4)
		binary.BigEndian.PutUint32(nameBytes, nameOffsets[i])
		colArea = append(colArea, nameBytes...)
		if c.hasDefault {
			colArea = append(colArea, c.defaultVal...)
		}
	}

	rowSize := 0
	for _, c := range cols {
		if c.hasStorage {
			sz, _ := c.typ.size()
			rowSize += int(sz)
		}
	}

	rowArea := []byte{}
	for _, row := range rows {
		for i, c := range cols {
			if c.hasStorage {
				rowArea = append(rowArea, row[i]...)
			}
		}
	}

	rowsOffsetBiased := uint32(headerSize) + uint32(len(colArea))
	stringPoolOffBiased := rowsOffsetBiased + uint32(len(rowArea))
	dataPoolOffBiased := stringPoolOffBiased + uint32(len(pool))

	header := make([]byte, headerSize)
	copy(header[0:4], "@UTF")
	binary.BigEndian.PutUint32(header[0x4:], dataPoolOffBiased) // size: generous upper bound
	if enc == encodingUTF8 {
		header[0x9] = 1
	} else {
		header[0x9] = 0
	}
	binary.BigEndian.PutUint16(header[0xa:], uint16(rowsOffsetBiased-headerOffset))
	binary.BigEndian.PutUint32(header[0xc:], stringPoolOffBiased-headerOffset)
	binary.BigEndian.PutUint32(header[0x10:], dataPoolOffBiased-headerOffset)
	binary.BigEndian.PutUint32(header[0x14:], 0)
	binary.BigEndian.PutUint16(header[0x18:], uint16(len(cols)))
	binary.BigEndian.PutUint16(header[0x1a:], uint16(rowSize))
	binary.BigEndian.PutUint32(header[0x1c:], uint32(len(rows)))

	out := make([]byte, 0, len(header)+len(colArea)+len(rowArea)+len(pool))
	out = append(out, header...)
	out = append(out, colArea...)
	out = append(out, rowArea...)
	out = append(out, pool...)
	return out, extraOffsets
}
