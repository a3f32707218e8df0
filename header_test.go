// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

import (
	"encoding/binary"
	"testing"
)

// buildHeaderBytes lays out a headerSize-byte buffer using the field offsets
// documented on tableHeader. The three pool offsets are written as given, as
// on-disk values before headerOffset is added back; whether they satisfy the
// monotonic-offsets invariant is up to the caller.
func buildHeaderBytes(rowsOff, strOff, dataOff uint16, tableLen uint32, colCount, rowSize uint16, rowCount uint32, encByte uint8) []byte {
	buf := make([]byte, headerSize)
	binary.BigEndian.PutUint32(buf[0x0:], 0) // signature not checked by parseTableHeader
	binary.BigEndian.PutUint32(buf[0x4:], tableLen)
	buf[0x9] = encByte
	binary.BigEndian.PutUint16(buf[0xa:], rowsOff)
	binary.BigEndian.PutUint32(buf[0xc:], uint32(strOff))
	binary.BigEndian.PutUint32(buf[0x10:], uint32(dataOff))
	binary.BigEndian.PutUint32(buf[0x14:], 0)
	binary.BigEndian.PutUint16(buf[0x18:], colCount)
	binary.BigEndian.PutUint16(buf[0x1a:], rowSize)
	binary.BigEndian.PutUint32(buf[0x1c:], rowCount)
	return buf
}

func TestParseTableHeaderFields(t *testing.T) {
	buf := buildHeaderBytes(0x10, 0x40, 0x80, 0x100, 5, 20, 3, 1)

	h, err := parseTableHeader(buf)
	if err != nil {
		t.Fatalf("parseTableHeader: %v", err)
	}
	if h.rowsOffset != 0x10+headerOffset {
		t.Errorf("rowsOffset: got 0x%x, want 0x%x", h.rowsOffset, 0x10+headerOffset)
	}
	if h.stringPoolOff != 0x40+headerOffset {
		t.Errorf("stringPoolOff: got 0x%x, want 0x%x", h.stringPoolOff, 0x40+headerOffset)
	}
	if h.dataPoolOff != 0x80+headerOffset {
		t.Errorf("dataPoolOff: got 0x%x, want 0x%x", h.dataPoolOff, 0x80+headerOffset)
	}
	if h.columnCount != 5 || h.rowSize != 20 || h.rowCount != 3 {
		t.Errorf("counts: got cols=%d rowSize=%d rows=%d", h.columnCount, h.rowSize, h.rowCount)
	}
	if h.encoding != encodingUTF8 {
		t.Errorf("encoding: got %v, want encodingUTF8", h.encoding)
	}
}

func TestParseTableHeaderShiftJISTag(t *testing.T) {
	buf := buildHeaderBytes(0x10, 0x40, 0x80, 0x100, 1, 4, 1, 0)
	h, err := parseTableHeader(buf)
	if err != nil {
		t.Fatalf("parseTableHeader: %v", err)
	}
	if h.encoding != encodingShiftJIS {
		t.Errorf("encoding: got %v, want encodingShiftJIS", h.encoding)
	}
}

func TestParseTableHeaderTruncated(t *testing.T) {
	buf := buildHeaderBytes(0x10, 0x40, 0x80, 0x100, 1, 4, 1, 1)
	if _, err := parseTableHeader(buf[:0x10]); err != ErrMalformedHeader {
		t.Fatalf("got %v, want ErrMalformedHeader", err)
	}
}

func TestParseTableHeaderRejectsNonMonotonicOffsets(t *testing.T) {
	// stringPoolOff < rowsOffset violates the monotonic invariant.
	buf := buildHeaderBytes(0x40, 0x10, 0x80, 0x100, 1, 4, 1, 1)
	if _, err := parseTableHeader(buf); err != ErrMalformedHeader {
		t.Fatalf("got %v, want ErrMalformedHeader", err)
	}
}
