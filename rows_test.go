// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

import "testing"

func TestReadValueNumericTypes(t *testing.T) {
	buf := encodeUint(TypeUint32, 0xdeadbeef)
	s := newSource(buf)
	v, consumed, err := readValue(s, 0, TypeUint32)
	if err != nil {
		t.Fatalf("readValue: %v", err)
	}
	if consumed != 4 {
		t.Errorf("consumed: got %d, want 4", consumed)
	}
	if v.Uint32() != 0xdeadbeef {
		t.Errorf("Uint32: got 0x%x, want 0xdeadbeef", v.Uint32())
	}
}

func TestReadValueData(t *testing.T) {
	buf := make([]byte, 8)
	buf[3] = 0x10 // offset = 0x10 BE
	buf[7] = 0x20 // length = 0x20 BE
	s := newSource(buf)
	v, consumed, err := readValue(s, 0, TypeData)
	if err != nil {
		t.Fatalf("readValue: %v", err)
	}
	if consumed != 8 {
		t.Errorf("consumed: got %d, want 8", consumed)
	}
	d := v.Data()
	if d.Offset != 0x10 || d.Length != 0x20 {
		t.Errorf("Data: got %+v", d)
	}
	if d.IsZero() {
		t.Error("non-empty Data reported IsZero")
	}
}

func TestDataIsZero(t *testing.T) {
	var d Data
	if !d.IsZero() {
		t.Error("zero-value Data should report IsZero")
	}
}

func TestReadRowsHonorsStorageDefaultNone(t *testing.T) {
	cols := []column{
		{typ: TypeUint32, hasStorage: true},
		{typ: TypeUint8, hasDefault: true, defaultVal: Value{Kind: KindUint8, bits: 9}},
		{typ: TypeUint8},
	}
	h := tableHeader{rowsOffset: 0, rowSize: 4, rowCount: 1}
	buf := encodeUint(TypeUint32, 42)
	rows, err := readRows(newSource(buf), h, cols)
	if err != nil {
		t.Fatalf("readRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row[0].Kind != KindUint32 || row[0].Uint32() != 42 {
		t.Errorf("stored column: %+v", row[0])
	}
	// A default-but-no-storage column still decodes to None here: default
	// substitution is the caller's job (table.cellValue), not readRows'.
	if !row[1].IsNone() {
		t.Errorf("default-only column should decode to None, got %+v", row[1])
	}
	if !row[2].IsNone() {
		t.Errorf("column with neither storage nor default should be None, got %+v", row[2])
	}
}
