// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

// table is a fully decoded UTF table: its header, column descriptors, the
// interned string pool backing column and row string values, and every
// decoded row. It combines header.go + columns.go + strings.go + rows.go,
// the way the Rust original's HighTable bundles the same four pieces.
type table struct {
	header  tableHeader
	columns []column
	pool    stringPool
	rows    []Row
}

// parseTable decodes a table whose bytes start at its signature (i.e. a
// container frame's payload, see container.go). Encrypted tables are
// detected and reversed transparently.
func parseTable(raw []byte) (*table, error) {
	if tableIsEncrypted(raw) {
		raw = decryptTable(raw)
	}

	h, err := parseTableHeader(raw)
	if err != nil {
		return nil, err
	}

	s := newSource(raw)
	cols, _, err := readColumns(s, h)
	if err != nil {
		return nil, err
	}

	poolBytes, err := s.bytesAt(uint64(h.stringPoolOff), uint64(h.dataPoolOff-h.stringPoolOff))
	if err != nil {
		return nil, ErrTruncated
	}
	pool, err := newInternedStringPool(poolBytes, h.encoding)
	if err != nil {
		return nil, err
	}

	rows, err := readRows(s, h, cols)
	if err != nil {
		return nil, err
	}

	return &table{header: h, columns: cols, pool: pool, rows: rows}, nil
}

// columnName resolves a named column's index, honoring only columns that
// carry the NAME flag.
func (t *table) columnName(i int) (string, bool) {
	c := t.columns[i]
	if !c.hasName {
		return "", false
	}
	return t.pool.get(c.nameOffset)
}

// columnIndex returns the index of the named column, or -1.
func (t *table) columnIndex(name string) int {
	for i := range t.columns {
		if n, ok := t.columnName(i); ok && n == name {
			return i
		}
	}
	return -1
}

// stringValue resolves a string-typed cell's pool offset to its text.
func (t *table) stringValue(v Value) (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return t.pool.get(v.Uint32())
}

// cellValue returns row[i], substituting the column's default value when the
// cell itself is None — the row decoder never does this substitution, so
// every row consumer that wants "default if absent" semantics goes through
// here instead.
func (t *table) cellValue(row Row, i int) Value {
	v := row[i]
	if v.IsNone() && t.columns[i].hasDefault {
		return t.columns[i].defaultVal
	}
	return v
}

// dataBytes resolves a data-typed cell into the table's data pool bytes.
func (t *table) dataBytes(raw []byte, v Value) ([]byte, error) {
	if v.Kind != KindData {
		return nil, ErrWrongRowValueType
	}
	d := v.Data()
	if d.IsZero() {
		return nil, nil
	}
	start := uint64(t.header.dataPoolOff) + uint64(d.Offset)
	return newSource(raw).bytesAt(start, uint64(d.Length))
}
