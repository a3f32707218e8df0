// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

import (
	"bytes"

	"golang.org/x/text/encoding/japanese"
)

// stringPool resolves a byte offset into the pool to a decoded string. Two
// implementations trade construction cost against per-lookup cost; both
// satisfy the same interface so table.go can pick one without the callers
// caring which.
type stringPool interface {
	get(offset uint32) (string, bool)
}

// decodePoolString decodes a single NUL-terminated run starting at start
// within raw, per the table's declared encoding.
func decodePoolString(raw []byte, start int, enc stringEncoding) (string, int, error) {
	if start < 0 || start > len(raw) {
		return "", 0, ErrTruncated
	}
	rel := bytes.IndexByte(raw[start:], 0)
	if rel < 0 {
		return "", 0, ErrTruncated
	}
	chunk := raw[start : start+rel]
	if enc == encodingUTF8 {
		return string(chunk), rel + 1, nil
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(chunk)
	if err != nil {
		return "", 0, ErrUnsupportedEncoding
	}
	return string(decoded), rel + 1, nil
}

// internedStringPool eagerly decodes every string in the pool at
// construction time, keyed by the byte offset it started at. This is the
// default strategy: a CPK reader's TOC table is walked in full regardless,
// so up-front decoding costs nothing extra and later lookups are O(1) map
// hits with no further allocation.
type internedStringPool struct {
	strings map[uint32]string
}

func newInternedStringPool(raw []byte, enc stringEncoding) (*internedStringPool, error) {
	p := &internedStringPool{strings: make(map[uint32]string)}
	offset := 0
	for offset < len(raw) {
		s, consumed, err := decodePoolString(raw, offset, enc)
		if err != nil {
			return nil, err
		}
		p.strings[uint32(offset)] = s
		offset += consumed
	}
	return p, nil
}

func (p *internedStringPool) get(offset uint32) (string, bool) {
	s, ok := p.strings[offset]
	return s, ok
}

// lazyStringPool keeps the raw pool bytes and decodes on every call,
// trading per-lookup cost for zero up-front work. Useful when a caller only
// ever touches a handful of named columns out of a table with many rows.
type lazyStringPool struct {
	raw []byte
	enc stringEncoding
}

func newLazyStringPool(raw []byte, enc stringEncoding) *lazyStringPool {
	return &lazyStringPool{raw: raw, enc: enc}
}

func (p *lazyStringPool) get(offset uint32) (string, bool) {
	s, _, err := decodePoolString(p.raw, int(offset), p.enc)
	if err != nil {
		return "", false
	}
	return s, true
}
