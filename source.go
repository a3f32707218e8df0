// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

import "encoding/binary"

// source is a bounds-checked view over an in-memory byte slice, the shared
// backing store for every table and content read in this package. It plays
// the role the PE parser's pe.data/pe.size pair plays for its own ReadUint*
// helpers, generalized so header.go/columns.go/rows.go can share it with the
// CPK content reader.
type source struct {
	data []byte
	size uint64
}

func newSource(data []byte) *source {
	return &source{data: data, size: uint64(len(data))}
}

// bytesAt returns size bytes starting at offset, or ErrTruncated if the
// range falls outside the source.
func (s *source) bytesAt(offset, size uint64) ([]byte, error) {
	end := offset + size
	if end < offset || end > s.size {
		return nil, ErrTruncated
	}
	return s.data[offset:end], nil
}

func (s *source) uint8At(offset uint64) (uint8, error) {
	b, err := s.bytesAt(offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (s *source) beUint16At(offset uint64) (uint16, error) {
	b, err := s.bytesAt(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (s *source) beUint32At(offset uint64) (uint32, error) {
	b, err := s.bytesAt(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (s *source) beUint64At(offset uint64) (uint64, error) {
	b, err := s.bytesAt(offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}
