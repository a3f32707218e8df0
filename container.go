// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

const containerFrameSize = 16

// readContainer reads one table container frame at offset in src: a 4-byte
// ASCII tag, a zero u32, a big-endian u32 table length, another zero u32,
// and then length bytes of table payload. wantTag validates the role of the
// table being read (the root table is always "CPK ", the directory table is
// "TOC "/"ITOC"/"ETOC" depending on which catalog is being read); a mismatch
// is treated as a malformed archive rather than silently accepted.
func readContainer(s *source, offset uint64, wantTag string) (tbl []byte, end uint64, err error) {
	frame, err := s.bytesAt(offset, containerFrameSize)
	if err != nil {
		return nil, 0, ErrTruncated
	}
	tag := string(frame[0:4])
	if tag != wantTag {
		return nil, 0, ErrMalformedHeader
	}
	length, err := s.beUint32At(offset + 8)
	if err != nil {
		return nil, 0, ErrTruncated
	}
	tbl, err = s.bytesAt(offset+containerFrameSize, uint64(length))
	if err != nil {
		return nil, 0, ErrTruncated
	}
	return tbl, offset + containerFrameSize + uint64(length), nil
}
