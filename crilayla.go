// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

import "encoding/binary"

// crilaylaMagic is "CRILAYLA" read as a little-endian u64.
const crilaylaMagic uint64 = 0x414c59414c495243

const (
	crilaylaHeaderSize   = 16
	uncompressedTailSize = 0x100
	minCopyLength        = 3
)

// IsCRILAYLA reports whether data begins with the CRILAYLA magic.
func IsCRILAYLA(data []byte) bool {
	if len(data) < 8 {
		return false
	}
	return binary.LittleEndian.Uint64(data) == crilaylaMagic
}

// bitCursor reads bits from data end-to-start: each read first consumes
// whatever is left of the current byte before stepping pos backward, so
// the stream is produced in the reverse of the order the compressor wrote
// it. A sticky err is set on any out-of-range access so every read method
// can be called unconditionally and the caller only needs to check err once
// at the end of decoding.
type bitCursor struct {
	data     []byte
	pos      int
	bitsLeft int
	err      error
}

func (c *bitCursor) byteAt(i int) byte {
	if c.err != nil {
		return 0
	}
	if i < 0 || i >= len(c.data) {
		c.err = ErrDecoderCorruption
		return 0
	}
	return c.data[i]
}

func bitMask(n int) uint32 {
	if n <= 0 {
		return 0
	}
	return (uint32(1) << uint(n)) - 1
}

func (c *bitCursor) read1() bool {
	if c.bitsLeft != 0 {
		c.bitsLeft--
	} else {
		c.pos--
		c.bitsLeft = 7
	}
	return (c.byteAt(c.pos)>>uint(c.bitsLeft))&1 != 0
}

// read13 reads a 13-bit big-endian field, spanning up to three source bytes.
func (c *bitCursor) read13() uint32 {
	if c.bitsLeft == 0 {
		c.pos--
		c.bitsLeft = 8
	}
	bits := 13 - c.bitsLeft
	res := uint32(c.byteAt(c.pos)) & bitMask(c.bitsLeft)

	c.pos--
	c.bitsLeft = 8
	bitRound := bits
	if c.bitsLeft < bitRound {
		bitRound = c.bitsLeft
	}
	res = (res << uint(bitRound)) | ((uint32(c.byteAt(c.pos)) >> uint(c.bitsLeft-bitRound)) & bitMask(bitRound))
	bits -= bitRound
	if bits == 0 {
		c.bitsLeft -= bitRound
		return res
	}

	c.pos--
	c.bitsLeft = 8
	res = (res << uint(bits)) | ((uint32(c.byteAt(c.pos)) >> uint(c.bitsLeft-bits)) & bitMask(bits))
	c.bitsLeft -= bits
	return res
}

func (c *bitCursor) read8() uint8 {
	c.pos--
	if c.bitsLeft != 0 {
		extraBit := 8 - c.bitsLeft
		hi := (c.byteAt(c.pos+1) & byte(bitMask(c.bitsLeft))) << uint(extraBit)
		lo := (c.byteAt(c.pos) >> uint(8-extraBit)) & byte(bitMask(extraBit))
		return hi | lo
	}
	return c.byteAt(c.pos)
}

func (c *bitCursor) read2() uint8 {
	newByte := c.bitsLeft == 0
	if c.bitsLeft >= 2 || newByte {
		if newByte {
			c.bitsLeft = 6
			c.pos--
		} else {
			c.bitsLeft -= 2
		}
		return (c.byteAt(c.pos) >> uint(c.bitsLeft)) & 3
	}
	result := ((c.byteAt(c.pos) & 1) << 1) | (c.byteAt(c.pos-1) >> 7)
	c.bitsLeft = 7
	c.pos--
	return result
}

// readMaxBits reads up to 8 bits, spanning at most two source bytes.
func (c *bitCursor) readMaxBits(bits int) uint8 {
	if c.bitsLeft == 0 {
		c.pos--
		c.bitsLeft = 8
	}
	var res uint8
	for i := 0; i < 2; i++ {
		bitRound := bits
		if c.bitsLeft < bitRound {
			bitRound = c.bitsLeft
		}
		res = (res << uint(bitRound)) | ((c.byteAt(c.pos) >> uint(c.bitsLeft-bitRound)) & byte(bitMask(bitRound)))
		bits -= bitRound
		if bits == 0 {
			c.bitsLeft -= bitRound
			return res
		}
		c.pos--
		c.bitsLeft = 8
	}
	return res
}

// DecodeCRILAYLA decompresses a CRILAYLA-framed buffer. alloc, if non-nil,
// supplies the output buffer's backing storage from its arena; the caller
// owns the returned Block and must Release it once done with the bytes.
// Passing a nil allocator falls back to a plain heap allocation.
func DecodeCRILAYLA(input []byte, alloc *FreeList) (*Block, error) {
	if !IsCRILAYLA(input) {
		return nil, ErrNotCRILAYLA
	}
	if len(input) < crilaylaHeaderSize {
		return nil, ErrTruncated
	}
	uncompressedSize := binary.LittleEndian.Uint32(input[8:12])
	headerOffset := binary.LittleEndian.Uint32(input[12:16])

	cmp := input[crilaylaHeaderSize:]
	if uint64(headerOffset)+uncompressedTailSize > uint64(len(cmp)) {
		return nil, ErrTruncated
	}

	outSize := int(uncompressedSize) + uncompressedTailSize
	block := alloc.Allocate(outSize)
	out := block.Bytes()

	copy(out[:uncompressedTailSize], cmp[headerOffset:int(headerOffset)+uncompressedTailSize])

	cur := &bitCursor{data: cmp, pos: int(headerOffset)}
	writeIdx := uncompressedTailSize + int(uncompressedSize) - 1
	minIdx := uncompressedTailSize

	for writeIdx >= minIdx && cur.err == nil {
		if cur.read1() {
			offset := int(cur.read13()) + minCopyLength
			length := minCopyLength

			lvl2 := cur.read2()
			length += int(lvl2)
			if lvl2 == 3 {
				lvl3 := cur.readMaxBits(3)
				length += int(lvl3)
				if lvl3 == 7 {
					lvl5 := cur.readMaxBits(5)
					length += int(lvl5)
					if lvl5 == 0x1f {
						for {
							lvl8 := cur.read8()
							length += int(lvl8)
							if lvl8 != 0xff {
								break
							}
							if cur.err != nil {
								break
							}
						}
					}
				}
			}

			for i := 0; i < length; i++ {
				if writeIdx < 0 || writeIdx+offset >= len(out) {
					cur.err = ErrDecoderCorruption
					break
				}
				out[writeIdx] = out[writeIdx+offset]
				writeIdx--
			}
		} else {
			b := cur.read8()
			if writeIdx < 0 {
				cur.err = ErrDecoderCorruption
				break
			}
			out[writeIdx] = b
			writeIdx--
		}
	}

	if cur.err != nil {
		block.Release()
		return nil, cur.err
	}
	return block, nil
}
