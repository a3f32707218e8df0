// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

// p5rEncryptedMarker is the CpkFile user string CRI_CFATTR publishers set to
// request the Persona 5 Royal per-file scramble.
const p5rEncryptedMarker = "CRI_CFATTR:ENCRYPT"

const (
	p5rDataOffset  = 0x20
	p5rWindowBytes = 0x400
	p5rMinFileSize = 0x820
)

// decryptP5R reverses the Persona 5 Royal in-place XOR scramble: the 0x400
// bytes at data[0x20:0x420] are XORed with the following 0x400 bytes at
// data[0x420:0x820]. Files at or below p5rMinFileSize were never scrambled
// by the publisher in the first place and are passed through unchanged.
// Self-inverse: calling this twice restores the original bytes.
func decryptP5R(data []byte) {
	if len(data) <= p5rMinFileSize {
		return
	}
	lo := data[p5rDataOffset : p5rDataOffset+p5rWindowBytes]
	hi := data[p5rDataOffset+p5rWindowBytes : p5rDataOffset+2*p5rWindowBytes]
	for i := range lo {
		lo[i] ^= hi[i]
	}
}
