// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

import "encoding/binary"

// encryptedTableMagic is the little-endian reading of an encrypted table's
// first 4 bytes: the XOR keystream applied to the plaintext "@UTF" signature.
const encryptedTableMagic uint32 = 0xf5f39e1f

// tableIsEncrypted reports whether tbl's first 4 bytes match the encrypted
// signature rather than the plaintext "@UTF" tag.
func tableIsEncrypted(tbl []byte) bool {
	if len(tbl) < 4 {
		return false
	}
	return binary.LittleEndian.Uint32(tbl) == encryptedTableMagic
}

// decryptTable reverses the position-dependent XOR keystream applied to an
// entire table. The keystream is k_i = 95 * 21^i (mod 256) generated with
// 8-bit wrapping multiplication; XOR is its own inverse, so encrypting and
// decrypting call the same function. A copy of tbl is returned; the input
// is left untouched.
func decryptTable(tbl []byte) []byte {
	out := make([]byte, len(tbl))
	seed := int8(95)
	for i, b := range tbl {
		out[i] = b ^ byte(seed)
		seed *= 21
	}
	return out
}
