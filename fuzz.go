// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

// FuzzCRILAYLA feeds arbitrary bytes to the CRILAYLA decoder. It must never
// panic, even on truncated or adversarially crafted input; malformed
// streams are expected to surface as an error, not a crash.
func FuzzCRILAYLA(data []byte) int {
	block, err := DecodeCRILAYLA(data, nil)
	if err != nil {
		return 0
	}
	block.Release()
	return 1
}

// FuzzTableDecryptor checks the table decryptor's involution invariant
// holds for arbitrary byte slices: decrypting twice must reproduce the
// input.
func FuzzTableDecryptor(data []byte) int {
	once := decryptTable(data)
	twice := decryptTable(once)
	if len(twice) != len(data) {
		panic("table decryptor changed length")
	}
	for i := range data {
		if twice[i] != data[i] {
			panic("table decryptor is not an involution")
		}
	}
	return 1
}
