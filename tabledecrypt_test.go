// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

import "testing"

func TestDecryptTableInvolution(t *testing.T) {
	input := make([]byte, 0x821)
	for i := range input {
		input[i] = byte(i % 256)
	}

	once := decryptTable(input)
	twice := decryptTable(once)

	for i := range input {
		if twice[i] != input[i] {
			t.Fatalf("byte %d: got 0x%02x, want 0x%02x", i, twice[i], input[i])
		}
	}
}

func TestTableIsEncrypted(t *testing.T) {
	plain := []byte("@UTF" + "rest")
	if tableIsEncrypted(plain) {
		t.Fatal("plaintext signature reported as encrypted")
	}

	encrypted := decryptTable(plain)
	if !tableIsEncrypted(encrypted) {
		t.Fatal("encrypted signature not detected")
	}
}

func TestTableIsEncryptedShortInput(t *testing.T) {
	if tableIsEncrypted([]byte{0x01, 0x02}) {
		t.Fatal("short input must never report encrypted")
	}
}
