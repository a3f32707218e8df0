// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

// encryptionPolicy records which in-place content scramble, if any, a
// catalog entry's bytes must be reversed through before use.
type encryptionPolicy uint8

const (
	encryptionNone encryptionPolicy = iota
	encryptionP5RXor
)

// File is one entry in a CPK's table of contents: a directory/name pair,
// the publisher-supplied user string, and the location and sizes needed to
// extract its content. Directory, Name, and UserString may read "<NULL>"
// when the TOC carries no value and no column default for that cell.
type File struct {
	Directory   string
	Name        string
	UserString  string
	FileOffset  uint64
	FileSize    uint32
	ExtractSize uint32

	encryption encryptionPolicy
}
