// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

import "errors"

// Errors returned while parsing a table or walking a CPK catalog.
var (
	// ErrTruncated is returned when the byte source has fewer bytes than a
	// read requires.
	ErrTruncated = errors.New("cpk: truncated input")

	// ErrMalformedHeader is returned when a table header or container frame
	// fails its structural invariants.
	ErrMalformedHeader = errors.New("cpk: malformed table header")

	// ErrUnknownColumnType is returned when a column descriptor's type tag
	// is not one of the 13 known types.
	ErrUnknownColumnType = errors.New("cpk: unknown column type")

	// ErrUnsupportedEncoding is returned when a Shift-JIS string pool holds
	// bytes the Shift-JIS decoder rejects.
	ErrUnsupportedEncoding = errors.New("cpk: unsupported string encoding")

	// ErrMissingTocOffset is returned when the root table has no TocOffset
	// column.
	ErrMissingTocOffset = errors.New("cpk: root table has no TocOffset column")

	// ErrMissingContentOffset is returned when the root table has no
	// ContentOffset column.
	ErrMissingContentOffset = errors.New("cpk: root table has no ContentOffset column")

	// ErrMissingRequiredColumn is returned when the TOC table is missing one
	// of the columns a CpkFile record requires.
	ErrMissingRequiredColumn = errors.New("cpk: TOC table missing a required column")

	// ErrWrongRowValueType is returned when a required column's row value
	// does not hold the expected variant.
	ErrWrongRowValueType = errors.New("cpk: row value has unexpected type")

	// ErrCatalogNotBuilt is returned by Extract when Catalog has not yet
	// been called successfully.
	ErrCatalogNotBuilt = errors.New("cpk: catalog has not been built")

	// ErrDecoderCorruption is returned by the CRILAYLA decoder when the
	// compressed stream cannot be a valid encoding of anything.
	ErrDecoderCorruption = errors.New("cpk: corrupt CRILAYLA stream")

	// ErrNotCRILAYLA is returned by DecodeCRILAYLA when the input does not
	// begin with the CRILAYLA magic.
	ErrNotCRILAYLA = errors.New("cpk: input is not CRILAYLA-compressed")
)
