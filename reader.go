// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package cpk

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/go-kratos/kratos/v2/log"
)

// rootTag and tocTag are the container frame tags a CPK's first two tables
// must carry.
const (
	rootTag = "CPK "
	tocTag  = "TOC "
)

// Options configures a Reader. The zero value is a ready-to-use default:
// no P5R decryption, a stdout logger filtered to errors, and no arena
// (every Extract allocates from the heap).
type Options struct {
	// P5RDecryption enables reversing the Persona 5 Royal per-file XOR
	// scramble on files whose user string requests it.
	P5RDecryption bool

	// Logger receives warnings for soft failures that do not abort a
	// Catalog or Extract call. Defaults to a stdout logger filtered to
	// LevelError.
	Logger log.Logger

	// Allocator, if set, backs Extract's CRILAYLA decompression scratch
	// buffer with an arena instead of the heap.
	Allocator *FreeList
}

// Reader opens a CPK archive for catalog listing and random-access
// extraction. A Reader must have Catalog called successfully before
// Extract will serve any file.
type Reader struct {
	data   []byte
	mapped mmap.MMap
	f      *os.File

	opts   *Options
	logger *log.Helper

	contentOffset uint64
	catalog       []File
	built         bool
}

func newOptions(opts *Options) *Options {
	if opts == nil {
		return &Options{}
	}
	cp := *opts
	return &cp
}

func newLogger(opts *Options) *log.Helper {
	if opts.Logger == nil {
		return log.NewHelper(log.NewFilter(
			log.NewStdLogger(os.Stdout), log.FilterLevel(log.LevelError)))
	}
	return log.NewHelper(opts.Logger)
}

// Open memory-maps name and returns a Reader over it.
func Open(name string, opts *Options) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	o := newOptions(opts)
	return &Reader{
		data:   data,
		mapped: data,
		f:      f,
		opts:   o,
		logger: newLogger(o),
	}, nil
}

// NewReader wraps an in-memory CPK image. The caller retains ownership of
// data; it must stay valid for as long as Catalog or Extract is called.
// File values and extracted Blocks hold their own copies of the bytes.
func NewReader(data []byte, opts *Options) (*Reader, error) {
	o := newOptions(opts)
	return &Reader{
		data:   data,
		opts:   o,
		logger: newLogger(o),
	}, nil
}

// Close releases the underlying mapping, if any. Catalog and Extract must
// not be called after Close returns; File values and Blocks obtained
// earlier hold copies of their bytes and stay valid.
func (r *Reader) Close() error {
	if r.mapped != nil {
		_ = r.mapped.Unmap()
	}
	if r.f != nil {
		return r.f.Close()
	}
	return nil
}

// requiredUint64Column reads row 0's value for the named column of t,
// requiring it be present, row-stored or defaulted, and of type uint64.
func requiredUint64Column(t *table, name string) (uint64, error) {
	idx := t.columnIndex(name)
	if idx < 0 {
		return 0, ErrMissingRequiredColumn
	}
	v := t.cellValue(t.rows[0], idx)
	if v.Kind != KindUint64 {
		return 0, ErrWrongRowValueType
	}
	return v.Uint64(), nil
}

// tocColumns names the TOC table columns a CpkFile record is built from.
type tocColumns struct {
	dirName, fileName, fileOffset, fileSize, extractSize, userString int
}

func resolveTocColumns(t *table) tocColumns {
	return tocColumns{
		dirName:     t.columnIndex("DirName"),
		fileName:    t.columnIndex("FileName"),
		fileOffset:  t.columnIndex("FileOffset"),
		fileSize:    t.columnIndex("FileSize"),
		extractSize: t.columnIndex("ExtractSize"),
		userString:  t.columnIndex("UserString"),
	}
}

// cellString resolves row[idx] to a string, falling back to the "<NULL>"
// sentinel when idx is absent or the cell (after default substitution)
// carries no value at all.
func cellString(t *table, row Row, idx int) string {
	if idx < 0 {
		return "<NULL>"
	}
	v := t.cellValue(row, idx)
	if v.IsNone() {
		return "<NULL>"
	}
	s, ok := t.stringValue(v)
	if !ok {
		return "<NULL>"
	}
	return s
}

func cellUint64(t *table, row Row, idx int) (uint64, error) {
	if idx < 0 {
		return 0, ErrMissingRequiredColumn
	}
	v := t.cellValue(row, idx)
	switch v.Kind {
	case KindUint64:
		return v.Uint64(), nil
	case KindUint32:
		return uint64(v.Uint32()), nil
	default:
		return 0, ErrWrongRowValueType
	}
}

func cellUint32(t *table, row Row, idx int) (uint32, error) {
	if idx < 0 {
		return 0, ErrMissingRequiredColumn
	}
	v := t.cellValue(row, idx)
	if v.Kind != KindUint32 {
		return 0, ErrWrongRowValueType
	}
	return v.Uint32(), nil
}

// Catalog parses the root table and the table of contents it points to,
// materializing the full list of files the archive contains. Calling
// Catalog again re-parses from scratch; it is not incremental.
func (r *Reader) Catalog() ([]File, error) {
	src := newSource(r.data)

	rootRaw, tocFrameOffset, err := readContainer(src, 0, rootTag)
	if err != nil {
		return nil, err
	}
	root, err := parseTable(rootRaw)
	if err != nil {
		return nil, err
	}

	tocOffset, err := requiredUint64Column(root, "TocOffset")
	if err != nil {
		return nil, ErrMissingTocOffset
	}
	contentOffset, err := requiredUint64Column(root, "ContentOffset")
	if err != nil {
		return nil, ErrMissingContentOffset
	}

	// Older CPK mode: file offsets are TOC-relative, so ContentOffset is
	// rebased to TocOffset.
	if tocOffset < contentOffset {
		contentOffset = tocOffset
	}
	_ = tocFrameOffset

	tocRaw, _, err := readContainer(src, tocOffset, tocTag)
	if err != nil {
		return nil, err
	}
	toc, err := parseTable(tocRaw)
	if err != nil {
		return nil, err
	}

	cols := resolveTocColumns(toc)
	for _, idx := range []int{cols.dirName, cols.fileName, cols.fileOffset, cols.fileSize, cols.extractSize, cols.userString} {
		if idx < 0 {
			return nil, ErrMissingRequiredColumn
		}
	}

	files := make([]File, 0, len(toc.rows))
	for _, row := range toc.rows {
		offset, err := cellUint64(toc, row, cols.fileOffset)
		if err != nil {
			return nil, err
		}
		size, err := cellUint32(toc, row, cols.fileSize)
		if err != nil {
			return nil, err
		}
		extractSize, err := cellUint32(toc, row, cols.extractSize)
		if err != nil {
			r.logger.Warnf("row missing ExtractSize, defaulting to FileSize: %v", err)
			extractSize = size
		}

		userString := cellString(toc, row, cols.userString)
		f := File{
			Directory:   cellString(toc, row, cols.dirName),
			Name:        cellString(toc, row, cols.fileName),
			UserString:  userString,
			FileOffset:  offset,
			FileSize:    size,
			ExtractSize: extractSize,
		}
		if r.opts.P5RDecryption && userString == p5rEncryptedMarker {
			f.encryption = encryptionP5RXor
		}
		files = append(files, f)
	}

	r.contentOffset = contentOffset
	r.catalog = files
	r.built = true
	return files, nil
}

// Extract reads, decrypts, and (if compressed) decompresses one catalog
// entry's content, returning a freshly owned Block. Catalog must have been
// called successfully first.
func (r *Reader) Extract(f File) (*Block, error) {
	if !r.built {
		return nil, ErrCatalogNotBuilt
	}

	src := newSource(r.data)
	raw, err := src.bytesAt(r.contentOffset+f.FileOffset, uint64(f.FileSize))
	if err != nil {
		return nil, err
	}

	buf := make([]byte, len(raw))
	copy(buf, raw)

	if f.encryption == encryptionP5RXor {
		decryptP5R(buf)
	}

	if IsCRILAYLA(buf) {
		return DecodeCRILAYLA(buf, r.opts.Allocator)
	}
	return &Block{data: buf}, nil
}
