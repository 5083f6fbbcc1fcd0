package ghostfat

import (
	"io"

	"github.com/xaionaro-go/bytesextra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// shortNameCaser performs Unicode-aware uppercasing of name components
// before they're validated against the FAT16 short-name charset, so a
// caller passing e.g. a lowercase accented letter gets a clear
// ErrInvalidChar instead of a silently-wrong byte.
var shortNameCaser = cases.Upper(language.Und)

// shortNameCharset is the FAT16 short-name character set beyond alphanumerics.
const shortNameCharset = "$%'-_@~`!(){}^#&"

// ByteView is the backing store of a registered File: either an immutable
// slice (read-only file) or a mutable one (read-write file).
type ByteView interface {
	io.ReaderAt
	// Writable reports whether WriteAt may be called. Read-only views satisfy
	// io.WriterAt only nominally; WriteAt on a read-only view always fails.
	Writable() bool
	io.WriterAt
	Len() int
}

type readOnlyView struct {
	data []byte
}

// NewReadOnlyBytes wraps an immutable byte slice as a ByteView.
func NewReadOnlyBytes(data []byte) ByteView { return &readOnlyView{data: data} }

func (v *readOnlyView) Len() int                           { return len(v.data) }
func (v *readOnlyView) Writable() bool                     { return false }
func (v *readOnlyView) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(v.data)) {
		return 0, io.EOF
	}
	n := copy(p, v.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
func (v *readOnlyView) WriteAt(p []byte, off int64) (int, error) {
	return 0, errReadOnlyFile
}

type readWriteView struct {
	data []byte
	rws  io.ReadWriteSeeker
}

// NewReadWriteBytes wraps a mutable byte slice as a ByteView. ReadAt and
// WriteAt copy directly to and from the backing slice; the view also holds a
// bytesextra.NewReadWriteSeeker over the same slice, which none of its
// methods use.
func NewReadWriteBytes(data []byte) ByteView {
	return &readWriteView{data: data, rws: bytesextra.NewReadWriteSeeker(data)}
}

func (v *readWriteView) Len() int       { return len(v.data) }
func (v *readWriteView) Writable() bool { return true }

func (v *readWriteView) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(v.data)) {
		return 0, io.EOF
	}
	n := copy(p, v.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (v *readWriteView) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errReadOnlyFile
	}
	end := off + int64(len(p))
	if end > int64(len(v.data)) {
		end = int64(len(v.data))
	}
	if off >= end {
		return 0, nil
	}
	n := copy(v.data[off:end], p)
	return n, nil
}

// File is one registered virtual file.
type File struct {
	name8_3 [11]byte
	attrs   uint8
	view    ByteView

	blockCount   int
	startCluster int // set by NewRegistry once the ordering is known
}

// NewFile derives an 8.3 short name from name and pairs it with view. attrs
// defaults to AttrArchive if extra is 0; pass AttrReadOnly etc. to override.
func NewFile(name string, view ByteView, extraAttrs uint8) (File, error) {
	short, err := shortName8_3(name)
	if err != nil {
		return File{}, err
	}
	attrs := extraAttrs
	if attrs == 0 {
		attrs = AttrArchive
	}
	blockCount := view.Len() / BlockBytes
	if view.Len()%BlockBytes != 0 {
		blockCount++
	}
	return File{
		name8_3:    short,
		attrs:      attrs,
		view:       view,
		blockCount: blockCount,
	}, nil
}

// Len returns the current length in bytes of the file's backing buffer.
func (f *File) Len() int { return f.view.Len() }

// BlockCount returns ceil(len/512); a zero-length file occupies 0 blocks.
func (f *File) BlockCount() int { return f.blockCount }

// shortName8_3 splits name on the last '.', uppercases ASCII letters,
// rejects characters outside the FAT16 short-name set, and space-pads the
// stem to 8 bytes and the extension to 3 bytes.
func shortName8_3(name string) ([11]byte, error) {
	var out [11]byte
	for i := range out {
		out[i] = ' '
	}

	stem, ext := splitExt(name)
	if len(stem) > 8 || len(ext) > 3 {
		return out, ErrNameTooLong
	}
	stemUp, err := upperValidate(stem)
	if err != nil {
		return out, err
	}
	extUp, err := upperValidate(ext)
	if err != nil {
		return out, err
	}
	copy(out[0:8], stemUp)
	copy(out[8:11], extUp)
	return out, nil
}

func splitExt(name string) (stem, ext string) {
	last := -1
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			last = i
		}
	}
	if last < 0 {
		return name, ""
	}
	return name[:last], name[last+1:]
}

func upperValidate(s string) (string, error) {
	upper := shortNameCaser.String(s)
	if len(upper) != len(s) {
		// Unicode uppercasing changed the byte length (e.g. a multi-byte
		// rune): definitely outside the single-byte FAT16 short-name set.
		return "", ErrInvalidChar
	}
	out := make([]byte, len(upper))
	for i := 0; i < len(upper); i++ {
		c := upper[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out[i] = c
		case isShortNameSymbol(c):
			out[i] = c
		default:
			return "", ErrInvalidChar
		}
	}
	return string(out), nil
}

func isShortNameSymbol(c byte) bool {
	for i := 0; i < len(shortNameCharset); i++ {
		if shortNameCharset[i] == c {
			return true
		}
	}
	return false
}
