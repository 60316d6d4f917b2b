package save

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrVersionMismatch marks a pattern whose version this build cannot read.
var ErrVersionMismatch = errors.New("save: unsupported pattern version")

// Loader deserializes a save body produced by Saver. The first failure
// sticks: all further reads return zero values and Err() reports it, so
// decode code can stay linear and check once at the end.
type Loader struct {
	data    []byte
	off     int
	pattern string
	err     error
}

func NewLoader(data []byte) *Loader {
	return &Loader{data: data}
}

// Err returns the first error encountered, or nil.
func (l *Loader) Err() error { return l.err }

func (l *Loader) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

// OpenPattern reads a block header and returns its version. A tag mismatch
// or truncated header is recorded as an error and returns version 0.
func (l *Loader) OpenPattern(tag string) uint32 {
	if l.err != nil {
		return 0
	}
	if l.pattern != "" {
		l.fail(fmt.Errorf("save: pattern %q still open", l.pattern))
		return 0
	}
	if l.off+4 > len(l.data) {
		l.fail(fmt.Errorf("save: truncated header for pattern %q", tag))
		return 0
	}
	got := string(l.data[l.off : l.off+4])
	if got != tag {
		l.fail(fmt.Errorf("save: expected pattern %q, found %q", tag, got))
		return 0
	}
	l.off += 4
	l.pattern = tag
	return l.GetLong()
}

// ClosePattern closes the currently open pattern.
func (l *Loader) ClosePattern() {
	if l.pattern == "" && l.err == nil {
		l.fail(errors.New("save: ClosePattern without OpenPattern"))
		return
	}
	l.pattern = ""
}

// VersionMismatch records that the pattern's version is not supported.
func (l *Loader) VersionMismatch(got, supported uint32) {
	l.fail(fmt.Errorf("%w: pattern %q version %d, supported up to %d",
		ErrVersionMismatch, l.pattern, got, supported))
}

// Corrupt records a semantic error found while decoding, e.g. an index
// that points outside the structure being rebuilt.
func (l *Loader) Corrupt(format string, args ...any) {
	l.fail(fmt.Errorf("save: "+format, args...))
}

func (l *Loader) need(n int) bool {
	if l.err != nil {
		return false
	}
	if l.off+n > len(l.data) {
		l.fail(fmt.Errorf("save: truncated data in pattern %q", l.pattern))
		return false
	}
	return true
}

// GetByte reads 1 byte.
func (l *Loader) GetByte() byte {
	if !l.need(1) {
		return 0
	}
	v := l.data[l.off]
	l.off++
	return v
}

// GetWord reads 2 bytes little-endian.
func (l *Loader) GetWord() uint16 {
	if !l.need(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(l.data[l.off:])
	l.off += 2
	return v
}

// GetLong reads 4 bytes little-endian.
func (l *Loader) GetLong() uint32 {
	if !l.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(l.data[l.off:])
	l.off += 4
	return v
}

// GetString reads a length-prefixed UTF-8 string.
func (l *Loader) GetString() string {
	n := int(l.GetByte())
	if !l.need(n) {
		return ""
	}
	v := string(l.data[l.off : l.off+n])
	l.off += n
	return v
}

// Remaining returns the number of unread bytes.
func (l *Loader) Remaining() int {
	return len(l.data) - l.off
}
