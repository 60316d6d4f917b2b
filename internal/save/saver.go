// Package save implements the versioned pattern-block save format.
// A save body is a sequence of patterns: a 4-character tag, a 32-bit
// version, then version-dependent fields. All multi-byte values are
// little-endian.
package save

import (
	"encoding/binary"
	"fmt"
)

// Saver serializes simulation state into a save body.
type Saver struct {
	buf     []byte
	pattern string // tag of the currently open pattern, "" when none
}

func NewSaver() *Saver {
	return &Saver{buf: make([]byte, 0, 1024)}
}

// CheckNoOpenPattern panics if a pattern was left open. Forgetting
// EndPattern is a programming error, not a runtime condition.
func (s *Saver) CheckNoOpenPattern() {
	if s.pattern != "" {
		panic(fmt.Sprintf("save: pattern %q still open", s.pattern))
	}
}

// StartPattern begins a tagged, versioned block. Tags are exactly 4 bytes.
func (s *Saver) StartPattern(tag string, version uint32) {
	if len(tag) != 4 {
		panic(fmt.Sprintf("save: pattern tag %q must be 4 bytes", tag))
	}
	s.CheckNoOpenPattern()
	s.pattern = tag
	s.buf = append(s.buf, tag...)
	s.PutLong(version)
}

// EndPattern closes the currently open pattern.
func (s *Saver) EndPattern() {
	if s.pattern == "" {
		panic("save: EndPattern without StartPattern")
	}
	s.pattern = ""
}

// PutByte writes 1 byte.
func (s *Saver) PutByte(v byte) {
	s.buf = append(s.buf, v)
}

// PutWord writes 2 bytes little-endian.
func (s *Saver) PutWord(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

// PutLong writes 4 bytes little-endian.
func (s *Saver) PutLong(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

// PutString writes a length-prefixed UTF-8 string (at most 255 bytes).
func (s *Saver) PutString(v string) {
	if len(v) > 255 {
		v = v[:255]
	}
	s.buf = append(s.buf, byte(len(v)))
	s.buf = append(s.buf, v...)
}

// Bytes returns the serialized body. No pattern may be open.
func (s *Saver) Bytes() []byte {
	s.CheckNoOpenPattern()
	return s.buf
}
