package save

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/blake2b"
)

// Save file layout: "PSAV" magic, 32-bit file version, the pattern-block
// body, then a BLAKE2b-256 digest of everything before it. The digest
// catches torn writes and casual corruption, not tampering.

const fileMagic = "PSAV"

// FileVersion is the current save file container version. Pattern blocks
// carry their own versions independently of this.
const FileVersion uint32 = 1

var (
	ErrBadMagic    = errors.New("save: not a park save file")
	ErrBadChecksum = errors.New("save: checksum mismatch")
)

// Encode wraps a save body in the file container.
func Encode(body []byte) []byte {
	out := make([]byte, 0, len(fileMagic)+4+len(body)+blake2b.Size256)
	out = append(out, fileMagic...)
	var ver [4]byte
	ver[0] = byte(FileVersion)
	ver[1] = byte(FileVersion >> 8)
	ver[2] = byte(FileVersion >> 16)
	ver[3] = byte(FileVersion >> 24)
	out = append(out, ver[:]...)
	out = append(out, body...)
	sum := blake2b.Sum256(out)
	return append(out, sum[:]...)
}

// Decode verifies the file container and returns the save body.
// A bad magic, unknown file version or digest mismatch rejects the whole
// file; nothing is partially applied.
func Decode(raw []byte) ([]byte, error) {
	head := len(fileMagic) + 4
	if len(raw) < head+blake2b.Size256 {
		return nil, fmt.Errorf("%w: %d bytes is too short", ErrBadMagic, len(raw))
	}
	if string(raw[:len(fileMagic)]) != fileMagic {
		return nil, ErrBadMagic
	}
	payload := raw[:len(raw)-blake2b.Size256]
	sum := blake2b.Sum256(payload)
	if !bytes.Equal(sum[:], raw[len(raw)-blake2b.Size256:]) {
		return nil, ErrBadChecksum
	}
	version := uint32(raw[4]) | uint32(raw[5])<<8 | uint32(raw[6])<<16 | uint32(raw[7])<<24
	if version != FileVersion {
		return nil, fmt.Errorf("%w: file version %d, supported %d",
			ErrVersionMismatch, version, FileVersion)
	}
	return payload[head:], nil
}

// WriteFile writes a save body to disk atomically (temp file + rename).
func WriteFile(path string, body []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, Encode(body), 0o644); err != nil {
		return fmt.Errorf("write save %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("finalize save %s: %w", path, err)
	}
	return nil
}

// ReadFile reads and verifies a save file, returning a Loader over its body.
func ReadFile(path string) (*Loader, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save %s: %w", path, err)
	}
	body, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return NewLoader(body), nil
}
