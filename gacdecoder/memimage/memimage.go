// Package memimage loads a GAC emulator memory snapshot into an
// addressable byte image (spec §4.1). It plays the role the teacher's
// repdecoder package plays for replay sections: a small, focused
// abstraction in front of "where the raw bytes come from", kept separate
// from the table-walking logic that interprets them.
package memimage

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// seekPos is the number of bytes skipped at the start of the snapshot
	// file before the RAM dump begins.
	seekPos = 0x1C1B

	// memBase is the address the loaded payload is placed at.
	memBase = 0x5C00

	// memSize is the number of bytes loaded from the file into RAM.
	memSize = 0xA400

	// fileSize is the only accepted on-disk snapshot size.
	fileSize = 49179

	// payloadSize is the number of bytes expected after skipping seekPos.
	payloadSize = fileSize - seekPos

	// minRAM is the lowest address that reads real data; anything below
	// reads as 0xFF (spec §3).
	minRAM = 0x4000
)

// ErrSnapshotSize is returned when the input does not have the exact
// expected size (spec §7, SnapshotSize).
var ErrSnapshotSize = errors.New("memimage: invalid snapshot size")

// Image is a flat, byte-addressable view of the loaded snapshot covering
// addresses 0x0000-0xFFFF. Only 0x5C00-0xFFFF is meaningful; everything
// below minRAM reads as 0xFF.
type Image struct {
	ram [0x10000]byte
}

// Load reads a memory snapshot from r and builds an Image.
func Load(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("memimage: read: %w", err)
	}
	return fromFile(data)
}

// LoadFile opens name and builds an Image from it.
func LoadFile(name string) (*Image, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("memimage: open: %w", err)
	}
	return fromFile(data)
}

// fromFile applies the snapshot's fixed seek/load layout (spec §4.1 /
// §6): skip seekPos bytes, then place the next memSize bytes at memBase.
func fromFile(data []byte) (*Image, error) {
	if len(data) < seekPos {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSnapshotSize, len(data), fileSize)
	}
	payload := data[seekPos:]
	if len(payload) != payloadSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSnapshotSize, len(data), fileSize)
	}

	img := new(Image)
	n := memSize
	if len(payload) < n {
		n = len(payload)
	}
	copy(img.ram[memBase:memBase+n], payload[:n])
	return img, nil
}

// Read8 returns the byte at addr. Addresses below minRAM always read 0xFF
// (spec §3, §8 boundary case).
func (img *Image) Read8(addr uint16) byte {
	if addr < minRAM {
		return 0xFF
	}
	return img.ram[addr]
}

// Read16 returns the little-endian 16-bit value at addr. If addr is below
// minRAM the result is 0xFFFF even when addr+1 would be in range, matching
// the word-read boundary case in spec §8.
func (img *Image) Read16(addr uint16) uint16 {
	if addr < minRAM {
		return 0xFFFF
	}
	lo := uint16(img.ram[addr])
	hi := uint16(img.ram[addr+1])
	return lo | hi<<8
}

// ReadBytes returns a copy of n consecutive bytes starting at addr. Bytes
// below minRAM read as 0xFF, as with Read8; callers walking known tables
// address memBase and above.
func (img *Image) ReadBytes(addr uint16, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = img.Read8(addr + uint16(i))
	}
	return out
}
