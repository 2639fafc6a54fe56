package bloom

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/as3richa/hibp-bloom/pkg/safeconv"
)

// On-disk layout, all scalars little-endian:
//
//	[4]  magic version marker
//	[8]  hash-function count as u64
//	[1]  log2 of the bit-vector length
//	[20] SHA-1 checksum of the buffer
//	[..] hash-function table followed by the bit vector
//
// Files are architecture-neutral. The only load failure possible on an
// uncorrupted file is ErrTooBig, when a filter saved on a wide host exceeds
// the loading host's word size.
var magic = [4]byte{0xb1, 0x00, 0x13, 0x37}

const (
	magicSize    = len(magic)
	headerSize   = magicSize + 8 + 1 + DigestSize
	checksumOffs = magicSize + 8 + 1
)

// Save writes the filter to w in the on-disk format. The stream error is
// wrapped and returned on any write failure.
func (f *Filter) Save(w io.Writer) error {
	var header [headerSize]byte

	copy(header[:], magic[:])
	binary.LittleEndian.PutUint64(header[magicSize:], uint64(f.k))
	header[magicSize+8] = safeconv.MustUintToByte(f.b)

	checksum := sha1.Sum(f.buffer)
	copy(header[checksumOffs:], checksum[:])

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("bloom: write header: %w", err)
	}

	if _, err := w.Write(f.buffer); err != nil {
		return fmt.Errorf("bloom: write buffer: %w", err)
	}

	return nil
}

// Load reads a filter previously written by Save from r.
//
// Returns ErrVersion if the magic marker does not match, ErrParam or
// ErrTooBig if the stored parameters fail validation, ErrNoMem if the buffer
// cannot be allocated, ErrChecksum if the buffer was read completely but its
// SHA-1 does not match the stored checksum, and a wrapped stream error on
// any read failure, including premature EOF.
func Load(r io.Reader) (*Filter, error) {
	var header [headerSize]byte

	if _, err := io.ReadFull(r, header[:magicSize]); err != nil {
		return nil, fmt.Errorf("bloom: read version marker: %w", err)
	}

	if !bytes.Equal(header[:magicSize], magic[:]) {
		return nil, ErrVersion
	}

	if _, err := io.ReadFull(r, header[magicSize:]); err != nil {
		return nil, fmt.Errorf("bloom: read header: %w", err)
	}

	// A count beyond the platform word cannot be represented, let alone
	// allocated.
	k, ok := safeconv.Uint64ToUint(binary.LittleEndian.Uint64(header[magicSize:]))
	if !ok {
		return nil, ErrTooBig
	}

	b := uint(header[magicSize+8])

	size, err := computeBufferSize(k, b)
	if err != nil {
		return nil, err
	}

	f := &Filter{
		k:      k,
		b:      b,
		buffer: make([]byte, size),
	}

	if _, err := io.ReadFull(r, f.buffer); err != nil {
		return nil, fmt.Errorf("bloom: read buffer: %w", err)
	}

	checksum := sha1.Sum(f.buffer)
	if !bytes.Equal(checksum[:], header[checksumOffs:]) {
		return nil, ErrChecksum
	}

	return f, nil
}

// SaveFile writes the filter to the named file, creating or truncating it.
func (f *Filter) SaveFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bloom: create filter file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	if saveErr := f.Save(w); saveErr != nil {
		return saveErr
	}

	if flushErr := w.Flush(); flushErr != nil {
		return fmt.Errorf("bloom: flush filter file: %w", flushErr)
	}

	if closeErr := file.Close(); closeErr != nil {
		return fmt.Errorf("bloom: close filter file: %w", closeErr)
	}

	return nil
}

// LoadFile reads a filter from the named file.
func LoadFile(path string) (*Filter, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bloom: open filter file: %w", err)
	}
	defer file.Close()

	return Load(bufio.NewReader(file))
}
