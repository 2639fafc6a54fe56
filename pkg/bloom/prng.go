package bloom

import (
	"crypto/rand"
	"encoding/binary"
	"math"

	"golang.org/x/crypto/chacha20"
)

// PRNG returns a uniformly distributed integer in [0, upper). upper must be
// at least 1. Filter construction draws hash-function bit-indices from a
// PRNG; any source satisfying the uniformity contract produces a valid
// filter.
type PRNG func(upper uint) uint

// fallbackSeed keys the deterministic generator DefaultPRNG degrades to when
// the system entropy source fails.
const fallbackSeed = 0x48494250 // "HIBP"

// prngState backs the package-provided PRNGs. It draws raw words from the
// system entropy source while it is healthy, or from a ChaCha20 keystream
// otherwise.
type prngState struct {
	cipher *chacha20.Cipher
	system bool
}

// DefaultPRNG returns the generator used by New. Each draw reads the system
// entropy source; if the source ever fails, the generator switches
// permanently to a deterministic ChaCha20 keystream.
func DefaultPRNG() PRNG {
	s := &prngState{system: true}

	return s.draw
}

// SeededPRNG returns a deterministic generator backed by a ChaCha20
// keystream keyed from seed. Two generators with the same seed produce
// identical sequences, so filters built from them are bit-identical.
func SeededPRNG(seed uint64) PRNG {
	s := &prngState{cipher: newKeystream(seed)}

	return s.draw
}

// newKeystream builds a ChaCha20 cipher whose keystream is fully determined
// by seed. The seed is spread across every 8-byte lane of the key.
func newKeystream(seed uint64) *chacha20.Cipher {
	var (
		key   [chacha20.KeySize]byte
		nonce [chacha20.NonceSize]byte
	)

	for off := 0; off < len(key); off += 8 {
		binary.LittleEndian.PutUint64(key[off:], seed)
	}

	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Key and nonce sizes are fixed above; the constructor cannot reject them.
		panic(err)
	}

	return cipher
}

// draw returns a uniform integer in [0, upper). Raw words span [0, MaxUint],
// which is not generally divisible by upper, so words at or above the
// largest multiple of upper are rejected and redrawn.
func (s *prngState) draw(upper uint) uint {
	limit := math.MaxUint / upper * upper

	for {
		if n := s.next(); n < limit {
			return n % upper
		}
	}
}

// next produces one raw word, degrading from the system source to the
// keystream on the first read failure.
func (s *prngState) next() uint {
	var buf [8]byte

	if s.system {
		if _, err := rand.Read(buf[:]); err == nil {
			return uint(binary.LittleEndian.Uint64(buf[:]))
		}

		s.system = false
		s.cipher = newKeystream(fallbackSeed)
	}

	s.cipher.XORKeyStream(buf[:], buf[:])

	return uint(binary.LittleEndian.Uint64(buf[:]))
}
