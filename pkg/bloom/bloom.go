// Package bloom provides a probabilistic set membership filter for large
// corpora of short byte strings, built around SHA-1 digests.
//
// A Bloom filter answers "definitely not in set" or "possibly in set" with a
// tunable false-positive rate. The motivating use is pre-filtering lookups
// against the Have-I-Been-Pwned breached-password corpus (~500M SHA-1
// hashes), where keys are available as digests and exact storage is
// impractical.
//
// Unlike double-hashing designs, each of the filter's k hash functions is an
// explicit table of b bit-indices into a SHA-1 digest: evaluating a function
// gathers those digest bits and packs them into an index below 2^b. The
// function tables are generated at construction from a PRNG and persist with
// the bit vector, so a saved filter reproduces its exact query behavior when
// loaded on any architecture.
package bloom

import (
	"crypto/sha1"
	"math"
	"math/bits"
)

// DigestSize is the byte length of a SHA-1 digest.
const DigestSize = sha1.Size

// Digest is a 20-byte SHA-1 digest.
type Digest = [DigestSize]byte

const (
	// digestBits is the number of bits in a SHA-1 digest. Hash-function
	// tables store bit-indices below this bound.
	digestBits = 8 * DigestSize

	// log2BitsMax bounds the log2 of the bit-vector length: the vector must
	// be bit-addressable by a uint, and a vector longer than the digest
	// domain is senseless.
	log2BitsMax = min(bits.UintSize, digestBits)

	// hashCountMax bounds the number of hash functions: the lesser of the
	// platform word and the 64-bit count field of the on-disk format.
	hashCountMax = uint(math.MaxUint)

	// maxAlloc is the largest buffer a byte slice can hold.
	maxAlloc = uint(math.MaxInt)
)

// Filter is a Bloom filter keyed on SHA-1 digests. It is not internally
// synchronized: concurrent queries are safe, but inserts require external
// coordination with all other operations.
type Filter struct {
	k uint // Number of hash functions.
	b uint // Log2 of the bit-vector length.

	// buffer holds the hash-function table followed by the bit vector.
	// The first k*b bytes are bit-indices below digestBits, b per function;
	// the remaining ceil(2^b/8) bytes are the vector, LSB-first per byte.
	buffer []byte
}

// New creates a filter with k randomly generated hash functions over a bit
// vector of length 2^b, using [DefaultPRNG] to generate the functions.
func New(k, b uint) (*Filter, error) {
	return NewWithPRNG(k, b, DefaultPRNG())
}

// NewWithPRNG creates a filter with k hash functions over a bit vector of
// length 2^b, drawing hash-function bit-indices from prng.
//
// Returns ErrParam if k or b is zero, ErrTooBig if the parameters exceed
// implementation limits, and ErrNoMem if the backing buffer cannot be
// allocated.
func NewWithPRNG(k, b uint, prng PRNG) (*Filter, error) {
	size, err := computeBufferSize(k, b)
	if err != nil {
		return nil, err
	}

	f := &Filter{
		k:      k,
		b:      b,
		buffer: make([]byte, size),
	}

	fillHashTable(f.buffer[:k*b], prng)

	return f, nil
}

// computeBufferSize validates (k, b) and returns the total byte size of the
// hash-function table plus the bit vector. All arithmetic is overflow-checked
// against the platform word.
func computeBufferSize(k, b uint) (uint, error) {
	if k == 0 || b == 0 {
		return 0, ErrParam
	}

	if b > log2BitsMax || k > hashCountMax {
		return 0, ErrTooBig
	}

	// The table alone must not overflow.
	if b > math.MaxUint/k {
		return 0, ErrTooBig
	}

	tableSize := k * b

	// ceil(2^b / 8) without forming 2^b, which overflows at b == UintSize.
	vectorSize := uint(1)
	if b > 3 {
		vectorSize = 1 << (b - 3)
	}

	if tableSize > math.MaxUint-vectorSize {
		return 0, ErrTooBig
	}

	size := tableSize + vectorSize
	if size > maxAlloc {
		return 0, ErrNoMem
	}

	return size, nil
}

// fillHashTable populates table with bit-indices below digestBits. Indices
// are drawn from repeated Fisher-Yates shuffles of [0, digestBits), so every
// digest bit is covered once before any is reused: a full shuffle is copied
// out, then reshuffled, until the table is full.
func fillHashTable(table []byte, prng PRNG) {
	var perm [digestBits]byte
	for i := range perm {
		perm[i] = byte(i)
	}

	for generated := 0; generated < len(table); generated += digestBits {
		for i := digestBits - 1; i > 0; i-- {
			j := prng(uint(i) + 1)
			perm[i], perm[j] = perm[j], perm[i]
		}

		copy(table[generated:], perm[:])
	}
}

// vector returns the bit-vector region of the buffer.
func (f *Filter) vector() []byte {
	return f.buffer[f.k*f.b:]
}

// eval evaluates hash function i against the digest: digest bits are gathered
// at the table's indices and packed LSB-first. The result is below 2^b.
func (f *Filter) eval(i uint, digest *Digest) uint {
	indices := f.buffer[i*f.b : (i+1)*f.b]

	var value uint

	for p, index := range indices {
		bit := uint(digest[index/8]>>(index%8)) & 1
		value |= bit << p
	}

	return value
}

// InsertSHA1 inserts the string whose SHA-1 digest is given.
func (f *Filter) InsertSHA1(digest Digest) {
	vector := f.vector()

	for i := uint(0); i < f.k; i++ {
		j := f.eval(i, &digest)
		vector[j/8] |= 1 << (j % 8)
	}
}

// Insert hashes buf with SHA-1 and inserts it.
func (f *Filter) Insert(buf []byte) {
	f.InsertSHA1(sha1.Sum(buf))
}

// InsertString hashes s with SHA-1 and inserts it.
func (f *Filter) InsertString(s string) {
	f.Insert([]byte(s))
}

// QuerySHA1 reports whether the string with the given SHA-1 digest is
// possibly in the set. A return value of false guarantees the string was
// never inserted; true means it was inserted with high probability.
func (f *Filter) QuerySHA1(digest Digest) bool {
	vector := f.vector()

	for i := uint(0); i < f.k; i++ {
		j := f.eval(i, &digest)
		if (vector[j/8]>>(j%8))&1 == 0 {
			return false
		}
	}

	return true
}

// Query hashes buf with SHA-1 and queries it.
func (f *Filter) Query(buf []byte) bool {
	return f.QuerySHA1(sha1.Sum(buf))
}

// QueryString hashes s with SHA-1 and queries it.
func (f *Filter) QueryString(s string) bool {
	return f.Query([]byte(s))
}

// HashCount returns the number of hash functions used by the filter.
func (f *Filter) HashCount() uint {
	return f.k
}

// Log2Bits returns the log2 of the bit-vector length.
func (f *Filter) Log2Bits() uint {
	return f.b
}

// BitCount returns the length of the bit vector in bits.
func (f *Filter) BitCount() uint {
	return 1 << f.b
}

// MemoryUsage returns the byte size of the filter's backing buffer.
func (f *Filter) MemoryUsage() uint {
	return uint(len(f.buffer))
}

// FillRatio returns the fraction of vector bits that are set, in [0, 1].
func (f *Filter) FillRatio() float64 {
	total := 0
	for _, b := range f.vector() {
		total += bits.OnesCount8(b)
	}

	return float64(total) / math.Exp2(float64(f.b))
}
