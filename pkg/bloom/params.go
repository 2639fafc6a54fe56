package bloom

import "math"

// paramEpsilon nudges ceiling arguments upward so that exact powers of two
// do not round down through floating-point error.
const paramEpsilon = 1e-6

// constrainedMinLog2Bits is the floor for b in ConstrainedParams. The result
// never goes below this, even when the memory budget is violated.
const constrainedMinLog2Bits = 8

// OptimalParams returns (k, b) sized for count elements at false-positive
// rate fp, ignoring memory consumption. The optimal number of bits per
// element is -1.44*log2(fp), with -log2(fp) hash functions; b is the log2 of
// the resulting bit count, rounded up. Both values are capped at the
// implementation limits. fp must be in the open interval (0, 1).
func OptimalParams(count uint, fp float64) (k, b uint) {
	log2FP := math.Log2(fp)

	bitsPerElem := -1.44 * log2FP
	bitCount := bitsPerElem * float64(count)

	log2Bits := math.Ceil(math.Log2(bitCount) + paramEpsilon)

	switch {
	case log2Bits > float64(log2BitsMax):
		b = log2BitsMax
	case log2Bits < 1:
		b = 1
	default:
		b = uint(log2Bits)
	}

	hashCount := math.Ceil(-log2FP)

	k = hashCountMax
	if hashCount <= float64(hashCountMax) {
		k = uint(hashCount)
	}

	return k, b
}

// ConstrainedParams returns (k, b) sized for count elements within a memory
// budget of maxMemory bytes. Candidate values of b are walked upward from
// constrainedMinLog2Bits, pairing each with the FP-minimizing hash count
// k = ceil(2^b/count * ln 2); the largest b whose buffer fits the budget
// wins. The result is best-effort: b never goes below the floor even when
// that violates the budget.
func ConstrainedParams(count, maxMemory uint) (k, b uint) {
	for candB := uint(constrainedMinLog2Bits); candB <= log2BitsMax; candB++ {
		hashCount := math.Ceil(math.Exp2(float64(candB))/float64(count)*math.Ln2 + paramEpsilon)

		candK := hashCountMax
		if hashCount <= float64(hashCountMax) {
			candK = uint(hashCount)
		}

		size, err := computeBufferSize(candK, candB)
		if err != nil {
			size = math.MaxUint
		}

		if size > maxMemory && candB > constrainedMinLog2Bits {
			break
		}

		k, b = candK, candB
	}

	return k, b
}
