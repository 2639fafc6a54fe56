package bloom

import "errors"

// Sentinel errors. Stream failures during Save and Load are not sentinels;
// they wrap the underlying I/O error and can be unwrapped with errors.Is.
var (
	// ErrParam is returned when a parameter is zero or an input is malformed.
	ErrParam = errors.New("bloom: invalid parameter")

	// ErrTooBig is returned when k or b exceeds implementation limits, or
	// when the buffer size arithmetic would overflow the platform word.
	ErrTooBig = errors.New("bloom: parameters exceed implementation limits")

	// ErrNoMem is returned when the filter buffer cannot be allocated.
	ErrNoMem = errors.New("bloom: buffer allocation failed")

	// ErrVersion is returned by Load when the magic version marker does not
	// match.
	ErrVersion = errors.New("bloom: version marker mismatch")

	// ErrChecksum is returned by Load when the buffer was read in its
	// entirety but its SHA-1 checksum does not match the stored one.
	ErrChecksum = errors.New("bloom: checksum mismatch")
)
