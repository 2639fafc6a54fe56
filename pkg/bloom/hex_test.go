package bloom_test

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/as3richa/hibp-bloom/pkg/bloom"
)

// abcSHA1 is the well-known SHA-1 digest of "abc".
const abcSHA1 = "a9993e364706816aba3e25717850c26c9cd0d89d"

func TestSHA1HexToBin(t *testing.T) {
	t.Parallel()

	t.Run("known_vector", func(t *testing.T) {
		t.Parallel()

		digest, err := bloom.SHA1HexToBin(abcSHA1)
		require.NoError(t, err)
		assert.Equal(t, sha1.Sum([]byte("abc")), digest)
	})

	t.Run("uppercase_accepted", func(t *testing.T) {
		t.Parallel()

		digest, err := bloom.SHA1HexToBin(strings.ToUpper(abcSHA1))
		require.NoError(t, err)
		assert.Equal(t, sha1.Sum([]byte("abc")), digest)
	})

	t.Run("round_trips_encoding", func(t *testing.T) {
		t.Parallel()

		digest, err := bloom.SHA1HexToBin(abcSHA1)
		require.NoError(t, err)
		assert.Equal(t, abcSHA1, hex.EncodeToString(digest[:]))
	})

	t.Run("wrong_length", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"", "a9", abcSHA1[:39], abcSHA1 + "0"} {
			_, err := bloom.SHA1HexToBin(s)
			assert.ErrorIs(t, err, bloom.ErrParam, "input %q", s)
		}
	})

	t.Run("non_hex_character", func(t *testing.T) {
		t.Parallel()

		_, err := bloom.SHA1HexToBin("g" + abcSHA1[1:])
		assert.ErrorIs(t, err, bloom.ErrParam)
	})
}
