package repositories

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return bytes.Repeat([]byte("k"), 32)
}

func TestSealer_RoundTrip(t *testing.T) {
	sealer, err := NewSealer(testKey())
	require.NoError(t, err)

	plaintext := []byte(`{"name":"홍길동","phone":"01012345678","password":"secret"}`)
	sealed, err := sealer.Seal(plaintext)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "secret")

	opened, err := sealer.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestSealer_NonceVaries(t *testing.T) {
	sealer, err := NewSealer(testKey())
	require.NoError(t, err)

	a, err := sealer.Seal([]byte("same input"))
	require.NoError(t, err)
	b, err := sealer.Seal([]byte("same input"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSealer_RejectsTamperedData(t *testing.T) {
	sealer, err := NewSealer(testKey())
	require.NoError(t, err)

	sealed, err := sealer.Seal([]byte("payload"))
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xff

	_, err = sealer.Open(sealed)
	assert.ErrorIs(t, err, ErrSealedDataInvalid)
}

func TestSealer_RejectsShortKey(t *testing.T) {
	_, err := NewSealer([]byte("short"))
	assert.Error(t, err)
}

func TestSealer_RejectsTruncatedBlob(t *testing.T) {
	sealer, err := NewSealer(testKey())
	require.NoError(t, err)

	_, err = sealer.Open([]byte("tiny"))
	assert.ErrorIs(t, err, ErrSealedDataInvalid)
}
