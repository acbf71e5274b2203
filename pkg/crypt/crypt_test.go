package crypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	c, err := New("test-key")
	require.NoError(t, err)

	enc, err := c.Encrypt("4111111111111111")
	require.NoError(t, err)
	assert.NotContains(t, enc, "4111")

	plain, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", plain)
}

func TestNonceIsRandom(t *testing.T) {
	c, _ := New("test-key")
	a, _ := c.Encrypt("123")
	b, _ := c.Encrypt("123")
	assert.NotEqual(t, a, b)
}

func TestWrongKeyFails(t *testing.T) {
	a, _ := New("key-a")
	b, _ := New("key-b")

	enc, err := a.Encrypt("secret")
	require.NoError(t, err)

	_, err = b.Decrypt(enc)
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = a.Decrypt("not base64 !!")
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestEmptyValues(t *testing.T) {
	c, _ := New("k")
	enc, err := c.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, enc)

	plain, err := c.Decrypt("")
	require.NoError(t, err)
	assert.Empty(t, plain)

	_, err = New("")
	assert.ErrorIs(t, err, ErrNoKey)
}
