// Package crypt provides AES-256-GCM encryption for card fields stored at
// rest. The key is derived from APP_KEY with HKDF-SHA256.
//
// Ciphertext is base64url(nonce || ciphertext || tag), so a single string
// fits a VARCHAR column.
//
//	c, err := crypt.New(config.AppKey())
//	enc, err := c.Encrypt("4111111111111111")
//	plain, err := c.Decrypt(enc)
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// ErrDecrypt is returned when decryption or authentication fails.
var ErrDecrypt = errors.New("crypt: decryption failed")

// ErrNoKey is returned by New for an empty secret.
var ErrNoKey = errors.New("crypt: APP_KEY not configured")

const info = "backoffice card fields v1"

type Cipher struct {
	aead cipher.AEAD
}

// New derives a 32-byte key from secret and prepares the AEAD.
func New(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrNoKey
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("crypt: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypt: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypt: new GCM: %w", err)
	}
	return &Cipher{aead: gcm}, nil
}

// Encrypt seals plaintext. The empty string encrypts to the empty string.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("crypt: nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a string produced by Encrypt.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrDecrypt
	}
	n := c.aead.NonceSize()
	if len(data) < n {
		return "", ErrDecrypt
	}

	plain, err := c.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plain), nil
}
