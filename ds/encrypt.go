package ds

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// EncryptBlock encrypts a plaintext block with AES-256-CBC under the
// derived block key. PlaintextSize is a multiple of the AES block
// size, so no padding scheme is involved; the IV travels separately in
// the test case.
func EncryptBlock(key [AESKeySize]byte, iv [IVSize]byte, plaintext []byte) ([]byte, error) {
	if len(plaintext) != PlaintextSize {
		return nil, fmt.Errorf("plaintext is %d bytes, want %d: %w", len(plaintext), PlaintextSize, ErrLayout)
	}
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	ciphertext := make([]byte, PlaintextSize)
	cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(ciphertext, plaintext)
	return ciphertext, nil
}

// DecryptBlock inverts EncryptBlock.
func DecryptBlock(key [AESKeySize]byte, iv [IVSize]byte, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != PlaintextSize {
		return nil, fmt.Errorf("ciphertext is %d bytes, want %d: %w", len(ciphertext), PlaintextSize, ErrLayout)
	}
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	plaintext := make([]byte, PlaintextSize)
	cipher.NewCBCDecrypter(block, iv[:]).CryptBlocks(plaintext, ciphertext)
	return plaintext, nil
}
