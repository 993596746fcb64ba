package ds

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
)

// aesKeyLabel is the fixed message authenticated to derive the block
// key, 32 bytes of 0xff.
var aesKeyLabel = bytes.Repeat([]byte{0xff}, 32)

// DeriveKey derives the AES-256 block key from one device HMAC key, as
// HMAC-SHA256 over the fixed derivation label. The device performs the
// same computation with its fused key to unwrap the block.
func DeriveKey(hmacKey []byte) (key [AESKeySize]byte, err error) {
	if len(hmacKey) != HMACKeySize {
		return key, fmt.Errorf("hmac key is %d bytes, want %d: %w", len(hmacKey), HMACKeySize, ErrLayout)
	}
	mac := hmac.New(sha256.New, hmacKey)
	mac.Write(aesKeyLabel)
	copy(key[:], mac.Sum(nil))
	return key, nil
}
