// Package ds generates test vectors for an RSA digital signature
// peripheral that signs inside a hardware-encrypted key envelope. A
// vector set holds a pool of device HMAC keys, a pool of messages and a
// list of self-contained test cases. Each case carries an AES-256-CBC
// encrypted block of RSA key material laid out for a 32-bit Montgomery
// multiplier, together with the signatures the hardware must produce
// for every message in the pool.
//
// All sizes on the wire are fixed by the accelerator: operands occupy
// OperandBytes regardless of the key size in use, and the encrypted
// block is exactly PlaintextSize bytes long.
package ds

import (
	"crypto/sha256"

	"github.com/hwvectors/dsgen/mont"
)

const (
	// MaxBits is the widest operand the accelerator accepts.
	MaxBits = 4096
	// OperandBytes is the fixed width of one operand slot in the
	// encrypted block, sized for MaxBits.
	OperandBytes = MaxBits / 8
	// MessageWords is the fixed message width in 32-bit words.
	MessageWords = MaxBits / mont.WordBits

	// HMACKeySize is the byte length of one device HMAC key.
	HMACKeySize = 32
	// AESKeySize is the byte length of the derived AES-256 block key.
	AESKeySize = 32
	// IVSize is the byte length of the AES-CBC initialization vector.
	IVSize = 16
	// DigestSize is the byte length of the SHA-256 integrity digest.
	DigestSize = sha256.Size

	// PadByte fills the trailing padding of the plaintext block.
	PadByte = 0x08
	// PadSize is the number of padding bytes closing the block.
	PadSize = 8

	// DigestInputSize is the exact serialized length hashed into the
	// integrity digest: Y, M and Rb at OperandBytes each, M' and the
	// word length as 4 bytes each, then the IV.
	DigestInputSize = 3*OperandBytes + 2*4 + IVSize

	// PlaintextSize is the exact length of the block under AES-CBC:
	// Y, M and Rb at OperandBytes each, the digest, M' and the word
	// length at 4 bytes each, then PadSize bytes of PadByte. It is a
	// multiple of the AES block size, so encryption adds no padding.
	PlaintextSize = 3*OperandBytes + DigestSize + 2*4 + PadSize
)
