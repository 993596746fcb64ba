package ds

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/hwvectors/dsgen/mont"
	"github.com/hwvectors/dsgen/utils/bignum"
)

// ErrLayout is returned when a serialized structure does not match the
// fixed wire format of the accelerator.
var ErrLayout = errors.New("layout does not match the fixed wire format")

// DigestInput serializes the key material for the integrity digest.
// The layout is fixed at DigestInputSize bytes:
//
//	Y  | OperandBytes, little endian
//	M  | OperandBytes, little endian
//	Rb | OperandBytes, little endian
//	M' | 4 bytes, little endian
//	L  | 4 bytes, little endian, words minus one
//	IV | IVSize bytes
func DigestInput(key KeyMaterial, p mont.Params, iv [IVSize]byte) ([]byte, error) {

	buf := make([]byte, 0, DigestInputSize)

	var err error
	for _, x := range []*big.Int{key.Y, key.M, p.Rb} {
		if buf, err = appendOperand(buf, x); err != nil {
			return nil, err
		}
	}
	buf = binary.LittleEndian.AppendUint32(buf, p.MPrime)
	buf = binary.LittleEndian.AppendUint32(buf, p.Length)
	buf = append(buf, iv[:]...)

	if len(buf) != DigestInputSize {
		return nil, fmt.Errorf("digest input is %d bytes, want %d: %w", len(buf), DigestInputSize, ErrLayout)
	}
	return buf, nil
}

// PlaintextBlock assembles the block that is encrypted into a test
// case: the three operands, the SHA-256 digest of the DigestInput
// serialization, the two scalar constants and the fixed padding. The
// digest sits between Rb and M', not at the end of the block.
func PlaintextBlock(key KeyMaterial, p mont.Params, iv [IVSize]byte) ([]byte, error) {

	din, err := DigestInput(key, p, iv)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(din)

	buf := make([]byte, 0, PlaintextSize)
	for _, x := range []*big.Int{key.Y, key.M, p.Rb} {
		if buf, err = appendOperand(buf, x); err != nil {
			return nil, err
		}
	}
	buf = append(buf, digest[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, p.MPrime)
	buf = binary.LittleEndian.AppendUint32(buf, p.Length)
	for i := 0; i < PadSize; i++ {
		buf = append(buf, PadByte)
	}

	if len(buf) != PlaintextSize {
		return nil, fmt.Errorf("plaintext block is %d bytes, want %d: %w", len(buf), PlaintextSize, ErrLayout)
	}
	return buf, nil
}

// appendOperand encodes x into a fixed OperandBytes little-endian slot.
func appendOperand(buf []byte, x *big.Int) ([]byte, error) {
	le, err := bignum.BytesLE(x, OperandBytes)
	if err != nil {
		return nil, fmt.Errorf("cannot place %d-bit operand: %w", x.BitLen(), err)
	}
	return append(buf, le...), nil
}
