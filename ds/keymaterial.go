package ds

import (
	"crypto/rsa"
	"fmt"
	"io"
	"math/big"

	"github.com/hwvectors/dsgen/mont"
)

// PublicExponent is the RSA public exponent of all generated keys.
const PublicExponent = 65537

// KeyMaterial is one RSA signing key in the form the accelerator
// consumes it: the private exponent Y, the modulus M and the declared
// operand size in bits.
type KeyMaterial struct {
	Y    *big.Int
	M    *big.Int
	Bits int
}

// NewKeyMaterial wraps an existing key pair after checking that both
// operands fit the declared size.
func NewKeyMaterial(y, m *big.Int, bits int) (KeyMaterial, error) {

	switch {
	case y == nil || y.Sign() <= 0:
		return KeyMaterial{}, fmt.Errorf("private exponent must be a positive integer")
	case m == nil || m.Sign() <= 0:
		return KeyMaterial{}, fmt.Errorf("modulus must be a positive integer")
	case !mont.IsSupportedBits(bits):
		return KeyMaterial{}, fmt.Errorf("unsupported key size %d: must be one of %v", bits, mont.SupportedBits)
	case y.BitLen() > bits:
		return KeyMaterial{}, fmt.Errorf("private exponent of %d bits exceeds the declared %d-bit operand", y.BitLen(), bits)
	case m.BitLen() > bits:
		return KeyMaterial{}, fmt.Errorf("modulus of %d bits exceeds the declared %d-bit operand", m.BitLen(), bits)
	}

	return KeyMaterial{
		Y:    new(big.Int).Set(y),
		M:    new(big.Int).Set(m),
		Bits: bits,
	}, nil
}

// genKeyMaterial generates a fresh RSA key of the given size from the
// provided random source.
func genKeyMaterial(random io.Reader, bits int) (KeyMaterial, error) {
	priv, err := rsa.GenerateKey(random, bits)
	if err != nil {
		return KeyMaterial{}, fmt.Errorf("cannot generate %d-bit rsa key: %w", bits, err)
	}
	if priv.E != PublicExponent {
		return KeyMaterial{}, fmt.Errorf("unexpected public exponent %d", priv.E)
	}
	return NewKeyMaterial(priv.D, priv.N, bits)
}
