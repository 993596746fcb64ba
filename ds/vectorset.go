package ds

import (
	"math/big"

	"github.com/hwvectors/dsgen/mont"
)

// TestCase is one self-contained accelerator vector. The structure
// keeps the key material and Montgomery constants in the clear next to
// the ciphertext so that consumers can cross-check the encryption, but
// only the IV, the ciphertext, the key pool index and the expected
// signatures are meant to reach a device.
type TestCase struct {
	// Bits is the RSA key size of this case.
	Bits int
	// IV is the AES-CBC initialization vector, also bound into the
	// integrity digest.
	IV [IVSize]byte
	// KeyIdx is the index of the device HMAC key used by this case.
	KeyIdx int
	// Key is the RSA key material encrypted into the block.
	Key KeyMaterial
	// Mont holds the Montgomery constants derived from the modulus.
	Mont mont.Params
	// Ciphertext is the encrypted plaintext block, PlaintextSize bytes.
	Ciphertext []byte
	// Expected holds one reference signature per pool message.
	Expected []*big.Int
}

// VectorSet is a complete generation artifact: the effective
// parameters including the root seed, the two pools and all test
// cases. Sets are assembled by Generator.GenVectorSet and checked end
// to end by Verify before leaving the program.
type VectorSet struct {
	Params   Parameters
	Keys     KeyPool
	Messages MessagePool
	Cases    []TestCase
}
