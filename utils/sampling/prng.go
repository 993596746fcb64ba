// Package sampling implements the random sources used throughout the
// generator: a system source backed by crypto/rand and a seeded,
// reproducible source backed by the BLAKE2b XOF. Seeds for independent
// sub-streams are derived with the BLAKE3 key-derivation mode, so that
// concurrent consumers can each own a private stream while the whole
// run remains a pure function of one root seed.
package sampling

import (
	"crypto/rand"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// SeedSize is the byte length of seeds produced by NewSeed and DeriveSeed.
const SeedSize = 32

// PRNG is a byte stream suitable for cryptographic sampling.
type PRNG interface {
	// Read fills p with random bytes. It only returns an error if the
	// underlying source fails, which for the seeded source cannot happen.
	Read(p []byte) (n int, err error)
}

// KeyedPRNG is a deterministic PRNG: two instances created with the same
// seed produce identical streams. It is backed by the BLAKE2b XOF in
// unbounded output mode. A KeyedPRNG is not safe for concurrent use;
// give each goroutine its own instance, seeded via DeriveSeed.
type KeyedPRNG struct {
	seed []byte
	xof  blake2b.XOF
}

// NewKeyedPRNG returns a KeyedPRNG seeded with the provided seed, which
// must be at most 64 bytes long. A nil seed yields a fixed, publicly
// known stream, which is useful in tests.
func NewKeyedPRNG(seed []byte) (*KeyedPRNG, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, seed)
	if err != nil {
		return nil, err
	}
	prng := &KeyedPRNG{
		seed: append([]byte(nil), seed...),
		xof:  xof,
	}
	return prng, nil
}

// Seed returns a copy of the seed the stream was created with.
func (prng *KeyedPRNG) Seed() []byte {
	return append([]byte(nil), prng.seed...)
}

// Read fills p with pseudo-random bytes. It never fails.
func (prng *KeyedPRNG) Read(p []byte) (n int, err error) {
	return prng.xof.Read(p)
}

// Reset rewinds the stream to its initial state.
func (prng *KeyedPRNG) Reset() {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, prng.seed)
	if err != nil {
		// The seed was already accepted once by NewKeyedPRNG.
		panic(err)
	}
	prng.xof = xof
}

// SystemPRNG reads directly from the system entropy source. It is safe
// for concurrent use but not reproducible.
type SystemPRNG struct{}

// NewPRNG returns a PRNG backed by crypto/rand.
func NewPRNG() (*SystemPRNG, error) {
	return &SystemPRNG{}, nil
}

// Read fills p with bytes from the system entropy source.
func (prng *SystemPRNG) Read(p []byte) (n int, err error) {
	return rand.Read(p)
}

// NewSeed draws a fresh SeedSize-byte seed from the system entropy source.
func NewSeed() ([]byte, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// DeriveSeed derives a SeedSize-byte sub-seed from seed, bound to the
// given label. Distinct labels yield independent sub-seeds, so streams
// keyed with them can be consumed in any order, or in parallel, without
// affecting each other.
func DeriveSeed(seed []byte, label string) []byte {
	sub := make([]byte, SeedSize)
	blake3.DeriveKey(label, seed, sub)
	return sub
}
