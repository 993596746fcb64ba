package ds

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/hwvectors/dsgen/mont"
	"github.com/hwvectors/dsgen/utils/bignum"
)

// wireVersion tags the serialized layout of a vector set record.
const wireVersion = 1

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	if cborEnc, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	if cborDec, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(err)
	}
}

// vectorSetWire is the serialized form of a VectorSet. Operands are
// stored as little-endian 32-bit words at the width of their case, the
// same convention the emitted C header uses.
type vectorSetWire struct {
	Version  uint32
	Params   ParametersLiteral
	Keys     [][]byte
	Messages [][]uint32
	Cases    []testCaseWire
}

type testCaseWire struct {
	Bits       int
	IV         []byte
	KeyIdx     int
	Y          []uint32
	M          []uint32
	Rb         []uint32
	MPrime     uint32
	Length     uint32
	Ciphertext []byte
	Expected   [][]uint32
}

// MarshalBinary serializes the set into a deterministic CBOR record.
func (vs *VectorSet) MarshalBinary() ([]byte, error) {

	wire := vectorSetWire{
		Version: wireVersion,
		Params:  vs.Params.ParametersLiteral(),
		Keys:    vs.Keys.CopyNew(),
		Cases:   make([]testCaseWire, len(vs.Cases)),
	}

	var err error
	wire.Messages = make([][]uint32, len(vs.Messages))
	for i, m := range vs.Messages {
		if wire.Messages[i], err = bignum.WordsLE(m, MessageWords); err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
	}

	for i := range vs.Cases {
		tc := &vs.Cases[i]
		words := tc.Bits / mont.WordBits

		cw := testCaseWire{
			Bits:       tc.Bits,
			IV:         append([]byte(nil), tc.IV[:]...),
			KeyIdx:     tc.KeyIdx,
			MPrime:     tc.Mont.MPrime,
			Length:     tc.Mont.Length,
			Ciphertext: append([]byte(nil), tc.Ciphertext...),
			Expected:   make([][]uint32, len(tc.Expected)),
		}
		if cw.Y, err = bignum.WordsLE(tc.Key.Y, words); err != nil {
			return nil, fmt.Errorf("case %d exponent: %w", i, err)
		}
		if cw.M, err = bignum.WordsLE(tc.Key.M, words); err != nil {
			return nil, fmt.Errorf("case %d modulus: %w", i, err)
		}
		if cw.Rb, err = bignum.WordsLE(tc.Mont.Rb, words); err != nil {
			return nil, fmt.Errorf("case %d rb: %w", i, err)
		}
		for j, r := range tc.Expected {
			if cw.Expected[j], err = bignum.WordsLE(r, words); err != nil {
				return nil, fmt.Errorf("case %d result %d: %w", i, j, err)
			}
		}
		wire.Cases[i] = cw
	}

	return cborEnc.Marshal(wire)
}

// UnmarshalBinary reads a CBOR record produced by MarshalBinary back
// into the receiver. Shapes are validated on the way in; Verify
// remains the caller's tool for the deeper cryptographic checks.
func (vs *VectorSet) UnmarshalBinary(data []byte) error {

	var wire vectorSetWire
	if err := cborDec.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Version != wireVersion {
		return fmt.Errorf("unsupported record version %d, want %d", wire.Version, wireVersion)
	}

	params, err := NewParametersFromLiteral(wire.Params)
	if err != nil {
		return err
	}

	keys := KeyPool(wire.Keys).CopyNew()

	msgs := make(MessagePool, len(wire.Messages))
	for i, words := range wire.Messages {
		if len(words) != MessageWords {
			return fmt.Errorf("message %d holds %d words, want %d: %w", i, len(words), MessageWords, ErrLayout)
		}
		msgs[i] = bignum.FromWordsLE(words)
	}

	cases := make([]TestCase, len(wire.Cases))
	for i := range wire.Cases {
		cw := &wire.Cases[i]
		words := cw.Bits / mont.WordBits

		if !mont.IsSupportedBits(cw.Bits) {
			return fmt.Errorf("case %d declares unsupported key size %d", i, cw.Bits)
		}
		if len(cw.IV) != IVSize {
			return fmt.Errorf("case %d iv is %d bytes, want %d: %w", i, len(cw.IV), IVSize, ErrLayout)
		}
		if len(cw.Ciphertext) != PlaintextSize {
			return fmt.Errorf("case %d ciphertext is %d bytes, want %d: %w", i, len(cw.Ciphertext), PlaintextSize, ErrLayout)
		}
		if len(cw.Y) != words || len(cw.M) != words || len(cw.Rb) != words {
			return fmt.Errorf("case %d operands do not span %d words: %w", i, words, ErrLayout)
		}
		if cw.Length != uint32(words-1) {
			return fmt.Errorf("case %d declares length %d, want %d: %w", i, cw.Length, words-1, ErrLayout)
		}

		key, err := NewKeyMaterial(bignum.FromWordsLE(cw.Y), bignum.FromWordsLE(cw.M), cw.Bits)
		if err != nil {
			return fmt.Errorf("case %d: %w", i, err)
		}

		tc := TestCase{
			Bits:   cw.Bits,
			KeyIdx: cw.KeyIdx,
			Key:    key,
			Mont: mont.Params{
				Rb:     bignum.FromWordsLE(cw.Rb),
				MPrime: cw.MPrime,
				Length: cw.Length,
			},
			Ciphertext: append([]byte(nil), cw.Ciphertext...),
			Expected:   make([]*big.Int, len(cw.Expected)),
		}
		copy(tc.IV[:], cw.IV)
		for j, rw := range cw.Expected {
			if len(rw) != words {
				return fmt.Errorf("case %d result %d does not span %d words: %w", i, j, words, ErrLayout)
			}
			tc.Expected[j] = bignum.FromWordsLE(rw)
		}
		cases[i] = tc
	}

	vs.Params = params
	vs.Keys = keys
	vs.Messages = msgs
	vs.Cases = cases
	return nil
}
