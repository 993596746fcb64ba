package ds

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"

	"github.com/hwvectors/dsgen/mont"
)

// Verify checks the whole set against the accelerator contract before
// it is emitted: pool shapes, per-case Montgomery constants, the
// decryption round trip of every ciphertext and every expected
// signature. Signatures are recomputed with an independent
// constant-time arithmetic stack rather than the big.Int code that
// produced them. The first violation found is returned.
func (vs *VectorSet) Verify() error {

	if len(vs.Cases) != vs.Params.NumCases() {
		return fmt.Errorf("set has %d cases, parameters declare %d", len(vs.Cases), vs.Params.NumCases())
	}
	if len(vs.Keys) != vs.Params.NumKeys() {
		return fmt.Errorf("set has %d hmac keys, parameters declare %d", len(vs.Keys), vs.Params.NumKeys())
	}
	if len(vs.Messages) != vs.Params.NumMessages() {
		return fmt.Errorf("set has %d messages, parameters declare %d", len(vs.Messages), vs.Params.NumMessages())
	}

	for i, key := range vs.Keys {
		if len(key) != HMACKeySize {
			return fmt.Errorf("hmac key %d is %d bytes, want %d: %w", i, len(key), HMACKeySize, ErrLayout)
		}
	}
	for i, m := range vs.Messages {
		if m == nil || m.Sign() < 0 || m.BitLen() > MaxBits {
			return fmt.Errorf("message %d is not in [0, 2^%d)", i, MaxBits)
		}
	}

	// Each case draws its IV from a private stream, so a collision
	// points at broken seed separation rather than bad luck.
	seen := map[[IVSize]byte]int{}
	for i := range vs.Cases {
		if j, ok := seen[vs.Cases[i].IV]; ok {
			return fmt.Errorf("cases %d and %d share an iv", j, i)
		}
		seen[vs.Cases[i].IV] = i
	}

	for i := range vs.Cases {
		if err := vs.verifyCase(i); err != nil {
			return fmt.Errorf("case %d: %w", i, err)
		}
	}
	return nil
}

func (vs *VectorSet) verifyCase(idx int) error {

	tc := &vs.Cases[idx]

	if tc.Bits != vs.Params.KeySize(idx) {
		return fmt.Errorf("key size %d does not follow the schedule, want %d", tc.Bits, vs.Params.KeySize(idx))
	}
	if tc.Key.Bits != tc.Bits {
		return fmt.Errorf("key material declares %d bits, case declares %d", tc.Key.Bits, tc.Bits)
	}
	if tc.KeyIdx < 0 || tc.KeyIdx >= len(vs.Keys) {
		return fmt.Errorf("hmac key index %d out of range [0, %d)", tc.KeyIdx, len(vs.Keys))
	}

	// The recorded Montgomery constants must match a fresh derivation
	// and satisfy M * M' = -1 mod 2^32 in plain big.Int arithmetic.
	mp, err := mont.NewParams(tc.Key.M, tc.Bits)
	if err != nil {
		return err
	}
	if !mp.Equal(tc.Mont) {
		return fmt.Errorf("recorded montgomery constants do not match the modulus")
	}
	radix := new(big.Int).Lsh(big.NewInt(1), 32)
	prod := new(big.Int).Mul(tc.Key.M, new(big.Int).SetUint64(uint64(tc.Mont.MPrime)))
	if prod.Mod(prod, radix); prod.Cmp(new(big.Int).Sub(radix, big.NewInt(1))) != 0 {
		return fmt.Errorf("montgomery inverse invariant does not hold")
	}

	plaintext, err := PlaintextBlock(tc.Key, tc.Mont, tc.IV)
	if err != nil {
		return err
	}
	aesKey, err := DeriveKey(vs.Keys[tc.KeyIdx])
	if err != nil {
		return err
	}
	decrypted, err := DecryptBlock(aesKey, tc.IV, tc.Ciphertext)
	if err != nil {
		return err
	}
	if !bytes.Equal(decrypted, plaintext) {
		return fmt.Errorf("ciphertext does not decrypt to the plaintext block")
	}

	if len(tc.Expected) != len(vs.Messages) {
		return fmt.Errorf("case has %d expected results, want %d", len(tc.Expected), len(vs.Messages))
	}

	mask := new(big.Int).Lsh(big.NewInt(1), uint(tc.Bits))
	mask.Sub(mask, big.NewInt(1))
	mod := saferith.ModulusFromBytes(tc.Key.M.Bytes())
	exp := new(saferith.Nat).SetBytes(tc.Key.Y.Bytes())

	for j, want := range tc.Expected {
		if want == nil || want.Sign() < 0 || want.Cmp(tc.Key.M) >= 0 {
			return fmt.Errorf("expected result %d is not in [0, M)", j)
		}
		t := new(big.Int).And(vs.Messages[j], mask)
		got := new(saferith.Nat).Exp(new(saferith.Nat).SetBytes(t.Bytes()), exp, mod)
		if new(big.Int).SetBytes(got.Bytes()).Cmp(want) != 0 {
			return fmt.Errorf("expected result %d does not match an independent recomputation", j)
		}
	}
	return nil
}
