package ds

import (
	"math/big"
)

// ExpectedResults computes the reference signature of every pool
// message under the given key: each message is truncated to the
// operand size and raised to the private exponent modulo M. The
// truncation mirrors the accelerator, which only reads as many words
// of the message as the configured length.
func ExpectedResults(msgs MessagePool, key KeyMaterial) []*big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), uint(key.Bits))
	mask.Sub(mask, big.NewInt(1))

	out := make([]*big.Int, len(msgs))
	for i, m := range msgs {
		t := new(big.Int).And(m, mask)
		out[i] = t.Exp(t, key.Y, key.M)
	}
	return out
}
