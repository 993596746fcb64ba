package ds

import (
	"io"
	"math/big"

	"github.com/hwvectors/dsgen/utils/bignum"
)

// KeyPool holds the device HMAC keys test cases draw from, each
// HMACKeySize bytes. On a device one of them would be burned into an
// eFuse block; here every case records which pool entry it used.
type KeyPool [][]byte

// MessagePool holds the messages every test case signs. Messages are
// sampled at the full MaxBits width and truncated per case to the
// operand size in use.
type MessagePool []*big.Int

// genKeyPool samples n device HMAC keys from the provided source.
func genKeyPool(prng io.Reader, n int) (KeyPool, error) {
	pool := make(KeyPool, n)
	for i := range pool {
		key := make([]byte, HMACKeySize)
		if _, err := io.ReadFull(prng, key); err != nil {
			return nil, err
		}
		pool[i] = key
	}
	return pool, nil
}

// genMessagePool samples n messages of MaxBits bits from the provided
// source.
func genMessagePool(prng io.Reader, n int) (MessagePool, error) {
	pool := make(MessagePool, n)
	buf := make([]byte, OperandBytes)
	for i := range pool {
		if _, err := io.ReadFull(prng, buf); err != nil {
			return nil, err
		}
		pool[i] = bignum.FromBytesLE(buf)
	}
	return pool, nil
}

// CopyNew returns a deep copy of the pool.
func (p KeyPool) CopyNew() KeyPool {
	out := make(KeyPool, len(p))
	for i, key := range p {
		out[i] = append([]byte(nil), key...)
	}
	return out
}

// CopyNew returns a deep copy of the pool.
func (p MessagePool) CopyNew() MessagePool {
	out := make(MessagePool, len(p))
	for i, m := range p {
		out[i] = new(big.Int).Set(m)
	}
	return out
}
