package ds

import (
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/hwvectors/dsgen/mont"
	"github.com/hwvectors/dsgen/utils/bignum"
	"github.com/hwvectors/dsgen/utils/sampling"
)

// Labels binding the sub-streams of the root seed. Every consumer of
// randomness owns a private stream derived under one of these, so the
// generation order of cases and pools cannot influence the output.
const (
	keyPoolLabel     = "dsgen/keypool"
	messagePoolLabel = "dsgen/msgpool"
	caseLabel        = "dsgen/case/%d"
)

// Generator produces test vector sets. All randomness flows from a
// single root seed through labeled sub-streams, so the scheduling of
// the work cannot influence what each consumer reads. With a pinned
// seed the pools, the IVs and the key pool indices are reproducible;
// the RSA keys are not, because crypto/rsa deliberately randomizes how
// it consumes its random source.
//
// A Generator is safe for concurrent use once constructed: the pools
// are frozen at construction time and test cases only read them.
type Generator struct {
	params Parameters
	seed   []byte
	keys   KeyPool
	msgs   MessagePool
}

// NewGenerator instantiates a Generator and samples its key and
// message pools. If the parameters do not pin a seed, a fresh one is
// drawn from the system entropy source and recorded in the effective
// parameters.
func NewGenerator(params Parameters) (*Generator, error) {

	seed := params.Seed()
	if len(seed) == 0 {
		var err error
		if seed, err = sampling.NewSeed(); err != nil {
			return nil, fmt.Errorf("cannot sample root seed: %w", err)
		}
		params.seed = append([]byte(nil), seed...)
	}

	g := &Generator{params: params, seed: seed}

	prng, err := sampling.NewKeyedPRNG(sampling.DeriveSeed(seed, keyPoolLabel))
	if err != nil {
		return nil, err
	}
	if g.keys, err = genKeyPool(prng, params.NumKeys()); err != nil {
		return nil, fmt.Errorf("cannot sample key pool: %w", err)
	}

	if prng, err = sampling.NewKeyedPRNG(sampling.DeriveSeed(seed, messagePoolLabel)); err != nil {
		return nil, err
	}
	if g.msgs, err = genMessagePool(prng, params.NumMessages()); err != nil {
		return nil, fmt.Errorf("cannot sample message pool: %w", err)
	}

	return g, nil
}

// Parameters returns the effective parameters of the generator, whose
// seed is always populated.
func (g *Generator) Parameters() Parameters {
	return g.params
}

// KeyPool returns a copy of the device HMAC key pool.
func (g *Generator) KeyPool() KeyPool {
	return g.keys.CopyNew()
}

// MessagePool returns a copy of the message pool.
func (g *Generator) MessagePool() MessagePool {
	return g.msgs.CopyNew()
}

// GenTestCase generates the test case at the given index. The case
// stream is consumed in a fixed order: IV first, then the key pool
// index, then the RSA key.
func (g *Generator) GenTestCase(idx int) (TestCase, error) {

	if idx < 0 || idx >= g.params.NumCases() {
		return TestCase{}, fmt.Errorf("case index %d out of range [0, %d)", idx, g.params.NumCases())
	}

	prng, err := sampling.NewKeyedPRNG(sampling.DeriveSeed(g.seed, fmt.Sprintf(caseLabel, idx)))
	if err != nil {
		return TestCase{}, err
	}

	var iv [IVSize]byte
	if _, err := io.ReadFull(prng, iv[:]); err != nil {
		return TestCase{}, err
	}

	keyIdx := int(bignum.RandInt(prng, bignum.NewInt(g.params.NumKeys())).Int64())

	bits := g.params.KeySize(idx)
	key, err := genKeyMaterial(prng, bits)
	if err != nil {
		return TestCase{}, err
	}

	mp, err := mont.NewParams(key.M, bits)
	if err != nil {
		return TestCase{}, err
	}

	plaintext, err := PlaintextBlock(key, mp, iv)
	if err != nil {
		return TestCase{}, err
	}

	aesKey, err := DeriveKey(g.keys[keyIdx])
	if err != nil {
		return TestCase{}, err
	}

	ciphertext, err := EncryptBlock(aesKey, iv, plaintext)
	if err != nil {
		return TestCase{}, err
	}

	return TestCase{
		Bits:       bits,
		IV:         iv,
		KeyIdx:     keyIdx,
		Key:        key,
		Mont:       mp,
		Ciphertext: ciphertext,
		Expected:   ExpectedResults(g.msgs, key),
	}, nil
}

// GenVectorSet generates every test case, one goroutine per case, and
// assembles the complete set. Every case owns a private random stream,
// so the concurrency does not affect what any case draws.
func (g *Generator) GenVectorSet() (*VectorSet, error) {

	cases := make([]TestCase, g.params.NumCases())

	var grp errgroup.Group
	for i := range cases {
		i := i
		grp.Go(func() (err error) {
			cases[i], err = g.GenTestCase(i)
			return
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return &VectorSet{
		Params:   g.params,
		Keys:     g.KeyPool(),
		Messages: g.MessagePool(),
		Cases:    cases,
	}, nil
}
