package ds

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"
)

const (
	// DefaultCases is the number of test cases in a default set.
	DefaultCases = 6
	// DefaultMessages is the number of pool messages in a default set.
	DefaultMessages = 10
	// DefaultKeys is the number of device HMAC keys in a default set.
	DefaultKeys = 3
)

// KeySizes is the RSA key size schedule: the case at index i uses
// KeySizes[i%len(KeySizes)] bits.
var KeySizes = []int{4096, 3072, 2048, 1024, 512}

// ParametersLiteral is a literal representation of generation
// parameters. It is checked for validity and turned into a Parameters
// struct by NewParametersFromLiteral.
//
// Zero counts select the defaults. An empty Seed makes the generator
// draw a fresh root seed from the system entropy source; a non-empty
// Seed of at most 64 bytes pins the whole run to a reproducible
// stream.
type ParametersLiteral struct {
	Cases    int    `json:",omitempty"`
	Messages int    `json:",omitempty"`
	Keys     int    `json:",omitempty"`
	Seed     []byte `json:",omitempty"`
}

// Parameters is an immutable, validated set of generation parameters.
type Parameters struct {
	cases    int
	messages int
	keys     int
	seed     []byte
}

// NewParametersFromLiteral instantiates a set of Parameters from a
// ParametersLiteral, substituting defaults for zero counts.
func NewParametersFromLiteral(lit ParametersLiteral) (Parameters, error) {

	if lit.Cases == 0 {
		lit.Cases = DefaultCases
	}
	if lit.Messages == 0 {
		lit.Messages = DefaultMessages
	}
	if lit.Keys == 0 {
		lit.Keys = DefaultKeys
	}

	switch {
	case lit.Cases < 0:
		return Parameters{}, fmt.Errorf("invalid parameters: %d cases", lit.Cases)
	case lit.Messages < 0:
		return Parameters{}, fmt.Errorf("invalid parameters: %d messages", lit.Messages)
	case lit.Keys < 0:
		return Parameters{}, fmt.Errorf("invalid parameters: %d keys", lit.Keys)
	case len(lit.Seed) > 64:
		return Parameters{}, fmt.Errorf("invalid parameters: seed of %d bytes exceeds 64", len(lit.Seed))
	}

	return Parameters{
		cases:    lit.Cases,
		messages: lit.Messages,
		keys:     lit.Keys,
		seed:     append([]byte(nil), lit.Seed...),
	}, nil
}

// NumCases returns the number of test cases to generate.
func (p Parameters) NumCases() int {
	return p.cases
}

// NumMessages returns the number of messages in the pool.
func (p Parameters) NumMessages() int {
	return p.messages
}

// NumKeys returns the number of device HMAC keys in the pool.
func (p Parameters) NumKeys() int {
	return p.keys
}

// Seed returns a copy of the root seed, which is empty unless pinned.
func (p Parameters) Seed() []byte {
	return append([]byte(nil), p.seed...)
}

// KeySize returns the RSA key size in bits for the case at index idx,
// following the KeySizes schedule.
func (p Parameters) KeySize(idx int) int {
	return KeySizes[idx%len(KeySizes)]
}

// ParametersLiteral returns the ParametersLiteral of the receiver.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		Cases:    p.cases,
		Messages: p.messages,
		Keys:     p.keys,
		Seed:     p.Seed(),
	}
}

// Equal returns true if the receiver and the operand are identical,
// including their seeds.
func (p Parameters) Equal(other Parameters) bool {
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}

// MarshalJSON returns a JSON representation of the receiver.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation into the receiver.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	var lit ParametersLiteral
	if err := json.Unmarshal(data, &lit); err != nil {
		return err
	}
	params, err := NewParametersFromLiteral(lit)
	if err != nil {
		return err
	}
	*p = params
	return nil
}
