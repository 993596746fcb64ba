package ds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParameters(t *testing.T) {

	t.Run("Defaults", func(t *testing.T) {

		p, err := NewParametersFromLiteral(ParametersLiteral{})
		require.NoError(t, err)

		require.Equal(t, DefaultCases, p.NumCases())
		require.Equal(t, DefaultMessages, p.NumMessages())
		require.Equal(t, DefaultKeys, p.NumKeys())
		require.Empty(t, p.Seed())
	})

	t.Run("Explicit", func(t *testing.T) {

		p, err := NewParametersFromLiteral(ParametersLiteral{
			Cases:    2,
			Messages: 7,
			Keys:     1,
			Seed:     []byte{1, 2, 3},
		})
		require.NoError(t, err)

		require.Equal(t, 2, p.NumCases())
		require.Equal(t, 7, p.NumMessages())
		require.Equal(t, 1, p.NumKeys())
		require.Equal(t, []byte{1, 2, 3}, p.Seed())
	})

	t.Run("Invalid", func(t *testing.T) {

		_, err := NewParametersFromLiteral(ParametersLiteral{Cases: -1})
		require.Error(t, err)

		_, err = NewParametersFromLiteral(ParametersLiteral{Messages: -3})
		require.Error(t, err)

		_, err = NewParametersFromLiteral(ParametersLiteral{Keys: -1})
		require.Error(t, err)

		_, err = NewParametersFromLiteral(ParametersLiteral{Seed: make([]byte, 65)})
		require.Error(t, err)
	})

	t.Run("KeySizeSchedule", func(t *testing.T) {

		p, err := NewParametersFromLiteral(ParametersLiteral{Cases: 12})
		require.NoError(t, err)

		want := []int{4096, 3072, 2048, 1024, 512, 4096, 3072, 2048, 1024, 512, 4096, 3072}
		for i, bits := range want {
			require.Equal(t, bits, p.KeySize(i))
		}
	})

	t.Run("SeedCopy", func(t *testing.T) {

		seed := []byte{9, 9, 9}
		p, err := NewParametersFromLiteral(ParametersLiteral{Seed: seed})
		require.NoError(t, err)

		seed[0] = 0
		require.Equal(t, []byte{9, 9, 9}, p.Seed())

		got := p.Seed()
		got[1] = 0
		require.Equal(t, []byte{9, 9, 9}, p.Seed())
	})

	t.Run("Equal", func(t *testing.T) {

		a, err := NewParametersFromLiteral(ParametersLiteral{Seed: []byte{1}})
		require.NoError(t, err)
		b, err := NewParametersFromLiteral(ParametersLiteral{Seed: []byte{1}})
		require.NoError(t, err)
		c, err := NewParametersFromLiteral(ParametersLiteral{Seed: []byte{2}})
		require.NoError(t, err)
		d, err := NewParametersFromLiteral(ParametersLiteral{Cases: 1, Seed: []byte{1}})
		require.NoError(t, err)

		require.True(t, a.Equal(b))
		require.False(t, a.Equal(c))
		require.False(t, a.Equal(d))
	})

	t.Run("JSON", func(t *testing.T) {

		p, err := NewParametersFromLiteral(ParametersLiteral{Cases: 3, Seed: []byte{7, 7}})
		require.NoError(t, err)

		data, err := json.Marshal(p)
		require.NoError(t, err)

		var q Parameters
		require.NoError(t, json.Unmarshal(data, &q))
		require.True(t, p.Equal(q))
	})
}
