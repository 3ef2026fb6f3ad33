package withdraw

import (
	"testing"

	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLamports(t *testing.T) {
	cases := []struct {
		args []string
		want uint64
	}{
		{[]string{"auth.json", "vote", "dest"}, 0},
		{[]string{"auth.json", "vote", "dest", "0"}, 0},
		{[]string{"auth.json", "vote", "dest", "1.5"}, 1_500_000_000},
		{[]string{"auth.json", "vote", "dest", "0.000000001"}, 1},
	}
	for _, c := range cases {
		require.NoError(t, params.Resolve(c.args))
		n, err := lamports()
		require.NoError(t, err, c.args)
		assert.Equal(t, c.want, n, c.args)
	}

	require.NoError(t, params.Resolve([]string{"auth.json", "vote", "dest", "-2"}))
	_, err := lamports()
	assert.ErrorIs(t, err, vamp.ErrArgument)
}
