package vamp

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveManagerAddress_Deterministic(t *testing.T) {
	vote := newKey()
	a, bumpA, err := DeriveManagerAddress(vote, ProgramAddr)
	require.NoError(t, err)
	b, bumpB, err := DeriveManagerAddress(vote, ProgramAddr)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, bumpA, bumpB)

	expected, expectedBump, err := solana.FindProgramAddress([][]byte{vote[:]}, ProgramAddr)
	require.NoError(t, err)
	assert.Equal(t, expected, a)
	assert.Equal(t, expectedBump, bumpA)
}

func TestDeriveManagerAddress_NoCollisions(t *testing.T) {
	votes := make([]solana.PublicKey, 256)
	for i := range votes {
		votes[i] = newKey()
	}
	votes = lo.Uniq(votes)

	managers := lo.Map(votes, func(vote solana.PublicKey, _ int) solana.PublicKey {
		addr, _, err := DeriveManagerAddress(vote, ProgramAddr)
		require.NoError(t, err)
		return addr
	})
	assert.Len(t, lo.Uniq(managers), len(votes))
}

func TestDeriveManagerAddress_DependsOnProgram(t *testing.T) {
	vote := newKey()
	a, _, err := DeriveManagerAddress(vote, ProgramAddr)
	require.NoError(t, err)
	b, _, err := DeriveManagerAddress(vote, VoteProgramAddr)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
