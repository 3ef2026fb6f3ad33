package setcommission

import (
	"testing"

	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/cli/clitest"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	authority := solana.NewWallet().PrivateKey
	vote := solana.NewWallet().PublicKey()

	tx, err := build(clitest.Parse(t, Cmd.Flags(),
		clitest.WriteKeypair(t, authority), vote.String(), "--commission", "5"))
	require.NoError(t, err)

	assert.Equal(t, []byte{byte(vamp.OpcodeSetCommission), 5}, tx.Instruction.Payload)
	assert.Len(t, tx.Instruction.Metas, 4)
	assert.Equal(t, []solana.PrivateKey{authority}, tx.Signers)
}

func TestBuild_CommissionOutOfRange(t *testing.T) {
	_, err := build(clitest.Parse(t, Cmd.Flags(),
		clitest.WriteKeypair(t, solana.NewWallet().PrivateKey), solana.NewWallet().PublicKey().String(), "300"))
	assert.ErrorIs(t, err, vamp.ErrArgument)
}
