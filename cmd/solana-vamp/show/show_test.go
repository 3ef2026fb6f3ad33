package show

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/cli"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *vamp.ManagerState {
	return &vamp.ManagerState{
		Address:              solana.NewWallet().PublicKey(),
		WithdrawAuthority:    solana.NewWallet().PublicKey(),
		Administrator:        solana.NewWallet().PublicKey(),
		OperationalAuthority: solana.NewWallet().PublicKey(),
		RewardsAuthority:     solana.NewWallet().PublicKey(),
	}
}

func TestRender_NoCaps(t *testing.T) {
	vote := solana.NewWallet().PublicKey()
	state := sampleState()
	var out bytes.Buffer

	require.NoError(t, render(&out, vote, state))
	assert.Equal(t, strings.Join([]string{
		"Vote Account: " + vote.String(),
		"  Manager Account: " + state.Address.String(),
		"  Withdraw Authority: " + state.WithdrawAuthority.String(),
		"  Administrator: " + state.Administrator.String(),
		"  Operational Authority: " + state.OperationalAuthority.String(),
		"  Rewards Authority: " + state.RewardsAuthority.String(),
		"",
	}, "\n"), out.String())
}

func TestRender_CapsAndLeaveEpoch(t *testing.T) {
	state := sampleState()
	state.CommissionCap = &vamp.CommissionCap{MaxCommission: 10, MaxIncreasePerEpoch: 3}
	state.LeaveEpoch = 120
	var out bytes.Buffer

	require.NoError(t, render(&out, solana.NewWallet().PublicKey(), state))
	assert.Contains(t, out.String(), "  Max Commission: 10\n")
	assert.Contains(t, out.String(), "  Max Commission Increase per Epoch: 3\n")
	assert.True(t, strings.HasSuffix(out.String(), "  Leave Epoch: 120\n"))
}

func TestWantJSON(t *testing.T) {
	on, rest, err := wantJSON([]string{"vote", "json"})
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []string{"vote"}, rest)

	on, rest, err = wantJSON([]string{"vote"})
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, []string{"vote"}, rest)

	on, rest, err = wantJSON([]string{"vote", "yaml"})
	require.NoError(t, err)
	assert.False(t, on)
	assert.Len(t, rest, 2)
	assert.ErrorIs(t, params.Resolve(rest), vamp.ErrArgument)
}

func TestWantJSON_FlagLeavesTokenUnexpected(t *testing.T) {
	t.Cleanup(func() { *jsonFlag = cli.OnceValue{} })
	require.NoError(t, Cmd.Flags().Set("json", "true"))

	on, rest, err := wantJSON([]string{"vote", "json"})
	require.NoError(t, err)
	assert.True(t, on)
	assert.ErrorIs(t, params.Resolve(rest), vamp.ErrArgument)
}
