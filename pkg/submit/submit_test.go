package submit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/gagliardetto/solana-go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	blockhash    solana.Hash
	blockhashErr error
	accounts     map[solana.PublicKey][]byte
	sendErr      error

	blockhashCalls int
	sent           []*solana.Transaction
}

func (l *fakeLedger) GetLatestBlockhash(context.Context) (solana.Hash, error) {
	l.blockhashCalls++
	return l.blockhash, l.blockhashErr
}

func (l *fakeLedger) GetAccountData(_ context.Context, pubkey solana.PublicKey) ([]byte, error) {
	return l.accounts[pubkey], nil
}

func (l *fakeLedger) SendAndConfirmTransaction(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	l.sent = append(l.sent, tx)
	return tx.Signatures[0], l.sendErr
}

func newPrivateKey(t *testing.T) solana.PrivateKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key
}

func setCommission(t *testing.T, rewards solana.PublicKey) *vamp.Instruction {
	t.Helper()
	ix, err := (&vamp.SetCommission{
		VoteAccount:      solana.NewWallet().PublicKey(),
		RewardsAuthority: rewards,
		Commission:       5,
	}).Build(vamp.ProgramAddr)
	require.NoError(t, err)
	return ix
}

func TestSubmit_Confirmed(t *testing.T) {
	feePayer := newPrivateKey(t)
	rewards := newPrivateKey(t)
	ledger := &fakeLedger{blockhash: solana.Hash{9}}

	var states []State
	submitter := NewSubmitter(ledger)
	submitter.OnStateChange = func(r *Receipt) { states = append(states, r.State) }

	receipt, err := submitter.Submit(context.Background(), setCommission(t, rewards.PublicKey()), feePayer, rewards)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, receipt.State)
	assert.Equal(t, []State{StateSigned, StateSubmitted, StateConfirmed}, states)

	require.Len(t, ledger.sent, 1)
	tx := ledger.sent[0]
	assert.Equal(t, solana.Hash{9}, tx.Message.RecentBlockhash)
	assert.Equal(t, feePayer.PublicKey(), tx.Message.AccountKeys[0])
	assert.Equal(t, tx.Signatures[0], receipt.Signature)
	require.NoError(t, tx.VerifySignatures())
}

func TestSubmit_FeePayerIsAuthority(t *testing.T) {
	rewards := newPrivateKey(t)
	ledger := &fakeLedger{}

	receipt, err := NewSubmitter(ledger).Submit(context.Background(), setCommission(t, rewards.PublicKey()), rewards)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, receipt.State)
	require.Len(t, ledger.sent, 1)
	assert.Len(t, ledger.sent[0].Signatures, 1)
}

func TestSubmit_SetValidatorIdentityNeedsBothSigners(t *testing.T) {
	operational := newPrivateKey(t)
	identity := newPrivateKey(t)
	ix, err := (&vamp.SetValidatorIdentity{
		VoteAccount:          solana.NewWallet().PublicKey(),
		OperationalAuthority: operational.PublicKey(),
		NewIdentity:          identity.PublicKey(),
	}).Build(vamp.ProgramAddr)
	require.NoError(t, err)

	ledger := &fakeLedger{}
	_, err = NewSubmitter(ledger).Submit(context.Background(), ix, operational)
	assert.ErrorIs(t, err, vamp.ErrArgument)
	assert.Zero(t, ledger.blockhashCalls)

	receipt, err := NewSubmitter(ledger).Submit(context.Background(), ix, operational, identity)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, receipt.State)
	msg := ledger.sent[0].Message
	signers := lo.Map(msg.AccountKeys[:msg.Header.NumRequiredSignatures], func(k solana.PublicKey, _ int) string { return k.String() })
	assert.ElementsMatch(t, []string{operational.PublicKey().String(), identity.PublicKey().String()}, signers)
}

func TestSubmit_MissingSignerBeforeNetwork(t *testing.T) {
	ledger := &fakeLedger{}
	receipt, err := NewSubmitter(ledger).Submit(context.Background(), setCommission(t, solana.NewWallet().PublicKey()), newPrivateKey(t))
	assert.ErrorIs(t, err, vamp.ErrArgument)
	assert.Equal(t, StateFailed, receipt.State)
	assert.Zero(t, ledger.blockhashCalls)
	assert.Empty(t, ledger.sent)
}

func TestSubmit_BlockhashFailureSignsNothing(t *testing.T) {
	rewards := newPrivateKey(t)
	ledger := &fakeLedger{blockhashErr: fmt.Errorf("%w: connection refused", vamp.ErrTransport)}

	var transitions int
	submitter := NewSubmitter(ledger)
	submitter.OnStateChange = func(*Receipt) { transitions++ }

	receipt, err := submitter.Submit(context.Background(), setCommission(t, rewards.PublicKey()), rewards)
	assert.ErrorIs(t, err, vamp.ErrTransport)
	assert.Equal(t, StateFailed, receipt.State)
	assert.True(t, receipt.Signature.IsZero())
	assert.Empty(t, ledger.sent)
	assert.Zero(t, transitions)
}

func TestSubmit_SendFailureIsTerminal(t *testing.T) {
	rewards := newPrivateKey(t)
	sendErr := fmt.Errorf("%w: transaction failed", vamp.ErrTransport)
	ledger := &fakeLedger{sendErr: sendErr}

	receipt, err := NewSubmitter(ledger).Submit(context.Background(), setCommission(t, rewards.PublicKey()), rewards)
	assert.True(t, errors.Is(err, sendErr))
	assert.Equal(t, StateFailed, receipt.State)
	assert.False(t, receipt.Signature.IsZero())
	assert.Len(t, ledger.sent, 1)
	assert.Equal(t, 1, ledger.blockhashCalls)
}

func TestFetchManagerState(t *testing.T) {
	vote := solana.NewWallet().PublicKey()
	addr, _, err := vamp.DeriveManagerAddress(vote, vamp.ProgramAddr)
	require.NoError(t, err)

	stored := &vamp.ManagerState{
		WithdrawAuthority:    solana.NewWallet().PublicKey(),
		Administrator:        solana.NewWallet().PublicKey(),
		OperationalAuthority: solana.NewWallet().PublicKey(),
		RewardsAuthority:     solana.NewWallet().PublicKey(),
	}
	data, err := vamp.ManagerStateLayout.Marshal(
		stored.WithdrawAuthority, stored.Administrator,
		stored.OperationalAuthority, stored.RewardsAuthority,
		uint8(0), uint8(0), uint8(0), uint64(0),
	)
	require.NoError(t, err)
	ledger := &fakeLedger{accounts: map[solana.PublicKey][]byte{addr: data}}

	state, err := FetchManagerState(context.Background(), ledger, vamp.ProgramAddr, vote)
	require.NoError(t, err)
	assert.Equal(t, addr, state.Address)
	assert.Equal(t, stored.Administrator, state.Administrator)
	assert.Nil(t, state.CommissionCap)
}

func TestFetchManagerState_NotManaged(t *testing.T) {
	ledger := &fakeLedger{}
	_, err := FetchManagerState(context.Background(), ledger, vamp.ProgramAddr, solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, vamp.ErrNotManaged)

	vote := solana.NewWallet().PublicKey()
	addr, _, err := vamp.DeriveManagerAddress(vote, vamp.ProgramAddr)
	require.NoError(t, err)
	ledger.accounts = map[solana.PublicKey][]byte{addr: make([]byte, 3762)}
	_, err = FetchManagerState(context.Background(), ledger, vamp.ProgramAddr, vote)
	assert.ErrorIs(t, err, vamp.ErrNotManaged)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "submitted", StateSubmitted.String())
	assert.Equal(t, "State(9)", State(9).String())
}
