// Package submit signs Vote Account Manager instructions into transactions
// and sends them through a ledger connection.
package submit

import (
	"context"
	"fmt"

	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/gagliardetto/solana-go"
	"k8s.io/klog/v2"
)

// Ledger is the subset of the RPC client the submitter needs.
type Ledger interface {
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	GetAccountData(ctx context.Context, pubkey solana.PublicKey) ([]byte, error)
	SendAndConfirmTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

type State uint8

const (
	StateBuilt State = iota
	StateSigned
	StateSubmitted
	StateConfirmed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateBuilt:
		return "built"
	case StateSigned:
		return "signed"
	case StateSubmitted:
		return "submitted"
	case StateConfirmed:
		return "confirmed"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Receipt tracks one submission. Signature is set once the transaction has
// been signed.
type Receipt struct {
	Opcode    vamp.Opcode
	State     State
	Signature solana.Signature
}

type Submitter struct {
	ledger Ledger

	// OnStateChange, if set, is called on every receipt transition.
	OnStateChange func(*Receipt)
}

func NewSubmitter(ledger Ledger) *Submitter {
	return &Submitter{ledger: ledger}
}

func (s *Submitter) transition(r *Receipt, state State) {
	r.State = state
	klog.V(2).Infof("%s transaction %s: %s", r.Opcode, r.Signature, state)
	if s.OnStateChange != nil {
		s.OnStateChange(r)
	}
}

// Submit signs ix with the fee payer and signers and submits it exactly
// once. The returned receipt is never nil and records how far the
// submission got.
func (s *Submitter) Submit(ctx context.Context, ix *vamp.Instruction, feePayer solana.PrivateKey, signers ...solana.PrivateKey) (*Receipt, error) {
	receipt := &Receipt{Opcode: ix.Opcode, State: StateBuilt}

	keys := map[solana.PublicKey]solana.PrivateKey{feePayer.PublicKey(): feePayer}
	for _, signer := range signers {
		keys[signer.PublicKey()] = signer
	}
	for _, required := range ix.Signers() {
		if _, ok := keys[required]; !ok {
			receipt.State = StateFailed
			return receipt, fmt.Errorf("%w: %s requires a keypair for signer %s (%s)",
				vamp.ErrArgument, ix.Opcode, required, ix.Authority)
		}
	}

	blockhash, err := s.ledger.GetLatestBlockhash(ctx)
	if err != nil {
		receipt.State = StateFailed
		return receipt, err
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		blockhash,
		solana.TransactionPayer(feePayer.PublicKey()),
	)
	if err != nil {
		receipt.State = StateFailed
		return receipt, fmt.Errorf("failed to build transaction: %w", err)
	}
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if priv, ok := keys[key]; ok {
			return &priv
		}
		return nil
	})
	if err != nil {
		receipt.State = StateFailed
		return receipt, fmt.Errorf("failed to sign transaction: %w", err)
	}
	receipt.Signature = tx.Signatures[0]
	s.transition(receipt, StateSigned)

	s.transition(receipt, StateSubmitted)
	sig, err := s.ledger.SendAndConfirmTransaction(ctx, tx)
	if !sig.IsZero() {
		receipt.Signature = sig
	}
	if err != nil {
		s.transition(receipt, StateFailed)
		return receipt, err
	}
	s.transition(receipt, StateConfirmed)
	return receipt, nil
}

// FetchManagerState loads the manager account of voteAccount. A missing
// account means the vote account was never entered.
func FetchManagerState(ctx context.Context, ledger Ledger, programID, voteAccount solana.PublicKey) (*vamp.ManagerState, error) {
	addr, _, err := vamp.DeriveManagerAddress(voteAccount, programID)
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("fetching manager account %s of vote account %s", addr, voteAccount)

	data, err := ledger.GetAccountData(ctx, addr)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: manager account %s does not exist", vamp.ErrNotManaged, addr)
	}

	state, err := vamp.DecodeManagerState(data)
	if err != nil {
		return nil, err
	}
	state.Address = addr
	return state, nil
}
