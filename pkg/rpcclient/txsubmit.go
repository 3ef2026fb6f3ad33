package rpcclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"k8s.io/klog/v2"
)

// SendAndConfirmTransaction submits tx once, with preflight at the client
// commitment, and waits until the signature reaches that commitment. It
// gives up when the transaction fails, its blockhash expires, or ctx ends.
// The signature is returned whenever the submission itself succeeded.
func (fetcher *RpcClient) SendAndConfirmTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := fetcher.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: fetcher.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: failed to submit transaction: %v", vamp.ErrTransport, err)
	}
	klog.V(2).Infof("submitted transaction %s", sig)

	return sig, fetcher.confirm(ctx, sig, tx.Message.RecentBlockhash)
}

func (fetcher *RpcClient) confirm(ctx context.Context, sig solana.Signature, blockhash solana.Hash) error {
	ticker := time.NewTicker(fetcher.pollInterval)
	defer ticker.Stop()

	for {
		statuses, err := fetcher.client.GetSignatureStatuses(ctx, false, sig)
		if err != nil {
			return fmt.Errorf("%w: failed to fetch status of %s: %v", vamp.ErrTransport, sig, err)
		}

		var status *rpc.SignatureStatusesResult
		if statuses != nil && len(statuses.Value) == 1 {
			status = statuses.Value[0]
		}

		if status != nil {
			if status.Err != nil {
				fetcher.logFailure(ctx, sig)
				return fmt.Errorf("%w: transaction %s failed: %v", vamp.ErrTransport, sig, status.Err)
			}
			if ReachedCommitment(status.ConfirmationStatus, fetcher.commitment) {
				klog.V(2).Infof("transaction %s reached %s", sig, status.ConfirmationStatus)
				return nil
			}
		} else {
			valid, err := fetcher.client.IsBlockhashValid(ctx, blockhash, rpc.CommitmentProcessed)
			if err == nil && valid != nil && !valid.Value {
				return fmt.Errorf("%w: transaction %s expired before confirmation", vamp.ErrTransport, sig)
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: gave up waiting for %s: %v", vamp.ErrTransport, sig, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (fetcher *RpcClient) logFailure(ctx context.Context, sig solana.Signature) {
	meta, err := fetcher.GetTransactionMeta(ctx, sig)
	if err != nil || meta == nil {
		return
	}
	klog.Warningf("program logs for %s:\n  %s", sig, strings.Join(meta.LogMessages, "\n  "))
}

func confirmationRank(status rpc.ConfirmationStatusType) int {
	switch status {
	case rpc.ConfirmationStatusProcessed:
		return 0
	case rpc.ConfirmationStatusConfirmed:
		return 1
	case rpc.ConfirmationStatusFinalized:
		return 2
	}
	return -1
}

func commitmentRank(commitment rpc.CommitmentType) int {
	switch commitment {
	case rpc.CommitmentProcessed, rpc.CommitmentRecent:
		return 0
	case rpc.CommitmentConfirmed, rpc.CommitmentSingle, rpc.CommitmentSingleGossip:
		return 1
	}
	return 2
}

// ReachedCommitment reports whether a signature status satisfies commitment.
func ReachedCommitment(status rpc.ConfirmationStatusType, commitment rpc.CommitmentType) bool {
	rank := confirmationRank(status)
	return rank >= 0 && rank >= commitmentRank(commitment)
}
