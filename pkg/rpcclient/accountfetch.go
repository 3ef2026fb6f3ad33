package rpcclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/Overclock-Validator/solana-vamp/pkg/sysvar"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

func (fetcher *RpcClient) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := fetcher.client.GetLatestBlockhash(ctx, fetcher.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("%w: failed to fetch latest blockhash: %v", vamp.ErrTransport, err)
	}
	if result == nil || result.Value == nil {
		return solana.Hash{}, fmt.Errorf("%w: empty latest blockhash response", vamp.ErrTransport)
	}
	return result.Value.Blockhash, nil
}

// GetAccountData returns the data of an account, or nil without error if
// the account does not exist.
func (fetcher *RpcClient) GetAccountData(ctx context.Context, pubkey solana.PublicKey) ([]byte, error) {
	result, err := fetcher.client.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: fetcher.commitment,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch account %s: %v", vamp.ErrTransport, pubkey, err)
	}
	if result.Value == nil || result.Value.Data == nil {
		return nil, nil
	}
	return result.Value.Data.GetBinary(), nil
}

func (fetcher *RpcClient) GetClock(ctx context.Context) (*sysvar.SysvarClock, error) {
	data, err := fetcher.GetAccountData(ctx, sysvar.SysvarClockAddr)
	if err != nil {
		return nil, err
	}
	clock, err := sysvar.DecodeClock(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vamp.ErrTransport, err)
	}
	return clock, nil
}
