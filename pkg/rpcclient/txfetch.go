package rpcclient

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

func (fetcher *RpcClient) GetTransactionMeta(ctx context.Context, sig solana.Signature) (*rpc.TransactionMeta, error) {
	maxSupportedTxVer := uint64(0)
	tx, err := fetcher.client.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     fetcher.commitment,
		MaxSupportedTransactionVersion: &maxSupportedTxVer,
	})

	if err != nil {
		return nil, err
	}

	return tx.Meta, nil
}
