// Package rpcclient is the ledger RPC capability used by solana-vamp: it
// fetches blockhashes and accounts and submits transactions.
package rpcclient

import (
	"time"

	"github.com/gagliardetto/solana-go/rpc"
)

const DefaultPollInterval = 500 * time.Millisecond

type RpcClient struct {
	client       *rpc.Client
	commitment   rpc.CommitmentType
	pollInterval time.Duration
}

func NewRpcClient(endpoint string, commitment rpc.CommitmentType) *RpcClient {
	client := rpc.New(endpoint)
	return &RpcClient{client: client, commitment: commitment, pollInterval: DefaultPollInterval}
}
