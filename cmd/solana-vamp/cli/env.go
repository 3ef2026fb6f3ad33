package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Overclock-Validator/solana-vamp/pkg/config"
	"github.com/Overclock-Validator/solana-vamp/pkg/rpcclient"
	"github.com/Overclock-Validator/solana-vamp/pkg/submit"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/gagliardetto/solana-go"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

var (
	feePayerFlag   = new(OnceValue)
	urlFlag        = new(OnceValue)
	commitmentFlag = new(OnceValue)
	configFlag     = new(OnceValue)

	// ProgramID is the Vote Account Manager deployment commands talk to.
	ProgramID = vamp.ProgramAddr
)

// RegisterGlobalFlags adds the connection flags every command accepts.
func RegisterGlobalFlags(flags *pflag.FlagSet) {
	flags.VarP(feePayerFlag, "fee-payer", "f", "Keypair file paying transaction fees (default: the command's authority)")
	flags.VarP(urlFlag, "url", "u", "RPC endpoint URL, host:port, or cluster moniker: l/localhost, d/devnet, t/testnet, m/mainnet")
	flags.VarP(commitmentFlag, "commitment", "c", "Commitment level: processed, confirmed or finalized (default finalized)")
	flags.Var(configFlag, "config", "Solana CLI config file (default ~/.config/solana/cli/config.yml)")
}

// Connect builds an RPC client from the flags and the Solana CLI config.
func Connect() (*rpcclient.RpcClient, error) {
	cfg, err := config.Load(configFlag.String())
	if err != nil {
		return nil, err
	}
	url := cfg.ResolveURL(urlFlag.String())
	commitment, err := cfg.ResolveCommitment(commitmentFlag.String())
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("using %s at commitment %s", url, commitment)
	return rpcclient.NewRpcClient(url, commitment), nil
}

// Keypair loads the signing keypair of an argument.
func Keypair(a *Arg) (solana.PrivateKey, error) {
	id, err := vamp.ResolveIdentity(a.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s keypair: %w", a.Name, err)
	}
	priv, err := id.Signer()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s keypair: %w", a.Name, err)
	}
	return priv, nil
}

// Pubkey resolves an argument given as a keypair file or a pubkey.
func Pubkey(a *Arg) (solana.PublicKey, error) {
	id, err := vamp.ResolveIdentity(a.Value())
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to create %s pubkey: %w", a.Name, err)
	}
	return id.PublicKey, nil
}

// FeePayer returns the --fee-payer keypair, or authority when the flag is
// absent.
func FeePayer(authority solana.PrivateKey) (solana.PrivateKey, error) {
	if !feePayerFlag.IsSet() {
		return authority, nil
	}
	priv, err := vamp.LoadKeypair(feePayerFlag.String())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load fee payer keypair: %v", vamp.ErrInvalidIdentity, err)
	}
	return priv, nil
}

// Tx is a resolved command: its instruction and the keypairs that sign it.
type Tx struct {
	Instruction *vamp.Instruction
	FeePayer    solana.PrivateKey
	Signers     []solana.PrivateKey
}

// NewTx pairs ix with its fee payer and signers.
func NewTx(ix *vamp.Instruction, feePayer solana.PrivateKey, signers ...solana.PrivateKey) *Tx {
	return &Tx{Instruction: ix, FeePayer: feePayer, Signers: signers}
}

// Send submits tx and prints its signature on success.
func Send(cmd *cobra.Command, ledger submit.Ledger, tx *Tx) error {
	return send(cmd.Context(), cmd.OutOrStdout(), ledger, tx.Instruction, tx.FeePayer, tx.Signers...)
}

func send(ctx context.Context, out io.Writer, ledger submit.Ledger, ix *vamp.Instruction, feePayer solana.PrivateKey, signers ...solana.PrivateKey) error {
	submitter := submit.NewSubmitter(ledger)

	if stderrIsTerminal() {
		var sp *spinner
		submitter.OnStateChange = func(r *submit.Receipt) {
			switch r.State {
			case submit.StateSubmitted:
				sp = startSpinner(ctx, os.Stderr, fmt.Sprintf("Confirming %s", r.Signature))
			case submit.StateConfirmed, submit.StateFailed:
				if sp != nil {
					sp.stop(r.State == submit.StateConfirmed)
				}
			}
		}
	}

	receipt, err := submitter.Submit(ctx, ix, feePayer, signers...)
	if err != nil {
		if !receipt.Signature.IsZero() {
			return fmt.Errorf("failed to submit transaction %s: %w", receipt.Signature, err)
		}
		return fmt.Errorf("failed to submit transaction: %w", err)
	}
	_, err = fmt.Fprintf(out, "Transaction submitted with signature: %s\n", receipt.Signature)
	return err
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
