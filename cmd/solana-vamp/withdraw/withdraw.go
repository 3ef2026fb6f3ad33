package withdraw

import (
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/cli"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "withdraw <REWARDS_AUTHORITY> <VOTE_ACCOUNT> <RECIPIENT> [AMOUNT]",
		Short: "Withdraw SOL from a managed vote account",
		Long: `'solana-vamp withdraw' withdraws SOL from the vote account into the recipient.
It never withdraws below the vote account's rent exempt reserve. Only the
rewards authority may withdraw.

--amount is in SOL. When it is absent or 0 the maximum amount is withdrawn.

The fee payer defaults to the rewards authority.`,
		Example: `  # Withdraw 10.05 SOL.
  solana-vamp withdraw \
      --rewards-authority rewards_authority.json \
      --vote-account 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz \
      --recipient user_key.json \
      --amount 10.05

  # Withdraw everything available.
  solana-vamp withdraw rewards_authority.json 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz user_key.json`,
		Args: cobra.ArbitraryArgs,
		RunE: run,
	}

	params = cli.Params{Command: "withdraw"}

	rewardsAuthority *cli.Arg
	voteAccount      *cli.Arg
	recipient        *cli.Arg
	amount           *cli.Arg
)

func init() {
	flags := Cmd.Flags()
	rewardsAuthority = params.Required(flags, "rewards-authority", "rewards authority", "Keypair file of the rewards authority")
	voteAccount = params.Required(flags, "vote-account", "vote account", "Vote account pubkey or keypair file")
	recipient = params.Required(flags, "recipient", "recipient", "Recipient pubkey or keypair file")
	amount = params.Optional(flags, "amount", "amount", "SOL to withdraw (default: the maximum)")
}

func lamports() (uint64, error) {
	if !amount.IsSet() {
		return 0, nil
	}
	sol, err := amount.Float64()
	if err != nil {
		return 0, err
	}
	return vamp.SolToLamports(sol)
}

func build(args []string) (*cli.Tx, error) {
	if err := params.Resolve(args); err != nil {
		return nil, err
	}

	authority, err := cli.Keypair(rewardsAuthority)
	if err != nil {
		return nil, err
	}
	feePayer, err := cli.FeePayer(authority)
	if err != nil {
		return nil, err
	}
	vote, err := cli.Pubkey(voteAccount)
	if err != nil {
		return nil, err
	}
	to, err := cli.Pubkey(recipient)
	if err != nil {
		return nil, err
	}
	n, err := lamports()
	if err != nil {
		return nil, err
	}

	ix, err := (&vamp.Withdraw{
		VoteAccount:      vote,
		RewardsAuthority: authority.PublicKey(),
		Recipient:        to,
		Lamports:         n,
	}).Build(cli.ProgramID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		klog.V(1).Infof("withdrawing maximum from %s to %s", vote, to)
	} else {
		klog.V(1).Infof("withdrawing %d lamports from %s to %s", n, vote, to)
	}
	return cli.NewTx(ix, feePayer, authority), nil
}

func run(c *cobra.Command, args []string) error {
	tx, err := build(args)
	if err != nil {
		return err
	}
	ledger, err := cli.Connect()
	if err != nil {
		return err
	}
	return cli.Send(c, ledger, tx)
}
