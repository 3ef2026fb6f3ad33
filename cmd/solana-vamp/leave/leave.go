package leave

import (
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/cli"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/spf13/cobra"
)

var (
	Cmd = cobra.Command{
		Use:   "leave <WITHDRAW_AUTHORITY> <VOTE_ACCOUNT>",
		Short: "Remove a vote account from Vote Account Manager control",
		Long: `'solana-vamp leave' removes the vote account from Vote Account Manager control
and sets its withdraw authority back to the original withdraw authority.

If the program enforces commission caps on the vote account, a leave epoch
must have been set with 'solana-vamp set-leave-epoch' and reached.

The manager account's rent is returned to the fee payer, which defaults to the
withdraw authority.`,
		Example: `  solana-vamp leave \
      --withdraw-authority withdraw_authority.json \
      --vote-account 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz`,
		Args: cobra.ArbitraryArgs,
		RunE: run,
	}

	params = cli.Params{Command: "leave"}

	withdrawAuthority *cli.Arg
	voteAccount       *cli.Arg
)

func init() {
	flags := Cmd.Flags()
	withdrawAuthority = params.Required(flags, "withdraw-authority", "withdraw authority", "Keypair file of the original withdraw authority")
	voteAccount = params.Required(flags, "vote-account", "vote account", "Vote account pubkey or keypair file")
}

// build resolves the arguments into a leave transaction. The manager
// account's lamports go to the fee payer.
func build(args []string) (*cli.Tx, error) {
	if err := params.Resolve(args); err != nil {
		return nil, err
	}

	authority, err := cli.Keypair(withdrawAuthority)
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

	ix, err := (&vamp.Leave{
		VoteAccount:       vote,
		WithdrawAuthority: authority.PublicKey(),
		Recipient:         feePayer.PublicKey(),
	}).Build(cli.ProgramID)
	if err != nil {
		return nil, err
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
