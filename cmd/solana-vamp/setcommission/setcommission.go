package setcommission

import (
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/cli"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/spf13/cobra"
)

var (
	Cmd = cobra.Command{
		Use:   "set-commission <REWARDS_AUTHORITY> <VOTE_ACCOUNT> <COMMISSION>",
		Short: "Set the commission of a managed vote account",
		Long: `'solana-vamp set-commission' sets the vote account's commission. Only the
rewards authority may change it.

With commission caps in effect the new commission must not exceed the max
commission, nor rise more than the max increase above the commission the
vote account had when the current epoch began. Once a leave epoch is set the
commission cannot be changed.

The fee payer defaults to the rewards authority.`,
		Example: `  # Set commission to 5%.
  solana-vamp set-commission \
      --rewards-authority rewards_authority.json \
      --vote-account 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz \
      --commission 5`,
		Args: cobra.ArbitraryArgs,
		RunE: run,
	}

	params = cli.Params{Command: "set-commission"}

	rewardsAuthority *cli.Arg
	voteAccount      *cli.Arg
	commission       *cli.Arg
)

func init() {
	flags := Cmd.Flags()
	rewardsAuthority = params.Required(flags, "rewards-authority", "rewards authority", "Keypair file of the rewards authority")
	voteAccount = params.Required(flags, "vote-account", "vote account", "Vote account pubkey or keypair file")
	commission = params.Required(flags, "commission", "commission", "New commission percentage")
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
	value, err := commission.Uint8()
	if err != nil {
		return nil, err
	}

	ix, err := (&vamp.SetCommission{
		VoteAccount:      vote,
		RewardsAuthority: authority.PublicKey(),
		Commission:       *value,
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
