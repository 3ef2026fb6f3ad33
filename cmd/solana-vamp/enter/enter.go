package enter

import (
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/cli"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "enter <WITHDRAW_AUTHORITY> <VOTE_ACCOUNT> <ADMINISTRATOR> [MAX_COMMISSION] [MAX_INCREASE_PER_EPOCH]",
		Short: "Put a vote account under control of the Vote Account Manager",
		Long: `'solana-vamp enter' brings a vote account under the control of the Vote
Account Manager program. While under control of the program, actions taken on
the vote account must all be issued using solana-vamp (except for
set-vote-authority, which the vote authority can also do directly).

The vote account's withdraw authority is replaced by one controlled by the
program. Keep the original withdraw authority keypair: the program uses it to
authenticate set-leave-epoch, leave and set-administrator.

The administrator initially has authority over every other action.

If --max-commission is supplied the program will never allow a commission
above it, and the vote account cannot leave the program until a leave epoch
has been set and reached. --max-commission-increase-per-epoch bounds how much
the commission may rise in one epoch; when only one of the two is supplied the
other is 0.

The fee payer defaults to the withdraw authority.`,
		Example: `  # Put a vote account under program control.
  solana-vamp enter \
      --withdraw-authority withdraw_authority.json \
      --vote-account 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz \
      --administrator administrator.json

  # Same, with a separate fee payer, a 10% commission cap and at most 3% increase per epoch.
  solana-vamp enter --fee-payer fee_payer.json \
      --withdraw-authority withdraw_authority.json \
      --vote-account 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz \
      --administrator administrator.json \
      --max-commission 10 --max-commission-increase-per-epoch 3`,
		Args: cobra.ArbitraryArgs,
		RunE: run,
	}

	params = cli.Params{Command: "enter"}

	withdrawAuthority *cli.Arg
	voteAccount       *cli.Arg
	administrator     *cli.Arg
	maxCommission     *cli.Arg
	maxIncrease       *cli.Arg
)

func init() {
	flags := Cmd.Flags()
	withdrawAuthority = params.Required(flags, "withdraw-authority", "withdraw authority", "Keypair file of the vote account's current withdraw authority")
	voteAccount = params.Required(flags, "vote-account", "vote account", "Vote account pubkey or keypair file")
	administrator = params.Required(flags, "administrator", "administrator", "Initial administrator pubkey or keypair file")
	maxCommission = params.Optional(flags, "max-commission", "max commission", "Maximum commission the program will allow")
	maxIncrease = params.Optional(flags, "max-commission-increase-per-epoch", "max commission increase per epoch", "Maximum commission increase per epoch")
}

// build resolves the arguments into an enter transaction signed by the
// withdraw authority.
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
	admin, err := cli.Pubkey(administrator)
	if err != nil {
		return nil, err
	}
	maxCommissionValue, err := maxCommission.Uint8()
	if err != nil {
		return nil, err
	}
	maxIncreaseValue, err := maxIncrease.Uint8()
	if err != nil {
		return nil, err
	}

	ix, err := (&vamp.Enter{
		VoteAccount:                   vote,
		FeePayer:                      feePayer.PublicKey(),
		WithdrawAuthority:             authority.PublicKey(),
		Administrator:                 admin,
		MaxCommission:                 maxCommissionValue,
		MaxCommissionIncreasePerEpoch: maxIncreaseValue,
	}).Build(cli.ProgramID)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("entering vote account %s with administrator %s", vote, admin)
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
