package setleaveepoch

import (
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/cli"
	"github.com/Overclock-Validator/solana-vamp/pkg/sysvar"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "set-leave-epoch <WITHDRAW_AUTHORITY> <VOTE_ACCOUNT> <LEAVE_EPOCH>",
		Short: "Set the earliest epoch at which the vote account may leave",
		Long: `'solana-vamp set-leave-epoch' sets the earliest epoch at which 'leave' may
return control of the vote account to the withdraw authority. Only the
original withdraw authority may set it.

A leave epoch is only needed when the program enforces commission caps on the
vote account. It must be at least the current epoch + 2, giving stakers one
full epoch to react. For example, in epoch 100 the earliest leave epoch is 102.

Once a leave epoch is set the commission can no longer be changed.

The fee payer defaults to the withdraw authority.`,
		Example: `  # Allow leaving no earlier than epoch 120.
  solana-vamp set-leave-epoch \
      --withdraw-authority withdraw_authority.json \
      --vote-account 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz \
      --leave-epoch 120`,
		Args: cobra.ArbitraryArgs,
		RunE: run,
	}

	params = cli.Params{Command: "set-leave-epoch"}

	withdrawAuthority *cli.Arg
	voteAccount       *cli.Arg
	leaveEpoch        *cli.Arg
)

func init() {
	flags := Cmd.Flags()
	withdrawAuthority = params.Required(flags, "withdraw-authority", "withdraw authority", "Keypair file of the original withdraw authority")
	voteAccount = params.Required(flags, "vote-account", "vote account", "Vote account pubkey or keypair file")
	leaveEpoch = params.Required(flags, "leave-epoch", "leave epoch", "Earliest epoch at which the vote account may leave")
}

// build resolves the arguments into a set-leave-epoch transaction and
// returns the requested epoch alongside it.
func build(args []string) (*cli.Tx, uint64, error) {
	if err := params.Resolve(args); err != nil {
		return nil, 0, err
	}

	authority, err := cli.Keypair(withdrawAuthority)
	if err != nil {
		return nil, 0, err
	}
	feePayer, err := cli.FeePayer(authority)
	if err != nil {
		return nil, 0, err
	}
	vote, err := cli.Pubkey(voteAccount)
	if err != nil {
		return nil, 0, err
	}
	epoch, err := leaveEpoch.Uint64()
	if err != nil {
		return nil, 0, err
	}

	ix, err := (&vamp.SetLeaveEpoch{
		VoteAccount:       vote,
		WithdrawAuthority: authority.PublicKey(),
		LeaveEpoch:        epoch,
	}).Build(cli.ProgramID)
	if err != nil {
		return nil, 0, err
	}
	return cli.NewTx(ix, feePayer, authority), epoch, nil
}

// checkEpoch warns when epoch is below the minimum leave epoch. The program
// enforces the bound.
func checkEpoch(epoch uint64, clock *sysvar.SysvarClock) bool {
	if epoch < clock.MinLeaveEpoch() {
		klog.Warningf("leave epoch %d is before %d (current epoch %d + 2); the program will reject it",
			epoch, clock.MinLeaveEpoch(), clock.Epoch)
		return false
	}
	return true
}

func run(c *cobra.Command, args []string) error {
	tx, epoch, err := build(args)
	if err != nil {
		return err
	}
	ledger, err := cli.Connect()
	if err != nil {
		return err
	}

	clock, err := ledger.GetClock(c.Context())
	if err != nil {
		klog.Warningf("could not check leave epoch against the current epoch: %v", err)
	} else {
		checkEpoch(epoch, clock)
	}

	return cli.Send(c, ledger, tx)
}
