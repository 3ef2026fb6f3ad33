// Package setauthority implements the commands that hand one of the
// manager's authorities, or the vote account's vote authority, to a new key.
package setauthority

import (
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/cli"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var (
	AdministratorCmd = cobra.Command{
		Use:   "set-administrator <WITHDRAW_AUTHORITY> <VOTE_ACCOUNT> <NEW_ADMINISTRATOR>",
		Short: "Set the administrator of a managed vote account",
		Long: `'solana-vamp set-administrator' sets the administrator, which authenticates
set-operational-authority and set-rewards-authority. Only the original
withdraw authority may change it.

The fee payer defaults to the withdraw authority.`,
		Example: `  solana-vamp set-administrator \
      --withdraw-authority withdraw_authority.json \
      --vote-account 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz \
      --administrator new_administrator.json`,
	}

	OperationalCmd = cobra.Command{
		Use:   "set-operational-authority <ADMINISTRATOR> <VOTE_ACCOUNT> <NEW_OPERATIONAL_AUTHORITY>",
		Short: "Set the operational authority of a managed vote account",
		Long: `'solana-vamp set-operational-authority' sets the operational authority, which
authenticates set-vote-authority and set-validator-identity. Only the
administrator may change it.

The fee payer defaults to the administrator.`,
		Example: `  solana-vamp set-operational-authority \
      --administrator administrator.json \
      --vote-account 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz \
      --operational-authority new_operational_authority.json`,
	}

	RewardsCmd = cobra.Command{
		Use:   "set-rewards-authority <ADMINISTRATOR> <VOTE_ACCOUNT> <NEW_REWARDS_AUTHORITY>",
		Short: "Set the rewards authority of a managed vote account",
		Long: `'solana-vamp set-rewards-authority' sets the rewards authority, which
authenticates withdraw and set-commission. Only the administrator may change
it.

The fee payer defaults to the administrator.`,
		Example: `  solana-vamp set-rewards-authority \
      --administrator administrator.json \
      --vote-account 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz \
      --rewards-authority new_rewards_authority.json`,
	}

	VoteCmd = cobra.Command{
		Use:   "set-vote-authority <OPERATIONAL_AUTHORITY> <VOTE_ACCOUNT> <NEW_VOTE_AUTHORITY>",
		Short: "Set the vote authority of a managed vote account",
		Long: `'solana-vamp set-vote-authority' sets the vote authority of the vote account.
The current vote authority can also do this directly with
'solana vote-authorize-voter', since the program leaves it in place.

The fee payer defaults to the operational authority.`,
		Example: `  solana-vamp set-vote-authority \
      --operational-authority operational_authority.json \
      --vote-account 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz \
      --vote-authority new_vote_authority.json`,
	}

	administrator = change{
		opcode:     vamp.OpcodeSetAdministrator,
		signerFlag: "withdraw-authority",
		targetFlag: "administrator",
		targetName: "administrator",
	}
	operational = change{
		opcode:     vamp.OpcodeSetOperationalAuthority,
		signerFlag: "administrator",
		targetFlag: "operational-authority",
		targetName: "operational authority",
	}
	rewards = change{
		opcode:     vamp.OpcodeSetRewardsAuthority,
		signerFlag: "administrator",
		targetFlag: "rewards-authority",
		targetName: "rewards authority",
	}
	vote = change{
		opcode:     vamp.OpcodeSetVoteAuthority,
		signerFlag: "operational-authority",
		targetFlag: "vote-authority",
		targetName: "vote authority",
	}
)

func init() {
	administrator.bind(&AdministratorCmd)
	operational.bind(&OperationalCmd)
	rewards.bind(&RewardsCmd)
	vote.bind(&VoteCmd)
}

// change is one authority replacement command. The signer is the role the
// program checks for the opcode.
type change struct {
	opcode     vamp.Opcode
	signerFlag string
	targetFlag string
	targetName string

	params      cli.Params
	signer      *cli.Arg
	voteAccount *cli.Arg
	target      *cli.Arg
}

func (ch *change) bind(cmd *cobra.Command) {
	role := ch.opcode.AuthorizedBy().String()
	ch.params.Command = ch.opcode.String()

	flags := cmd.Flags()
	ch.signer = ch.params.Required(flags, ch.signerFlag, role, "Keypair file of the "+role)
	ch.voteAccount = ch.params.Required(flags, "vote-account", "vote account", "Vote account pubkey or keypair file")
	ch.target = ch.params.Required(flags, ch.targetFlag, ch.targetName, "New "+ch.targetName+" pubkey or keypair file")

	cmd.Args = cobra.ArbitraryArgs
	cmd.RunE = ch.run
}

func (ch *change) build(vote, signer, target solana.PublicKey) (*vamp.Instruction, error) {
	if ch.opcode == vamp.OpcodeSetVoteAuthority {
		return (&vamp.SetVoteAuthority{
			VoteAccount:          vote,
			OperationalAuthority: signer,
			NewVoteAuthority:     target,
		}).Build(cli.ProgramID)
	}
	return (&vamp.SetAuthority{
		Kind:         ch.opcode,
		VoteAccount:  vote,
		Authority:    signer,
		NewAuthority: target,
	}).Build(cli.ProgramID)
}

func (ch *change) run(c *cobra.Command, args []string) error {
	if err := ch.params.Resolve(args); err != nil {
		return err
	}

	authority, err := cli.Keypair(ch.signer)
	if err != nil {
		return err
	}
	feePayer, err := cli.FeePayer(authority)
	if err != nil {
		return err
	}
	vote, err := cli.Pubkey(ch.voteAccount)
	if err != nil {
		return err
	}
	target, err := cli.Pubkey(ch.target)
	if err != nil {
		return err
	}

	ix, err := ch.build(vote, authority.PublicKey(), target)
	if err != nil {
		return err
	}
	klog.V(1).Infof("%s: %s -> %s", ch.opcode, vote, target)

	ledger, err := cli.Connect()
	if err != nil {
		return err
	}
	return cli.Send(c, ledger, cli.NewTx(ix, feePayer, authority))
}
