package setidentity

import (
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/cli"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/spf13/cobra"
)

var (
	Cmd = cobra.Command{
		Use:   "set-validator-identity <OPERATIONAL_AUTHORITY> <VOTE_ACCOUNT> <NEW_VALIDATOR_IDENTITY>",
		Short: "Set the validator identity of a managed vote account",
		Long: `'solana-vamp set-validator-identity' sets the validator identity of the vote
account. The vote program requires the new identity to sign, so it must be
given as a keypair file. Only the operational authority may change it.

The fee payer defaults to the operational authority.`,
		Example: `  solana-vamp set-validator-identity \
      --operational-authority operational_authority.json \
      --vote-account 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz \
      --validator-identity new_validator_identity.json`,
		Args: cobra.ArbitraryArgs,
		RunE: run,
	}

	params = cli.Params{Command: "set-validator-identity"}

	operationalAuthority *cli.Arg
	voteAccount          *cli.Arg
	validatorIdentity    *cli.Arg
)

func init() {
	flags := Cmd.Flags()
	operationalAuthority = params.Required(flags, "operational-authority", "operational authority", "Keypair file of the operational authority")
	voteAccount = params.Required(flags, "vote-account", "vote account", "Vote account pubkey or keypair file")
	validatorIdentity = params.Required(flags, "validator-identity", "validator identity", "Keypair file of the new validator identity")
}

// build resolves the arguments into a transaction co-signed by the
// operational authority and the new validator identity.
func build(args []string) (*cli.Tx, error) {
	if err := params.Resolve(args); err != nil {
		return nil, err
	}

	authority, err := cli.Keypair(operationalAuthority)
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
	identity, err := cli.Keypair(validatorIdentity)
	if err != nil {
		return nil, err
	}

	ix, err := (&vamp.SetValidatorIdentity{
		VoteAccount:          vote,
		OperationalAuthority: authority.PublicKey(),
		NewIdentity:          identity.PublicKey(),
	}).Build(cli.ProgramID)
	if err != nil {
		return nil, err
	}
	return cli.NewTx(ix, feePayer, authority, identity), nil
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
