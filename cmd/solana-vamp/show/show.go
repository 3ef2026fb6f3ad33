package show

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/cli"
	"github.com/Overclock-Validator/solana-vamp/pkg/submit"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/gagliardetto/solana-go"
	"github.com/segmentio/textio"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "show <VOTE_ACCOUNT> [json]",
		Short: "Show the manager state of a vote account",
		Long: `'solana-vamp show' prints the authorities, commission caps and leave epoch the
Vote Account Manager holds for a vote account. The state is read fresh from
the cluster on every call.

With --json, or a trailing 'json' argument, the output is a single JSON
object instead of human readable lines.`,
		Example: `  solana-vamp show 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz
  solana-vamp show --vote-account 3yP1VFUXzgND1UoLiVeu5AST46Ze6FVnR4DH7DDrgYTz --json | jq .`,
		Args: cobra.ArbitraryArgs,
		RunE: run,
	}

	params = cli.Params{Command: "show"}

	voteAccount *cli.Arg
	jsonFlag    *cli.OnceValue
)

func init() {
	flags := Cmd.Flags()
	voteAccount = params.Required(flags, "vote-account", "vote account", "Vote account pubkey or keypair file")
	jsonFlag = cli.OnceBool(flags, "json", "Print the state as JSON")
}

// wantJSON strips a trailing "json" token unless --json was given, in which
// case the token is left to be rejected as unexpected.
func wantJSON(args []string) (bool, []string, error) {
	if jsonFlag.IsSet() {
		on, err := strconv.ParseBool(jsonFlag.String())
		if err != nil {
			return false, nil, fmt.Errorf("%w: invalid value for --json: %q", vamp.ErrArgument, jsonFlag.String())
		}
		return on, args, nil
	}
	if len(args) == 2 && args[1] == "json" {
		return true, args[:1], nil
	}
	return false, args, nil
}

func run(c *cobra.Command, args []string) error {
	asJSON, args, err := wantJSON(args)
	if err != nil {
		return err
	}
	if err := params.Resolve(args); err != nil {
		return err
	}

	vote, err := cli.Pubkey(voteAccount)
	if err != nil {
		return err
	}

	ledger, err := cli.Connect()
	if err != nil {
		return err
	}
	state, err := submit.FetchManagerState(c.Context(), ledger, cli.ProgramID, vote)
	if err != nil {
		return fmt.Errorf("%s: %w", vote, err)
	}
	if err := state.Validate(); err != nil {
		klog.Warningf("%s: %v", state.Address, err)
	}

	if asJSON {
		return json.NewEncoder(c.OutOrStdout()).Encode(state)
	}
	return render(c.OutOrStdout(), vote, state)
}

var roleLabels = map[vamp.Role]string{
	vamp.RoleWithdrawAuthority:    "Withdraw Authority",
	vamp.RoleAdministrator:        "Administrator",
	vamp.RoleOperationalAuthority: "Operational Authority",
	vamp.RoleRewardsAuthority:     "Rewards Authority",
}

func render(w io.Writer, vote solana.PublicKey, state *vamp.ManagerState) error {
	if _, err := fmt.Fprintf(w, "Vote Account: %s\n", vote); err != nil {
		return err
	}

	pw := textio.NewPrefixWriter(w, "  ")
	fmt.Fprintf(pw, "Manager Account: %s\n", state.Address)
	for _, role := range vamp.Roles {
		fmt.Fprintf(pw, "%s: %s\n", roleLabels[role], state.Authority(role))
	}
	if state.CommissionCap != nil {
		fmt.Fprintf(pw, "Max Commission: %d\n", state.CommissionCap.MaxCommission)
		fmt.Fprintf(pw, "Max Commission Increase per Epoch: %d\n", state.CommissionCap.MaxIncreasePerEpoch)
	}
	if state.LeaveEpoch != 0 {
		fmt.Fprintf(pw, "Leave Epoch: %d\n", state.LeaveEpoch)
	}
	return pw.Flush()
}
