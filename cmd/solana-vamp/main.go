package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/cli"
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/enter"
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/leave"
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/setauthority"
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/setcommission"
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/setidentity"
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/setleaveepoch"
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/show"
	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/withdraw"
	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var cmd = cobra.Command{
	Use:   "solana-vamp",
	Short: "Interact with the Solana Vote Account Manager program",
	Long: `solana-vamp is a utility program that can be used to interact with the Solana
Vote Account Manager program.

Every command argument may be given positionally, in the order shown in the
command's usage line, or with its --flag, but not both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return vamp.CheckHost()
	},
}

func init() {
	cmd.Long += rolesHelp()

	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)
	cli.RegisterGlobalFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		&enter.Cmd,
		&setleaveepoch.Cmd,
		&leave.Cmd,
		&setauthority.AdministratorCmd,
		&setauthority.OperationalCmd,
		&setauthority.RewardsCmd,
		&setauthority.VoteCmd,
		&setidentity.Cmd,
		&withdraw.Cmd,
		&setcommission.Cmd,
		&show.Cmd,
	)
}

// rolesHelp lists the commands each manager role signs.
func rolesHelp() string {
	var b strings.Builder
	b.WriteString("\n\nRoles and the commands they authorize:\n")
	for _, role := range vamp.Roles {
		names := lo.Map(role.Commands(), func(op vamp.Opcode, _ int) string { return op.String() })
		fmt.Fprintf(&b, "  %-23s %s\n", role.String()+":", strings.Join(names, ", "))
	}
	return b.String()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	cobra.CheckErr(cmd.ExecuteContext(ctx))
}
