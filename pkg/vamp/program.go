// Package vamp encodes instructions for, and decodes state of, the Vote
// Account Manager on-chain program.
//
// The program takes over the withdraw authority of a vote account and splits
// control across four roles: the original withdraw authority, an
// administrator, an operational authority and a rewards authority. Each
// instruction must be signed by the role that owns it.
package vamp

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/samber/lo"
)

const ProgramAddrStr = "vamp3angna1CBRcV6KqoxyaYw3mPybHEeoPLtmpS99N"

var ProgramAddr = solana.MustPublicKeyFromBase58(ProgramAddrStr)

var (
	SystemProgramAddr = solana.SystemProgramID
	VoteProgramAddr   = solana.VoteProgramID
	SysvarClockAddr   = solana.SysVarClockPubkey
)

const LamportsPerSol = 1e9

type Opcode uint8

const (
	OpcodeEnter Opcode = iota
	OpcodeSetLeaveEpoch
	OpcodeLeave
	OpcodeSetAdministrator
	OpcodeSetOperationalAuthority
	OpcodeSetRewardsAuthority
	OpcodeSetVoteAuthority
	OpcodeSetValidatorIdentity
	OpcodeWithdraw
	OpcodeSetCommission
)

var opcodeNames = [...]string{
	OpcodeEnter:                   "enter",
	OpcodeSetLeaveEpoch:           "set-leave-epoch",
	OpcodeLeave:                   "leave",
	OpcodeSetAdministrator:        "set-administrator",
	OpcodeSetOperationalAuthority: "set-operational-authority",
	OpcodeSetRewardsAuthority:     "set-rewards-authority",
	OpcodeSetVoteAuthority:        "set-vote-authority",
	OpcodeSetValidatorIdentity:    "set-validator-identity",
	OpcodeWithdraw:                "withdraw",
	OpcodeSetCommission:           "set-commission",
}

// Opcodes lists every instruction in opcode order.
var Opcodes = []Opcode{
	OpcodeEnter,
	OpcodeSetLeaveEpoch,
	OpcodeLeave,
	OpcodeSetAdministrator,
	OpcodeSetOperationalAuthority,
	OpcodeSetRewardsAuthority,
	OpcodeSetVoteAuthority,
	OpcodeSetValidatorIdentity,
	OpcodeWithdraw,
	OpcodeSetCommission,
}

func (o Opcode) String() string {
	if int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return fmt.Sprintf("opcode(%d)", uint8(o))
}

type Role uint8

const (
	RoleWithdrawAuthority Role = iota
	RoleAdministrator
	RoleOperationalAuthority
	RoleRewardsAuthority
)

// Roles lists the roles in manager record order.
var Roles = []Role{
	RoleWithdrawAuthority,
	RoleAdministrator,
	RoleOperationalAuthority,
	RoleRewardsAuthority,
}

func (r Role) String() string {
	switch r {
	case RoleWithdrawAuthority:
		return "withdraw authority"
	case RoleAdministrator:
		return "administrator"
	case RoleOperationalAuthority:
		return "operational authority"
	case RoleRewardsAuthority:
		return "rewards authority"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// AuthorizedBy returns the role whose signature the program requires.
// The administrator is replaced by the withdraw authority, not by itself.
func (o Opcode) AuthorizedBy() Role {
	switch o {
	case OpcodeEnter, OpcodeSetLeaveEpoch, OpcodeLeave, OpcodeSetAdministrator:
		return RoleWithdrawAuthority
	case OpcodeSetOperationalAuthority, OpcodeSetRewardsAuthority:
		return RoleAdministrator
	case OpcodeSetVoteAuthority, OpcodeSetValidatorIdentity:
		return RoleOperationalAuthority
	case OpcodeWithdraw, OpcodeSetCommission:
		return RoleRewardsAuthority
	}
	panic(fmt.Sprintf("unknown opcode %d", uint8(o)))
}

// Commands lists the instructions the role authorizes.
func (r Role) Commands() []Opcode {
	return lo.Filter(Opcodes, func(op Opcode, _ int) bool {
		return op.AuthorizedBy() == r
	})
}
