package vamp

import (
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
)

// Instruction payload layouts. The program reads them as C structs, so
// u64 fields are preceded by explicit padding to their natural alignment.
var (
	EnterLayout = Packed("EnterData",
		U8("instruction_code"),
		Pubkey("administrator"),
		Bool("use_commission_caps"),
		U8("max_commission"),
		U8("max_commission_increase_per_epoch"),
	)
	SetLeaveEpochLayout = Packed("SetLeaveEpochData",
		U8("instruction_code"),
		Padding("padding", 7),
		U64("leave_epoch"),
	)
	LeaveLayout = Packed("LeaveData",
		U8("instruction_code"),
	)
	SetAuthorityLayout = Packed("SetAuthorityData",
		U8("instruction_code"),
		Pubkey("new_authority"),
	)
	SetValidatorIdentityLayout = Packed("SetValidatorIdentityData",
		U8("instruction_code"),
	)
	WithdrawLayout = Packed("WithdrawData",
		U8("instruction_code"),
		Padding("padding", 7),
		U64("lamports"),
	)
	SetCommissionLayout = Packed("SetCommissionData",
		U8("instruction_code"),
		U8("new_commission"),
	)
)

// Instruction is a single Vote Account Manager instruction. It implements
// solana.Instruction.
type Instruction struct {
	Opcode    Opcode
	Program   solana.PublicKey
	Metas     solana.AccountMetaSlice
	Payload   []byte
	Authority Role
}

var _ solana.Instruction = (*Instruction)(nil)

func (ix *Instruction) ProgramID() solana.PublicKey {
	return ix.Program
}

func (ix *Instruction) Accounts() []*solana.AccountMeta {
	return ix.Metas
}

func (ix *Instruction) Data() ([]byte, error) {
	return ix.Payload, nil
}

// Signers returns the keys the instruction marks as signers, in account
// order. The transaction fee payer may or may not be among them.
func (ix *Instruction) Signers() []solana.PublicKey {
	var out []solana.PublicKey
	for _, m := range ix.Metas {
		if m.IsSigner {
			out = append(out, m.PublicKey)
		}
	}
	return out
}

// Command is one of the ten Vote Account Manager operations.
type Command interface {
	Opcode() Opcode
	Build(programID solana.PublicKey) (*Instruction, error)
}

// Enter puts a vote account under control of the program. The current
// withdraw authority co-signs and the fee payer funds the manager account.
type Enter struct {
	VoteAccount                   solana.PublicKey
	FeePayer                      solana.PublicKey
	WithdrawAuthority             solana.PublicKey
	Administrator                 solana.PublicKey
	MaxCommission                 *uint8
	MaxCommissionIncreasePerEpoch *uint8
}

func (c *Enter) Opcode() Opcode { return OpcodeEnter }

func (c *Enter) Build(programID solana.PublicKey) (*Instruction, error) {
	manager, err := managerFor(c.VoteAccount, programID)
	if err != nil {
		return nil, err
	}
	useCaps := c.MaxCommission != nil || c.MaxCommissionIncreasePerEpoch != nil
	data, err := EnterLayout.Marshal(
		OpcodeEnter,
		c.Administrator,
		useCaps,
		valueOrZero(c.MaxCommission),
		valueOrZero(c.MaxCommissionIncreasePerEpoch),
	)
	if err != nil {
		return nil, err
	}
	metas := solana.AccountMetaSlice{
		solana.Meta(manager).WRITE(),
		solana.Meta(c.VoteAccount).WRITE(),
		solana.Meta(c.FeePayer).SIGNER().WRITE(),
		solana.Meta(c.WithdrawAuthority).SIGNER(),
		solana.Meta(SystemProgramAddr),
		solana.Meta(VoteProgramAddr),
		solana.Meta(SysvarClockAddr),
	}
	return newInstruction(OpcodeEnter, programID, metas, data), nil
}

type SetLeaveEpoch struct {
	VoteAccount       solana.PublicKey
	WithdrawAuthority solana.PublicKey
	LeaveEpoch        uint64
}

func (c *SetLeaveEpoch) Opcode() Opcode { return OpcodeSetLeaveEpoch }

func (c *SetLeaveEpoch) Build(programID solana.PublicKey) (*Instruction, error) {
	manager, err := managerFor(c.VoteAccount, programID)
	if err != nil {
		return nil, err
	}
	data, err := SetLeaveEpochLayout.Marshal(OpcodeSetLeaveEpoch, c.LeaveEpoch)
	if err != nil {
		return nil, err
	}
	metas := solana.AccountMetaSlice{
		solana.Meta(manager).WRITE(),
		solana.Meta(c.VoteAccount).WRITE(),
		solana.Meta(c.WithdrawAuthority).SIGNER(),
	}
	return newInstruction(OpcodeSetLeaveEpoch, programID, metas, data), nil
}

// Leave returns the vote account to its withdraw authority. The lamports
// held by the manager account are sent to Recipient.
type Leave struct {
	VoteAccount       solana.PublicKey
	WithdrawAuthority solana.PublicKey
	Recipient         solana.PublicKey
}

func (c *Leave) Opcode() Opcode { return OpcodeLeave }

func (c *Leave) Build(programID solana.PublicKey) (*Instruction, error) {
	manager, err := managerFor(c.VoteAccount, programID)
	if err != nil {
		return nil, err
	}
	data, err := LeaveLayout.Marshal(OpcodeLeave)
	if err != nil {
		return nil, err
	}
	metas := solana.AccountMetaSlice{
		solana.Meta(manager).WRITE(),
		solana.Meta(c.VoteAccount).WRITE(),
		solana.Meta(c.WithdrawAuthority).SIGNER(),
		solana.Meta(c.Recipient).WRITE(),
		solana.Meta(VoteProgramAddr),
		solana.Meta(SysvarClockAddr),
	}
	return newInstruction(OpcodeLeave, programID, metas, data), nil
}

// SetAuthority replaces the administrator, operational authority or rewards
// authority. All three share one account list and payload shape.
type SetAuthority struct {
	Kind         Opcode
	VoteAccount  solana.PublicKey
	Authority    solana.PublicKey
	NewAuthority solana.PublicKey
}

func (c *SetAuthority) Opcode() Opcode { return c.Kind }

func (c *SetAuthority) Build(programID solana.PublicKey) (*Instruction, error) {
	switch c.Kind {
	case OpcodeSetAdministrator, OpcodeSetOperationalAuthority, OpcodeSetRewardsAuthority:
	default:
		return nil, fmt.Errorf("%w: %s is not an authority change", ErrArgument, c.Kind)
	}
	manager, err := managerFor(c.VoteAccount, programID)
	if err != nil {
		return nil, err
	}
	data, err := SetAuthorityLayout.Marshal(c.Kind, c.NewAuthority)
	if err != nil {
		return nil, err
	}
	metas := solana.AccountMetaSlice{
		solana.Meta(manager).WRITE(),
		solana.Meta(c.VoteAccount),
		solana.Meta(c.Authority).SIGNER(),
	}
	return newInstruction(c.Kind, programID, metas, data), nil
}

type SetVoteAuthority struct {
	VoteAccount          solana.PublicKey
	OperationalAuthority solana.PublicKey
	NewVoteAuthority     solana.PublicKey
}

func (c *SetVoteAuthority) Opcode() Opcode { return OpcodeSetVoteAuthority }

func (c *SetVoteAuthority) Build(programID solana.PublicKey) (*Instruction, error) {
	manager, err := managerFor(c.VoteAccount, programID)
	if err != nil {
		return nil, err
	}
	data, err := SetAuthorityLayout.Marshal(OpcodeSetVoteAuthority, c.NewVoteAuthority)
	if err != nil {
		return nil, err
	}
	metas := solana.AccountMetaSlice{
		solana.Meta(manager),
		solana.Meta(c.VoteAccount).WRITE(),
		solana.Meta(c.OperationalAuthority).SIGNER(),
		solana.Meta(VoteProgramAddr),
		solana.Meta(SysvarClockAddr),
	}
	return newInstruction(OpcodeSetVoteAuthority, programID, metas, data), nil
}

// SetValidatorIdentity carries the new identity only as an account. The
// identity must co-sign to prove it holds the private key.
type SetValidatorIdentity struct {
	VoteAccount          solana.PublicKey
	OperationalAuthority solana.PublicKey
	NewIdentity          solana.PublicKey
}

func (c *SetValidatorIdentity) Opcode() Opcode { return OpcodeSetValidatorIdentity }

func (c *SetValidatorIdentity) Build(programID solana.PublicKey) (*Instruction, error) {
	manager, err := managerFor(c.VoteAccount, programID)
	if err != nil {
		return nil, err
	}
	data, err := SetValidatorIdentityLayout.Marshal(OpcodeSetValidatorIdentity)
	if err != nil {
		return nil, err
	}
	metas := solana.AccountMetaSlice{
		solana.Meta(manager),
		solana.Meta(c.VoteAccount).WRITE(),
		solana.Meta(c.OperationalAuthority).SIGNER(),
		solana.Meta(c.NewIdentity).SIGNER(),
		solana.Meta(VoteProgramAddr),
	}
	return newInstruction(OpcodeSetValidatorIdentity, programID, metas, data), nil
}

// Withdraw moves lamports out of the vote account. Zero lamports asks the
// program for the maximum that keeps the vote account rent exempt.
type Withdraw struct {
	VoteAccount      solana.PublicKey
	RewardsAuthority solana.PublicKey
	Recipient        solana.PublicKey
	Lamports         uint64
}

func (c *Withdraw) Opcode() Opcode { return OpcodeWithdraw }

func (c *Withdraw) Build(programID solana.PublicKey) (*Instruction, error) {
	manager, err := managerFor(c.VoteAccount, programID)
	if err != nil {
		return nil, err
	}
	data, err := WithdrawLayout.Marshal(OpcodeWithdraw, c.Lamports)
	if err != nil {
		return nil, err
	}
	metas := solana.AccountMetaSlice{
		solana.Meta(manager),
		solana.Meta(c.VoteAccount).WRITE(),
		solana.Meta(c.RewardsAuthority).SIGNER(),
		solana.Meta(c.Recipient).WRITE(),
		solana.Meta(VoteProgramAddr),
	}
	return newInstruction(OpcodeWithdraw, programID, metas, data), nil
}

type SetCommission struct {
	VoteAccount      solana.PublicKey
	RewardsAuthority solana.PublicKey
	Commission       uint8
}

func (c *SetCommission) Opcode() Opcode { return OpcodeSetCommission }

func (c *SetCommission) Build(programID solana.PublicKey) (*Instruction, error) {
	manager, err := managerFor(c.VoteAccount, programID)
	if err != nil {
		return nil, err
	}
	data, err := SetCommissionLayout.Marshal(OpcodeSetCommission, c.Commission)
	if err != nil {
		return nil, err
	}
	metas := solana.AccountMetaSlice{
		solana.Meta(manager).WRITE(),
		solana.Meta(c.VoteAccount).WRITE(),
		solana.Meta(c.RewardsAuthority).SIGNER(),
		solana.Meta(VoteProgramAddr),
	}
	return newInstruction(OpcodeSetCommission, programID, metas, data), nil
}

// SolToLamports converts a SOL amount to lamports, truncating toward zero.
func SolToLamports(sol float64) (uint64, error) {
	if math.IsNaN(sol) || math.IsInf(sol, 0) || sol < 0 {
		return 0, fmt.Errorf("%w: invalid SOL amount %v", ErrArgument, sol)
	}
	lamports := math.Trunc(sol * LamportsPerSol)
	if lamports >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: SOL amount %v overflows lamports", ErrArgument, sol)
	}
	return uint64(lamports), nil
}

func newInstruction(op Opcode, programID solana.PublicKey, metas solana.AccountMetaSlice, data []byte) *Instruction {
	return &Instruction{
		Opcode:    op,
		Program:   programID,
		Metas:     metas,
		Payload:   data,
		Authority: op.AuthorizedBy(),
	}
}

func managerFor(voteAccount, programID solana.PublicKey) (solana.PublicKey, error) {
	manager, _, err := DeriveManagerAddress(voteAccount, programID)
	return manager, err
}

func valueOrZero(v *uint8) uint8 {
	if v == nil {
		return 0
	}
	return *v
}
