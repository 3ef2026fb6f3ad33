package vamp

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

const ManagerStateSize = 168

// ManagerStateLayout is the on-chain manager account. Reserved ranges are
// written by the program and ignored here.
var ManagerStateLayout = NewLayout("VoteAccountManagerState", ManagerStateSize,
	Pubkey("withdraw_authority").At(0),
	Pubkey("administrator").At(32),
	Pubkey("operational_authority").At(64),
	Pubkey("rewards_authority").At(96),
	U8("use_commission_caps").At(128),
	U8("max_commission").At(129),
	U8("max_commission_increase_per_epoch").At(130),
	Padding("reserved0", 13).At(131),
	U64("leave_epoch").At(144),
	Padding("reserved1", 16).At(152),
)

type CommissionCap struct {
	MaxCommission       uint8
	MaxIncreasePerEpoch uint8
}

// ManagerState is a decoded manager account. LeaveEpoch zero means unset.
type ManagerState struct {
	Address              solana.PublicKey
	WithdrawAuthority    solana.PublicKey
	Administrator        solana.PublicKey
	OperationalAuthority solana.PublicKey
	RewardsAuthority     solana.PublicKey
	CommissionCap        *CommissionCap
	LeaveEpoch           uint64
}

// DecodeManagerState parses a manager account. Any size other than
// ManagerStateSize means the account was not created by the program.
func DecodeManagerState(data []byte) (*ManagerState, error) {
	v, err := ManagerStateLayout.View(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotManaged, err)
	}

	state := &ManagerState{
		WithdrawAuthority:    v.Pubkey("withdraw_authority"),
		Administrator:        v.Pubkey("administrator"),
		OperationalAuthority: v.Pubkey("operational_authority"),
		RewardsAuthority:     v.Pubkey("rewards_authority"),
		LeaveEpoch:           v.U64("leave_epoch"),
	}
	if v.U8("use_commission_caps") != 0 {
		state.CommissionCap = &CommissionCap{
			MaxCommission:       v.U8("max_commission"),
			MaxIncreasePerEpoch: v.U8("max_commission_increase_per_epoch"),
		}
	}
	return state, nil
}

// Validate reports states the program can never produce.
func (s *ManagerState) Validate() error {
	if s.LeaveEpoch != 0 && s.CommissionCap == nil {
		return fmt.Errorf("%w: leave epoch %d set without commission caps", ErrInconsistentState, s.LeaveEpoch)
	}
	return nil
}

func (s *ManagerState) Authority(r Role) solana.PublicKey {
	switch r {
	case RoleWithdrawAuthority:
		return s.WithdrawAuthority
	case RoleAdministrator:
		return s.Administrator
	case RoleOperationalAuthority:
		return s.OperationalAuthority
	case RoleRewardsAuthority:
		return s.RewardsAuthority
	}
	panic(fmt.Sprintf("unknown role %d", uint8(r)))
}

type managerStateJSON struct {
	ManagerAccount                solana.PublicKey `json:"manager_account_pubkey"`
	WithdrawAuthority             solana.PublicKey `json:"withdraw_authority"`
	Administrator                 solana.PublicKey `json:"administrator"`
	OperationalAuthority          solana.PublicKey `json:"operational_authority"`
	RewardsAuthority              solana.PublicKey `json:"rewards_authority"`
	MaxCommission                 *uint8           `json:"max_commission,omitempty"`
	MaxCommissionIncreasePerEpoch *uint8           `json:"max_commission_increase_per_epoch,omitempty"`
	LeaveEpoch                    uint64           `json:"leave_epoch,omitempty"`
}

func (s *ManagerState) MarshalJSON() ([]byte, error) {
	out := managerStateJSON{
		ManagerAccount:       s.Address,
		WithdrawAuthority:    s.WithdrawAuthority,
		Administrator:        s.Administrator,
		OperationalAuthority: s.OperationalAuthority,
		RewardsAuthority:     s.RewardsAuthority,
		LeaveEpoch:           s.LeaveEpoch,
	}
	if s.CommissionCap != nil {
		out.MaxCommission = &s.CommissionCap.MaxCommission
		out.MaxCommissionIncreasePerEpoch = &s.CommissionCap.MaxIncreasePerEpoch
	}
	return json.Marshal(out)
}
