// Package sysvar decodes the Solana sysvar accounts the client reads.
package sysvar

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var SysvarClockAddr = solana.SysVarClockPubkey

const SysvarClockStructLen = 40

// SysvarClock mirrors the clock sysvar account. Fields are decoded in
// declaration order as little endian integers.
type SysvarClock struct {
	Slot                uint64
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

// DecodeClock parses the clock sysvar account data.
func DecodeClock(data []byte) (*SysvarClock, error) {
	if len(data) < SysvarClockStructLen {
		return nil, fmt.Errorf("clock sysvar too short: %d bytes", len(data))
	}
	var clock SysvarClock
	if err := bin.NewBinDecoder(data).Decode(&clock); err != nil {
		return nil, fmt.Errorf("failed to decode clock sysvar: %w", err)
	}
	return &clock, nil
}

// MinLeaveEpoch is the earliest leave epoch the program accepts at the
// clock's epoch.
func (sc *SysvarClock) MinLeaveEpoch() uint64 {
	return sc.Epoch + 2
}
