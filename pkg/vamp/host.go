package vamp

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// CheckHost fails on big endian hosts. Payloads are little endian structs
// mirrored from the on-chain program and are only verified on little endian.
func CheckHost() error {
	return checkHost(cpu.IsBigEndian)
}

func checkHost(bigEndian bool) error {
	if bigEndian {
		return fmt.Errorf("%w: solana-vamp is currently unsupported on big endian CPU architectures", ErrUnsupportedHost)
	}
	return nil
}
