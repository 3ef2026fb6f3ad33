// Package pda derives Solana program-derived addresses.
package pda

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
	"github.com/minio/sha256-simd"
)

const (
	MaxSeeds   = 16
	MaxSeedLen = 32
	marker     = "ProgramDerivedAddress"
)

var (
	ErrInvalidSeeds = errors.New("invalid program address seeds")
	ErrOnCurve      = errors.New("program address is on the ed25519 curve")
	ErrNoBump       = errors.New("no viable bump seed")
)

// Create hashes seeds with programID into a program address. Addresses that
// land on the curve have a private key and are rejected with ErrOnCurve.
func Create(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return solana.PublicKey{}, fmt.Errorf("%w: %d seeds, at most %d", ErrInvalidSeeds, len(seeds), MaxSeeds)
	}

	h := sha256.New()
	for i, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return solana.PublicKey{}, fmt.Errorf("%w: seed %d is %d bytes, at most %d", ErrInvalidSeeds, i, len(seed), MaxSeedLen)
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(marker))

	addr := solana.PublicKeyFromBytes(h.Sum(nil))
	if IsOnCurve(addr[:]) {
		return solana.PublicKey{}, ErrOnCurve
	}
	return addr, nil
}

// Find tries bumps 255 down to 0, appended as the last seed, and returns
// the first off-curve address with its bump.
func Find(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %d seeds leave no room for a bump", ErrInvalidSeeds, len(seeds))
	}

	withBump := append(append(make([][]byte, 0, len(seeds)+1), seeds...), nil)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}
		addr, err := Create(programID, withBump...)
		switch {
		case err == nil:
			return addr, uint8(bump), nil
		case !errors.Is(err, ErrOnCurve):
			return solana.PublicKey{}, 0, err
		}
	}
	return solana.PublicKey{}, 0, ErrNoBump
}

// IsOnCurve reports whether b decodes to an ed25519 point.
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
