package vamp

import (
	"github.com/Overclock-Validator/solana-vamp/pkg/pda"
	"github.com/gagliardetto/solana-go"
)

// DeriveManagerAddress returns the manager state account of a vote account.
// The program derives it with the vote account as its only seed.
func DeriveManagerAddress(voteAccount, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return pda.Find(programID, voteAccount[:])
}
