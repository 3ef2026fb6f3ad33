// Package clitest has helpers for testing solana-vamp subcommands.
package clitest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Overclock-Validator/solana-vamp/cmd/solana-vamp/cli"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// WriteKeypair stores key as a solana-keygen JSON file and returns its path.
func WriteKeypair(t testing.TB, key solana.PrivateKey) string {
	t.Helper()
	values := make([]int, len(key))
	for i, b := range key {
		values[i] = int(b)
	}
	content, err := json.Marshal(values)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), key.PublicKey().String()+".json")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

// Parse parses args into flags and clears every flag value again when the
// test ends. It returns the positional tokens.
func Parse(t testing.TB, flags *pflag.FlagSet, args ...string) []string {
	t.Helper()
	t.Cleanup(func() { Reset(flags) })
	require.NoError(t, flags.Parse(args))
	return flags.Args()
}

// Reset clears every once-only flag in flags.
func Reset(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if v, ok := f.Value.(*cli.OnceValue); ok {
			*v = cli.OnceValue{}
		}
	})
}
