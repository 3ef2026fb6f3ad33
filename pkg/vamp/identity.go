package vamp

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

type IdentityKind uint8

const (
	IdentityKeypair IdentityKind = iota + 1
	IdentityPublicKey
)

func (k IdentityKind) String() string {
	switch k {
	case IdentityKeypair:
		return "keypair"
	case IdentityPublicKey:
		return "pubkey"
	}
	return "unknown"
}

// Identity is an account-like command line argument after resolution.
// PrivateKey is only set for IdentityKeypair.
type Identity struct {
	Kind       IdentityKind
	Source     string
	PublicKey  solana.PublicKey
	PrivateKey solana.PrivateKey
}

// ResolveIdentity interprets input as a keypair file path first and falls
// back to a base58 public key.
func ResolveIdentity(input string) (Identity, error) {
	priv, keypairErr := LoadKeypair(input)
	if keypairErr == nil {
		return Identity{
			Kind:       IdentityKeypair,
			Source:     input,
			PublicKey:  priv.PublicKey(),
			PrivateKey: priv,
		}, nil
	}

	pub, pubkeyErr := ParsePublicKey(input)
	if pubkeyErr == nil {
		return Identity{Kind: IdentityPublicKey, Source: input, PublicKey: pub}, nil
	}

	return Identity{}, fmt.Errorf("%w: %q is neither a keypair file (%v) nor a pubkey (%v)",
		ErrInvalidIdentity, input, keypairErr, pubkeyErr)
}

// Signer returns the private key, failing for identities that were given as
// a bare public key.
func (id Identity) Signer() (solana.PrivateKey, error) {
	if id.Kind != IdentityKeypair {
		return nil, fmt.Errorf("%w: %s must be a keypair file to sign", ErrInvalidIdentity, id.Source)
	}
	return id.PrivateKey, nil
}

func ParsePublicKey(s string) (solana.PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if len(b) != solana.PublicKeyLength {
		return solana.PublicKey{}, fmt.Errorf("decoded %d bytes, expected %d", len(b), solana.PublicKeyLength)
	}
	return solana.PublicKeyFromBytes(b), nil
}

// LoadKeypair reads a solana-keygen JSON keypair file: an array of 64 bytes
// holding the ed25519 seed followed by the public key.
func LoadKeypair(path string) (solana.PrivateKey, error) {
	priv, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypair from %s: %w", path, err)
	}
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("malformed keypair file contents in %s: %d bytes", path, len(priv))
	}
	derived := ed25519.NewKeyFromSeed(priv[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], priv[ed25519.SeedSize:]) {
		return nil, fmt.Errorf("invalid keypair file contents in %s: public key mismatch", path)
	}
	return priv, nil
}
