package crypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"github.com/klingnet-labs/chaincore/pkg/types"
)

// Signer signs messages with a private key using Schnorr/secp256k1.
type Signer interface {
	// Sign produces a Schnorr signature over a 32-byte hash.
	Sign(hash []byte) (types.Signature, error)
	// PublicKey returns the signer's compressed public key.
	PublicKey() types.PublicKey
}

// PrivateKey wraps a secp256k1 private key for Schnorr signing.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// GenerateKey creates a new random secp256k1 private key.
func GenerateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte secret.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(b))
	}
	key := secp256k1.PrivKeyFromBytes(b)
	return &PrivateKey{key: key}, nil
}

// Sign produces a Schnorr signature over a 32-byte hash.
func (pk *PrivateKey) Sign(hash []byte) (types.Signature, error) {
	if len(hash) != 32 {
		return types.Signature{}, fmt.Errorf("hash must be 32 bytes, got %d", len(hash))
	}
	sig, err := schnorr.Sign(pk.key, hash)
	if err != nil {
		return types.Signature{}, fmt.Errorf("schnorr sign: %w", err)
	}
	return types.SignatureFromBytes(sig.Serialize())
}

// PublicKey returns the compressed public key.
func (pk *PrivateKey) PublicKey() types.PublicKey {
	pub, err := types.PublicKeyFromBytes(pk.key.PubKey().SerializeCompressed())
	if err != nil {
		// secp256k1 always serializes compressed keys at 33 bytes.
		panic(fmt.Sprintf("internal error: unexpected public key encoding: %v", err))
	}
	return pub
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// VerifySignature checks a Schnorr signature against a 32-byte hash and a
// compressed public key. Returns false on any malformed input rather than
// an error: signature verification failure is not itself exceptional.
func VerifySignature(hash []byte, signature types.Signature, publicKey types.PublicKey) bool {
	pubKey, err := secp256k1.ParsePubKey(publicKey[:])
	if err != nil {
		return false
	}
	sig, err := schnorr.ParseSignature(signature[:])
	if err != nil {
		return false
	}
	return sig.Verify(hash, pubKey)
}
