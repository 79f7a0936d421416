// Package crypto provides the cryptographic oracle the ledger is built on:
// BLAKE3 hashing, Merkle accumulation, and Schnorr/secp256k1 signatures.
package crypto

import (
	"math/big"

	"github.com/klingnet-labs/chaincore/pkg/types"
	"github.com/zeebo/blake3"
)

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake3.Sum256(data)
}

// HashConcat hashes the concatenation of two hashes. Used to build Merkle trees.
func HashConcat(a, b types.Hash) types.Hash {
	var buf [64]byte
	copy(buf[:32], a[:])
	copy(buf[32:], b[:])
	return Hash(buf[:])
}

// HashToInteger interprets a hash as a big-endian unsigned integer, for
// comparison against a proof-of-work target.
func HashToInteger(h types.Hash) *big.Int {
	return new(big.Int).SetBytes(h[:])
}
