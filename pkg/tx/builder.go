package tx

import (
	"fmt"

	"github.com/klingnet-labs/chaincore/pkg/crypto"
	"github.com/klingnet-labs/chaincore/pkg/types"
)

// Builder constructs transactions incrementally: add inputs and outputs,
// then sign.
type Builder struct {
	tx *Transaction
}

// NewBuilder creates a new transaction builder.
func NewBuilder() *Builder {
	return &Builder{tx: &Transaction{}}
}

// AddInput adds an unsigned input referencing a previous output.
func (b *Builder) AddInput(ref types.TransactionOutRef) *Builder {
	b.tx.Ins = append(b.tx.Ins, Input{Ref: ref})
	return b
}

// AddOutput adds an output paying value to the given public key.
func (b *Builder) AddOutput(value uint64, pubKey types.PublicKey) *Builder {
	b.tx.Outs = append(b.tx.Outs, Output{Value: value, SignaturePubKey: pubKey})
	return b
}

// Sign signs every input with the same key (single-key spending: every
// referenced output must be owned by this key).
func (b *Builder) Sign(key *crypto.PrivateKey) error {
	hash := b.tx.Hash()
	sig, err := key.Sign(hash[:])
	if err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}
	for i := range b.tx.Ins {
		b.tx.Ins[i].Signature = sig
	}
	return nil
}

// SignWith signs each input with the key returned by keyFor for that
// input's Ref, allowing a single transaction to spend outputs owned by
// different keys.
func (b *Builder) SignWith(keyFor func(ref types.TransactionOutRef) (*crypto.PrivateKey, error)) error {
	hash := b.tx.Hash()
	cache := make(map[types.TransactionOutRef]types.Signature)
	for i, in := range b.tx.Ins {
		sig, ok := cache[in.Ref]
		if !ok {
			key, err := keyFor(in.Ref)
			if err != nil {
				return fmt.Errorf("sign input %d: %w", i, err)
			}
			sig, err = key.Sign(hash[:])
			if err != nil {
				return fmt.Errorf("sign input %d: %w", i, err)
			}
			cache[in.Ref] = sig
		}
		b.tx.Ins[i].Signature = sig
	}
	return nil
}

// Build returns the constructed transaction. Does not validate it; call
// Validate separately.
func (b *Builder) Build() *Transaction {
	return b.tx
}
