// Package utxo implements the unspent-transaction-output accumulator: the
// fold that turns an ordered sequence of blocks into the set of outputs
// still available to spend.
package utxo

import (
	"errors"
	"fmt"

	"github.com/klingnet-labs/chaincore/pkg/block"
	"github.com/klingnet-labs/chaincore/pkg/crypto"
	"github.com/klingnet-labs/chaincore/pkg/tx"
	"github.com/klingnet-labs/chaincore/pkg/types"
)

// Set maps an output's coordinate to the output itself. It is the
// complete state needed to validate the next block or transaction.
type Set map[types.TransactionOutRef]tx.Output

// UTXO-aware validation errors, surfaced by ApplyTransaction.
var (
	ErrTransactionOutRefNotFound = errors.New("transaction out ref not found")
	ErrInvalidTransactionSignature = errors.New("invalid transaction signature")
	ErrInvalidTransactionValues     = errors.New("transaction input value less than output value")
)

// Accumulate folds a sequence of blocks, in order, into a UTXO set. Each
// block's coinbase outputs are inserted unconditionally (two coinbase
// transactions minting the same hash is accepted by merging: the later
// mint's value is added to the earlier one's, rather than treated as an
// error — this implementation deliberately does not police hash
// collisions between independently-mined coinbases). Each block's ordinary
// transactions are then applied via ApplyTransaction, which is assumed
// infallible here: Accumulate is only ever called over a chain that has
// already passed internal/validate, so a failure indicates an internal
// invariant violation, not bad input.
func Accumulate(blocks []*block.Block) Set {
	set := make(Set)
	for _, b := range blocks {
		applyCoinbase(set, b.Coinbase)
		for _, t := range b.Txs {
			next, err := ApplyTransaction(t, set)
			if err != nil {
				panic(fmt.Sprintf("internal invariant violation: validated chain failed UTXO fold: %v", err))
			}
			set = next
		}
	}
	return set
}

func applyCoinbase(set Set, coinbase tx.CoinbaseTransaction) {
	hash := coinbase.Hash()
	for i, out := range coinbase.Outs {
		ref := types.CoinbaseOutRef(hash, uint32(i))
		if existing, ok := set[ref]; ok {
			out.Value += existing.Value
		}
		set[ref] = out
	}
}

// ApplyTransaction validates t against set and, on success, returns the set
// produced by spending its inputs and inserting its outputs. set is left
// unmodified; the returned Set is a new map.
func ApplyTransaction(t *tx.Transaction, set Set) (Set, error) {
	var inSum uint64
	for i, in := range t.Ins {
		out, ok := set[in.Ref]
		if !ok {
			return nil, fmt.Errorf("input %d: %w: %+v", i, ErrTransactionOutRefNotFound, in.Ref)
		}
		hash := t.Hash()
		if !crypto.VerifySignature(hash[:], in.Signature, out.SignaturePubKey) {
			return nil, fmt.Errorf("input %d: %w", i, ErrInvalidTransactionSignature)
		}
		inSum += out.Value
	}

	outSum, err := tx.TotalValue(t.Outs)
	if err != nil {
		return nil, fmt.Errorf("transaction outputs: %w", err)
	}
	if inSum < outSum {
		return nil, fmt.Errorf("%w: inputs=%d outputs=%d", ErrInvalidTransactionValues, inSum, outSum)
	}

	next := make(Set, len(set)+len(t.Outs))
	for k, v := range set {
		next[k] = v
	}
	for _, in := range t.Ins {
		if _, ok := next[in.Ref]; !ok {
			panic(fmt.Sprintf("internal invariant violation: deleting missing UTXO %+v", in.Ref))
		}
		delete(next, in.Ref)
	}

	hash := t.Hash()
	for i, out := range t.Outs {
		next[types.OrdinaryOutRef(hash, uint32(i))] = out
	}

	return next, nil
}
