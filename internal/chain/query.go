package chain

import (
	"fmt"
	"math/big"

	"github.com/klingnet-labs/chaincore/internal/utxo"
	"github.com/klingnet-labs/chaincore/pkg/block"
	"github.com/klingnet-labs/chaincore/pkg/tx"
	"github.com/klingnet-labs/chaincore/pkg/types"
)

// UTXOEntry pairs an output with the coordinate that addresses it.
type UTXOEntry struct {
	Ref types.TransactionOutRef
	Out tx.Output
}

// Flatten enumerates every root-to-leaf path through c in pre-order. The
// outer slice and every inner slice are non-empty: the genesis-always-
// present invariant guarantees at least one path, and every path includes
// at least the root.
func Flatten(c Blockchain[Verified]) [][]*block.Block {
	return flattenFrom(c.Root, nil)
}

func flattenFrom(n *Node, prefix []*block.Block) [][]*block.Block {
	path := make([]*block.Block, len(prefix), len(prefix)+1)
	copy(path, prefix)
	path = append(path, n.Block)

	if len(n.Children) == 0 {
		return [][]*block.Block{path}
	}
	var paths [][]*block.Block
	for _, child := range n.Children {
		paths = append(paths, flattenFrom(child, path)...)
	}
	return paths
}

// LongestChain returns the root-to-leaf path maximizing (length, Σ
// difficulty), lexicographically. Ties beyond that tuple keep whichever
// path Flatten encountered first (a stable maximum-by, not a plain scan
// that would favor the last equal candidate).
func LongestChain(c Blockchain[Verified]) []*block.Block {
	paths := Flatten(c)
	best := paths[0]
	bestLen := len(best)
	bestDiff := sumDifficulty(best)

	for _, p := range paths[1:] {
		l := len(p)
		if l < bestLen {
			continue
		}
		if l == bestLen {
			d := sumDifficulty(p)
			if d.Cmp(bestDiff) <= 0 {
				continue
			}
			best, bestLen, bestDiff = p, l, d
			continue
		}
		best, bestLen, bestDiff = p, l, sumDifficulty(p)
	}
	return best
}

func sumDifficulty(chain []*block.Block) *big.Int {
	sum := new(big.Int)
	for _, b := range chain {
		sum.Add(sum, new(big.Int).SetUint64(uint64(b.Header.Difficulty)))
	}
	return sum
}

// UnspentTransactionOutputs runs the UTXO accumulator over c's longest
// chain and groups the result by output public key, preserving the order
// in which outputs were produced within each group.
func UnspentTransactionOutputs(c Blockchain[Verified]) map[types.PublicKey][]UTXOEntry {
	longest := LongestChain(c)
	set := utxo.Accumulate(longest)

	result := make(map[types.PublicKey][]UTXOEntry)
	seen := make(map[types.TransactionOutRef]bool, len(set))

	record := func(ref types.TransactionOutRef) {
		if seen[ref] {
			return
		}
		out, ok := set[ref]
		if !ok {
			return
		}
		seen[ref] = true
		result[out.SignaturePubKey] = append(result[out.SignaturePubKey], UTXOEntry{Ref: ref, Out: out})
	}

	for _, b := range longest {
		coinbaseHash := b.Coinbase.Hash()
		for i := range b.Coinbase.Outs {
			record(types.CoinbaseOutRef(coinbaseHash, uint32(i)))
		}
		for _, t := range b.Txs {
			hash := t.Hash()
			for i := range t.Outs {
				record(types.OrdinaryOutRef(hash, uint32(i)))
			}
		}
	}

	return result
}

// AddressValues sums the value held by each public key over c's longest
// chain's UTXO set.
func AddressValues(c Blockchain[Verified]) map[types.PublicKey]uint64 {
	byKey := UnspentTransactionOutputs(c)
	values := make(map[types.PublicKey]uint64, len(byKey))
	for pubKey, entries := range byKey {
		var total uint64
		for _, e := range entries {
			total += e.Out.Value
		}
		values[pubKey] = total
	}
	return values
}

// ValidateTransaction checks t against c's longest-chain UTXO set.
func ValidateTransaction(c Blockchain[Verified], t *tx.Transaction) error {
	set := utxo.Accumulate(LongestChain(c))
	_, err := utxo.ApplyTransaction(t, set)
	return err
}

// ValidateTransactions folds txs, in order, against c's longest-chain UTXO
// set, each transaction validated against the state left by the ones
// before it.
func ValidateTransactions(c Blockchain[Verified], txs []*tx.Transaction) error {
	set := utxo.Accumulate(LongestChain(c))
	for i, t := range txs {
		next, err := utxo.ApplyTransaction(t, set)
		if err != nil {
			return fmt.Errorf("tx %d: %w", i, err)
		}
		set = next
	}
	return nil
}
