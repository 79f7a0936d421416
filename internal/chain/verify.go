package chain

import (
	"errors"

	"github.com/klingnet-labs/chaincore/internal/utxo"
	"github.com/klingnet-labs/chaincore/internal/validate"
	"github.com/klingnet-labs/chaincore/pkg/block"
)

// Verify converts an unverified tree into a verified one: the genesis
// block is validated with an empty ancestor chain, then every descendant
// is replayed through AddBlock in pre-order. A tree that passes Verify
// satisfies every invariant AddBlock would have enforced had the blocks
// arrived one at a time in that order.
func Verify(c Blockchain[Unverified]) (Blockchain[Verified], error) {
	if c.Root == nil {
		return Blockchain[Verified]{}, errors.New("chain: nil root")
	}

	genesis := c.Root.Block
	if len(genesis.Txs) > 0 {
		return Blockchain[Verified]{}, ErrGenesisBlockHasTransactions
	}

	set := utxo.Accumulate([]*block.Block{{Coinbase: genesis.Coinbase}})
	if err := validate.ValidateBlock(c.Config, nil, genesis, set); err != nil {
		return Blockchain[Verified]{}, &GenesisBlockException{Err: err}
	}

	verified := Blockchain[Verified]{Config: c.Config, Root: &Node{Block: genesis}}
	for _, b := range preOrder(c.Root.Children) {
		next, err := AddBlock(verified, b)
		if err != nil {
			return Blockchain[Verified]{}, &BlockValidationException{Err: err}
		}
		verified = next
	}

	return verified, nil
}

// Unverify discards the verified tag without re-running validation: an
// identity cast used to re-serialize an already-verified chain.
func Unverify(c Blockchain[Verified]) Blockchain[Unverified] {
	return Blockchain[Unverified]{Config: c.Config, Root: c.Root}
}

// preOrder flattens a forest of nodes into its blocks in pre-order
// (a node before any of its descendants, siblings left to right).
func preOrder(forest []*Node) []*block.Block {
	var out []*block.Block
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n.Block)
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, n := range forest {
		walk(n)
	}
	return out
}
