// Package chain implements the blockchain state machine: an immutable
// branching tree of blocks rooted at genesis, insertion under consensus
// rules, and the derived queries (longest chain, UTXO by key, balances)
// that only make sense once a tree is known to satisfy those rules.
package chain

import (
	"errors"

	"github.com/klingnet-labs/chaincore/config"
	"github.com/klingnet-labs/chaincore/internal/utxo"
	"github.com/klingnet-labs/chaincore/internal/validate"
	"github.com/klingnet-labs/chaincore/pkg/block"
)

// Tag realizes the spec's phantom validation discriminant: Go has no true
// phantom types, so Unverified and Verified are uninstantiable marker
// types satisfying this unexported interface, used only as a type
// parameter on Blockchain.
type Tag interface {
	tag()
}

// Unverified marks a Blockchain constructed from untrusted input (e.g.
// JSON decoding) that has not yet passed Verify.
type Unverified struct{}

func (Unverified) tag() {}

// Verified marks a Blockchain known to satisfy every consensus invariant:
// the only tag AddBlock and the C7 query functions accept.
type Verified struct{}

func (Verified) tag() {}

// Node is an immutable rose-tree node. Inserting a child never mutates an
// existing *Node: it allocates a new parent whose Children slice shares
// the unaffected siblings' pointers and prepends the new child.
type Node struct {
	Block    *block.Block
	Children []*Node
}

// Blockchain is a branching tree of blocks rooted at genesis, tagged by
// whether it is known to satisfy every consensus invariant.
type Blockchain[T Tag] struct {
	Config config.BlockchainConfig
	Root   *Node
}

// New constructs an unverified blockchain directly from a root node. It is
// total: no validation is performed until Verify is called.
func New(cfg config.BlockchainConfig, root *Node) Blockchain[Unverified] {
	return Blockchain[Unverified]{Config: cfg, Root: root}
}

// AddBlock locates the unique node in c whose header b extends, validates
// b against that node's ancestor chain, and returns a new verified
// blockchain with b spliced in as that node's first child. When no node
// is b's parent it returns validate.ErrNoParentFound; when exactly one
// subtree rejects b for another reason it returns that error; two or more
// matching parents, or conflicting outcomes, panic.
func AddBlock(c Blockchain[Verified], b *block.Block) (Blockchain[Verified], error) {
	if c.Root == nil {
		return Blockchain[Verified]{}, errors.New("chain: nil root")
	}
	newRoot, err := addBlockNode(c.Config, nil, c.Root, b)
	if err != nil {
		return Blockchain[Verified]{}, err
	}
	return Blockchain[Verified]{Config: c.Config, Root: newRoot}, nil
}

func addBlockNode(cfg config.BlockchainConfig, priorChain []*block.Block, node *Node, b *block.Block) (*Node, error) {
	if node.Block.Header.Hash() == b.Header.PrevBlockHeaderHash {
		for _, child := range node.Children {
			if *child.Block.Header == *b.Header {
				return nil, validate.ErrBlockAlreadyExists
			}
		}

		ancestors := appendChain(priorChain, node.Block)
		set := utxo.Accumulate(appendChain(ancestors, &block.Block{Coinbase: b.Coinbase}))
		if err := validate.ValidateBlock(cfg, ancestors, b, set); err != nil {
			return nil, err
		}

		children := make([]*Node, 0, len(node.Children)+1)
		children = append(children, &Node{Block: b})
		children = append(children, node.Children...)
		return &Node{Block: node.Block, Children: children}, nil
	}

	type attempt struct {
		index int
		node  *Node
		err   error
	}

	childAncestors := appendChain(priorChain, node.Block)
	var successes []attempt
	var otherFailures []attempt
	for i, child := range node.Children {
		newChild, err := addBlockNode(cfg, childAncestors, child, b)
		if err != nil {
			if !errors.Is(err, validate.ErrNoParentFound) {
				otherFailures = append(otherFailures, attempt{index: i, err: err})
			}
			continue
		}
		successes = append(successes, attempt{index: i, node: newChild})
	}

	switch {
	case len(successes) == 1 && len(otherFailures) == 0:
		children := make([]*Node, len(node.Children))
		copy(children, node.Children)
		children[successes[0].index] = successes[0].node
		return &Node{Block: node.Block, Children: children}, nil
	case len(successes) == 0 && len(otherFailures) == 0:
		return nil, validate.ErrNoParentFound
	case len(successes) == 0 && len(otherFailures) == 1:
		return nil, otherFailures[0].err
	default:
		panic("internal invariant violation: multiple parent matches or conflicting validation outcomes for a single block")
	}
}

// appendChain returns a new slice: chain with block appended. Never
// mutates chain's backing array, since it is shared across sibling
// recursion branches.
func appendChain(chain []*block.Block, b *block.Block) []*block.Block {
	next := make([]*block.Block, len(chain), len(chain)+1)
	copy(next, chain)
	return append(next, b)
}
