package chain

import (
	"encoding/json"

	"github.com/klingnet-labs/chaincore/config"
	"github.com/klingnet-labs/chaincore/pkg/block"
)

type jsonNode struct {
	Block *block.Block `json:"block"`
	Nodes []jsonNode   `json:"nodes"`
}

type jsonBlockchain struct {
	Config config.BlockchainConfig `json:"config"`
	Node   jsonNode                `json:"node"`
}

func encodeNode(n *Node) jsonNode {
	nodes := make([]jsonNode, len(n.Children))
	for i, child := range n.Children {
		nodes[i] = encodeNode(child)
	}
	return jsonNode{Block: n.Block, Nodes: nodes}
}

func decodeNode(n jsonNode) *Node {
	children := make([]*Node, len(n.Nodes))
	for i, child := range n.Nodes {
		children[i] = decodeNode(child)
	}
	return &Node{Block: n.Block, Children: children}
}

// MarshalJSON encodes a Blockchain of either tag as
// { "config": BlockchainConfig, "node": BlockchainNode }, where a
// BlockchainNode is { "block": Block, "nodes": [BlockchainNode, ...] }.
// Defined once on the generic type so both Blockchain[Unverified] and
// Blockchain[Verified] share it.
func (c Blockchain[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonBlockchain{Config: c.Config, Node: encodeNode(c.Root)})
}

// Decode parses the wire format produced by MarshalJSON into an
// unverified blockchain. Decoding only ever produces Blockchain[Unverified]:
// Go has no way to specialize UnmarshalJSON to a single instantiation of a
// generic type, and untrusted input must pass Verify before it can be
// queried regardless.
func Decode(data []byte) (Blockchain[Unverified], error) {
	var wire jsonBlockchain
	if err := json.Unmarshal(data, &wire); err != nil {
		return Blockchain[Unverified]{}, err
	}
	return Blockchain[Unverified]{Config: wire.Config, Root: decodeNode(wire.Node)}, nil
}
