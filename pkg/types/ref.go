package types

import (
	"encoding/json"
	"fmt"
)

// SourceKind distinguishes a coinbase transaction from an ordinary one as
// the origin of a transaction output. Two TransactionOutRef values with the
// same Hash but different SourceKind refer to distinct outputs: a coinbase
// transaction and an ordinary transaction never share an output namespace.
type SourceKind uint8

const (
	// SourceCoinbase marks an output produced by a block's coinbase transaction.
	SourceCoinbase SourceKind = iota
	// SourceOrdinary marks an output produced by an ordinary transaction.
	SourceOrdinary
)

// String renders the source kind for diagnostics.
func (k SourceKind) String() string {
	switch k {
	case SourceCoinbase:
		return "coinbase"
	case SourceOrdinary:
		return "ordinary"
	default:
		return fmt.Sprintf("SourceKind(%d)", uint8(k))
	}
}

// TxSource identifies the transaction that produced an output: its kind
// (coinbase or ordinary) and its hash.
type TxSource struct {
	Kind SourceKind
	Hash Hash
}

// TransactionOutRef names a single output of a transaction: which
// transaction produced it, and at what index. It is comparable and usable
// as a map key, which internal/utxo relies on directly.
type TransactionOutRef struct {
	Source TxSource
	Index  uint32
}

// CoinbaseOutRef builds a TransactionOutRef pointing at a coinbase transaction's output.
func CoinbaseOutRef(coinbaseHash Hash, index uint32) TransactionOutRef {
	return TransactionOutRef{Source: TxSource{Kind: SourceCoinbase, Hash: coinbaseHash}, Index: index}
}

// OrdinaryOutRef builds a TransactionOutRef pointing at an ordinary transaction's output.
func OrdinaryOutRef(txHash Hash, index uint32) TransactionOutRef {
	return TransactionOutRef{Source: TxSource{Kind: SourceOrdinary, Hash: txHash}, Index: index}
}

type jsonTransactionOutRef struct {
	Kind  string `json:"kind"`
	Hash  Hash   `json:"hash"`
	Index uint32 `json:"index"`
}

// MarshalJSON encodes the ref with an explicit "kind" discriminator so the
// coinbase/ordinary distinction survives the wire.
func (r TransactionOutRef) MarshalJSON() ([]byte, error) {
	var kind string
	switch r.Source.Kind {
	case SourceCoinbase:
		kind = "coinbase"
	case SourceOrdinary:
		kind = "ordinary"
	default:
		return nil, fmt.Errorf("unknown source kind %d", r.Source.Kind)
	}
	return json.Marshal(jsonTransactionOutRef{Kind: kind, Hash: r.Source.Hash, Index: r.Index})
}

// UnmarshalJSON decodes a ref from its "kind"/"hash"/"index" wire form.
func (r *TransactionOutRef) UnmarshalJSON(data []byte) error {
	var j jsonTransactionOutRef
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	var kind SourceKind
	switch j.Kind {
	case "coinbase":
		kind = SourceCoinbase
	case "ordinary":
		kind = SourceOrdinary
	default:
		return fmt.Errorf("unknown transaction out ref kind %q", j.Kind)
	}
	r.Source = TxSource{Kind: kind, Hash: j.Hash}
	r.Index = j.Index
	return nil
}
