// Package block defines the block type: a header plus the coinbase and
// ordinary transactions it commits to.
package block

import "github.com/klingnet-labs/chaincore/pkg/tx"

// Block is a header plus the transactions it commits to. Txs order is
// significant: a transaction spending an output produced by an earlier
// transaction in the same block must follow it.
type Block struct {
	Header   *Header                 `json:"header"`
	Coinbase tx.CoinbaseTransaction  `json:"coinbaseTransaction"`
	Txs      []*tx.Transaction       `json:"transactions"`
}

// New builds a block from its header, coinbase transaction, and ordinary transactions.
func New(header *Header, coinbase tx.CoinbaseTransaction, txs []*tx.Transaction) *Block {
	return &Block{Header: header, Coinbase: coinbase, Txs: txs}
}
