package block

import (
	"encoding/binary"

	"github.com/klingnet-labs/chaincore/pkg/crypto"
	"github.com/klingnet-labs/chaincore/pkg/types"
)

// Header contains a block's metadata: its place in the chain, the
// commitments to its coinbase and ordinary transactions, and the
// proof-of-work fields.
type Header struct {
	PrevBlockHeaderHash     types.Hash      `json:"prevBlockHeaderHash"`
	CoinbaseTransactionHash types.Hash      `json:"coinbaseTransactionHash"`
	TransactionHashTreeRoot types.Hash      `json:"transactionHashTreeRoot"`
	Time                    uint64          `json:"time"`
	Difficulty              types.Difficulty `json:"difficulty"`
	Nonce                   uint64          `json:"nonce"`
}

// Hash computes the block header's identity: the BLAKE3 hash of its
// canonical encoding. This is the value a child block's
// PrevBlockHeaderHash must equal, and the value proof-of-work is measured
// against.
func (h *Header) Hash() types.Hash {
	return crypto.Hash(h.SigningBytes())
}

// SigningBytes returns the canonical encoding hashed by Hash.
func (h *Header) SigningBytes() []byte {
	buf := make([]byte, 0, 96+8+8+8)
	buf = append(buf, h.PrevBlockHeaderHash[:]...)
	buf = append(buf, h.CoinbaseTransactionHash[:]...)
	buf = append(buf, h.TransactionHashTreeRoot[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, h.Time)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(h.Difficulty))
	buf = binary.LittleEndian.AppendUint64(buf, h.Nonce)
	return buf
}
