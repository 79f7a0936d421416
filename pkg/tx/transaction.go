// Package tx defines transaction types: the coinbase transaction that mints
// a block's reward, and ordinary transactions that move value between
// previously produced outputs.
package tx

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/klingnet-labs/chaincore/pkg/crypto"
	"github.com/klingnet-labs/chaincore/pkg/types"
)

// Output is a single transaction output: a value payable to whoever can
// produce a signature under SignaturePubKey.
type Output struct {
	Value           uint64          `json:"value"`
	SignaturePubKey types.PublicKey `json:"signaturePubKey"`
}

// Input spends a previously produced output, identified by Ref, authorized
// by Signature.
type Input struct {
	Ref       types.TransactionOutRef `json:"ref"`
	Signature types.Signature         `json:"signature"`
}

// Transaction moves value from the outputs named by Ins to the new outputs
// in Outs. Both must be non-empty. Order of Ins and Outs is significant:
// input j's Ref may address output j of an earlier transaction in the same
// block, and output index is assigned by position in Outs.
type Transaction struct {
	Ins  []Input  `json:"ins"`
	Outs []Output `json:"outs"`
}

// CoinbaseTransaction mints a block's reward. It has no inputs; Outs must
// be non-empty.
type CoinbaseTransaction struct {
	Outs []Output `json:"outs"`
}

// Hash computes the transaction's identity: the BLAKE3 hash of its signing
// bytes. Every output it produces is addressed as {SourceOrdinary(Hash()), index}.
func (t *Transaction) Hash() types.Hash {
	return crypto.Hash(t.SigningBytes())
}

// Hash computes the coinbase transaction's identity, addressed as
// {SourceCoinbase(Hash()), index} by the outputs it produces.
func (c *CoinbaseTransaction) Hash() types.Hash {
	return crypto.Hash(c.SigningBytes())
}

// SigningBytes returns the canonical encoding signed over by every input's
// Signature. It excludes the inputs' own signatures (a signature cannot
// cover itself) but includes each input's Ref, so a transaction's identity
// and its signing message are bound to exactly the outputs it spends.
func (t *Transaction) SigningBytes() []byte {
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.Ins)))
	for _, in := range t.Ins {
		buf = appendOutRef(buf, in.Ref)
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.Outs)))
	for _, out := range t.Outs {
		buf = appendOutput(buf, out)
	}
	return buf
}

// SigningBytes returns the canonical encoding used to compute the coinbase
// transaction's hash.
func (c *CoinbaseTransaction) SigningBytes() []byte {
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(c.Outs)))
	for _, out := range c.Outs {
		buf = appendOutput(buf, out)
	}
	return buf
}

func appendOutRef(buf []byte, ref types.TransactionOutRef) []byte {
	buf = append(buf, byte(ref.Source.Kind))
	buf = append(buf, ref.Source.Hash[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, ref.Index)
	return buf
}

func appendOutput(buf []byte, out Output) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, out.Value)
	buf = append(buf, out.SignaturePubKey[:]...)
	return buf
}

// TotalValue sums the value of a transaction's outputs. Returns an error if
// the sum overflows uint64.
func TotalValue(outs []Output) (uint64, error) {
	var total uint64
	for _, out := range outs {
		if total > math.MaxUint64-out.Value {
			return 0, fmt.Errorf("output value overflow")
		}
		total += out.Value
	}
	return total, nil
}
