package block

import (
	"errors"
	"fmt"

	"github.com/klingnet-labs/chaincore/pkg/types"
)

// Structural validation errors. Consensus-level checks (header references,
// proof-of-work, timestamp ordering, coinbase value, UTXO-aware transaction
// validation) live in internal/validate, which has the chain context those
// checks need.
var (
	ErrNilHeader           = errors.New("block has nil header")
	ErrZeroTimestamp       = errors.New("block timestamp is zero")
	ErrDuplicateBlockInput = errors.New("duplicate input across transactions in block")
)

// Validate checks the block's internal structural consistency: a header is
// present, the coinbase transaction and every ordinary transaction are
// individually well-formed, and no output is spent twice within the block.
func (b *Block) Validate() error {
	if b.Header == nil {
		return ErrNilHeader
	}
	if b.Header.Time == 0 {
		return ErrZeroTimestamp
	}
	if err := b.Coinbase.Validate(); err != nil {
		return fmt.Errorf("coinbase transaction: %w", err)
	}

	allInputs := make(map[types.TransactionOutRef]int, len(b.Txs))
	for i, t := range b.Txs {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tx %d: %w", i, err)
		}
		for _, in := range t.Ins {
			if prevIdx, exists := allInputs[in.Ref]; exists {
				return fmt.Errorf("tx %d: %w: also spent in tx %d", i, ErrDuplicateBlockInput, prevIdx)
			}
			allInputs[in.Ref] = i
		}
	}

	return nil
}

// Hash returns the block's header hash, or the zero hash if the header is nil.
func (b *Block) Hash() types.Hash {
	if b.Header == nil {
		return types.Hash{}
	}
	return b.Header.Hash()
}
