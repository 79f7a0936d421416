// Package validate implements per-block consensus validation: the checks a
// block must pass against a specific ancestor chain before it can be
// inserted into a verified blockchain tree.
package validate

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/klingnet-labs/chaincore/config"
	"github.com/klingnet-labs/chaincore/internal/utxo"
	"github.com/klingnet-labs/chaincore/pkg/block"
	"github.com/klingnet-labs/chaincore/pkg/tx"
	"github.com/klingnet-labs/chaincore/pkg/types"
)

// BlockException sentinels. ValidateBlock itself only ever returns
// ErrTimestampTooOld and the sentinels after ErrTimestampTooFarIntoFuture,
// which nothing returns; ErrBlockAlreadyExists and ErrNoParentFound
// are produced by internal/chain's tree-insertion algorithm, which shares
// this sentinel family rather than defining its own.
var (
	ErrBlockAlreadyExists              = errors.New("block already exists")
	ErrNoParentFound                   = errors.New("no parent found for block")
	ErrTimestampTooOld                 = errors.New("block timestamp does not exceed parent timestamp")
	ErrTimestampTooFarIntoFuture       = errors.New("block timestamp too far into the future")
	ErrInvalidDifficultyReference      = errors.New("block difficulty does not match expected difficulty")
	ErrInvalidDifficulty               = errors.New("block header hash does not meet stated difficulty")
	ErrInvalidCoinbaseTransactionHash  = errors.New("coinbase transaction hash does not match header")
	ErrInvalidTransactionHashTreeRoot  = errors.New("transaction hash tree root does not match header")
	ErrInvalidCoinbaseTransactionValue = errors.New("coinbase transaction value does not match scheduled reward")
)

// ErrInvalidTransactionValues, ErrTransactionOutRefNotFound, and
// ErrInvalidTransactionSignature are produced by the UTXO accumulator
// (internal/utxo) while folding a block's transactions; they are
// BlockException members conceptually, but are defined in internal/utxo
// to avoid a validate -> utxo -> validate import cycle. Callers match them
// with errors.Is against utxo.ErrInvalidTransactionValues,
// utxo.ErrTransactionOutRefNotFound, and utxo.ErrInvalidTransactionSignature.

// Timings returns the HeaderTiming sequence for an ancestor chain, in the
// order TargetDifficulty expects (oldest first).
func Timings(chain []*block.Block) []config.HeaderTiming {
	timings := make([]config.HeaderTiming, len(chain))
	for i, b := range chain {
		timings[i] = config.HeaderTiming{Time: b.Header.Time, Difficulty: b.Header.Difficulty}
	}
	return timings
}

// ValidateBlock checks b against its intended ancestor chain A (genesis
// first, parent last; empty for the genesis block itself) and the UTXO set
// already folded from A together with b's own coinbase outputs. set must
// already include b.Coinbase's outputs at the caller's responsibility (the
// accumulator is folded starting from that point, matching the way a
// same-block transaction can spend an earlier same-block output).
func ValidateBlock(cfg config.BlockchainConfig, chain []*block.Block, b *block.Block, utxoSet utxo.Set) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("block structure: %w", err)
	}

	height := uint64(len(chain)) + 1

	if len(chain) > 0 {
		parent := chain[len(chain)-1]
		if b.Header.Time <= parent.Header.Time {
			return ErrTimestampTooOld
		}
	}

	expectedDifficulty := config.TargetDifficulty(cfg, Timings(chain))
	if b.Header.Difficulty != expectedDifficulty {
		return fmt.Errorf("%w: have %d, want %d", ErrInvalidDifficultyReference, b.Header.Difficulty, expectedDifficulty)
	}

	work := config.BlockHeaderHashDifficulty(cfg.Difficulty1Target, b.Header)
	if work.Cmp(bigFromDifficulty(b.Header.Difficulty)) < 0 {
		return ErrInvalidDifficulty
	}

	if b.Coinbase.Hash() != b.Header.CoinbaseTransactionHash {
		return ErrInvalidCoinbaseTransactionHash
	}
	if block.TransactionHashTreeRoot(b.Txs) != b.Header.TransactionHashTreeRoot {
		return ErrInvalidTransactionHashTreeRoot
	}

	coinbaseValue, err := tx.TotalValue(b.Coinbase.Outs)
	if err != nil {
		return fmt.Errorf("coinbase transaction: %w", err)
	}
	expectedReward := config.TargetReward(cfg, height)
	if coinbaseValue != expectedReward {
		return fmt.Errorf("%w: have %d, want %d", ErrInvalidCoinbaseTransactionValue, coinbaseValue, expectedReward)
	}

	set := utxoSet
	for i, t := range b.Txs {
		next, err := utxo.ApplyTransaction(t, set)
		if err != nil {
			return fmt.Errorf("tx %d: %w", i, err)
		}
		set = next
	}

	return nil
}

func bigFromDifficulty(d types.Difficulty) *big.Int {
	return new(big.Int).SetUint64(uint64(d))
}
