package config

import (
	"math/big"

	"github.com/klingnet-labs/chaincore/pkg/block"
	"github.com/klingnet-labs/chaincore/pkg/crypto"
	"github.com/klingnet-labs/chaincore/pkg/types"
)

// TargetDifficulty computes the difficulty a block at the next height must
// satisfy, given the timing of every prior block in the intended ancestor
// chain. Unlike the teacher's CalcNextDifficulty, the result is not clamped
// to a +/-4x band per recalculation window: the only floor is 1.
func TargetDifficulty(cfg BlockchainConfig, priorTimings []HeaderTiming) types.Difficulty {
	n := len(priorTimings)
	if n == 0 {
		return cfg.InitialDifficulty
	}

	k := cfg.DifficultyRecalculationInterval
	if k == 0 || uint64(n)%k != 0 {
		return priorTimings[n-1].Difficulty
	}

	window := priorTimings[uint64(n)-k : uint64(n)]
	elapsed := int64(window[len(window)-1].Time) - int64(window[0].Time)
	if elapsed < 1 {
		elapsed = 1
	}
	expected := int64(k) * int64(cfg.TargetSecondsPerBlock)

	prev := new(big.Int).SetUint64(uint64(priorTimings[n-1].Difficulty))
	next := new(big.Int).Mul(prev, big.NewInt(expected))
	next.Div(next, big.NewInt(elapsed))

	if next.Sign() <= 0 {
		return 1
	}
	if !next.IsUint64() {
		return types.Difficulty(^uint64(0))
	}
	d := next.Uint64()
	if d < 1 {
		d = 1
	}
	return types.Difficulty(d)
}

// TargetReward computes the coinbase value a block at the given height must
// pay: the initial reward halved once per MiningRewardHalvingInterval
// blocks, floored at 0 once the shift exceeds the width of a uint64 (the
// same overflow guard the teacher's reward schedule uses for >>).
func TargetReward(cfg BlockchainConfig, height uint64) uint64 {
	if cfg.MiningRewardHalvingInterval == 0 {
		return cfg.InitialMiningReward
	}
	halvings := height / cfg.MiningRewardHalvingInterval
	if halvings >= 64 {
		return 0
	}
	return cfg.InitialMiningReward >> halvings
}

// BlockHeaderHashDifficulty measures the proof of work a mined header
// represents: the difficulty-1 target divided by the header hash
// interpreted as an unsigned big-endian integer. A header with a smaller
// hash carries more work, so this quotient grows as the header gets
// "harder" to have found.
func BlockHeaderHashDifficulty(diff1 *big.Int, header *block.Header) *big.Int {
	hashInt := crypto.HashToInteger(header.Hash())
	if hashInt.Sign() == 0 {
		return new(big.Int).Set(diff1)
	}
	return new(big.Int).Div(diff1, hashInt)
}
