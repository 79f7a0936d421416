// Package config holds the immutable protocol parameters every node must
// agree on: the difficulty retarget schedule and the block reward schedule.
// Unlike the node-level runtime settings a full client would also carry,
// everything here is consensus-critical and is expected to come from
// genesis, not from a local flag or config file.
package config

import (
	"encoding/json"
	"errors"
	"math/big"

	"github.com/klingnet-labs/chaincore/pkg/types"
)

// BlockchainConfig is the set of protocol rules a chain is parameterized
// over. Two nodes with different BlockchainConfig values are, by
// definition, running different chains.
type BlockchainConfig struct {
	// InitialDifficulty is the difficulty assigned to every block before
	// the first recalculation interval completes.
	InitialDifficulty types.Difficulty

	// Difficulty1Target is the hash-difficulty numerator used by
	// BlockHeaderHashDifficulty: the "difficulty 1" target a header hash
	// is divided against. Serialized as a decimal string since big.Int
	// has no native JSON representation.
	Difficulty1Target *big.Int

	// TargetSecondsPerBlock is the wall-clock spacing the retarget
	// schedule aims to hold blocks to.
	TargetSecondsPerBlock uint64

	// DifficultyRecalculationInterval is the number of blocks between
	// difficulty retargets.
	DifficultyRecalculationInterval uint64

	// InitialMiningReward is the coinbase value paid at height 1, before
	// any halving has occurred.
	InitialMiningReward uint64

	// MiningRewardHalvingInterval is the number of blocks between reward
	// halvings.
	MiningRewardHalvingInterval uint64
}

// HeaderTiming is the minimal per-block record TargetDifficulty needs: just
// enough to compute elapsed wall time and carry forward the previous
// difficulty, without requiring the whole header.
type HeaderTiming struct {
	Time       uint64
	Difficulty types.Difficulty
}

var errInvalidDifficulty1Target = errors.New("config: invalid difficulty1Target")

type jsonBlockchainConfig struct {
	InitialDifficulty               types.Difficulty `json:"initialDifficulty"`
	Difficulty1Target               string           `json:"difficulty1Target"`
	TargetSecondsPerBlock           uint64           `json:"targetSecondsPerBlock"`
	DifficultyRecalculationInterval uint64           `json:"difficultyRecalculationInterval"`
	InitialMiningReward             uint64           `json:"initialMiningReward"`
	MiningRewardHalvingInterval     uint64           `json:"miningRewardHalvingInterval"`
}

// MarshalJSON encodes Difficulty1Target as a decimal string so arbitrarily
// large targets survive round-tripping without losing precision.
func (c BlockchainConfig) MarshalJSON() ([]byte, error) {
	target := "0"
	if c.Difficulty1Target != nil {
		target = c.Difficulty1Target.String()
	}
	return json.Marshal(jsonBlockchainConfig{
		InitialDifficulty:               c.InitialDifficulty,
		Difficulty1Target:               target,
		TargetSecondsPerBlock:           c.TargetSecondsPerBlock,
		DifficultyRecalculationInterval: c.DifficultyRecalculationInterval,
		InitialMiningReward:             c.InitialMiningReward,
		MiningRewardHalvingInterval:     c.MiningRewardHalvingInterval,
	})
}

// UnmarshalJSON decodes Difficulty1Target from a decimal string.
func (c *BlockchainConfig) UnmarshalJSON(data []byte) error {
	var j jsonBlockchainConfig
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	target, ok := new(big.Int).SetString(j.Difficulty1Target, 10)
	if !ok {
		return errInvalidDifficulty1Target
	}
	c.InitialDifficulty = j.InitialDifficulty
	c.Difficulty1Target = target
	c.TargetSecondsPerBlock = j.TargetSecondsPerBlock
	c.DifficultyRecalculationInterval = j.DifficultyRecalculationInterval
	c.InitialMiningReward = j.InitialMiningReward
	c.MiningRewardHalvingInterval = j.MiningRewardHalvingInterval
	return nil
}
