package config

import (
	"math/big"
	"testing"

	"github.com/klingnet-labs/chaincore/pkg/block"
	"github.com/klingnet-labs/chaincore/pkg/types"
)

func TestTargetDifficulty_NoPriorTimings(t *testing.T) {
	cfg := BlockchainConfig{InitialDifficulty: 42}
	if got := TargetDifficulty(cfg, nil); got != 42 {
		t.Errorf("TargetDifficulty() = %d, want 42", got)
	}
}

func TestTargetDifficulty_MidInterval(t *testing.T) {
	cfg := BlockchainConfig{InitialDifficulty: 10, DifficultyRecalculationInterval: 4}
	timings := []HeaderTiming{
		{Time: 0, Difficulty: 10},
		{Time: 10, Difficulty: 10},
		{Time: 20, Difficulty: 10},
	}
	if got := TargetDifficulty(cfg, timings); got != 10 {
		t.Errorf("TargetDifficulty() = %d, want 10 (carry forward mid-interval)", got)
	}
}

func TestTargetDifficulty_RetargetsUp(t *testing.T) {
	// Blocks came in twice as fast as expected: difficulty should double.
	cfg := BlockchainConfig{
		InitialDifficulty:               10,
		DifficultyRecalculationInterval: 4,
		TargetSecondsPerBlock:           10,
	}
	timings := []HeaderTiming{
		{Time: 0, Difficulty: 10},
		{Time: 5, Difficulty: 10},
		{Time: 10, Difficulty: 10},
		{Time: 20, Difficulty: 10},
	}
	got := TargetDifficulty(cfg, timings)
	if got != 20 {
		t.Errorf("TargetDifficulty() = %d, want 20", got)
	}
}

func TestTargetDifficulty_RetargetsDown(t *testing.T) {
	// Blocks came in twice as slow as expected: difficulty should halve.
	cfg := BlockchainConfig{
		InitialDifficulty:               10,
		DifficultyRecalculationInterval: 4,
		TargetSecondsPerBlock:           10,
	}
	timings := []HeaderTiming{
		{Time: 0, Difficulty: 10},
		{Time: 20, Difficulty: 10},
		{Time: 40, Difficulty: 10},
		{Time: 80, Difficulty: 10},
	}
	got := TargetDifficulty(cfg, timings)
	if got != 5 {
		t.Errorf("TargetDifficulty() = %d, want 5", got)
	}
}

func TestTargetDifficulty_FloorOfOne(t *testing.T) {
	// No ±4x clamp: an extreme slowdown can drive difficulty all the way
	// down to the floor in a single retarget.
	cfg := BlockchainConfig{
		InitialDifficulty:               100,
		DifficultyRecalculationInterval: 2,
		TargetSecondsPerBlock:           1,
	}
	timings := []HeaderTiming{
		{Time: 0, Difficulty: 100},
		{Time: 100_000, Difficulty: 100},
	}
	got := TargetDifficulty(cfg, timings)
	if got != 1 {
		t.Errorf("TargetDifficulty() = %d, want 1 (floor)", got)
	}
}

func TestTargetReward_NoHalvingYet(t *testing.T) {
	cfg := BlockchainConfig{InitialMiningReward: 5000, MiningRewardHalvingInterval: 1000}
	if got := TargetReward(cfg, 1); got != 5000 {
		t.Errorf("TargetReward() = %d, want 5000", got)
	}
}

func TestTargetReward_Halves(t *testing.T) {
	cfg := BlockchainConfig{InitialMiningReward: 5000, MiningRewardHalvingInterval: 1000}
	if got := TargetReward(cfg, 1000); got != 2500 {
		t.Errorf("TargetReward() = %d, want 2500", got)
	}
	if got := TargetReward(cfg, 2500); got != 1250 {
		t.Errorf("TargetReward() = %d, want 1250", got)
	}
}

func TestTargetReward_ZeroAfterManyHalvings(t *testing.T) {
	cfg := BlockchainConfig{InitialMiningReward: 5000, MiningRewardHalvingInterval: 1}
	if got := TargetReward(cfg, 64); got != 0 {
		t.Errorf("TargetReward() = %d, want 0", got)
	}
}

func TestTargetReward_NoHalvingConfigured(t *testing.T) {
	cfg := BlockchainConfig{InitialMiningReward: 5000}
	if got := TargetReward(cfg, 1_000_000); got != 5000 {
		t.Errorf("TargetReward() = %d, want 5000 (no halving interval set)", got)
	}
}

func TestBlockHeaderHashDifficulty_Positive(t *testing.T) {
	diff1 := new(big.Int).Lsh(big.NewInt(1), 255)

	h1 := &block.Header{Time: 1, Difficulty: 1}
	h2 := &block.Header{Time: 1, Difficulty: 1, Nonce: 1}

	d1 := BlockHeaderHashDifficulty(diff1, h1)
	d2 := BlockHeaderHashDifficulty(diff1, h2)

	if d1.Sign() <= 0 || d2.Sign() <= 0 {
		t.Fatalf("difficulty must be positive: d1=%s d2=%s", d1, d2)
	}
}

func TestBlockHeaderHashDifficulty_ZeroFieldHeader(t *testing.T) {
	diff1 := new(big.Int).Lsh(big.NewInt(1), 256)
	h := &block.Header{}

	// A header whose hash is the zero integer cannot be constructed, so the
	// zero-hash guard is not reached here. A target of 2^256 exceeds every
	// 256-bit hash, so even an all-zero-field header yields at least 1.
	if got := BlockHeaderHashDifficulty(diff1, h); got.Sign() <= 0 {
		t.Errorf("BlockHeaderHashDifficulty() = %s, want positive", got)
	}
}

func TestDifficultyType(t *testing.T) {
	var d types.Difficulty = 7
	cfg := BlockchainConfig{InitialDifficulty: d}
	if TargetDifficulty(cfg, nil) != 7 {
		t.Error("InitialDifficulty should round-trip through TargetDifficulty")
	}
}
