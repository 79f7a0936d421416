// Command chaincore-demo builds a genesis chain, verifies it, and mines a
// handful of blocks on top of it using a trivial single-threaded nonce
// search. It exists to exercise internal/chain, internal/validate,
// internal/utxo, pkg/block, pkg/tx, pkg/crypto, and pkg/keys end to end;
// it is not a production miner or node.
package main

import (
	"math/big"
	"time"

	"github.com/klingnet-labs/chaincore/config"
	"github.com/klingnet-labs/chaincore/internal/chain"
	klog "github.com/klingnet-labs/chaincore/internal/log"
	"github.com/klingnet-labs/chaincore/pkg/block"
	"github.com/klingnet-labs/chaincore/pkg/crypto"
	"github.com/klingnet-labs/chaincore/pkg/keys"
	"github.com/klingnet-labs/chaincore/pkg/tx"
)

const (
	numBlocks    = 5
	maxNonceTry  = 5_000_000
	blockSpacing = 1
)

func main() {
	klog.Init("info", false)
	logger := klog.Demo

	logger.Info().Msg("chaincore demo starting")

	mnemonic, err := keys.GenerateMnemonic()
	if err != nil {
		logger.Fatal().Err(err).Msg("generate demo mnemonic")
	}
	seed, err := keys.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		logger.Fatal().Err(err).Msg("derive demo seed")
	}
	master, err := keys.NewMasterKey(seed)
	if err != nil {
		logger.Fatal().Err(err).Msg("derive demo master key")
	}
	minerKey, err := master.DeriveAddress(0, keys.ChangeExternal, 0)
	if err != nil {
		logger.Fatal().Err(err).Msg("derive demo miner key")
	}
	signer, err := minerKey.Signer()
	if err != nil {
		logger.Fatal().Err(err).Msg("derive demo signer")
	}

	cfg := config.BlockchainConfig{
		InitialDifficulty:               1,
		Difficulty1Target:               new(big.Int).Lsh(big.NewInt(1), 240),
		TargetSecondsPerBlock:           1,
		DifficultyRecalculationInterval: 4,
		InitialMiningReward:             5_000_000_000,
		MiningRewardHalvingInterval:     210_000,
	}

	genesisCoinbase := coinbaseFor(cfg, 1, signer)
	genesis := mineBlock(cfg, &block.Header{
		CoinbaseTransactionHash: genesisCoinbase.Hash(),
		TransactionHashTreeRoot: block.TransactionHashTreeRoot(nil),
		Time:                    uint64(time.Now().Unix()),
		Difficulty:              cfg.InitialDifficulty,
	}, genesisCoinbase, nil)

	unverified := chain.New(cfg, &chain.Node{Block: genesis})
	verified, err := chain.Verify(unverified)
	if err != nil {
		logger.Fatal().Err(err).Msg("verify genesis")
	}
	logger.Info().Str("genesisHash", verified.Root.Block.Header.Hash().String()).Msg("genesis verified")

	tip := genesis
	for height := uint64(2); height <= numBlocks+1; height++ {
		coinbase := coinbaseFor(cfg, height, signer)
		header := &block.Header{
			PrevBlockHeaderHash:     tip.Header.Hash(),
			CoinbaseTransactionHash: coinbase.Hash(),
			TransactionHashTreeRoot: block.TransactionHashTreeRoot(nil),
			Time:                    tip.Header.Time + blockSpacing,
			Difficulty:              cfg.InitialDifficulty,
		}
		next := mineBlock(cfg, header, coinbase, nil)

		verified, err = chain.AddBlock(verified, next)
		if err != nil {
			logger.Fatal().Err(err).Uint64("height", height).Msg("add mined block")
		}
		tip = next

		logger.Info().
			Uint64("height", height).
			Str("hash", next.Header.Hash().String()).
			Msg("block added")
	}

	balances := chain.AddressValues(verified)
	logger.Info().
		Uint64("balance", balances[signer.PublicKey()]).
		Int("chainLength", len(chain.LongestChain(verified))).
		Msg("demo complete")
}

func coinbaseFor(cfg config.BlockchainConfig, height uint64, signer *crypto.PrivateKey) tx.CoinbaseTransaction {
	return tx.CoinbaseTransaction{
		Outs: []tx.Output{{Value: config.TargetReward(cfg, height), SignaturePubKey: signer.PublicKey()}},
	}
}

// mineBlock performs a trivial single-threaded nonce search, grounded in
// the teacher's single-thread PoW.Seal loop but without its goroutine
// pool or cancellation plumbing: this demo never needs to stop mining
// early.
func mineBlock(cfg config.BlockchainConfig, header *block.Header, coinbase tx.CoinbaseTransaction, txs []*tx.Transaction) *block.Block {
	for nonce := uint64(0); nonce < maxNonceTry; nonce++ {
		header.Nonce = nonce
		work := config.BlockHeaderHashDifficulty(cfg.Difficulty1Target, header)
		if work.Cmp(new(big.Int).SetUint64(header.Difficulty)) >= 0 {
			return block.New(header, coinbase, txs)
		}
	}
	panic("chaincore-demo: exhausted nonce search budget")
}
