// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package chain

import (
	"sync"

	"github.com/klaytn/maxcutchain/common"
	"github.com/klaytn/maxcutchain/log"
)

var logger = log.NewModuleLogger(log.Chain)

// Params fixes the puzzle parameters a Chain enforces for every block it
// accepts, for whichever mode it runs.
type Params struct {
	Mode            PuzzleMode
	Difficulty      int     // classic variant
	GraphN          int     // graph variant
	GraphP          float64 // graph variant
	DifficultyRatio float64 // graph variant
}

// Chain is a single node's local replica of the accepted block sequence.
// Block mutation goes through AddBlock under chainMu, and the pending pool
// is mutated under pendingMu; the
// node package takes chainMu only after its own data-lock, per the fixed
// lock order (data-lock before chain-lock), so add_block itself never
// needs to know about the node's lock at all.
type Chain struct {
	params Params

	chainMu sync.Mutex
	blocks  []*Block

	pendingMu sync.Mutex
	pending   []*Transaction
}

// NewChain builds a chain seeded with the genesis block for params.Mode.
func NewChain(params Params) *Chain {
	genesis := NewGenesisBlock(params.Mode, params.GraphN, params.GraphP, params.DifficultyRatio)
	return &Chain{
		params: params,
		blocks: []*Block{genesis},
	}
}

// Params returns the puzzle parameters this chain enforces.
func (c *Chain) Params() Params { return c.params }

// Tip returns the last accepted block.
func (c *Chain) Tip() *Block {
	c.chainMu.Lock()
	defer c.chainMu.Unlock()
	return c.blocks[len(c.blocks)-1]
}

// Height returns the number of blocks, including genesis.
func (c *Chain) Height() int {
	c.chainMu.Lock()
	defer c.chainMu.Unlock()
	return len(c.blocks)
}

// Blocks returns a defensive copy of the full chain, oldest first.
func (c *Chain) Blocks() []*Block {
	c.chainMu.Lock()
	defer c.chainMu.Unlock()
	out := make([]*Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// SatisfiesPuzzle checks block's witness against the chain's puzzle
// parameters, without touching chain state. It is exported so callers
// (the node engine's block handler) can run the expensive graph-PoW
// check before taking the chain lock, per the concurrency model's rule
// that graph generation and validation happen outside any lock.
func (c *Chain) SatisfiesPuzzle(block *Block) bool {
	return c.satisfiesPuzzle(block)
}

// satisfiesPuzzle checks block's witness against c.params, without
// touching chain state — callers already hold whatever lock they need.
func (c *Chain) satisfiesPuzzle(block *Block) bool {
	switch c.params.Mode {
	case ModeGraph:
		g := GenerateGraph(block.PreviousHash, block.TransactionsHash, c.params.GraphN, c.params.GraphP)
		return ValidateGraphPoW(g, block.Partition, c.params.DifficultyRatio)
	default:
		return SatisfiesClassicPoW(block.Hash, c.params.Difficulty)
	}
}

// AddBlock validates block against the five acceptance conditions and, on
// success, appends it and drops its transactions from pending. It returns
// false on any validation failure without mutating the chain.
func (c *Chain) AddBlock(block *Block) bool {
	c.chainMu.Lock()
	defer c.chainMu.Unlock()

	tip := c.blocks[len(c.blocks)-1]

	if block.Index != tip.Index+1 {
		logger.Debug("block rejected: wrong index", "got", block.Index, "want", tip.Index+1)
		return false
	}
	if block.PreviousHash != tip.Hash {
		logger.Debug("block rejected: previous_hash mismatch", "block", block.Index)
		return false
	}
	if block.ComputeFinalHash() != block.Hash {
		logger.Debug("block rejected: hash self-consistency failed", "block", block.Index)
		return false
	}
	if !c.satisfiesPuzzle(block) {
		logger.Debug("block rejected: puzzle predicate failed", "block", block.Index)
		return false
	}
	for _, tx := range block.Transactions {
		if !tx.IsValid() {
			logger.Debug("block rejected: invalid transaction", "block", block.Index)
			return false
		}
	}

	c.blocks = append(c.blocks, block)
	c.dropTransactions(block.Transactions)
	logger.Info("block accepted", "index", block.Index, "hash", block.Hash.Hex(), "miner", block.MinedBy)
	return true
}

// AddTransaction pushes tx onto pending unconditionally; upstream callers
// (the node's transaction handler) are responsible for validating it
// first.
func (c *Chain) AddTransaction(tx *Transaction) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	c.pending = append(c.pending, tx)
}

// Pending returns a defensive copy of the pending transaction pool.
func (c *Chain) Pending() []*Transaction {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	out := make([]*Transaction, len(c.pending))
	copy(out, c.pending)
	return out
}

func (c *Chain) dropTransactions(mined []*Transaction) {
	if len(mined) == 0 {
		return
	}
	minedHashes := make(map[common.Hash]bool, len(mined))
	for _, tx := range mined {
		minedHashes[tx.Hash()] = true
	}
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	kept := c.pending[:0]
	for _, tx := range c.pending {
		if !minedHashes[tx.Hash()] {
			kept = append(kept, tx)
		}
	}
	c.pending = kept
}

// Validate walks the whole chain from genesis, fully revalidating linkage,
// puzzle, hash self-consistency and transaction signatures at every block,
// uniformly across both puzzle modes. Genesis is accepted by construction:
// only its hash self-consistency is checked, not its link, puzzle or
// transactions.
func (c *Chain) Validate() bool {
	c.chainMu.Lock()
	defer c.chainMu.Unlock()

	for i, block := range c.blocks {
		if block.ComputeFinalHash() != block.Hash {
			return false
		}
		if i == 0 {
			continue
		}
		prev := c.blocks[i-1]
		if block.Index != prev.Index+1 {
			return false
		}
		if block.PreviousHash != prev.Hash {
			return false
		}
		if !c.satisfiesPuzzle(block) {
			return false
		}
		for _, tx := range block.Transactions {
			if !tx.IsValid() {
				return false
			}
		}
	}
	return true
}
