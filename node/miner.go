// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package node

import (
	"time"

	"github.com/klaytn/maxcutchain/chain"
)

// releaseMiningSlot clears is_mining if cancel is still the active task's
// cancellation channel — a stale goroutine whose task was already
// cancelled (and possibly replaced) must not clobber a newer task's
// state.
func (n *Node) releaseMiningSlot(cancel chan struct{}) {
	n.dataMu.Lock()
	defer n.dataMu.Unlock()
	if n.minerCancel == cancel {
		n.isMining = false
		n.minerCancel = nil
	}
}

// mineClassic iterates nonces until the hash satisfies the leading-zero
// target, checking the global stop signal and the per-task cancellation
// every check_interval iterations, scaled by mining_speed.
func (n *Node) mineClassic(tip *chain.Block, txs []*chain.Transaction, cancel chan struct{}, params chain.Params) {
	defer n.releaseMiningSlot(cancel)

	checkInterval := int(classicCheckIntervalBase * n.cfg.MiningSpeed)
	if checkInterval < 1 {
		checkInterval = 1
	}

	candidate := &chain.Block{
		Index:        tip.Index + 1,
		Timestamp:    time.Now().Unix(),
		PreviousHash: tip.Hash,
		MinedBy:      n.id,
		Transactions: txs,
		Mode:         chain.ModeClassic,
		Difficulty:   params.Difficulty,
	}

	for nonce := uint64(0); ; nonce++ {
		candidate.Nonce = nonce
		h := candidate.ComputeFinalHash()
		if chain.SatisfiesClassicPoW(h, params.Difficulty) {
			candidate.Hash = h
			if !n.inbox.TrySend(MinedBlockMsg{Block: candidate}) {
				logger.Warn("dropped self-mined block: inbox full", "node", n.id)
			}
			return
		}

		if int(nonce)%checkInterval == 0 {
			select {
			case <-n.stopSignal:
				return
			case <-cancel:
				return
			default:
			}
			if n.cfg.MiningSpeed < 1 {
				time.Sleep(classicPauseDuration)
			}
		}
	}
}

// mineGraph derives the puzzle graph for a witness-free candidate, hands
// it to the configured solver, and on success runs the publish-wait
// barrier before enqueueing the result.
func (n *Node) mineGraph(tip *chain.Block, txs []*chain.Transaction, cancel chan struct{}, params chain.Params) {
	defer n.releaseMiningSlot(cancel)

	candidate := &chain.Block{
		Index:           tip.Index + 1,
		Timestamp:       time.Now().Unix(),
		PreviousHash:    tip.Hash,
		MinedBy:         n.id,
		Transactions:    txs,
		Mode:            chain.ModeGraph,
		GraphN:          params.GraphN,
		GraphP:          params.GraphP,
		DifficultyRatio: params.DifficultyRatio,
	}
	candidate.RecomputeTransactionsHash()

	g := chain.GenerateGraph(candidate.PreviousHash, candidate.TransactionsHash, params.GraphN, params.GraphP)
	target := chain.TargetCut(g, params.DifficultyRatio)

	partition, ok := n.solver.Solve(g, target, cancel, n.id)
	if !ok {
		// SolverFailure: the miner exits without publishing.
		return
	}

	candidate.Partition = partition
	candidate.Hash = candidate.ComputeFinalHash()

	select {
	case <-cancel:
		return
	default:
	}

	n.publishWaitBarrier()

	if !n.inbox.TrySend(MinedBlockMsg{Block: candidate}) {
		logger.Warn("dropped self-mined block: inbox full", "node", n.id)
	}
}
