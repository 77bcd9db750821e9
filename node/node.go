// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package node implements the concurrent state machine that owns a chain
// replica and mempool, ingests gossip messages, validates incoming
// blocks, runs a cancellable mining worker, and rebroadcasts accepted
// artifacts. Its dispatcher/mailbox/lock-ordering shape is grounded in
// klaytn's work.worker: a single coordinating loop driven by channel
// receives and atomic mining-state flags, with miner goroutines
// communicating results back through a channel rather than shared state.
package node

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/klaytn/maxcutchain/chain"
	"github.com/klaytn/maxcutchain/crypto"
	"github.com/klaytn/maxcutchain/log"
	"github.com/klaytn/maxcutchain/mempool"
	"github.com/klaytn/maxcutchain/metrics"
	"github.com/klaytn/maxcutchain/solver"
)

var logger = log.NewModuleLogger(log.Node)

// dispatcherSleepMinMS/MaxMS bound the dispatcher's randomised throttle
// between iterations.
const (
	dispatcherSleepMinMS = 100
	dispatcherSleepMaxMS = 500

	publishWaitAttempts = 20
	publishWaitInterval = 100 * time.Millisecond

	classicCheckIntervalBase = 10000

	// classicPauseDuration is the fixed per-checkpoint throttle a slow
	// (mining_speed < 1) classic miner sleeps. Kept constant rather than
	// scaled by mining_speed: check_interval alone controls how often a
	// slow miner checkpoints, this only controls how long it idles once
	// it gets there, per spec's split of the two concerns.
	classicPauseDuration = 5 * time.Millisecond
)

// Config carries the per-node parameters the dispatcher and miner
// consult: action-selection probabilities and the mining-speed knob used
// to model both honest nodes and an attacker with disproportionate
// hashrate.
type Config struct {
	PTx         float64
	PMine       float64
	MiningSpeed float64
}

// Node is one participant in the simulation: it owns a chain replica, a
// mempool, a wallet identity and a directory of peer mailbox handles.
type Node struct {
	id     string
	wallet *crypto.Wallet
	cfg    Config
	solver solver.MaxCutSolver

	inbox *Mailbox

	dataMu   sync.Mutex
	chain    *chain.Chain
	mempool  *mempool.Mempool
	peers    map[string]*Mailbox
	isMining bool
	minerCancel chan struct{}

	validating int32 // atomic flag read by the publish-wait barrier

	stopSignal chan struct{}
	stopped    chan struct{}
}

// New constructs a node. mining_speed scales the classic miner's
// checkpoint interval; the dispatcher action rates are PTx and PMine as
// given.
func New(id string, replica *chain.Chain, cfg Config, mcSolver solver.MaxCutSolver) (*Node, error) {
	wallet, err := crypto.GenerateWallet()
	if err != nil {
		return nil, err
	}
	return &Node{
		id:         id,
		wallet:     wallet,
		cfg:        cfg,
		solver:     mcSolver,
		inbox:      NewMailbox(),
		chain:      replica,
		mempool:    mempool.New(replica.Tip().Hash),
		peers:      make(map[string]*Mailbox),
		stopSignal: make(chan struct{}),
		stopped:    make(chan struct{}),
	}, nil
}

// Address exposes the node's wallet address, used as sender/miner
// identity throughout the system.
func (n *Node) Address() string { return n.wallet.Address() }

// ID returns the node's simulation identifier (distinct from its wallet
// address, which peers never need to know in advance).
func (n *Node) ID() string { return n.id }

// Inbox returns this node's mailbox handle, the only thing a peer is
// allowed to hold a reference to.
func (n *Node) Inbox() *Mailbox { return n.inbox }

// Chain exposes the node's chain replica for inspection (harness reporting
// only; the node itself is the sole mutator).
func (n *Node) Chain() *chain.Chain { return n.chain }

// AddPeer registers other's mailbox under its id. Self-registration is
// rejected; re-registering an id replaces its mailbox handle, so repeating
// the same registration changes nothing.
func (n *Node) AddPeer(id string, mailbox *Mailbox) {
	if id == n.id {
		return
	}
	n.dataMu.Lock()
	defer n.dataMu.Unlock()
	n.peers[id] = mailbox
}

func (n *Node) broadcast(msg Message) {
	n.dataMu.Lock()
	peers := make([]*Mailbox, 0, len(n.peers))
	for _, m := range n.peers {
		peers = append(peers, m)
	}
	n.dataMu.Unlock()

	for _, m := range peers {
		if !m.TrySend(msg) {
			logger.Warn("dropped outbound message: peer mailbox full", "node", n.id)
		}
	}
}

// Start launches the dispatcher goroutine.
func (n *Node) Start() {
	go n.dispatch()
}

// Stop signals the dispatcher to exit at its next iteration.
func (n *Node) Stop() {
	close(n.stopSignal)
}

// Wait blocks until the dispatcher loop has actually exited.
func (n *Node) Wait() {
	<-n.stopped
}

func (n *Node) dispatch() {
	defer close(n.stopped)
	for {
		select {
		case <-n.stopSignal:
			return
		default:
		}

		if msg, ok := n.inbox.Poll(); ok {
			n.route(msg)
		} else {
			n.maybeAct()
		}

		sleepMS := dispatcherSleepMinMS + rand.Intn(dispatcherSleepMaxMS-dispatcherSleepMinMS+1)
		select {
		case <-n.stopSignal:
			return
		case <-time.After(time.Duration(sleepMS) * time.Millisecond):
		}
	}
}

func (n *Node) route(msg Message) {
	switch m := msg.(type) {
	case TransactionMsg:
		n.handleTransaction(m.Tx)
	case BlockMsg:
		n.handleBlock(m.Block)
	case MinedBlockMsg:
		n.handleBlock(m.Block)
	}
}

// maybeAct is the dispatcher's "mailbox empty" branch: draw a uniform
// action and either gossip a fresh transaction or try to start mining.
func (n *Node) maybeAct() {
	u := rand.Float64()
	switch {
	case u < n.cfg.PTx:
		n.generateAndBroadcastTransaction()
	case u < n.cfg.PTx+n.cfg.PMine:
		n.tryStartMining()
	}
}

// generateAndBroadcastTransaction fabricates a transaction from this
// node's own wallet and feeds it through the ordinary transaction
// handler, exercising the exact same admit/broadcast path a gossiped
// transaction would.
func (n *Node) generateAndBroadcastTransaction() {
	tx := chain.NewTransaction(n.Address(), n.id, 1, nil)
	if err := tx.Sign(n.wallet); err != nil {
		logger.Error("failed to sign generated transaction", "node", n.id, "err", err)
		return
	}
	n.handleTransaction(tx)
}

// handleTransaction implements the dedup/validate/admit/broadcast steps
// under the data-lock, matching the fixed acquire-then-release shape.
func (n *Node) handleTransaction(tx *chain.Transaction) {
	n.dataMu.Lock()
	h := tx.Hash()
	if n.mempool.KnownTx(h) {
		n.dataMu.Unlock()
		return
	}
	broadcast := false
	if tx.IsValid() {
		n.mempool.Admit(tx)
		metrics.TxAdmitted.Inc(1)
		metrics.MempoolDepth.Update(int64(n.mempool.Len()))
		broadcast = true
	} else {
		metrics.TxRejected.Inc(1)
	}
	n.dataMu.Unlock()

	if broadcast {
		n.broadcast(TransactionMsg{Tx: tx})
	}
}

// handleBlock performs the fail-fast, never-mutate-until-all-checks-pass
// validation sequence. Hashing, puzzle validation and signature checks all
// run outside the data-lock; apart from the opening known-hash dedup, only
// the final re-check-and-commit step
// (condition 3's tip may have advanced since the snapshot) takes the lock,
// which is then held across chain.AddBlock to preserve the fixed
// data-lock -> chain-lock ordering.
func (n *Node) handleBlock(block *chain.Block) {
	atomic.StoreInt32(&n.validating, 1)
	defer atomic.StoreInt32(&n.validating, 0)

	h := block.Hash
	n.dataMu.Lock()
	if n.mempool.KnownBlock(h) {
		n.dataMu.Unlock()
		return
	}
	n.mempool.MarkBlockKnown(h)
	n.dataMu.Unlock()

	tip := n.chain.Tip()
	if block.Index != tip.Index+1 || block.PreviousHash != tip.Hash {
		metrics.BlocksRejected.Inc(1)
		return
	}
	if !n.chain.SatisfiesPuzzle(block) {
		metrics.BlocksRejected.Inc(1)
		return
	}
	if block.ComputeFinalHash() != block.Hash {
		metrics.BlocksRejected.Inc(1)
		return
	}
	for _, tx := range block.Transactions {
		if !tx.IsValid() {
			metrics.BlocksRejected.Inc(1)
			return
		}
	}

	n.dataMu.Lock()
	accepted := n.chain.AddBlock(block)
	if accepted {
		n.mempool.Remove(block.Transactions)
		metrics.MempoolDepth.Update(int64(n.mempool.Len()))
		n.cancelMiningLocked()
	}
	n.dataMu.Unlock()

	if accepted {
		metrics.BlocksAccepted.Inc(1)
		n.broadcast(BlockMsg{Block: block})
	} else {
		metrics.BlocksRejected.Inc(1)
	}
}

// cancelMiningLocked closes the current mining task's cancellation
// channel, if one is running. Must be called with dataMu held.
func (n *Node) cancelMiningLocked() {
	if n.isMining && n.minerCancel != nil {
		close(n.minerCancel)
		n.minerCancel = nil
		n.isMining = false
	}
}

// tryStartMining is the mining scheduler: reject if already mining or the
// mempool is empty, otherwise snapshot the pool and spawn a worker.
func (n *Node) tryStartMining() {
	n.dataMu.Lock()
	if n.isMining || n.mempool.Len() == 0 {
		n.dataMu.Unlock()
		return
	}
	txs := n.mempool.Pending()
	cancel := make(chan struct{})
	n.isMining = true
	n.minerCancel = cancel
	n.dataMu.Unlock()

	metrics.MiningAttempts.Inc(1)
	tip := n.chain.Tip()
	params := n.chain.Params()

	switch params.Mode {
	case chain.ModeGraph:
		go n.mineGraph(tip, txs, cancel, params)
	default:
		go n.mineClassic(tip, txs, cancel, params)
	}
}

// publishWaitBarrier delays publication of a locally mined block while
// the dispatcher is concurrently inside handleBlock for a just-arrived
// competing block, up to publishWaitAttempts * publishWaitInterval.
func (n *Node) publishWaitBarrier() {
	for i := 0; i < publishWaitAttempts; i++ {
		if atomic.LoadInt32(&n.validating) == 0 {
			return
		}
		time.Sleep(publishWaitInterval)
	}
}
