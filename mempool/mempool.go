// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package mempool tracks a node's pending transaction pool and the
// known-hash sets used to decide whether an inbound gossip item has
// already been seen. Membership is tracked with gopkg.in/fatih/set.v0,
// the same set package klaytn's work.Task uses for its ancestor/family/
// uncle bookkeeping.
package mempool

import (
	"gopkg.in/fatih/set.v0"

	"github.com/klaytn/maxcutchain/chain"
	"github.com/klaytn/maxcutchain/common"
)

// Mempool holds unconfirmed transactions plus the known-hash sets that
// gate rebroadcast. It is not safe for concurrent use on its own; the
// node engine serialises access to it under its data-lock.
type Mempool struct {
	txs []*chain.Transaction

	knownTx    *set.Set
	knownBlock *set.Set
}

// New builds an empty mempool whose known-sets are seeded with
// genesisHash, per the chain replica's genesis bootstrapping rule.
func New(genesisHash common.Hash) *Mempool {
	m := &Mempool{
		txs:        nil,
		knownTx:    set.New(),
		knownBlock: set.New(),
	}
	m.knownBlock.Add(genesisHash.Hex())
	return m
}

// Admit appends tx to the pool and records its hash as known. It does not
// validate tx; callers run Transaction.IsValid first.
func (m *Mempool) Admit(tx *chain.Transaction) {
	m.txs = append(m.txs, tx)
	m.knownTx.Add(tx.Hash().Hex())
}

// KnownTx reports whether hash has already been admitted or rebroadcast.
func (m *Mempool) KnownTx(hash common.Hash) bool {
	return m.knownTx.Has(hash.Hex())
}

// MarkBlockKnown records hash as a seen block, independent of whether it
// was ultimately accepted onto the chain — known_block_hashes tracks
// gossip dedup, not chain membership.
func (m *Mempool) MarkBlockKnown(hash common.Hash) {
	m.knownBlock.Add(hash.Hex())
}

// KnownBlock reports whether hash has already been seen.
func (m *Mempool) KnownBlock(hash common.Hash) bool {
	return m.knownBlock.Has(hash.Hex())
}

// Pending returns a defensive copy of the pool, in admission order.
func (m *Mempool) Pending() []*chain.Transaction {
	out := make([]*chain.Transaction, len(m.txs))
	copy(out, m.txs)
	return out
}

// Len reports the number of pending transactions.
func (m *Mempool) Len() int { return len(m.txs) }

// Remove drops every transaction in mined from the pool, by hash.
func (m *Mempool) Remove(mined []*chain.Transaction) {
	if len(mined) == 0 {
		return
	}
	minedHashes := make(map[common.Hash]bool, len(mined))
	for _, tx := range mined {
		minedHashes[tx.Hash()] = true
	}
	kept := m.txs[:0]
	for _, tx := range m.txs {
		if !minedHashes[tx.Hash()] {
			kept = append(kept, tx)
		}
	}
	m.txs = kept
}
