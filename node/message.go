// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package node

import "github.com/klaytn/maxcutchain/chain"

// Message is the tagged union a node's inbound mailbox carries.
type Message interface {
	isMessage()
}

// TransactionMsg carries a gossiped or locally generated transaction.
type TransactionMsg struct {
	Tx *chain.Transaction
}

// BlockMsg carries a block received from a peer.
type BlockMsg struct {
	Block *chain.Block
}

// MinedBlockMsg carries a block this node's own miner just produced. It is
// routed through the same handler as BlockMsg, so a locally mined block is
// validated exactly like one received over gossip.
type MinedBlockMsg struct {
	Block *chain.Block
}

func (TransactionMsg) isMessage() {}
func (BlockMsg) isMessage()       {}
func (MinedBlockMsg) isMessage()  {}
