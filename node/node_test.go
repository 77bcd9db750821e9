// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.

package node

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/klaytn/maxcutchain/chain"
	"github.com/klaytn/maxcutchain/solver"
)

func newTestNode(t *testing.T, id string, params chain.Params) *Node {
	t.Helper()
	replica := chain.NewChain(params)
	cfg := Config{PTx: 0, PMine: 0, MiningSpeed: 1.0}
	n, err := New(id, replica, cfg, solver.NewLocalSearchSolver(20*time.Millisecond, 100*time.Millisecond))
	require.NoError(t, err)
	return n
}

func TestAddPeerRejectsSelf(t *testing.T) {
	n := newTestNode(t, "a", chain.Params{Mode: chain.ModeClassic})
	n.AddPeer("a", NewMailbox())
	n.dataMu.Lock()
	defer n.dataMu.Unlock()
	require.Empty(t, n.peers)
}

func TestHandleTransactionAdmitsAndBroadcastsOnce(t *testing.T) {
	a := newTestNode(t, "a", chain.Params{Mode: chain.ModeClassic})
	b := newTestNode(t, "b", chain.Params{Mode: chain.ModeClassic})
	a.AddPeer("b", b.Inbox())

	tx := chain.NewTransaction(a.Address(), "recipient", 1, nil)
	require.NoError(t, tx.Sign(a.wallet))

	a.handleTransaction(tx)
	_, ok := b.Inbox().Poll()
	require.True(t, ok, "peer should have received the gossiped transaction")

	// Re-delivering the same transaction must be a no-op (known_tx_hashes dedup).
	a.handleTransaction(tx)
	_, ok = b.Inbox().Poll()
	require.False(t, ok)
}

func TestHandleBlockRejectsWrongLinkage(t *testing.T) {
	n := newTestNode(t, "a", chain.Params{Mode: chain.ModeClassic, Difficulty: 0})
	bogus := &chain.Block{Index: 5, Mode: chain.ModeClassic}
	bogus.Hash = bogus.ComputeFinalHash()
	n.handleBlock(bogus)
	require.Equal(t, 1, n.chain.Height())
}

func TestHandleBlockAcceptsValidBlockAndCancelsMining(t *testing.T) {
	n := newTestNode(t, "a", chain.Params{Mode: chain.ModeClassic, Difficulty: 0})
	tip := n.chain.Tip()

	n.dataMu.Lock()
	n.isMining = true
	n.minerCancel = make(chan struct{})
	cancel := n.minerCancel
	n.dataMu.Unlock()

	b := &chain.Block{
		Index:        tip.Index + 1,
		PreviousHash: tip.Hash,
		MinedBy:      "a",
		Mode:         chain.ModeClassic,
	}
	b.Hash = b.ComputeFinalHash()

	n.handleBlock(b)
	require.Equal(t, 2, n.chain.Height())

	select {
	case <-cancel:
	default:
		t.Fatal("expected mining cancellation on block acceptance")
	}
}

func TestMineClassicProducesAcceptableBlock(t *testing.T) {
	n := newTestNode(t, "a", chain.Params{Mode: chain.ModeClassic, Difficulty: 1})
	tx := chain.NewTransaction(n.Address(), "recipient", 1, nil)
	require.NoError(t, tx.Sign(n.wallet))

	n.dataMu.Lock()
	n.mempool.Admit(tx)
	n.dataMu.Unlock()

	n.tryStartMining()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for mined block")
		default:
		}
		if msg, ok := n.inbox.Poll(); ok {
			mined, ok := msg.(MinedBlockMsg)
			require.True(t, ok)
			require.True(t, n.chain.AddBlock(mined.Block))
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
}
