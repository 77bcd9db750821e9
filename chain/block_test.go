// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.

package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/klaytn/maxcutchain/common"
	"github.com/klaytn/maxcutchain/crypto"
)

func signedTx(t *testing.T, amount float64) *Transaction {
	t.Helper()
	wallet, err := crypto.GenerateWallet()
	require.NoError(t, err)
	tx := NewTransaction(wallet.Address(), "recipient", amount, nil)
	require.NoError(t, tx.Sign(wallet))
	return tx
}

func TestGenesisBlockHashIsDeterministic(t *testing.T) {
	a := NewGenesisBlock(ModeClassic, 0, 0, 0)
	b := NewGenesisBlock(ModeClassic, 0, 0, 0)
	require.Equal(t, a.Hash, b.Hash)
	require.Equal(t, "none", a.MinedBy)
	require.True(t, a.PreviousHash.IsZero())
}

func TestClassicBlockHashChangesWithNonce(t *testing.T) {
	genesis := NewGenesisBlock(ModeClassic, 0, 0, 0)
	b := &Block{
		Index:        1,
		Timestamp:    1000,
		PreviousHash: genesis.Hash,
		MinedBy:      "node-a",
		Transactions: []*Transaction{signedTx(t, 1)},
		Mode:         ModeClassic,
	}
	h0 := b.ComputeFinalHash()
	b.Nonce = 1
	h1 := b.ComputeFinalHash()
	require.NotEqual(t, h0, h1)
}

func TestGraphBlockHashUsesTransactionsHashNotFullList(t *testing.T) {
	genesis := NewGenesisBlock(ModeGraph, 8, 0.5, 0.5)
	tx := signedTx(t, 1)
	b := &Block{
		Index:        1,
		Timestamp:    1000,
		PreviousHash: genesis.Hash,
		MinedBy:      "node-a",
		Transactions: []*Transaction{tx},
		Mode:         ModeGraph,
		GraphN:       8,
		GraphP:       0.5,
		DifficultyRatio: 0.5,
		Partition:    make([]byte, 8),
	}
	b.RecomputeTransactionsHash()
	h0 := b.ComputeFinalHash()

	// A separately constructed but content-identical transaction slice
	// must yield the same block hash, since the final-hash preimage
	// commits to transactions_hash rather than the list itself.
	b2 := *b
	b2.Transactions = []*Transaction{{
		Sender: tx.Sender, Recipient: tx.Recipient, Amount: tx.Amount,
		Inputs: tx.Inputs, Timestamp: tx.Timestamp, Signature: tx.Signature,
	}}
	b2.RecomputeTransactionsHash()
	h1 := b2.ComputeFinalHash()
	require.Equal(t, h0, h1)
}

func TestSatisfiesClassicPoW(t *testing.T) {
	zero := common.Hash{0x00, 0x00, 0xab}
	require.True(t, SatisfiesClassicPoW(zero, 2))
	require.False(t, SatisfiesClassicPoW(zero, 5))
	require.True(t, SatisfiesClassicPoW(zero, 0))
}
