// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.

package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/klaytn/maxcutchain/crypto"
)

func TestTransactionHashExcludesSignature(t *testing.T) {
	wallet, err := crypto.GenerateWallet()
	require.NoError(t, err)

	tx := NewTransaction(wallet.Address(), "recipient", 1.5, []string{"utxo-1"})
	before := tx.Hash()

	require.NoError(t, tx.Sign(wallet))
	require.Equal(t, before, tx.Hash(), "signing must not change the transaction's hash")
}

func TestTransactionHashDeterministic(t *testing.T) {
	wallet, err := crypto.GenerateWallet()
	require.NoError(t, err)

	tx1 := NewTransaction(wallet.Address(), "recipient", 1.5, []string{"utxo-1"})
	tx2 := &Transaction{
		Sender:    tx1.Sender,
		Recipient: tx1.Recipient,
		Amount:    tx1.Amount,
		Inputs:    tx1.Inputs,
		Timestamp: tx1.Timestamp,
	}
	require.Equal(t, tx1.Hash(), tx2.Hash())
}

func TestSignRejectsWrongWallet(t *testing.T) {
	owner, err := crypto.GenerateWallet()
	require.NoError(t, err)
	impostor, err := crypto.GenerateWallet()
	require.NoError(t, err)

	tx := NewTransaction(owner.Address(), "recipient", 1, nil)
	require.ErrorIs(t, tx.Sign(impostor), ErrWrongSigner)
}

func TestIsValidRequiresSignature(t *testing.T) {
	wallet, err := crypto.GenerateWallet()
	require.NoError(t, err)

	tx := NewTransaction(wallet.Address(), "recipient", 1, nil)
	require.False(t, tx.IsValid(), "unsigned transaction must not validate")

	require.NoError(t, tx.Sign(wallet))
	require.True(t, tx.IsValid())
}

func TestIsValidRejectsTamperedAmount(t *testing.T) {
	wallet, err := crypto.GenerateWallet()
	require.NoError(t, err)

	tx := NewTransaction(wallet.Address(), "recipient", 1, nil)
	require.NoError(t, tx.Sign(wallet))

	tx.Amount = 1000
	require.False(t, tx.IsValid(), "tampering after signing must invalidate the transaction")
}
