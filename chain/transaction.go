// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package chain

import (
	"time"

	"github.com/klaytn/maxcutchain/common"
	"github.com/klaytn/maxcutchain/crypto"
)

// Transaction is a value object addressed by the hash of its immutable
// fields (sender, recipient, amount, inputs, timestamp); the signature is
// excluded from the hash so that signing never changes a transaction's
// identity.
type Transaction struct {
	Sender    string   `json:"sender"`
	Recipient string   `json:"recipient"`
	Amount    float64  `json:"amount"`
	Inputs    []string `json:"inputs"`
	Timestamp int64    `json:"timestamp"`
	Signature string   `json:"signature,omitempty"`
}

// ErrWrongSigner is returned by Sign when the supplied wallet does not own
// the transaction's declared sender address.
var ErrWrongSigner = errWrongSigner{}

type errWrongSigner struct{}

func (errWrongSigner) Error() string { return "wallet address does not match transaction sender" }

// NewTransaction builds an unsigned transaction with the creation timestamp
// stamped now; inputs is copied defensively (opaque, not interpreted here).
func NewTransaction(sender, recipient string, amount float64, inputs []string) *Transaction {
	cp := make([]string, len(inputs))
	copy(cp, inputs)
	return &Transaction{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Inputs:    cp,
		Timestamp: time.Now().Unix(),
	}
}

// Hash is a pure function of (sender, recipient, amount, inputs, timestamp).
// The signature is deliberately excluded.
func (tx *Transaction) Hash() common.Hash {
	fields := map[string]interface{}{
		"sender":    tx.Sender,
		"recipient": tx.Recipient,
		"amount":    tx.Amount,
		"inputs":    tx.Inputs,
		"timestamp": tx.Timestamp,
	}
	body, err := common.CanonicalJSON(fields)
	if err != nil {
		// fields above are all JSON-trivial (string/float/slice/int); a
		// marshal failure here would indicate a programming error, not a
		// recoverable runtime condition.
		panic(err)
	}
	return common.Sum256("maxcutchain.transaction", body)
}

// Sign signs the transaction's hash with wallet, refusing to proceed if the
// wallet does not own the declared sender address.
func (tx *Transaction) Sign(wallet *crypto.Wallet) error {
	if wallet.Address() != tx.Sender {
		return ErrWrongSigner
	}
	tx.Signature = wallet.Sign(tx.Hash())
	return nil
}

// IsValid reports whether the transaction carries a signature that verifies
// against its declared sender over its own hash. Unsigned transactions are
// always invalid.
func (tx *Transaction) IsValid() bool {
	if tx.Signature == "" {
		return false
	}
	return crypto.Verify(tx.Sender, tx.Signature, tx.Hash())
}
