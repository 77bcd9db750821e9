// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package crypto provides wallet key generation, signing and verification
// as a self-contained capability: GenerateWallet, Wallet.Address/Sign and a
// package-level Verify(address, signature, message). ECDSA over secp256k1
// is provided by github.com/decred/dcrd/dcrec/secp256k1/v4, the same curve
// library equa-blockchain-core's consensus/equa package builds on.
package crypto

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"
)

// Wallet owns a secp256k1 keypair and exposes it as the opaque signing
// capability consumed by chain.Transaction.
type Wallet struct {
	priv *secp256k1.PrivateKey
}

// GenerateWallet creates a fresh keypair.
func GenerateWallet() (*Wallet, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generating wallet key")
	}
	return &Wallet{priv: priv}, nil
}

// Address returns the hex-encoded compressed public key, used throughout
// this tree as sender/recipient/miner identity.
func (w *Wallet) Address() string {
	return hex.EncodeToString(w.priv.PubKey().SerializeCompressed())
}

// Sign signs the 32-byte digest with this wallet's private key and returns
// a hex-encoded DER signature.
func (w *Wallet) Sign(digest [32]byte) string {
	sig := ecdsa.Sign(w.priv, digest[:])
	return hex.EncodeToString(sig.Serialize())
}

// Verify checks a hex signature against a hex address (compressed pubkey)
// over a digest. Any malformed input yields false rather than an error,
// matching spec.md's "false on any verification error" invariant.
func Verify(addressHex, signatureHex string, digest [32]byte) bool {
	pubBytes, err := hex.DecodeString(addressHex)
	if err != nil {
		return false
	}
	pub, err := secp256k1.ParsePubKey(pubBytes)
	if err != nil {
		return false
	}
	sigBytes, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return false
	}
	return sig.Verify(digest[:], pub)
}
