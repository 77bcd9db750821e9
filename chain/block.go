// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package chain

import (
	"strings"

	"github.com/klaytn/maxcutchain/common"
)

// PuzzleMode selects which proof-of-work regime a block (and the chain it
// belongs to) uses. A chain runs exactly one mode for its whole lifetime;
// the two are modelled as one Block type (à la a header carrying
// consensus-specific fields for whichever engine produced it) rather than
// two incompatible types, since everything but the witness and the final
// hash's preimage is shared.
type PuzzleMode int

const (
	ModeClassic PuzzleMode = iota
	ModeGraph
)

// Block is the content-addressed unit of the chain. Its Hash field is the
// final hash: SHA-256 over the canonical header including the puzzle
// witness. It is filled in last, after the witness, by the miner or by
// NewGenesisBlock for the genesis block.
type Block struct {
	Index        int64          `json:"index"`
	Timestamp    int64          `json:"timestamp"`
	PreviousHash common.Hash    `json:"previous_hash"`
	MinedBy      string         `json:"mined_by"`
	Transactions []*Transaction `json:"transactions"`
	Mode         PuzzleMode     `json:"-"`

	// Classic-PoW parameters and witness.
	Difficulty int    `json:"difficulty,omitempty"`
	Nonce      uint64 `json:"nonce,omitempty"`

	// Graph-PoW parameters and witness.
	GraphN          int     `json:"graph_n,omitempty"`
	GraphP          float64 `json:"graph_p,omitempty"`
	DifficultyRatio float64 `json:"difficulty_ratio,omitempty"`
	Partition       []byte  `json:"partition,omitempty"`

	// TransactionsHash is populated for graph-mode blocks only: it is the
	// value substituted for the full transaction list in the final-hash
	// preimage, so the final hash is stable against JSON representation
	// changes of Transaction (spec.md §4.2).
	TransactionsHash common.Hash `json:"transactions_hash,omitempty"`

	Hash common.Hash `json:"hash"`
}

// transactionsHash hashes the ordered transaction list as a canonical JSON
// array; it is precomputed into TransactionsHash for the graph variant. The
// classic variant's preimage carries the full list (transactionsRepr)
// instead.
func transactionsHash(txs []*Transaction) common.Hash {
	repr := make([]map[string]interface{}, len(txs))
	for i, tx := range txs {
		repr[i] = map[string]interface{}{
			"sender":    tx.Sender,
			"recipient": tx.Recipient,
			"amount":    tx.Amount,
			"inputs":    tx.Inputs,
			"timestamp": tx.Timestamp,
			"signature": tx.Signature,
		}
	}
	body, err := common.CanonicalJSON(map[string]interface{}{"transactions": repr})
	if err != nil {
		panic(err)
	}
	return common.Sum256("maxcutchain.transactions", body)
}

// RecomputeTransactionsHash fills b.TransactionsHash from b.Transactions.
// Graph-mode miners call this once, before the witness is known, since the
// graph derivation (chain/graph.go) depends on it.
func (b *Block) RecomputeTransactionsHash() {
	b.TransactionsHash = transactionsHash(b.Transactions)
}

// headerFields builds the canonicalisation map for the final hash,
// including the witness, per variant.
func (b *Block) headerFields() map[string]interface{} {
	switch b.Mode {
	case ModeGraph:
		return map[string]interface{}{
			"index":             b.Index,
			"timestamp":         b.Timestamp,
			"previous_hash":     b.PreviousHash.Hex(),
			"mined_by":          b.MinedBy,
			"transactions_hash": b.TransactionsHash.Hex(),
			"graph_n":           b.GraphN,
			"graph_p":           b.GraphP,
			"difficulty_ratio":  b.DifficultyRatio,
			"partition":         b.Partition,
		}
	default: // ModeClassic
		return map[string]interface{}{
			"index":         b.Index,
			"timestamp":     b.Timestamp,
			"previous_hash": b.PreviousHash.Hex(),
			"mined_by":      b.MinedBy,
			"transactions":  transactionsRepr(b.Transactions),
			"nonce":         b.Nonce,
		}
	}
}

func transactionsRepr(txs []*Transaction) []map[string]interface{} {
	repr := make([]map[string]interface{}, len(txs))
	for i, tx := range txs {
		repr[i] = map[string]interface{}{
			"sender":    tx.Sender,
			"recipient": tx.Recipient,
			"amount":    tx.Amount,
			"inputs":    tx.Inputs,
			"timestamp": tx.Timestamp,
			"signature": tx.Signature,
		}
	}
	return repr
}

// ComputeFinalHash recomputes the block's final hash from its current
// fields. It does not mutate b.Hash; callers assign it explicitly so the
// "hash computed last, consumed by validators" lifecycle stays visible at
// call sites.
func (b *Block) ComputeFinalHash() common.Hash {
	body, err := common.CanonicalJSON(b.headerFields())
	if err != nil {
		panic(err)
	}
	return common.Sum256("maxcutchain.block", body)
}

// SatisfiesClassicPoW reports whether hash has at least difficulty leading
// hex-zero characters.
func SatisfiesClassicPoW(hash common.Hash, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	target := strings.Repeat("0", difficulty)
	return strings.HasPrefix(hash.Hex(), target)
}

// NewGenesisBlock builds the trivial-witness genesis block for the given
// mode. Its hash is computed through the same ComputeFinalHash path as any
// other block — genesis is never special-cased in the hashing rules, only
// in that validators must not attempt to validate its link (spec.md §8).
func NewGenesisBlock(mode PuzzleMode, graphN int, graphP, difficultyRatio float64) *Block {
	b := &Block{
		Index:        0,
		Timestamp:    0,
		PreviousHash: common.ZeroHash,
		MinedBy:      "none",
		Transactions: nil,
		Mode:         mode,
	}
	switch mode {
	case ModeGraph:
		b.GraphN = graphN
		b.GraphP = graphP
		b.DifficultyRatio = difficultyRatio
		b.Partition = make([]byte, graphN)
		b.RecomputeTransactionsHash()
	default:
		b.Nonce = 0
	}
	b.Hash = b.ComputeFinalHash()
	return b
}
