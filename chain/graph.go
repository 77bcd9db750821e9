// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package chain's graph.go derives the block-bound Max-Cut puzzle graph: a
// deterministic Erdos-Renyi graph seeded from (previous_hash,
// transactions_hash), so that any two nodes holding the same parent
// linkage and transaction set independently construct an identical graph
// without exchanging it.
package chain

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"

	"github.com/klaytn/maxcutchain/common"
)

// Graph is an undirected simple graph over vertices [0, N), represented as
// an edge list (i < j, in generation order) plus an edge-set map for
// membership lookups.
type Graph struct {
	N     int
	Edges [][2]int
	adj   map[[2]int]bool
}

// Contains reports whether (u, v) is an edge, order-independent.
func (g *Graph) Contains(u, v int) bool {
	if u > v {
		u, v = v, u
	}
	return g.adj[[2]int{u, v}]
}

var graphCache, _ = common.NewLRUCache(256)

func graphCacheKey(previousHash, transactionsHash common.Hash, n int, p float64) string {
	return fmt.Sprintf("%s-%s-%d-%.10f", previousHash.Hex(), transactionsHash.Hex(), n, p)
}

// GenerateGraph builds the deterministic puzzle graph for a candidate
// block. It is memoized per (previous_hash, transactions_hash, N, p)
// because both the miner and every peer validating the resulting block
// derive the same graph independently, often within the same process run.
func GenerateGraph(previousHash, transactionsHash common.Hash, n int, p float64) *Graph {
	key := graphCacheKey(previousHash, transactionsHash, n, p)
	if cached, ok := graphCache.Get(key); ok {
		return cached.(*Graph)
	}

	g := &Graph{N: n, adj: make(map[[2]int]bool)}
	if n <= 0 {
		graphCache.Add(key, g)
		return g
	}

	seed := common.Sum256("maxcutchain.graph", []byte(previousHash.Hex()+"-"+transactionsHash.Hex()))
	prng := rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(seed[:8]))))

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if prng.Float64() < p {
				g.adj[[2]int{i, j}] = true
				g.Edges = append(g.Edges, [2]int{i, j})
			}
		}
	}
	graphCache.Add(key, g)
	return g
}

// TargetCut returns the minimum cut size a partition must achieve against
// g to satisfy difficultyRatio. Ceiling rounding, per the puzzle
// soundness invariant: mining targets ceiling, validation accepts
// cut >= target, uniformly — there is no floor-rounding special case.
func TargetCut(g *Graph, difficultyRatio float64) int {
	return int(math.Ceil(difficultyRatio * float64(len(g.Edges))))
}

// CutSize counts edges of g whose endpoints fall in different halves of
// partition.
func CutSize(g *Graph, partition []byte) int {
	cut := 0
	for _, e := range g.Edges {
		if partition[e[0]] != partition[e[1]] {
			cut++
		}
	}
	return cut
}

// ValidateGraphPoW reports whether partition is a valid witness for g
// under difficultyRatio: the right length and a cut meeting the target.
func ValidateGraphPoW(g *Graph, partition []byte, difficultyRatio float64) bool {
	if len(partition) != g.N {
		return false
	}
	return CutSize(g, partition) >= TargetCut(g, difficultyRatio)
}
