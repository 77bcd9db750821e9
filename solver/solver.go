// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package solver defines the Max-Cut oracle the graph-PoW miner consumes,
// and a worker-pool default implementation grounded in
// consensus/equa's adaptive-worker PoW solve loop: a pool of goroutines
// races to reach the target, reporting results on a channel the
// coordinator selects on alongside a quality window, an overall timeout
// and the caller's cancellation signal.
package solver

import (
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/hashicorp/go-uuid"

	"github.com/klaytn/maxcutchain/chain"
	"github.com/klaytn/maxcutchain/log"
)

var logger = log.NewModuleLogger(log.Solver)

// MaxCutSolver is the oracle the graph-PoW miner delegates to: any
// algorithm that returns a partition achieving cut >= target within a
// bounded budget, honouring cancel at cooperative checkpoints, is
// compliant.
type MaxCutSolver interface {
	Solve(g *chain.Graph, target int, cancel <-chan struct{}, nodeID string) (partition []byte, ok bool)
}

// LocalSearchSolver is the default MaxCutSolver: a pool of goroutines,
// each running randomised local-search (greedy single-vertex flips from a
// random start), racing for the first partition that reaches target. It
// favours wall-clock progress over optimality, matching the quality
// window / timeout structure used for classic PoW.
type LocalSearchSolver struct {
	// QualityWindow is how long Solve waits before logging the best
	// sub-target cut seen so far. Its expiry does not end the search: a
	// partition is only returned once it reaches target.
	QualityWindow time.Duration
	// Timeout is the hard deadline past which Solve gives up and reports
	// failure if no partition has reached target.
	Timeout time.Duration
}

// NewLocalSearchSolver builds a solver with the given search budgets.
func NewLocalSearchSolver(qualityWindow, timeout time.Duration) *LocalSearchSolver {
	return &LocalSearchSolver{QualityWindow: qualityWindow, Timeout: timeout}
}

type solveResult struct {
	partition []byte
	cut       int
}

// Solve runs NumCPU-1 (min 1) workers in parallel, each doing randomised
// greedy local search, until one reaches target, the timeout elapses, or
// cancel fires.
func (s *LocalSearchSolver) Solve(g *chain.Graph, target int, cancel <-chan struct{}, nodeID string) ([]byte, bool) {
	taskID, err := uuid.GenerateUUID()
	if err != nil {
		taskID = "unavailable"
	}

	if g.N == 0 {
		return []byte{}, target <= 0
	}

	numWorkers := runtime.NumCPU() - 1
	if numWorkers < 1 {
		numWorkers = 1
	}

	results := make(chan solveResult, numWorkers)
	done := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }

	for w := 0; w < numWorkers; w++ {
		go s.worker(w, g, target, results, done)
	}
	defer stop()

	var best solveResult
	haveBest := false

	qualityWindow := time.After(s.QualityWindow)
	timeout := time.After(s.Timeout)

	for {
		select {
		case r := <-results:
			if !haveBest || r.cut > best.cut {
				best, haveBest = r, true
			}
			if best.cut >= target {
				logger.Info("max-cut solved", "task", taskID, "node", nodeID, "cut", best.cut, "target", target)
				return best.partition, true
			}
		case <-qualityWindow:
			if haveBest {
				logger.Info("max-cut quality window expired without reaching target", "task", taskID, "node", nodeID, "best", best.cut, "target", target)
			}
		case <-timeout:
			if haveBest && best.cut >= target {
				return best.partition, true
			}
			logger.Warn("max-cut solve timed out", "task", taskID, "node", nodeID, "target", target)
			return nil, false
		case <-cancel:
			logger.Debug("max-cut solve cancelled", "task", taskID, "node", nodeID)
			return nil, false
		}
	}
}

func (s *LocalSearchSolver) worker(seed int, g *chain.Graph, target int, results chan<- solveResult, done <-chan struct{}) {
	rng := rand.New(rand.NewSource(int64(seed)*2654435761 + time.Now().UnixNano()))
	partition := make([]byte, g.N)
	for i := range partition {
		partition[i] = byte(rng.Intn(2))
	}

	improved := true
	for improved {
		select {
		case <-done:
			return
		default:
		}
		improved = false
		cut := chain.CutSize(g, partition)
		if cut >= target {
			select {
			case results <- solveResult{partition: cloneBytes(partition), cut: cut}:
			case <-done:
			}
			return
		}
		for v := 0; v < g.N; v++ {
			select {
			case <-done:
				return
			default:
			}
			partition[v] ^= 1
			newCut := chain.CutSize(g, partition)
			if newCut > cut {
				cut = newCut
				improved = true
			} else {
				partition[v] ^= 1
			}
		}
	}

	select {
	case results <- solveResult{partition: cloneBytes(partition), cut: chain.CutSize(g, partition)}:
	case <-done:
	}
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
