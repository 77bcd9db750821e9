// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package metrics registers the simulation's counters and gauges with
// github.com/rcrowley/go-metrics, the same registry klaytn's work package
// uses for its miner counters (miner/timelimitreached, miner/toolongtx).
package metrics

import "github.com/rcrowley/go-metrics"

var (
	BlocksAccepted  = metrics.NewRegisteredCounter("node/blocks/accepted", nil)
	BlocksRejected  = metrics.NewRegisteredCounter("node/blocks/rejected", nil)
	TxAdmitted      = metrics.NewRegisteredCounter("node/tx/admitted", nil)
	TxRejected      = metrics.NewRegisteredCounter("node/tx/rejected", nil)
	MiningAttempts  = metrics.NewRegisteredCounter("node/mining/attempts", nil)
	MiningSuccesses = metrics.NewRegisteredCounter("node/mining/successes", nil)
	MempoolDepth    = metrics.NewRegisteredGauge("node/mempool/depth", nil)
)
