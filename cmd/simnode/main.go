// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command simnode is a thin harness that wires a set of nodes together,
// runs them for a configured duration, and reports whether the network
// converged on a single chain tip. It intentionally stays small: the
// node engine, not the harness, is this tree's subject.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli"

	"github.com/klaytn/maxcutchain/chain"
	"github.com/klaytn/maxcutchain/config"
	"github.com/klaytn/maxcutchain/log"
	"github.com/klaytn/maxcutchain/node"
	"github.com/klaytn/maxcutchain/solver"
)

var logger = log.NewModuleLogger(log.CLI)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a simulation TOML config file",
	}
	nodesFlag = cli.IntFlag{
		Name:  "nodes",
		Usage: "override num_nodes from the config",
		Value: 0,
	}
	durationFlag = cli.IntFlag{
		Name:  "duration",
		Usage: "override simulation_time (seconds) from the config",
		Value: 0,
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "simnode"
	app.Usage = "run a maxcutchain peer-to-peer simulation"
	app.Flags = []cli.Flag{configFlag, nodesFlag, durationFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		logger.Error("simulation failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	cfg := config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if n := ctx.Int(nodesFlag.Name); n > 0 {
		cfg.NumNodes = n
	}
	if d := ctx.Int(durationFlag.Name); d > 0 {
		cfg.SimulationTimeSeconds = d
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	nodes, err := buildNetwork(cfg)
	if err != nil {
		return err
	}

	logger.Info("starting simulation", "nodes", cfg.NumNodes, "mode", cfg.Mode, "duration_s", cfg.SimulationTimeSeconds)
	for _, n := range nodes {
		n.Start()
	}

	time.Sleep(time.Duration(cfg.SimulationTimeSeconds) * time.Second)

	for _, n := range nodes {
		n.Stop()
	}
	for _, n := range nodes {
		n.Wait()
	}

	report(nodes)
	return nil
}

func buildNetwork(cfg config.Simulation) ([]*node.Node, error) {
	params := chain.Params{
		Mode:            modeFor(cfg.Mode),
		Difficulty:      cfg.InitialDifficulty,
		GraphN:          cfg.GraphN,
		GraphP:          cfg.GraphP,
		DifficultyRatio: cfg.InitialDifficultyRatio,
	}
	mcSolver := solver.NewLocalSearchSolver(200*time.Millisecond, 2*time.Second)

	nodes := make([]*node.Node, cfg.NumNodes)
	for i := range nodes {
		id := fmt.Sprintf("node-%d", i)
		replica := chain.NewChain(params)

		speed := cfg.MiningSpeed
		if id == cfg.AttackerNodeID {
			speed *= 5
		}

		n, err := node.New(id, replica, node.Config{
			PTx:         cfg.PTx,
			PMine:       cfg.PMine,
			MiningSpeed: speed,
		}, mcSolver)
		if err != nil {
			return nil, fmt.Errorf("constructing %s: %w", id, err)
		}
		nodes[i] = n
	}

	for i, a := range nodes {
		for j, b := range nodes {
			if i == j {
				continue
			}
			a.AddPeer(b.ID(), b.Inbox())
		}
	}
	return nodes, nil
}

func modeFor(m config.Mode) chain.PuzzleMode {
	if m == config.ModeGraph {
		return chain.ModeGraph
	}
	return chain.ModeClassic
}

func report(nodes []*node.Node) {
	tips := make(map[string]int)
	for _, n := range nodes {
		tips[n.Chain().Tip().Hash.Hex()]++
	}

	if len(tips) == 1 {
		color.New(color.FgGreen, color.Bold).Println("CONSENSO: every node converged on a single tip")
	} else {
		color.New(color.FgRed, color.Bold).Printf("INCONSISTENCIA: %d distinct tip hashes across %d nodes\n", len(tips), len(nodes))
	}

	for _, n := range nodes {
		fmt.Printf("  %-10s height=%-4d tip=%s\n", n.ID(), n.Chain().Height(), n.Chain().Tip().Hash.Hex()[:16])
	}
}
