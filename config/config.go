// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package config loads the simulation's TOML configuration file with
// github.com/naoina/toml, following the same strict-field decoder setup
// klaytn's cmd/ranger/config.go builds: field names map to TOML keys
// unchanged and unknown fields are rejected with a helpful error rather
// than silently ignored.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
)

var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string { return key },
	FieldToKey:    func(rt reflect.Type, field string) string { return field },
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) {
			link = fmt.Sprintf(" (see %s)", rt.String())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// Mode selects which puzzle regime a simulation run enforces.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeGraph   Mode = "graph"
)

// Simulation holds every tunable parameter a run's harness needs: node
// count, puzzle regime and its parameters, timing, and the dispatcher's
// action-selection probabilities.
type Simulation struct {
	NumNodes             int     `toml:"num_nodes"`
	Mode                 Mode    `toml:"mode"`
	InitialDifficulty    int     `toml:"initial_difficulty"`
	InitialDifficultyRatio float64 `toml:"initial_difficulty_ratio"`
	GraphN               int     `toml:"graph_N"`
	GraphP               float64 `toml:"graph_p"`
	SimulationTimeSeconds int    `toml:"simulation_time"`
	MiningSpeed          float64 `toml:"mining_speed"`
	AttackerNodeID       string  `toml:"attacker_node_id"`
	PTx                  float64 `toml:"p_tx"`
	PMine                float64 `toml:"p_mine"`
}

// Default returns the baseline configuration used when no file is
// supplied: classic PoW, modest difficulty, non-overlapping dispatcher
// bands.
func Default() Simulation {
	return Simulation{
		NumNodes:               5,
		Mode:                   ModeClassic,
		InitialDifficulty:      4,
		InitialDifficultyRatio: 0.5,
		GraphN:                 14,
		GraphP:                 0.5,
		SimulationTimeSeconds:  60,
		MiningSpeed:            1.0,
		PTx:                    0.3,
		PMine:                  0.2,
	}
}

// Load reads and strictly decodes a TOML file into a Simulation seeded
// with Default() values, so a partial file only overrides what it names.
func Load(path string) (Simulation, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&cfg)
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(path + ", " + err.Error())
	}
	return cfg, err
}

// Validate reports a descriptive error for any out-of-range field a
// harness must not be allowed to run with.
func (s Simulation) Validate() error {
	if s.NumNodes <= 0 {
		return errors.New("num_nodes must be positive")
	}
	if s.PTx < 0 || s.PMine < 0 || s.PTx+s.PMine > 1 {
		return errors.New("p_tx and p_mine must be non-negative and not overlap past 1.0")
	}
	switch s.Mode {
	case ModeClassic:
		if s.InitialDifficulty < 0 {
			return errors.New("initial_difficulty must be non-negative")
		}
	case ModeGraph:
		if s.GraphN <= 0 {
			return errors.New("graph_N must be positive")
		}
		if s.GraphP <= 0 || s.GraphP > 1 {
			return errors.New("graph_p must be in (0, 1]")
		}
		if s.InitialDifficultyRatio <= 0 || s.InitialDifficultyRatio > 1 {
			return errors.New("initial_difficulty_ratio must be in (0, 1]")
		}
	default:
		return fmt.Errorf("unknown mode %q", s.Mode)
	}
	return nil
}
