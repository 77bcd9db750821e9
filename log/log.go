// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The maxcutchain library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.

// Package log wraps zap behind the key-value call convention the rest of
// this tree uses: Info(msg, "key", value, "key2", value2, ...).
package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Module name constants, passed to NewModuleLogger.
const (
	Common  = "common"
	Chain   = "chain"
	Mempool = "mempool"
	Node    = "node"
	Miner   = "miner"
	Solver  = "solver"
	CLI     = "cli"
)

var (
	baseOnce sync.Once
	base     *zap.Logger
	level    = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func baseLogger() *zap.Logger {
	baseOnce.Do(func() {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(cfg),
			zapcore.AddSync(os.Stderr),
			level,
		)
		base = zap.New(core)
	})
	return base
}

// Logger is a module-scoped, key-value structured logger.
type Logger struct {
	module string
	sugar  *zap.SugaredLogger
}

// NewModuleLogger returns a Logger tagged with module, matching the
// teacher's `logger = log.NewModuleLogger(log.Common)` idiom.
func NewModuleLogger(module string) *Logger {
	return &Logger{
		module: module,
		sugar:  baseLogger().Sugar().With("module", module),
	}
}

func (l *Logger) Trace(msg string, kv ...interface{}) { l.sugar.Debugw(msg, kv...) }
func (l *Logger) Debug(msg string, kv ...interface{}) { l.sugar.Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.sugar.Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.sugar.Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.sugar.Errorw(msg, kv...) }

// SetLevel adjusts verbosity for all module loggers sharing the base core.
// Kept process-wide deliberately: the simulation harness runs many nodes in
// one process and per-node verbosity is not a requirement.
func SetLevel(lvl zapcore.Level) {
	level.SetLevel(lvl)
}
