// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.

package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/klaytn/maxcutchain/common"
)

func TestGenerateGraphIsDeterministic(t *testing.T) {
	prev := common.Sum256("test", []byte("parent"))
	txh := common.Sum256("test", []byte("txs"))

	g1 := GenerateGraph(prev, txh, 12, 0.5)
	g2 := GenerateGraph(prev, txh, 12, 0.5)
	require.Equal(t, g1.Edges, g2.Edges)
}

func TestGenerateGraphDiffersAcrossInputs(t *testing.T) {
	prev := common.Sum256("test", []byte("parent"))
	txh1 := common.Sum256("test", []byte("txs-1"))
	txh2 := common.Sum256("test", []byte("txs-2"))

	g1 := GenerateGraph(prev, txh1, 12, 0.5)
	g2 := GenerateGraph(prev, txh2, 12, 0.5)
	require.NotEqual(t, g1.Edges, g2.Edges)
}

func TestTargetCutUsesCeiling(t *testing.T) {
	g := &Graph{N: 4, Edges: [][2]int{{0, 1}, {0, 2}, {0, 3}}}
	// 0.1 * 3 = 0.3, ceiling must be 1, not 0.
	require.Equal(t, 1, TargetCut(g, 0.1))
}

func TestValidateGraphPoWRejectsWrongPartitionLength(t *testing.T) {
	g := &Graph{N: 4, Edges: [][2]int{{0, 1}}}
	require.False(t, ValidateGraphPoW(g, []byte{0, 1, 0}, 0.5))
}

func TestValidateGraphPoWAcceptsSufficientCut(t *testing.T) {
	g := &Graph{N: 4, Edges: [][2]int{{0, 1}, {1, 2}, {2, 3}}}
	// partition 0,0,1,1 cuts edge (1,2) only -> cut=1
	partition := []byte{0, 0, 1, 1}
	require.Equal(t, 1, CutSize(g, partition))
	require.True(t, ValidateGraphPoW(g, partition, 0.3))
	require.False(t, ValidateGraphPoW(g, partition, 0.9))
}
