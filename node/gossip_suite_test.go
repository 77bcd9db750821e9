// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.

package node_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/klaytn/maxcutchain/chain"
	"github.com/klaytn/maxcutchain/node"
	"github.com/klaytn/maxcutchain/solver"
)

func TestNodeGossip(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "node gossip suite")
}

var _ = Describe("peer-to-peer gossip", func() {
	var a, b *node.Node

	BeforeEach(func() {
		replicaA := chain.NewChain(chain.Params{Mode: chain.ModeClassic, Difficulty: 0})
		replicaB := chain.NewChain(chain.Params{Mode: chain.ModeClassic, Difficulty: 0})
		cfg := node.Config{PTx: 0.6, PMine: 0.3, MiningSpeed: 1}
		mc := solver.NewLocalSearchSolver(10*time.Millisecond, 50*time.Millisecond)

		var err error
		a, err = node.New("node-a", replicaA, cfg, mc)
		Expect(err).NotTo(HaveOccurred())
		b, err = node.New("node-b", replicaB, cfg, mc)
		Expect(err).NotTo(HaveOccurred())

		a.AddPeer("node-b", b.Inbox())
		b.AddPeer("node-a", a.Inbox())
	})

	Context("when node-a mines a block", func() {
		It("reaches node-b's chain once node-a processes the locally mined block", func() {
			a.Start()
			b.Start()
			defer a.Stop()
			defer b.Stop()

			Eventually(func() int {
				return a.Chain().Height()
			}, 3*time.Second, 20*time.Millisecond).Should(BeNumerically(">", 1))

			Eventually(func() int {
				return b.Chain().Height()
			}, 3*time.Second, 20*time.Millisecond).Should(Equal(a.Chain().Height()))
		})
	})

	Context("when a peer mailbox is saturated", func() {
		It("drops further sends instead of blocking the sender", func() {
			mailbox := node.NewMailbox()
			tx := chain.NewTransaction("sender", "recipient", 1, nil)

			sent := 0
			for mailbox.TrySend(node.TransactionMsg{Tx: tx}) {
				sent++
			}
			Expect(sent).To(BeNumerically(">", 0))

			ok := mailbox.TrySend(node.TransactionMsg{Tx: tx})
			Expect(ok).To(BeFalse(), "a full mailbox must reject rather than block")
		})
	})
})
