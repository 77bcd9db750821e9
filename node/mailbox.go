// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package node

// mailboxCapacity bounds each node's inbound queue; sends never block past
// it, they drop and log instead.
const mailboxCapacity = 256

// Mailbox is a bounded FIFO of Messages with non-blocking send. Peers hold
// only a Mailbox handle for each other, by id — never a reference to the
// owning Node — so the peer graph never forms an object cycle.
type Mailbox struct {
	ch chan Message
}

// NewMailbox allocates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{ch: make(chan Message, mailboxCapacity)}
}

// TrySend enqueues msg without blocking. It reports false if the mailbox
// is full, so the caller can log and drop.
func (m *Mailbox) TrySend(msg Message) bool {
	select {
	case m.ch <- msg:
		return true
	default:
		return false
	}
}

// Poll returns the next message without blocking, or (nil, false) if the
// mailbox is currently empty.
func (m *Mailbox) Poll() (Message, bool) {
	select {
	case msg := <-m.ch:
		return msg, true
	default:
		return nil, false
	}
}
