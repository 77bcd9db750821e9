// Copyright 2018 The klaytn Authors
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
//
// This file is derived from common/cache.go in the klaytn tree: the
// sharded/ARC cache variants are dropped (nothing in this tree has the
// concurrent-contention profile that justified them) and the key type is
// generalised from the original's common.Hash-keyed CacheKey interface to
// a plain comparable string key, since the only consumer here (the Max-Cut
// graph memoization in chain/graph.go) keys by a composite string, not a
// chain-address hash.
package common

import (
	"github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// Cache is a bounded, evict-on-capacity key/value cache.
type Cache interface {
	Add(key string, value interface{}) (evicted bool)
	Get(key string) (value interface{}, ok bool)
	Contains(key string) bool
	Purge()
	Len() int
}

type lruCache struct {
	lru *lru.Cache
}

func (c *lruCache) Add(key string, value interface{}) (evicted bool) {
	return c.lru.Add(key, value)
}

func (c *lruCache) Get(key string) (value interface{}, ok bool) {
	return c.lru.Get(key)
}

func (c *lruCache) Contains(key string) bool {
	return c.lru.Contains(key)
}

func (c *lruCache) Purge() {
	c.lru.Purge()
}

func (c *lruCache) Len() int {
	return c.lru.Len()
}

// NewLRUCache builds a Cache of the given capacity. Capacity must be positive.
func NewLRUCache(size int) (Cache, error) {
	if size <= 0 {
		return nil, errors.Errorf("cache size must be positive, got %d", size)
	}
	l, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "allocating lru cache")
	}
	return &lruCache{lru: l}, nil
}
