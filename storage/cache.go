// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - read-your-writes overlay for the pending batch
//
// a settlement transaction stages its writes in a leveldb batch,
// which cannot be read back; the overlay keeps those staged values
// so that a purchase sees its own payment debit before commit.
// Entries are expired on a timer only as a backstop, the transaction
// clears the whole overlay on commit or abort.
type Cache interface {
	Get(string) ([]byte, bool)
	Set(int, string, []byte)
	Clear()
}

// staged operation kinds
const (
	dbPut = iota
	dbDelete
)

const (
	defaultTimeout    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

type dbCache struct {
	cache *cache.Cache
}

// one staged write, keyed by prefix+key
type cacheData struct {
	op    int
	value []byte
}

func newCache() Cache {
	return &dbCache{
		cache: cache.New(defaultTimeout, defaultExpiration),
	}
}

// Get - read a staged value
//
// a staged delete reports not found so a removed balance or grant
// stays invisible inside its own transaction
func (c *dbCache) Get(key string) ([]byte, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return []byte{}, found
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return []byte{}, false
	}

	return data.value, found
}

// Set - stage a put or delete alongside the batch
func (c *dbCache) Set(op int, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, defaultExpiration)
}

// Clear - drop all staged values, after commit or abort
func (c *dbCache) Clear() {
	c.cache.Flush()
}
