// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// Transaction - the store wide batch transaction
//
// all writes made between Begin and Commit hit the database as a
// single LevelDB batch: either every write survives or none does.
// reads through the transaction observe its own pending writes.
type Transaction interface {
	Begin() error
	Abort()
	Commit() error
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	InUse() bool
}

type transactionData struct {
	mutex  sync.Mutex
	access Access
}

func newTransaction(access Access) Transaction {
	return &transactionData{
		access: access,
	}
}

// Begin - take the batch; blocks while another holder is active
func (t *transactionData) Begin() error {
	t.mutex.Lock()
	if err := t.access.Begin(); nil != err {
		t.mutex.Unlock()
		return err
	}
	return nil
}

// Abort - drop all pending writes
func (t *transactionData) Abort() {
	t.access.Abort()
	t.mutex.Unlock()
}

// Commit - write all pending writes as one batch
func (t *transactionData) Commit() error {
	err := t.access.Commit()
	t.mutex.Unlock()
	return err
}

func (t *transactionData) Put(pool *PoolHandle, key []byte, value []byte) {
	t.access.Put(pool.prefixKey(key), value)
}

func (t *transactionData) PutN(pool *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(buffer, value)
	t.access.Put(pool.prefixKey(key), buffer)
}

func (t *transactionData) Delete(pool *PoolHandle, key []byte) {
	t.access.Delete(pool.prefixKey(key))
}

// Get - read through pending writes, falling back to committed state
func (t *transactionData) Get(pool *PoolHandle, key []byte) []byte {
	value, err := t.access.Get(pool.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("transaction.Get", err)
	return value
}

func (t *transactionData) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(pool, key)
	if nil == buffer {
		return 0, false
	}
	if uint64ByteSize != len(buffer) {
		logger.Panicf("transaction.GetN truncated record for: %x: %x", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer), true
}

func (t *transactionData) Has(pool *PoolHandle, key []byte) bool {
	has, err := t.access.Has(pool.prefixKey(key))
	logger.PanicIfError("transaction.Has", err)
	return has
}

func (t *transactionData) InUse() bool {
	return t.access.InUse()
}
