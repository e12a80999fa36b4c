// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ownership - the dataset NFT registry
//
// exclusively owns the datasetId → owner mapping.  Every authorization
// decision elsewhere (metadata updates, revocation, full purchase)
// resolves the owner through this package rather than a stored copy,
// so rights follow the token automatically on transfer.
package ownership

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/storage"
)

// to ensure synchronised ownership updates
var toLock sync.Mutex

const datasetKeySize = 8

// DatasetKey - database key for a dataset id
func DatasetKey(datasetId uint64) []byte {
	key := make([]byte, datasetKeySize)
	binary.BigEndian.PutUint64(key, datasetId)
	return key
}

// Mint - create the ownership record for a freshly created dataset
//
// must run inside the dataset creation transaction
func Mint(trx storage.Transaction, datasetId uint64, owner identity.Identity) {
	toLock.Lock()
	defer toLock.Unlock()

	key := DatasetKey(datasetId)
	if trx.Has(storage.Pool.Ownership, key) {
		logger.Panicf("ownership.Mint: dataset %d already minted", datasetId)
	}

	trx.Put(storage.Pool.Ownership, key, owner.Bytes())
	trx.Put(storage.Pool.OwnerList, ownerListKey(owner, datasetId), []byte{})
}

// OwnerOf - resolve the current owner of a dataset
//
// a nil trx reads committed state
func OwnerOf(trx storage.Transaction, datasetId uint64) (identity.Identity, error) {
	var packed []byte

	key := DatasetKey(datasetId)
	if nil == trx {
		packed = storage.Pool.Ownership.Get(key)
	} else {
		packed = trx.Get(storage.Pool.Ownership, key)
	}
	if nil == packed {
		return identity.Zero, fault.DatasetNotFound
	}

	var owner identity.Identity
	if err := identity.FromBytes(&owner, packed); nil != err {
		logger.Panicf("ownership.OwnerOf: corrupt owner record for dataset %d", datasetId)
	}
	return owner, nil
}

// Approve - record transfer approval for one specific dataset
//
// only the current owner may approve; the zero identity clears any
// standing approval
func Approve(trx storage.Transaction, caller identity.Identity, spender identity.Identity, datasetId uint64) error {
	toLock.Lock()
	defer toLock.Unlock()

	owner, err := OwnerOf(trx, datasetId)
	if nil != err {
		return err
	}
	if caller != owner {
		return fault.Unauthorized
	}

	key := DatasetKey(datasetId)
	if spender.IsZero() {
		trx.Delete(storage.Pool.Approvals, key)
	} else {
		trx.Put(storage.Pool.Approvals, key, spender.Bytes())
	}
	return nil
}

// IsApproved - check a standing transfer approval
func IsApproved(trx storage.Transaction, datasetId uint64, spender identity.Identity) bool {
	var packed []byte

	key := DatasetKey(datasetId)
	if nil == trx {
		packed = storage.Pool.Approvals.Get(key)
	} else {
		packed = trx.Get(storage.Pool.Approvals, key)
	}
	if nil == packed {
		return false
	}

	var approved identity.Identity
	if err := identity.FromBytes(&approved, packed); nil != err {
		return false
	}
	return approved == spender
}

// Transfer - move a dataset to a new owner
//
// caller must be the current owner or hold a standing approval for
// this specific dataset; any approval is consumed by the transfer
func Transfer(trx storage.Transaction, caller identity.Identity, to identity.Identity, datasetId uint64) error {
	toLock.Lock()
	defer toLock.Unlock()

	owner, err := OwnerOf(trx, datasetId)
	if nil != err {
		return err
	}
	if to.IsZero() {
		return fault.TransferToZeroIdentity
	}
	if to == owner {
		return fault.TransferToSelf
	}
	if caller != owner && !IsApproved(trx, datasetId, caller) {
		return fault.Unauthorized
	}

	key := DatasetKey(datasetId)
	trx.Delete(storage.Pool.Approvals, key)
	trx.Delete(storage.Pool.OwnerList, ownerListKey(owner, datasetId))
	trx.Put(storage.Pool.Ownership, key, to.Bytes())
	trx.Put(storage.Pool.OwnerList, ownerListKey(to, datasetId), []byte{})
	return nil
}

func ownerListKey(owner identity.Identity, datasetId uint64) []byte {
	return append(owner.Bytes(), DatasetKey(datasetId)...)
}
