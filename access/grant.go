// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package access - the access rights ledger
//
// records one grant per (identity, dataset) pair.  Validity is always
// recomputed from the stored timestamps: expiry is evaluated at read
// time, never scheduled, so a grant can lapse without any write
// having occurred.
package access

import (
	"encoding/binary"
	"time"

	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/ownership"
	"github.com/clusterprotocol/datasetd/storage"
)

// Grant - one recorded access right
//
// ExpiresAt zero means the grant never lapses (D2C and FULL)
type Grant struct {
	AccessType Type   `json:"accessType"`
	GrantedAt  uint64 `json:"grantedAt"`
	ExpiresAt  uint64 `json:"expiresAt"`
	Active     bool   `json:"active"`
}

// packed grant layout: type ⧺ grantedAt ⧺ expiresAt ⧺ active
const grantRecordSize = 1 + 8 + 8 + 1

// Valid - recompute whether a grant currently confers access
func (grant *Grant) Valid(now time.Time) bool {
	if nil == grant || !grant.Active {
		return false
	}
	if 0 == grant.ExpiresAt {
		return true
	}
	return uint64(now.Unix()) < grant.ExpiresAt
}

func grantKey(holder identity.Identity, datasetId uint64) []byte {
	key := make([]byte, identity.Size+8)
	copy(key, holder.Bytes())
	binary.BigEndian.PutUint64(key[identity.Size:], datasetId)
	return key
}

func putGrant(trx storage.Transaction, holder identity.Identity, datasetId uint64, grant *Grant) {
	buffer := make([]byte, grantRecordSize)
	buffer[0] = byte(grant.AccessType)
	binary.BigEndian.PutUint64(buffer[1:9], grant.GrantedAt)
	binary.BigEndian.PutUint64(buffer[9:17], grant.ExpiresAt)
	if grant.Active {
		buffer[17] = 1
	}
	trx.Put(storage.Pool.Grants, grantKey(holder, datasetId), buffer)
}

func unpackGrant(buffer []byte) (*Grant, error) {
	if grantRecordSize != len(buffer) {
		return nil, fault.NotGrantRecord
	}
	return &Grant{
		AccessType: Type(buffer[0]),
		GrantedAt:  binary.BigEndian.Uint64(buffer[1:9]),
		ExpiresAt:  binary.BigEndian.Uint64(buffer[9:17]),
		Active:     1 == buffer[17],
	}, nil
}

// GetGrant - read the stored grant for a holder, nil if none exists
//
// a nil trx reads committed state
func GetGrant(trx storage.Transaction, holder identity.Identity, datasetId uint64) (*Grant, error) {
	var packed []byte
	key := grantKey(holder, datasetId)
	if nil == trx {
		packed = storage.Pool.Grants.Get(key)
	} else {
		packed = trx.Get(storage.Pool.Grants, key)
	}
	if nil == packed {
		return nil, nil
	}
	return unpackGrant(packed)
}

// Check - does the holder currently have access, and of what kind
//
// the current dataset owner always has full access without a grant
// record; everyone else is judged by their stored grant, recomputed
// against the clock on every call
func Check(holder identity.Identity, datasetId uint64) (bool, Type, error) {
	owner, err := ownership.OwnerOf(nil, datasetId)
	if nil != err {
		return false, None, err
	}
	if holder == owner {
		return true, Full, nil
	}

	grant, err := GetGrant(nil, holder, datasetId)
	if nil != err {
		return false, None, err
	}
	if nil == grant {
		return false, None, nil
	}
	return grant.Valid(time.Now()), grant.AccessType, nil
}

// Revoke - owner-issued deactivation of a grant
//
// idempotent: revoking an inactive or missing grant is a no-op;
// revocation rights follow the ownership token
func Revoke(trx storage.Transaction, caller identity.Identity, holder identity.Identity, datasetId uint64) error {
	owner, err := ownership.OwnerOf(trx, datasetId)
	if nil != err {
		return err
	}
	if caller != owner {
		return fault.Unauthorized
	}

	grant, err := GetGrant(trx, holder, datasetId)
	if nil != err {
		return err
	}
	if nil == grant || !grant.Active {
		return nil
	}

	grant.Active = false
	putGrant(trx, holder, datasetId, grant)
	return nil
}
