// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package access - RPC handler for access purchase, query and revoke
package access

import (
	"math/big"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	rights "github.com/clusterprotocol/datasetd/access"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/rpc/ratelimit"
	"github.com/clusterprotocol/datasetd/settlement"
	"github.com/clusterprotocol/datasetd/storage"
)

const (
	rateLimitAccess = 200
	rateBurstAccess = 100
)

// Access - type for the RPC
type Access struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the handler
func New(log *logger.L) *Access {
	return &Access{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitAccess, rateBurstAccess),
	}
}

// PurchaseArguments - arguments for RPC
//
// Value is the attached native coin amount, only meaningful for
// datasets priced in the native instrument
type PurchaseArguments struct {
	Caller     identity.Identity `json:"caller"`
	DatasetId  uint64            `json:"datasetId,string"`
	AccessType rights.Type       `json:"accessType"`
	Value      *big.Int          `json:"value"`
}

// PurchaseReply - result from purchase RPCs
type PurchaseReply struct {
	Receipt *settlement.Receipt `json:"receipt"`
}

// Purchase - pay for and record an access grant
func (access *Access) Purchase(arguments *PurchaseArguments, reply *PurchaseReply) error {
	if err := ratelimit.Limit(access.Limiter); nil != err {
		return err
	}

	access.Log.Infof("Access.Purchase: %s dataset: %d type: %s",
		arguments.Caller, arguments.DatasetId, arguments.AccessType)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	receipt, err := rights.Purchase(trx, arguments.Caller, arguments.DatasetId, arguments.AccessType, arguments.Value)
	if nil != err {
		trx.Abort()
		return err
	}

	if err := trx.Commit(); nil != err {
		return err
	}

	reply.Receipt = receipt
	return nil
}

// PurchaseFullArguments - arguments for RPC
type PurchaseFullArguments struct {
	Caller    identity.Identity `json:"caller"`
	DatasetId uint64            `json:"datasetId,string"`
	Value     *big.Int          `json:"value"`
}

// PurchaseFull - buy the whole dataset, transferring its ownership token
func (access *Access) PurchaseFull(arguments *PurchaseFullArguments, reply *PurchaseReply) error {
	if err := ratelimit.Limit(access.Limiter); nil != err {
		return err
	}

	access.Log.Infof("Access.PurchaseFull: %s dataset: %d", arguments.Caller, arguments.DatasetId)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	receipt, err := settlement.PurchaseFullDataset(trx, arguments.Caller, arguments.DatasetId, arguments.Value)
	if nil != err {
		trx.Abort()
		return err
	}

	if err := trx.Commit(); nil != err {
		return err
	}

	reply.Receipt = receipt
	return nil
}

// CheckArguments - arguments for RPC
type CheckArguments struct {
	Identity  identity.Identity `json:"identity"`
	DatasetId uint64            `json:"datasetId,string"`
}

// CheckReply - result from RPC
type CheckReply struct {
	Valid      bool        `json:"valid"`
	AccessType rights.Type `json:"accessType"`
}

// Check - recompute current access for an identity
func (access *Access) Check(arguments *CheckArguments, reply *CheckReply) error {
	if err := ratelimit.Limit(access.Limiter); nil != err {
		return err
	}

	valid, accessType, err := rights.Check(arguments.Identity, arguments.DatasetId)
	if nil != err {
		return err
	}

	reply.Valid = valid
	reply.AccessType = accessType
	return nil
}

// RevokeArguments - arguments for RPC
type RevokeArguments struct {
	Caller    identity.Identity `json:"caller"`
	Holder    identity.Identity `json:"holder"`
	DatasetId uint64            `json:"datasetId,string"`
}

// RevokeReply - result from RPC
type RevokeReply struct {
	Revoked bool `json:"revoked"`
}

// Revoke - owner-issued grant deactivation
func (access *Access) Revoke(arguments *RevokeArguments, reply *RevokeReply) error {
	if err := ratelimit.Limit(access.Limiter); nil != err {
		return err
	}

	access.Log.Infof("Access.Revoke: holder: %s dataset: %d", arguments.Holder, arguments.DatasetId)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = rights.Revoke(trx, arguments.Caller, arguments.Holder, arguments.DatasetId)
	if nil != err {
		trx.Abort()
		return err
	}

	if err := trx.Commit(); nil != err {
		return err
	}

	reply.Revoked = true
	return nil
}
