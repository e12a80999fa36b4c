// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package owner - RPC handler for ownership listing and approvals
package owner

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/ownership"
	"github.com/clusterprotocol/datasetd/rpc/ratelimit"
	"github.com/clusterprotocol/datasetd/storage"
)

const (
	rateLimitOwner = 200
	rateBurstOwner = 100
)

// Owner - type for the RPC
type Owner struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the handler
func New(log *logger.L) *Owner {
	return &Owner{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitOwner, rateBurstOwner),
	}
}

// ApproveArguments - arguments for RPC
type ApproveArguments struct {
	Caller    identity.Identity `json:"caller"`
	Spender   identity.Identity `json:"spender"`
	DatasetId uint64            `json:"datasetId,string"`
}

// ApproveReply - result from RPC
type ApproveReply struct {
	Approved bool `json:"approved"`
}

// Approve - record a transfer approval for one dataset
//
// the zero spender clears a standing approval
func (owner *Owner) Approve(arguments *ApproveArguments, reply *ApproveReply) error {
	if err := ratelimit.Limit(owner.Limiter); nil != err {
		return err
	}

	owner.Log.Infof("Owner.Approve: %d → %s", arguments.DatasetId, arguments.Spender)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = ownership.Approve(trx, arguments.Caller, arguments.Spender, arguments.DatasetId)
	if nil != err {
		trx.Abort()
		return err
	}

	if err := trx.Commit(); nil != err {
		return err
	}

	reply.Approved = !arguments.Spender.IsZero()
	return nil
}

// DatasetsArguments - arguments for RPC
type DatasetsArguments struct {
	Owner identity.Identity `json:"owner"`
}

// DatasetsReply - result from RPC
type DatasetsReply struct {
	DatasetIds []uint64 `json:"datasetIds"`
}

// Datasets - list datasets held by an identity
func (owner *Owner) Datasets(arguments *DatasetsArguments, reply *DatasetsReply) error {
	if err := ratelimit.Limit(owner.Limiter); nil != err {
		return err
	}

	ids, err := ownership.ListFor(arguments.Owner)
	if nil != err {
		return err
	}

	reply.DatasetIds = ids
	return nil
}
