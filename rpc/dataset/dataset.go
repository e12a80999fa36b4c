// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dataset - RPC handler for dataset creation and metadata
package dataset

import (
	"math/big"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/catalog"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/instrument"
	"github.com/clusterprotocol/datasetd/ownership"
	"github.com/clusterprotocol/datasetd/rpc/ratelimit"
	"github.com/clusterprotocol/datasetd/storage"
)

const (
	rateLimitDataset = 200
	rateBurstDataset = 100
)

// Dataset - type for the RPC
type Dataset struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the handler
func New(log *logger.L) *Dataset {
	return &Dataset{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitDataset, rateBurstDataset),
	}
}

// Tier - one expiring tier in a creation request
type Tier struct {
	Price *big.Int `json:"price"`
	Days  uint64   `json:"days"`
}

// CreateArguments - arguments for RPC
type CreateArguments struct {
	Caller             identity.Identity     `json:"caller"`
	Name               string                `json:"name"`
	Description        string                `json:"description"`
	URI                string                `json:"uri"`
	Instrument         instrument.Instrument `json:"instrument"`
	FullAccessPrice    *big.Int              `json:"fullAccessPrice"`
	D2CAccessPrice     *big.Int              `json:"d2cAccessPrice"`
	ExpiryTiers        []Tier                `json:"expiryTiers"`
	FullBuyPrice       *big.Int              `json:"fullBuyPrice"`
	FullBuyEnabled     bool                  `json:"fullBuyEnabled"`
	CustomTokenEnabled bool                  `json:"customTokenEnabled"`
	CustomTokenSupply  *big.Int              `json:"customTokenSupply"`
}

// CreateReply - result from RPC
type CreateReply struct {
	DatasetId     uint64 `json:"datasetId,string"`
	CustomTokenId uint64 `json:"customTokenId,string"`
}

// Create - register a new dataset owned by the caller
func (d *Dataset) Create(arguments *CreateArguments, reply *CreateReply) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}

	d.Log.Infof("Dataset.Create: %q for %s", arguments.Name, arguments.Caller)

	tiers := make([]catalog.ExpiryTier, len(arguments.ExpiryTiers))
	for i, tier := range arguments.ExpiryTiers {
		tiers[i] = catalog.ExpiryTier{
			Price:        tier.Price,
			DurationDays: tier.Days,
		}
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	datasetId, err := catalog.Create(trx, arguments.Caller, &catalog.CreateRequest{
		Name:               arguments.Name,
		Description:        arguments.Description,
		URI:                arguments.URI,
		Instrument:         arguments.Instrument,
		FullAccessPrice:    arguments.FullAccessPrice,
		D2CAccessPrice:     arguments.D2CAccessPrice,
		ExpiryTiers:        tiers,
		FullBuyPrice:       arguments.FullBuyPrice,
		FullBuyEnabled:     arguments.FullBuyEnabled,
		CustomTokenEnabled: arguments.CustomTokenEnabled,
		CustomTokenSupply:  arguments.CustomTokenSupply,
	})
	if nil != err {
		trx.Abort()
		return err
	}

	record, err := catalog.GetTrx(trx, datasetId)
	if nil != err {
		trx.Abort()
		return err
	}

	if err := trx.Commit(); nil != err {
		return err
	}

	reply.DatasetId = datasetId
	reply.CustomTokenId = record.CustomTokenId
	return nil
}

// GetArguments - arguments for RPC
type GetArguments struct {
	DatasetId uint64 `json:"datasetId,string"`
}

// GetReply - result from RPC
type GetReply struct {
	Dataset *catalog.Dataset  `json:"dataset"`
	Owner   identity.Identity `json:"owner"`
}

// Get - fetch one dataset record with its current owner
func (d *Dataset) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}

	record, err := catalog.Get(arguments.DatasetId)
	if nil != err {
		return err
	}

	owner, err := ownership.OwnerOf(nil, arguments.DatasetId)
	if nil != err {
		return err
	}

	reply.Dataset = record
	reply.Owner = owner
	return nil
}

// UpdateURIArguments - arguments for RPC
type UpdateURIArguments struct {
	Caller    identity.Identity `json:"caller"`
	DatasetId uint64            `json:"datasetId,string"`
	URI       string            `json:"uri"`
}

// UpdateReply - result from metadata update RPCs
type UpdateReply struct {
	Version uint64 `json:"version,string"`
}

// UpdateURI - owner-issued content locator update
func (d *Dataset) UpdateURI(arguments *UpdateURIArguments, reply *UpdateReply) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}

	d.Log.Infof("Dataset.UpdateURI: %d", arguments.DatasetId)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = catalog.UpdateURI(trx, arguments.Caller, arguments.DatasetId, arguments.URI)
	if nil != err {
		trx.Abort()
		return err
	}

	record, err := catalog.GetTrx(trx, arguments.DatasetId)
	if nil != err {
		trx.Abort()
		return err
	}

	if err := trx.Commit(); nil != err {
		return err
	}

	reply.Version = record.Version
	return nil
}

// SetActiveArguments - arguments for RPC
type SetActiveArguments struct {
	Caller    identity.Identity `json:"caller"`
	DatasetId uint64            `json:"datasetId,string"`
	Active    bool              `json:"active"`
}

// SetActive - owner-issued activation toggle
func (d *Dataset) SetActive(arguments *SetActiveArguments, reply *UpdateReply) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}

	d.Log.Infof("Dataset.SetActive: %d → %t", arguments.DatasetId, arguments.Active)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = catalog.SetActive(trx, arguments.Caller, arguments.DatasetId, arguments.Active)
	if nil != err {
		trx.Abort()
		return err
	}

	record, err := catalog.GetTrx(trx, arguments.DatasetId)
	if nil != err {
		trx.Abort()
		return err
	}

	if err := trx.Commit(); nil != err {
		return err
	}

	reply.Version = record.Version
	return nil
}
