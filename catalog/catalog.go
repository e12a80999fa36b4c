// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package catalog - dataset metadata and pricing records
//
// exclusively owns the dataset records: descriptive metadata, the
// payment instrument, and the per-tier price table.  The owner is
// never stored here; it is always resolved through the ownership
// package so authorization survives transfers.
//
// All prices are integer minor units already scaled by the caller
// (6 decimals for the stable instrument, 18 otherwise); the catalog
// performs no scaling of its own.
package catalog

import (
	"encoding/binary"
	"math/big"

	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/instrument"
	"github.com/clusterprotocol/datasetd/storage"
	"github.com/clusterprotocol/datasetd/util"
)

// counter record for the next dataset id, ids start at 1
var nextDatasetIdKey = []byte("dataset")

// MaximumTierDurationDays - upper bound on one expiring tier, 100 years
//
// keeps now + days*86400 far below the uint64 range so a stored
// expiry can never wrap into the past
const MaximumTierDurationDays = 36500

// flag bits in the packed record
const (
	flagFullBuyEnabled     = 0x01
	flagCustomTokenEnabled = 0x02
	flagActive             = 0x04
)

// ExpiryTier - one purchasable expiring tier
type ExpiryTier struct {
	Price        *big.Int `json:"price"`
	DurationDays uint64   `json:"durationDays"`
}

// Dataset - a full catalog record
type Dataset struct {
	Id                 uint64                `json:"id"`
	Name               string                `json:"name"`
	Description        string                `json:"description"`
	URI                string                `json:"uri"`
	Instrument         instrument.Instrument `json:"instrument"`
	FullAccessPrice    *big.Int              `json:"fullAccessPrice"`
	D2CAccessPrice     *big.Int              `json:"d2cAccessPrice"`
	ExpiryTiers        []ExpiryTier          `json:"expiryTiers"`
	FullBuyPrice       *big.Int              `json:"fullBuyPrice"`
	FullBuyEnabled     bool                  `json:"fullBuyEnabled"`
	CustomTokenEnabled bool                  `json:"customTokenEnabled"`
	Active             bool                  `json:"active"`
	CustomTokenId      uint64                `json:"customTokenId"`
	Version            uint64                `json:"version"`
	CreatedAt          uint64                `json:"createdAt"`
}

func datasetKey(datasetId uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, datasetId)
	return key
}

// Get - read a dataset record from committed state
func Get(datasetId uint64) (*Dataset, error) {
	packed := storage.Pool.Datasets.Get(datasetKey(datasetId))
	if nil == packed {
		return nil, fault.DatasetNotFound
	}
	return unpackDataset(datasetId, packed)
}

// GetTrx - read a dataset record through a transaction
func GetTrx(trx storage.Transaction, datasetId uint64) (*Dataset, error) {
	packed := trx.Get(storage.Pool.Datasets, datasetKey(datasetId))
	if nil == packed {
		return nil, fault.DatasetNotFound
	}
	return unpackDataset(datasetId, packed)
}

func putDataset(trx storage.Transaction, d *Dataset) {
	buffer := []byte{}
	buffer = util.PackString(buffer, d.Name)
	buffer = util.PackString(buffer, d.Description)
	buffer = util.PackString(buffer, d.URI)
	buffer = append(buffer, util.ToVarint64(uint64(d.Instrument))...)
	buffer = util.PackBig(buffer, d.FullAccessPrice)
	buffer = util.PackBig(buffer, d.D2CAccessPrice)

	buffer = append(buffer, util.ToVarint64(uint64(len(d.ExpiryTiers)))...)
	for _, tier := range d.ExpiryTiers {
		buffer = util.PackBig(buffer, tier.Price)
		buffer = append(buffer, util.ToVarint64(tier.DurationDays)...)
	}

	buffer = util.PackBig(buffer, d.FullBuyPrice)

	flags := byte(0)
	if d.FullBuyEnabled {
		flags |= flagFullBuyEnabled
	}
	if d.CustomTokenEnabled {
		flags |= flagCustomTokenEnabled
	}
	if d.Active {
		flags |= flagActive
	}
	buffer = append(buffer, flags)

	buffer = append(buffer, util.ToVarint64(d.CustomTokenId)...)
	buffer = append(buffer, util.ToVarint64(d.Version)...)
	buffer = append(buffer, util.ToVarint64(d.CreatedAt)...)

	trx.Put(storage.Pool.Datasets, datasetKey(d.Id), buffer)
}

func unpackDataset(datasetId uint64, buffer []byte) (*Dataset, error) {

	d := &Dataset{Id: datasetId}

	var n int
	if d.Name, n = util.UnpackString(buffer); 0 == n {
		return nil, fault.NotDatasetRecord
	}
	buffer = buffer[n:]

	if d.Description, n = util.UnpackString(buffer); 0 == n {
		return nil, fault.NotDatasetRecord
	}
	buffer = buffer[n:]

	if d.URI, n = util.UnpackString(buffer); 0 == n {
		return nil, fault.NotDatasetRecord
	}
	buffer = buffer[n:]

	value, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.NotDatasetRecord
	}
	d.Instrument = instrument.Instrument(value)
	buffer = buffer[n:]

	if d.FullAccessPrice, n = util.UnpackBig(buffer); 0 == n {
		return nil, fault.NotDatasetRecord
	}
	buffer = buffer[n:]

	if d.D2CAccessPrice, n = util.UnpackBig(buffer); 0 == n {
		return nil, fault.NotDatasetRecord
	}
	buffer = buffer[n:]

	tierCount, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.NotDatasetRecord
	}
	buffer = buffer[n:]

	d.ExpiryTiers = make([]ExpiryTier, tierCount)
	for i := uint64(0); i < tierCount; i += 1 {
		price, n := util.UnpackBig(buffer)
		if 0 == n {
			return nil, fault.NotDatasetRecord
		}
		buffer = buffer[n:]

		days, n := util.FromVarint64(buffer)
		if 0 == n {
			return nil, fault.NotDatasetRecord
		}
		buffer = buffer[n:]

		d.ExpiryTiers[i] = ExpiryTier{Price: price, DurationDays: days}
	}

	if d.FullBuyPrice, n = util.UnpackBig(buffer); 0 == n {
		return nil, fault.NotDatasetRecord
	}
	buffer = buffer[n:]

	if len(buffer) < 1 {
		return nil, fault.NotDatasetRecord
	}
	flags := buffer[0]
	d.FullBuyEnabled = 0 != flags&flagFullBuyEnabled
	d.CustomTokenEnabled = 0 != flags&flagCustomTokenEnabled
	d.Active = 0 != flags&flagActive
	buffer = buffer[1:]

	if d.CustomTokenId, n = util.FromVarint64(buffer); 0 == n {
		return nil, fault.NotDatasetRecord
	}
	buffer = buffer[n:]

	if d.Version, n = util.FromVarint64(buffer); 0 == n {
		return nil, fault.NotDatasetRecord
	}
	buffer = buffer[n:]

	if d.CreatedAt, n = util.FromVarint64(buffer); 0 == n {
		return nil, fault.NotDatasetRecord
	}

	return d, nil
}
