// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package catalog

import (
	"math/big"
	"time"

	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/instrument"
	"github.com/clusterprotocol/datasetd/ownership"
	"github.com/clusterprotocol/datasetd/storage"
	"github.com/clusterprotocol/datasetd/token"
)

// CreateRequest - all creation-time dataset parameters
type CreateRequest struct {
	Name               string
	Description        string
	URI                string
	Instrument         instrument.Instrument
	FullAccessPrice    *big.Int
	D2CAccessPrice     *big.Int
	ExpiryTiers        []ExpiryTier
	FullBuyPrice       *big.Int
	FullBuyEnabled     bool
	CustomTokenEnabled bool
	CustomTokenSupply  *big.Int
}

// Create - record a new dataset, mint its ownership token and, for the
// custom instrument, issue its payment token
//
// all writes land in the supplied transaction so creation is atomic
func Create(trx storage.Transaction, caller identity.Identity, request *CreateRequest) (uint64, error) {

	if caller.IsZero() {
		return 0, fault.InvalidIdentity
	}
	if err := validate(request); nil != err {
		return 0, err
	}

	datasetId, found := trx.GetN(storage.Pool.Counters, nextDatasetIdKey)
	if !found {
		datasetId = 1
	}

	customTokenId := uint64(0)
	if instrument.Custom == request.Instrument {
		id, err := token.Issue(trx, request.Name, request.CustomTokenSupply, caller)
		if nil != err {
			return 0, err
		}
		customTokenId = id
	}

	ownership.Mint(trx, datasetId, caller)

	putDataset(trx, &Dataset{
		Id:                 datasetId,
		Name:               request.Name,
		Description:        request.Description,
		URI:                request.URI,
		Instrument:         request.Instrument,
		FullAccessPrice:    zeroIfNil(request.FullAccessPrice),
		D2CAccessPrice:     zeroIfNil(request.D2CAccessPrice),
		ExpiryTiers:        request.ExpiryTiers,
		FullBuyPrice:       zeroIfNil(request.FullBuyPrice),
		FullBuyEnabled:     request.FullBuyEnabled,
		CustomTokenEnabled: request.CustomTokenEnabled,
		Active:             true,
		CustomTokenId:      customTokenId,
		Version:            1,
		CreatedAt:          uint64(time.Now().Unix()),
	})

	trx.PutN(storage.Pool.Counters, nextDatasetIdKey, datasetId+1)

	return datasetId, nil
}

// creation-time constraints; violations are never partially applied
func validate(request *CreateRequest) error {

	switch {
	case "" == request.Name:
		return fault.NameRequired
	case "" == request.Description:
		return fault.DescriptionRequired
	case "" == request.URI:
		return fault.URIRequired
	}

	if !request.Instrument.IsValid() {
		return fault.InvalidInstrument
	}

	if isNegative(request.FullAccessPrice) ||
		isNegative(request.D2CAccessPrice) ||
		isNegative(request.FullBuyPrice) {
		return fault.InvalidPrice
	}

	for _, tier := range request.ExpiryTiers {
		if nil == tier.Price || tier.Price.Sign() < 0 {
			return fault.InvalidPrice
		}
		if 0 == tier.DurationDays || tier.DurationDays > MaximumTierDurationDays {
			return fault.InvalidDuration
		}
	}

	if instrument.Custom == request.Instrument {
		if !request.CustomTokenEnabled {
			return fault.InvalidConfiguration
		}
		if nil == request.CustomTokenSupply || request.CustomTokenSupply.Sign() <= 0 {
			return fault.InvalidConfiguration
		}
	} else if request.CustomTokenEnabled {
		return fault.InvalidConfiguration
	}

	if request.FullBuyEnabled {
		// full purchase transfers the ownership token, which cannot
		// coexist with a token supply fixed to the original owner
		if request.CustomTokenEnabled {
			return fault.InvalidConfiguration
		}
		if nil == request.FullBuyPrice || request.FullBuyPrice.Sign() <= 0 {
			return fault.InvalidConfiguration
		}
	}

	return nil
}

func zeroIfNil(value *big.Int) *big.Int {
	if nil == value {
		return big.NewInt(0)
	}
	return value
}

func isNegative(value *big.Int) bool {
	return nil != value && value.Sign() < 0
}
