// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package catalog_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clusterprotocol/datasetd/catalog"
	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/instrument"
	"github.com/clusterprotocol/datasetd/ownership"
	"github.com/clusterprotocol/datasetd/storage"
	"github.com/clusterprotocol/datasetd/token"
)

func TestCreateDataset(t *testing.T) {
	setup(t)
	defer teardown(t)

	datasetId := createDataset(t, alice, stableRequest())
	assert.Equal(t, uint64(1), datasetId, "ids must start at 1")

	d, err := catalog.Get(datasetId)
	assert.Nil(t, err, "get failed")
	assert.Equal(t, "WeatherData", d.Name, "wrong name")
	assert.Equal(t, instrument.Stable, d.Instrument, "wrong instrument")
	assert.Equal(t, big.NewInt(10_000000), d.FullAccessPrice, "wrong full price")
	assert.Equal(t, 2, len(d.ExpiryTiers), "wrong tier count")
	assert.Equal(t, uint64(30), d.ExpiryTiers[0].DurationDays, "wrong tier duration")
	assert.True(t, d.Active, "new dataset not active")
	assert.Equal(t, uint64(1), d.Version, "wrong initial version")
	assert.Equal(t, uint64(0), d.CustomTokenId, "custom token on non-custom dataset")

	// the ownership token is minted to the creator
	owner, err := ownership.OwnerOf(nil, datasetId)
	assert.Nil(t, err, "ownerOf failed")
	assert.Equal(t, alice, owner, "wrong minted owner")

	// ids are sequential
	second := createDataset(t, bob, stableRequest())
	assert.Equal(t, uint64(2), second, "ids not sequential")
}

func TestCreateCustomInstrument(t *testing.T) {
	setup(t)
	defer teardown(t)

	supply := new(big.Int).Mul(big.NewInt(1_000_000), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

	request := stableRequest()
	request.Instrument = instrument.Custom
	request.CustomTokenEnabled = true
	request.CustomTokenSupply = supply

	datasetId := createDataset(t, alice, request)

	d, _ := catalog.Get(datasetId)
	assert.NotEqual(t, uint64(0), d.CustomTokenId, "custom token id not set")

	// the whole supply sits with the owner and nobody else
	balance, err := token.BalanceOf(nil, d.CustomTokenId, alice)
	assert.Nil(t, err, "balance failed")
	assert.Equal(t, supply, balance, "owner does not hold the supply")

	balance, _ = token.BalanceOf(nil, d.CustomTokenId, bob)
	assert.Equal(t, big.NewInt(0), balance, "stray balance")

	custom, _ := token.Get(d.CustomTokenId)
	assert.Equal(t, "Dataset Token WeatherData", custom.Name, "wrong token name")
	assert.Equal(t, "DTWeatherData", custom.Symbol, "wrong token symbol")
}

func TestCreateValidation(t *testing.T) {
	setup(t)
	defer teardown(t)

	testCases := []struct {
		name     string
		modify   func(*catalog.CreateRequest)
		expected error
	}{
		{"empty name", func(r *catalog.CreateRequest) { r.Name = "" }, fault.NameRequired},
		{"empty description", func(r *catalog.CreateRequest) { r.Description = "" }, fault.DescriptionRequired},
		{"empty uri", func(r *catalog.CreateRequest) { r.URI = "" }, fault.URIRequired},
		{"bad instrument", func(r *catalog.CreateRequest) { r.Instrument = instrument.Instrument(9) }, fault.InvalidInstrument},
		{"negative price", func(r *catalog.CreateRequest) { r.FullAccessPrice = big.NewInt(-1) }, fault.InvalidPrice},
		{"zero tier duration", func(r *catalog.CreateRequest) {
			r.ExpiryTiers = []catalog.ExpiryTier{{Price: big.NewInt(1), DurationDays: 0}}
		}, fault.InvalidDuration},
		{"excessive tier duration", func(r *catalog.CreateRequest) {
			// a duration whose expiry timestamp would wrap uint64
			r.ExpiryTiers = []catalog.ExpiryTier{{Price: big.NewInt(1), DurationDays: 213503982334601}}
		}, fault.InvalidDuration},
		{"duration just over the bound", func(r *catalog.CreateRequest) {
			r.ExpiryTiers = []catalog.ExpiryTier{{Price: big.NewInt(1), DurationDays: catalog.MaximumTierDurationDays + 1}}
		}, fault.InvalidDuration},
		{"custom without flag", func(r *catalog.CreateRequest) {
			r.Instrument = instrument.Custom
			r.CustomTokenSupply = big.NewInt(1)
		}, fault.InvalidConfiguration},
		{"custom without supply", func(r *catalog.CreateRequest) {
			r.Instrument = instrument.Custom
			r.CustomTokenEnabled = true
		}, fault.InvalidConfiguration},
		{"custom flag on stable", func(r *catalog.CreateRequest) { r.CustomTokenEnabled = true }, fault.InvalidConfiguration},
		{"full buy without price", func(r *catalog.CreateRequest) { r.FullBuyEnabled = true }, fault.InvalidConfiguration},
		{"full buy with custom token", func(r *catalog.CreateRequest) {
			r.Instrument = instrument.Custom
			r.CustomTokenEnabled = true
			r.CustomTokenSupply = big.NewInt(1)
			r.FullBuyEnabled = true
			r.FullBuyPrice = big.NewInt(1)
		}, fault.InvalidConfiguration},
	}

	for _, testCase := range testCases {
		request := stableRequest()
		testCase.modify(request)

		trx, _ := storage.NewDBTransaction()
		_, err := catalog.Create(trx, alice, request)
		trx.Abort()
		assert.Equal(t, testCase.expected, err, testCase.name)
	}

	// nothing may be partially applied
	_, err := catalog.Get(1)
	assert.Equal(t, fault.DatasetNotFound, err, "rejected creation left a record")
}

func TestUpdateURI(t *testing.T) {
	setup(t)
	defer teardown(t)

	datasetId := createDataset(t, alice, stableRequest())

	trx, _ := storage.NewDBTransaction()
	err := catalog.UpdateURI(trx, alice, datasetId, "ipfs://QmUpdated")
	assert.Nil(t, err, "update failed")
	_ = trx.Commit()

	d, _ := catalog.Get(datasetId)
	assert.Equal(t, "ipfs://QmUpdated", d.URI, "uri not updated")
	assert.Equal(t, uint64(2), d.Version, "version not bumped")

	trx, _ = storage.NewDBTransaction()
	err = catalog.UpdateURI(trx, bob, datasetId, "ipfs://QmEvil")
	assert.Equal(t, fault.Unauthorized, err, "non-owner update allowed")

	err = catalog.UpdateURI(trx, alice, datasetId, "")
	assert.Equal(t, fault.URIRequired, err, "empty uri allowed")
	trx.Abort()
}

func TestUpdateAuthorizationFollowsTransfer(t *testing.T) {
	setup(t)
	defer teardown(t)

	datasetId := createDataset(t, alice, stableRequest())

	trx, _ := storage.NewDBTransaction()
	_ = ownership.Transfer(trx, alice, bob, datasetId)
	_ = trx.Commit()

	trx, _ = storage.NewDBTransaction()
	err := catalog.UpdateURI(trx, alice, datasetId, "ipfs://QmStale")
	assert.Equal(t, fault.Unauthorized, err, "old owner still authorised")

	err = catalog.UpdateURI(trx, bob, datasetId, "ipfs://QmNew")
	assert.Nil(t, err, "new owner not authorised")
	_ = trx.Commit()
}

func TestSetActive(t *testing.T) {
	setup(t)
	defer teardown(t)

	datasetId := createDataset(t, alice, stableRequest())

	trx, _ := storage.NewDBTransaction()
	err := catalog.SetActive(trx, alice, datasetId, false)
	assert.Nil(t, err, "deactivate failed")
	_ = trx.Commit()

	d, _ := catalog.Get(datasetId)
	assert.False(t, d.Active, "dataset still active")
	assert.Equal(t, uint64(2), d.Version, "version not bumped")

	// no-op toggle must not bump the version
	trx, _ = storage.NewDBTransaction()
	err = catalog.SetActive(trx, alice, datasetId, false)
	assert.Nil(t, err, "repeated deactivate failed")
	_ = trx.Commit()

	d, _ = catalog.Get(datasetId)
	assert.Equal(t, uint64(2), d.Version, "no-op toggle bumped version")

	trx, _ = storage.NewDBTransaction()
	err = catalog.SetActive(trx, bob, datasetId, true)
	assert.Equal(t, fault.Unauthorized, err, "non-owner toggle allowed")
	trx.Abort()
}

func TestRecordRoundTrip(t *testing.T) {
	setup(t)
	defer teardown(t)

	request := stableRequest()
	request.FullBuyEnabled = true
	request.FullBuyPrice = big.NewInt(100_000000)

	datasetId := createDataset(t, alice, request)

	d, err := catalog.Get(datasetId)
	assert.Nil(t, err, "get failed")
	assert.Equal(t, request.Description, d.Description, "wrong description")
	assert.Equal(t, request.D2CAccessPrice, d.D2CAccessPrice, "wrong d2c price")
	assert.Equal(t, request.FullBuyPrice, d.FullBuyPrice, "wrong full buy price")
	assert.True(t, d.FullBuyEnabled, "full buy flag lost")
	assert.Equal(t, request.ExpiryTiers, d.ExpiryTiers, "tiers lost")
	assert.NotEqual(t, uint64(0), d.CreatedAt, "creation time missing")
}
