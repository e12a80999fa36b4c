// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package access_test

import (
	"math/big"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/catalog"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/instrument"
	"github.com/clusterprotocol/datasetd/settlement"
	"github.com/clusterprotocol/datasetd/storage"
	"github.com/clusterprotocol/datasetd/token"
)

const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test"
)

var (
	treasury = makeIdentity(0x01)
	seller   = makeIdentity(0x0a)
	buyer    = makeIdentity(0x0b)
	other    = makeIdentity(0x0c)
)

func makeIdentity(fill byte) identity.Identity {
	var id identity.Identity
	for i := range id {
		id[i] = fill
	}
	return id
}

func setup(t *testing.T) {
	removeFiles()
	_ = os.MkdirAll(testingDirName, 0700)

	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})

	err := storage.Initialise(databaseFileName, false)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	err = token.Initialise(token.Genesis{
		StableSupply:   big.NewInt(1_000_000_000000),
		ProtocolSupply: bigFromString("1000000000000000000000000"),
		Treasury:       treasury,
	})
	if nil != err {
		t.Fatalf("token initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	_ = token.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

func bigFromString(s string) *big.Int {
	value, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad big integer literal: " + s)
	}
	return value
}

// a stable-priced dataset owned by the seller
func stableDataset(t *testing.T) uint64 {
	return create(t, &catalog.CreateRequest{
		Name:            "WeatherData",
		Description:     "hourly weather observations",
		URI:             "ipfs://QmWeather",
		Instrument:      instrument.Stable,
		FullAccessPrice: big.NewInt(10_000000),
		D2CAccessPrice:  big.NewInt(5_000000),
		ExpiryTiers: []catalog.ExpiryTier{
			{Price: big.NewInt(1_000000), DurationDays: 30},
		},
	})
}

func create(t *testing.T, request *catalog.CreateRequest) uint64 {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	datasetId, err := catalog.Create(trx, seller, request)
	if nil != err {
		trx.Abort()
		t.Fatalf("create error: %s", err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
	return datasetId
}

// move stable tokens from the treasury and approve the engine
func fundStable(t *testing.T, holder identity.Identity, balance int64, allowance int64) {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	if balance > 0 {
		err = token.Transfer(trx, token.StableTokenId, treasury, holder, big.NewInt(balance))
		if nil != err {
			trx.Abort()
			t.Fatalf("funding transfer error: %s", err)
		}
	}
	if allowance > 0 {
		err = token.Approve(trx, holder, token.StableTokenId, settlement.Engine, big.NewInt(allowance))
		if nil != err {
			trx.Abort()
			t.Fatalf("funding approve error: %s", err)
		}
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

func stableBalance(t *testing.T, holder identity.Identity) *big.Int {
	balance, err := token.BalanceOf(nil, token.StableTokenId, holder)
	if nil != err {
		t.Fatalf("balance error: %s", err)
	}
	return balance
}
