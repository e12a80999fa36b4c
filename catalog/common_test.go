// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package catalog_test

import (
	"math/big"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/catalog"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/instrument"
	"github.com/clusterprotocol/datasetd/storage"
	"github.com/clusterprotocol/datasetd/token"
)

const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test"
)

var (
	alice = makeIdentity(0x0a)
	bob   = makeIdentity(0x0b)
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

	err = token.Initialise(token.Genesis{})
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

// a plain stable-priced dataset request
func stableRequest() *catalog.CreateRequest {
	return &catalog.CreateRequest{
		Name:            "WeatherData",
		Description:     "hourly weather observations",
		URI:             "ipfs://QmWeather",
		Instrument:      instrument.Stable,
		FullAccessPrice: big.NewInt(10_000000),
		D2CAccessPrice:  big.NewInt(5_000000),
		ExpiryTiers: []catalog.ExpiryTier{
			{Price: big.NewInt(1_000000), DurationDays: 30},
			{Price: big.NewInt(2_500000), DurationDays: 90},
		},
	}
}

func createDataset(t *testing.T, caller identity.Identity, request *catalog.CreateRequest) uint64 {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	datasetId, err := catalog.Create(trx, caller, request)
	if nil != err {
		trx.Abort()
		t.Fatalf("create error: %s", err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
	return datasetId
}
