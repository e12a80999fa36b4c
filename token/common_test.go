// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token_test

import (
	"math/big"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/storage"
	"github.com/clusterprotocol/datasetd/token"
)

const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test"
)

var (
	treasury = makeIdentity(0x01)
	alice    = makeIdentity(0x0a)
	bob      = makeIdentity(0x0b)
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

	// 1000 USDT at 6 decimals, 1000 CLUSTER at 18 decimals
	err = token.Initialise(token.Genesis{
		StableSupply:   big.NewInt(1000_000000),
		ProtocolSupply: bigFromString("1000000000000000000000"),
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
