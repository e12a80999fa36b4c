// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/storage"
)

const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test"
)

var (
	alice   = makeIdentity(0x0a)
	bob     = makeIdentity(0x0b)
	charlie = makeIdentity(0x0c)
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
}

func teardown(t *testing.T) {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}
