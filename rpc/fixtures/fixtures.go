// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test helpers for the RPC packages
package fixtures

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

var (
	certificateOnce sync.Once
	certificatePEM  string
	keyPEM          string
)

// Certificate - a self-signed test certificate in PEM form
func Certificate() string {
	makeCertificate()
	return certificatePEM
}

// Key - the private key matching Certificate
func Key() string {
	makeCertificate()
	return keyPEM
}

func makeCertificate() {
	certificateOnce.Do(func() {
		validUntil := time.Now().Add(24 * time.Hour)
		cert, key, err := certgen.NewTLSCertPair("datasetd test", validUntil, false, nil)
		if nil != err {
			panic("cannot generate test certificate: " + err.Error())
		}
		certificatePEM = string(cert)
		keyPEM = string(key)
	})
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
