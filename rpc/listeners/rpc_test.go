// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/counter"
	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/rpc/certificate"
	"github.com/clusterprotocol/datasetd/rpc/fixtures"
	"github.com/clusterprotocol/datasetd/rpc/listeners"
)

type Add struct{}

type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func TestRPCListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port := rand.Intn(30000) + 30000
	listen := fmt.Sprintf("127.0.0.1:%d", port)

	configuration := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{listen},
	}

	count := counter.Counter(0)

	s := rpc.NewServer()
	err := s.Register(Add{})
	assert.Nil(t, err, "register failed")

	log := logger.New(fixtures.LogCategory)
	tlsConfiguration, fingerprint, err := certificate.Get(log, "test", fixtures.Certificate(), fixtures.Key())
	assert.Nil(t, err, "certificate failed")

	l, err := listeners.NewRPC(&configuration, log, &count, s, tlsConfiguration, fingerprint)
	assert.Nil(t, err, "NewRPC failed")

	err = l.Serve()
	assert.Nil(t, err, "serve failed")
	time.Sleep(50 * time.Millisecond)

	conn, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	assert.Nil(t, err, "dial failed")
	defer conn.Close()

	client := jsonrpc.NewClient(conn)
	defer client.Close()

	var sum int
	err = client.Call("Add.Add", &AddArg{A: 20, B: 22}, &sum)
	assert.Nil(t, err, "call failed")
	assert.Equal(t, 42, sum, "wrong sum")
}

func TestNewRPCValidation(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	count := counter.Counter(0)
	s := rpc.NewServer()

	// no connection limit
	_, err := listeners.NewRPC(&listeners.RPCConfiguration{
		Listen: []string{"127.0.0.1:12345"},
	}, log, &count, s, &tls.Config{}, [32]byte{})
	assert.Equal(t, fault.MissingParameters, err, "zero connections accepted")

	// no listen addresses
	_, err = listeners.NewRPC(&listeners.RPCConfiguration{
		MaximumConnections: 5,
	}, log, &count, s, &tls.Config{}, [32]byte{})
	assert.Equal(t, fault.MissingParameters, err, "empty listen accepted")

	// unparsable address
	_, err = listeners.NewRPC(&listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"not-an-ip:1234"},
	}, log, &count, s, &tls.Config{}, [32]byte{})
	assert.Equal(t, fault.InvalidIpAddress, err, "bad address accepted")
}
