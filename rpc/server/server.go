// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - assemble the RPC server from its handlers
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/counter"
	"github.com/clusterprotocol/datasetd/rpc/access"
	"github.com/clusterprotocol/datasetd/rpc/dataset"
	"github.com/clusterprotocol/datasetd/rpc/node"
	"github.com/clusterprotocol/datasetd/rpc/owner"
	"github.com/clusterprotocol/datasetd/rpc/token"
)

// Create - register all handlers on a fresh RPC server
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(dataset.New(log))
	_ = server.Register(owner.New(log))
	_ = server.Register(access.New(log))
	_ = server.Register(token.New(log))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
