// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - RPC handler for daemon status
package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/counter"
	"github.com/clusterprotocol/datasetd/rpc/ratelimit"
	"github.com/clusterprotocol/datasetd/storage"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	start   time.Time
	version string
	counter *counter.Counter
}

// New - create the handler
func New(log *logger.L, start time.Time, version string, rpcCount *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		start:   start,
		version: version,
		counter: rpcCount,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Connections uint64 `json:"connections"`
	Datasets    uint64 `json:"datasets"`
	Tokens      uint64 `json:"tokens"`
	Receipts    uint64 `json:"receipts"`
}

// Info - report daemon version, uptime and record counts
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Version = node.version
	reply.Uptime = time.Since(node.start).String()
	reply.Connections = node.counter.Uint64()
	reply.Datasets = recorded("dataset")
	// token ids start at 0, so the next id is also the count
	reply.Tokens, _ = storage.Pool.Counters.GetN([]byte("token"))
	reply.Receipts = recorded("receipt")
	return nil
}

// dataset and receipt ids start at 1, the counters hold the next id
func recorded(name string) uint64 {
	next, found := storage.Pool.Counters.GetN([]byte(name))
	if !found || 0 == next {
		return 0
	}
	return next - 1
}
