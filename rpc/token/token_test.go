// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/rpc/fixtures"
	rpctoken "github.com/clusterprotocol/datasetd/rpc/token"
	"github.com/clusterprotocol/datasetd/storage"
	"github.com/clusterprotocol/datasetd/token"
)

var (
	treasury = identity.Identity{0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01,
		0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01}
	alice = identity.Identity{0x0a, 0x0a, 0x0a, 0x0a, 0x0a, 0x0a, 0x0a, 0x0a, 0x0a, 0x0a,
		0x0a, 0x0a, 0x0a, 0x0a, 0x0a, 0x0a, 0x0a, 0x0a, 0x0a, 0x0a}
)

func setup(t *testing.T) {
	fixtures.SetupTestLogger()

	if err := storage.Initialise("testing/test", false); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	err := token.Initialise(token.Genesis{
		StableSupply: big.NewInt(1000_000000),
		Treasury:     treasury,
	})
	if nil != err {
		t.Fatalf("token initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	_ = token.Finalise()
	storage.Finalise()
	fixtures.TeardownTestLogger()
}

func TestTokenHandler(t *testing.T) {
	setup(t)
	defer teardown(t)

	handler := rpctoken.New(logger.New(fixtures.LogCategory))

	var info rpctoken.GetReply
	err := handler.Get(&rpctoken.GetArguments{TokenId: token.StableTokenId}, &info)
	assert.Nil(t, err, "get failed")
	assert.Equal(t, "USDT", info.Token.Symbol, "wrong symbol")

	err = handler.Get(&rpctoken.GetArguments{TokenId: 99}, &info)
	assert.Equal(t, fault.TokenNotFound, err, "missing token not detected")

	var transferred rpctoken.TransferReply
	err = handler.Transfer(&rpctoken.TransferArguments{
		Caller:  treasury,
		TokenId: token.StableTokenId,
		To:      alice,
		Amount:  big.NewInt(25_000000),
	}, &transferred)
	assert.Nil(t, err, "transfer failed")
	assert.Equal(t, big.NewInt(975_000000), transferred.Balance, "wrong remaining balance")

	var balance rpctoken.BalanceReply
	err = handler.Balance(&rpctoken.BalanceArguments{TokenId: token.StableTokenId, Holder: alice}, &balance)
	assert.Nil(t, err, "balance failed")
	assert.Equal(t, big.NewInt(25_000000), balance.Balance, "wrong balance")

	var approved rpctoken.ApproveReply
	err = handler.Approve(&rpctoken.ApproveArguments{
		Caller:  alice,
		TokenId: token.StableTokenId,
		Spender: treasury,
		Amount:  big.NewInt(10_000000),
	}, &approved)
	assert.Nil(t, err, "approve failed")

	var allowance rpctoken.AllowanceReply
	err = handler.Allowance(&rpctoken.AllowanceArguments{
		TokenId: token.StableTokenId,
		Owner:   alice,
		Spender: treasury,
	}, &allowance)
	assert.Nil(t, err, "allowance failed")
	assert.Equal(t, big.NewInt(10_000000), allowance.Allowance, "wrong allowance")
}
