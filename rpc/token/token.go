// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package token - RPC handler for the fungible token ledgers
package token

import (
	"math/big"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/rpc/ratelimit"
	"github.com/clusterprotocol/datasetd/storage"
	ledger "github.com/clusterprotocol/datasetd/token"
)

const (
	rateLimitToken = 200
	rateBurstToken = 100
)

// Token - type for the RPC
type Token struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the handler
func New(log *logger.L) *Token {
	return &Token{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitToken, rateBurstToken),
	}
}

// GetArguments - arguments for RPC
type GetArguments struct {
	TokenId uint64 `json:"tokenId,string"`
}

// GetReply - result from RPC
type GetReply struct {
	Token *ledger.Token `json:"token"`
}

// Get - fetch one token record
func (t *Token) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	record, err := ledger.Get(arguments.TokenId)
	if nil != err {
		return err
	}

	reply.Token = record
	return nil
}

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	TokenId uint64            `json:"tokenId,string"`
	Holder  identity.Identity `json:"holder"`
}

// BalanceReply - result from RPC
type BalanceReply struct {
	Balance *big.Int `json:"balance"`
}

// Balance - current balance of a holder
func (t *Token) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	balance, err := ledger.BalanceOf(nil, arguments.TokenId, arguments.Holder)
	if nil != err {
		return err
	}

	reply.Balance = balance
	return nil
}

// AllowanceArguments - arguments for RPC
type AllowanceArguments struct {
	TokenId uint64            `json:"tokenId,string"`
	Owner   identity.Identity `json:"owner"`
	Spender identity.Identity `json:"spender"`
}

// AllowanceReply - result from RPC
type AllowanceReply struct {
	Allowance *big.Int `json:"allowance"`
}

// Allowance - remaining amount a spender may pull
func (t *Token) Allowance(arguments *AllowanceArguments, reply *AllowanceReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	allowance, err := ledger.Allowance(nil, arguments.TokenId, arguments.Owner, arguments.Spender)
	if nil != err {
		return err
	}

	reply.Allowance = allowance
	return nil
}

// ApproveArguments - arguments for RPC
type ApproveArguments struct {
	Caller  identity.Identity `json:"caller"`
	TokenId uint64            `json:"tokenId,string"`
	Spender identity.Identity `json:"spender"`
	Amount  *big.Int          `json:"amount"`
}

// ApproveReply - result from RPC
type ApproveReply struct {
	Allowance *big.Int `json:"allowance"`
}

// Approve - set an absolute allowance for a spender
func (t *Token) Approve(arguments *ApproveArguments, reply *ApproveReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Token.Approve: %d %s → %s", arguments.TokenId, arguments.Caller, arguments.Spender)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = ledger.Approve(trx, arguments.Caller, arguments.TokenId, arguments.Spender, arguments.Amount)
	if nil != err {
		trx.Abort()
		return err
	}

	if err := trx.Commit(); nil != err {
		return err
	}

	reply.Allowance = arguments.Amount
	return nil
}

// TransferArguments - arguments for RPC
type TransferArguments struct {
	Caller  identity.Identity `json:"caller"`
	TokenId uint64            `json:"tokenId,string"`
	To      identity.Identity `json:"to"`
	Amount  *big.Int          `json:"amount"`
}

// TransferReply - result from RPC
type TransferReply struct {
	Balance *big.Int `json:"balance"`
}

// Transfer - move tokens from the caller to another holder
func (t *Token) Transfer(arguments *TransferArguments, reply *TransferReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Token.Transfer: %d %s → %s", arguments.TokenId, arguments.Caller, arguments.To)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = ledger.Transfer(trx, arguments.TokenId, arguments.Caller, arguments.To, arguments.Amount)
	if nil != err {
		trx.Abort()
		return err
	}

	balance, err := ledger.BalanceOf(trx, arguments.TokenId, arguments.Caller)
	if nil != err {
		trx.Abort()
		return err
	}

	if err := trx.Commit(); nil != err {
		return err
	}

	reply.Balance = balance
	return nil
}
