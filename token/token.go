// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package token - fungible token ledger
//
// holds the payment instruments as internal token ledgers: token id 0
// is the native coin, ids 1 and 2 are the stable and protocol tokens
// registered from configuration at startup, and each custom dataset
// token gets the next sequential id.  Balances and allowances are
// arbitrary precision minor units.
package token

import (
	"math/big"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/storage"
	"github.com/clusterprotocol/datasetd/util"
)

// well known token ids
const (
	NativeTokenId   uint64 = 0
	StableTokenId   uint64 = 1
	ProtocolTokenId uint64 = 2
)

// counter record for the next custom token id
var nextTokenIdKey = []byte("token")

// Token - descriptive token record
type Token struct {
	Id          uint64   `json:"id"`
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Decimals    uint8    `json:"decimals"`
	TotalSupply *big.Int `json:"totalSupply"`
}

// Genesis - initial token ledger state from configuration
type Genesis struct {
	StableSupply   *big.Int
	ProtocolSupply *big.Int
	Treasury       identity.Identity
}

type tokenData struct {
	sync.RWMutex
	log         *logger.L
	initialised bool
}

var globalData tokenData

// Initialise - open the token ledger, registering the built-in tokens
// on a fresh database
func Initialise(genesis Genesis) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("token")
	globalData.log.Info("starting…")

	if _, found := storage.Pool.Counters.GetN(nextTokenIdKey); !found {
		if err := registerBuiltins(genesis); nil != err {
			return err
		}
	}

	globalData.initialised = true
	return nil
}

// Finalise - shut down the token ledger
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}

// first run: mint the configured stable and protocol supplies to the
// treasury and reserve ids 0…2
func registerBuiltins(genesis Genesis) error {

	stableSupply := genesis.StableSupply
	if nil == stableSupply {
		stableSupply = big.NewInt(0)
	}
	protocolSupply := genesis.ProtocolSupply
	if nil == protocolSupply {
		protocolSupply = big.NewInt(0)
	}
	if stableSupply.Sign() < 0 || protocolSupply.Sign() < 0 {
		return fault.InvalidConfiguration
	}
	if genesis.Treasury.IsZero() && (stableSupply.Sign() > 0 || protocolSupply.Sign() > 0) {
		return fault.InvalidConfiguration
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	putToken(trx, &Token{
		Id:          NativeTokenId,
		Name:        "Native Coin",
		Symbol:      "NATIVE",
		Decimals:    18,
		TotalSupply: big.NewInt(0),
	})
	putToken(trx, &Token{
		Id:          StableTokenId,
		Name:        "Tether USD",
		Symbol:      "USDT",
		Decimals:    6,
		TotalSupply: stableSupply,
	})
	putToken(trx, &Token{
		Id:          ProtocolTokenId,
		Name:        "Cluster Protocol",
		Symbol:      "CLUSTER",
		Decimals:    18,
		TotalSupply: protocolSupply,
	})

	if stableSupply.Sign() > 0 {
		setBalance(trx, StableTokenId, genesis.Treasury, stableSupply)
	}
	if protocolSupply.Sign() > 0 {
		setBalance(trx, ProtocolTokenId, genesis.Treasury, protocolSupply)
	}

	trx.PutN(storage.Pool.Counters, nextTokenIdKey, ProtocolTokenId+1)

	return trx.Commit()
}

// Issue - mint a fixed supply custom token wholly to one holder
//
// naming follows the dataset: "Dataset Token <name>" / "DT<name>";
// returns the new token id
func Issue(trx storage.Transaction, datasetName string, supply *big.Int, holder identity.Identity) (uint64, error) {
	if nil == supply || supply.Sign() <= 0 {
		return 0, fault.InvalidAmount
	}
	if holder.IsZero() {
		return 0, fault.InvalidIdentity
	}

	tokenId, found := trx.GetN(storage.Pool.Counters, nextTokenIdKey)
	if !found {
		return 0, fault.NotInitialised
	}

	putToken(trx, &Token{
		Id:          tokenId,
		Name:        "Dataset Token " + datasetName,
		Symbol:      "DT" + datasetName,
		Decimals:    18,
		TotalSupply: supply,
	})
	setBalance(trx, tokenId, holder, supply)
	trx.PutN(storage.Pool.Counters, nextTokenIdKey, tokenId+1)

	return tokenId, nil
}

// Get - read a token record from committed state
func Get(tokenId uint64) (*Token, error) {
	packed := storage.Pool.Tokens.Get(tokenKey(tokenId))
	if nil == packed {
		return nil, fault.TokenNotFound
	}
	return unpackToken(tokenId, packed)
}

// Exists - check a token id inside a transaction
func Exists(trx storage.Transaction, tokenId uint64) bool {
	return trx.Has(storage.Pool.Tokens, tokenKey(tokenId))
}

func putToken(trx storage.Transaction, t *Token) {
	buffer := []byte{}
	buffer = util.PackString(buffer, t.Name)
	buffer = util.PackString(buffer, t.Symbol)
	buffer = append(buffer, t.Decimals)
	buffer = util.PackBig(buffer, t.TotalSupply)
	trx.Put(storage.Pool.Tokens, tokenKey(t.Id), buffer)
}

func unpackToken(tokenId uint64, buffer []byte) (*Token, error) {
	name, n := util.UnpackString(buffer)
	if 0 == n {
		return nil, fault.NotTokenRecord
	}
	buffer = buffer[n:]

	symbol, n := util.UnpackString(buffer)
	if 0 == n {
		return nil, fault.NotTokenRecord
	}
	buffer = buffer[n:]

	if len(buffer) < 1 {
		return nil, fault.NotTokenRecord
	}
	decimals := buffer[0]
	buffer = buffer[1:]

	supply, n := util.UnpackBig(buffer)
	if 0 == n {
		return nil, fault.NotTokenRecord
	}

	return &Token{
		Id:          tokenId,
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		TotalSupply: supply,
	}, nil
}
