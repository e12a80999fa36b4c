// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/storage"
	"github.com/clusterprotocol/datasetd/util"
)

func tokenKey(tokenId uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, tokenId)
	return key
}

func balanceKey(tokenId uint64, holder identity.Identity) []byte {
	return append(tokenKey(tokenId), holder.Bytes()...)
}

func allowanceKey(tokenId uint64, owner identity.Identity, spender identity.Identity) []byte {
	key := append(tokenKey(tokenId), owner.Bytes()...)
	return append(key, spender.Bytes()...)
}

// BalanceOf - current balance, zero for an unknown holder
//
// a nil trx reads committed state
func BalanceOf(trx storage.Transaction, tokenId uint64, holder identity.Identity) (*big.Int, error) {
	if nil == trx {
		if !storage.Pool.Tokens.Has(tokenKey(tokenId)) {
			return nil, fault.TokenNotFound
		}
		return unpackAmount(storage.Pool.Balances.Get(balanceKey(tokenId, holder))), nil
	}
	if !Exists(trx, tokenId) {
		return nil, fault.TokenNotFound
	}
	return getBalance(trx, tokenId, holder), nil
}

// Allowance - remaining amount a spender may pull from an owner
func Allowance(trx storage.Transaction, tokenId uint64, owner identity.Identity, spender identity.Identity) (*big.Int, error) {
	if nil == trx {
		if !storage.Pool.Tokens.Has(tokenKey(tokenId)) {
			return nil, fault.TokenNotFound
		}
		return unpackAmount(storage.Pool.Allowances.Get(allowanceKey(tokenId, owner, spender))), nil
	}
	if !Exists(trx, tokenId) {
		return nil, fault.TokenNotFound
	}
	return getAllowance(trx, tokenId, owner, spender), nil
}

// Approve - set the allowance for a spender to an absolute amount
//
// zero clears the allowance
func Approve(trx storage.Transaction, caller identity.Identity, tokenId uint64, spender identity.Identity, amount *big.Int) error {
	if nil == amount || amount.Sign() < 0 {
		return fault.InvalidAmount
	}
	if spender.IsZero() {
		return fault.InvalidIdentity
	}
	if !Exists(trx, tokenId) {
		return fault.TokenNotFound
	}

	key := allowanceKey(tokenId, caller, spender)
	if 0 == amount.Sign() {
		trx.Delete(storage.Pool.Allowances, key)
	} else {
		trx.Put(storage.Pool.Allowances, key, util.PackBig([]byte{}, amount))
	}
	return nil
}

// Transfer - move tokens from one holder to another
func Transfer(trx storage.Transaction, tokenId uint64, from identity.Identity, to identity.Identity, amount *big.Int) error {
	if nil == amount || amount.Sign() <= 0 {
		return fault.InvalidAmount
	}
	if to.IsZero() {
		return fault.TransferToZeroIdentity
	}
	if !Exists(trx, tokenId) {
		return fault.TokenNotFound
	}

	balance := getBalance(trx, tokenId, from)
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: required: %s balance: %s", fault.InsufficientBalance, amount, balance)
	}

	setBalance(trx, tokenId, from, new(big.Int).Sub(balance, amount))
	credit(trx, tokenId, to, amount)
	return nil
}

// TransferFrom - pull tokens under a standing allowance
//
// the allowance is checked before the balance so the two failures
// stay distinguishable; both are decremented on success
func TransferFrom(trx storage.Transaction, spender identity.Identity, tokenId uint64, from identity.Identity, to identity.Identity, amount *big.Int) error {
	if nil == amount || amount.Sign() <= 0 {
		return fault.InvalidAmount
	}
	if to.IsZero() {
		return fault.TransferToZeroIdentity
	}
	if !Exists(trx, tokenId) {
		return fault.TokenNotFound
	}

	allowance := getAllowance(trx, tokenId, from, spender)
	if allowance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: required: %s allowance: %s", fault.InsufficientAllowance, amount, allowance)
	}

	balance := getBalance(trx, tokenId, from)
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: required: %s balance: %s", fault.InsufficientBalance, amount, balance)
	}

	remaining := new(big.Int).Sub(allowance, amount)
	key := allowanceKey(tokenId, from, spender)
	if 0 == remaining.Sign() {
		trx.Delete(storage.Pool.Allowances, key)
	} else {
		trx.Put(storage.Pool.Allowances, key, util.PackBig([]byte{}, remaining))
	}

	setBalance(trx, tokenId, from, new(big.Int).Sub(balance, amount))
	credit(trx, tokenId, to, amount)
	return nil
}

// MintNative - credit freshly attached native coin to a holder
//
// only the settlement engine calls this, when an exact attached value
// accompanies a native purchase; the native supply grows to match
func MintNative(trx storage.Transaction, to identity.Identity, amount *big.Int) error {
	if nil == amount || amount.Sign() <= 0 {
		return fault.InvalidAmount
	}

	packed := trx.Get(storage.Pool.Tokens, tokenKey(NativeTokenId))
	if nil == packed {
		return fault.TokenNotFound
	}
	native, err := unpackToken(NativeTokenId, packed)
	if nil != err {
		return err
	}
	native.TotalSupply = new(big.Int).Add(native.TotalSupply, amount)
	putToken(trx, native)

	credit(trx, NativeTokenId, to, amount)
	return nil
}

func getBalance(trx storage.Transaction, tokenId uint64, holder identity.Identity) *big.Int {
	return unpackAmount(trx.Get(storage.Pool.Balances, balanceKey(tokenId, holder)))
}

func setBalance(trx storage.Transaction, tokenId uint64, holder identity.Identity, amount *big.Int) {
	key := balanceKey(tokenId, holder)
	if 0 == amount.Sign() {
		trx.Delete(storage.Pool.Balances, key)
	} else {
		trx.Put(storage.Pool.Balances, key, util.PackBig([]byte{}, amount))
	}
}

func credit(trx storage.Transaction, tokenId uint64, to identity.Identity, amount *big.Int) {
	balance := getBalance(trx, tokenId, to)
	setBalance(trx, tokenId, to, new(big.Int).Add(balance, amount))
}

func getAllowance(trx storage.Transaction, tokenId uint64, owner identity.Identity, spender identity.Identity) *big.Int {
	return unpackAmount(trx.Get(storage.Pool.Allowances, allowanceKey(tokenId, owner, spender)))
}

func unpackAmount(packed []byte) *big.Int {
	if nil == packed {
		return big.NewInt(0)
	}
	amount, n := util.UnpackBig(packed)
	if 0 == n {
		return big.NewInt(0)
	}
	return amount
}
