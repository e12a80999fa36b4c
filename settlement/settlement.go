// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package settlement - payment collection and full dataset purchase
//
// every collection is dispatched on the dataset's payment instrument
// and forwarded immediately to the current dataset owner; the engine
// never holds funds of its own.  Callers run Collect inside the same
// transaction as the grant or transfer it pays for, so payment and
// rights move together or not at all.
package settlement

import (
	"fmt"
	"math/big"

	"github.com/clusterprotocol/datasetd/catalog"
	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/instrument"
	"github.com/clusterprotocol/datasetd/ownership"
	"github.com/clusterprotocol/datasetd/storage"
	"github.com/clusterprotocol/datasetd/token"
)

// Engine - the identity payers approve for allowance pulls and owners
// approve for full purchase transfers
var Engine = identity.Identity{
	's', 'e', 't', 't', 'l', 'e', 'm', 'e', 'n', 't',
	'-', 'e', 'n', 'g', 'i', 'n', 'e', 0x00, 0x00, 0x01,
}

// Collect - take exactly amount from the payer and forward it to the
// current dataset owner
//
// NATIVE requires the attached value to equal amount exactly; the
// token instruments require a standing allowance from the payer to
// the Engine identity and reject any attached value.  A zero amount
// collects nothing but still enforces the attached value rules.
func Collect(trx storage.Transaction, payer identity.Identity, d *catalog.Dataset, amount *big.Int, attachedValue *big.Int) error {

	if nil == amount || amount.Sign() < 0 {
		return fault.InvalidAmount
	}

	owner, err := ownership.OwnerOf(trx, d.Id)
	if nil != err {
		return err
	}

	attached := attachedValue
	if nil == attached {
		attached = big.NewInt(0)
	}

	switch d.Instrument {

	case instrument.Native:
		if 0 != attached.Cmp(amount) {
			return fmt.Errorf("%w: expected: %s provided: %s", fault.IncorrectPaymentAmount, amount, attached)
		}
		if 0 == amount.Sign() {
			return nil
		}
		return token.MintNative(trx, owner, amount)

	case instrument.Stable:
		return pull(trx, token.StableTokenId, payer, owner, amount, attached)

	case instrument.Protocol:
		return pull(trx, token.ProtocolTokenId, payer, owner, amount, attached)

	case instrument.Custom:
		return pull(trx, d.CustomTokenId, payer, owner, amount, attached)

	default:
		return fault.InvalidInstrument
	}
}

// pull exactly amount through the payer's allowance to the engine
func pull(trx storage.Transaction, tokenId uint64, payer identity.Identity, owner identity.Identity, amount *big.Int, attached *big.Int) error {
	if 0 != attached.Sign() {
		return fault.WrongInstrumentForValue
	}
	if 0 == amount.Sign() {
		return nil
	}
	return token.TransferFrom(trx, Engine, tokenId, payer, owner, amount)
}

// PurchaseFullDataset - pay the full buy price and take over the
// ownership token, as one unit
//
// requires the current owner to have approved the Engine for the
// transfer beforehand; any failure after collection must be followed
// by a transaction abort so the payment rolls back with it
func PurchaseFullDataset(trx storage.Transaction, buyer identity.Identity, datasetId uint64, attachedValue *big.Int) (*Receipt, error) {

	d, err := catalog.GetTrx(trx, datasetId)
	if nil != err {
		return nil, err
	}
	if !d.Active {
		return nil, fault.DatasetInactive
	}
	if !d.FullBuyEnabled {
		return nil, fault.FullBuyNotEnabled
	}

	if !ownership.IsApproved(trx, datasetId, Engine) {
		return nil, fault.NotApprovedForTransfer
	}

	if err := Collect(trx, buyer, d, d.FullBuyPrice, attachedValue); nil != err {
		return nil, err
	}

	if err := ownership.Transfer(trx, Engine, buyer, datasetId); nil != err {
		return nil, err
	}

	return NewReceipt(trx, buyer, datasetId, KindFullBuy, d.Instrument, d.FullBuyPrice), nil
}
