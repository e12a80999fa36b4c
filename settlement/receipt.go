// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"encoding/binary"
	"math/big"
	"time"

	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/instrument"
	"github.com/clusterprotocol/datasetd/storage"
	"github.com/clusterprotocol/datasetd/util"
)

// counter record for the next receipt id, ids start at 1
var nextReceiptIdKey = []byte("receipt")

// Kind - what a payment bought
type Kind byte

// the receipt kinds; 1…3 mirror the purchasable access types
const (
	KindExpiryAccess Kind = 1
	KindD2CAccess    Kind = 2
	KindFullAccess   Kind = 3
	KindFullBuy      Kind = 4
)

// String - converts to text
func (kind Kind) String() string {
	switch kind {
	case KindExpiryAccess:
		return "EXPIRY-ACCESS"
	case KindD2CAccess:
		return "D2C-ACCESS"
	case KindFullAccess:
		return "FULL-ACCESS"
	case KindFullBuy:
		return "FULL-BUY"
	default:
		return "*unknown*"
	}
}

// MarshalText - convert to text for JSON
func (kind Kind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

// Receipt - durable audit record for one settled payment
type Receipt struct {
	Id         uint64                `json:"id"`
	Payer      identity.Identity     `json:"payer"`
	DatasetId  uint64                `json:"datasetId"`
	Kind       Kind                  `json:"kind"`
	Instrument instrument.Instrument `json:"instrument"`
	Amount     *big.Int              `json:"amount"`
	Timestamp  uint64                `json:"timestamp"`
}

// NewReceipt - write the audit record for a settled payment
//
// runs in the same transaction as the payment it records
func NewReceipt(trx storage.Transaction, payer identity.Identity, datasetId uint64, kind Kind, paymentInstrument instrument.Instrument, amount *big.Int) *Receipt {

	receiptId, found := trx.GetN(storage.Pool.Counters, nextReceiptIdKey)
	if !found {
		receiptId = 1
	}

	receipt := &Receipt{
		Id:         receiptId,
		Payer:      payer,
		DatasetId:  datasetId,
		Kind:       kind,
		Instrument: paymentInstrument,
		Amount:     amount,
		Timestamp:  uint64(time.Now().Unix()),
	}

	buffer := payer.Bytes()
	buffer = append(buffer, util.ToVarint64(datasetId)...)
	buffer = append(buffer, byte(kind))
	buffer = append(buffer, util.ToVarint64(uint64(paymentInstrument))...)
	buffer = util.PackBig(buffer, amount)
	buffer = append(buffer, util.ToVarint64(receipt.Timestamp)...)

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, receiptId)
	trx.Put(storage.Pool.Receipts, key, buffer)
	trx.PutN(storage.Pool.Counters, nextReceiptIdKey, receiptId+1)

	return receipt
}

// GetReceipt - read a receipt from committed state
func GetReceipt(receiptId uint64) (*Receipt, error) {

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, receiptId)
	buffer := storage.Pool.Receipts.Get(key)
	if nil == buffer {
		return nil, fault.ReceiptNotFound
	}

	receipt := &Receipt{Id: receiptId}

	if len(buffer) < identity.Size {
		return nil, fault.NotReceiptRecord
	}
	if err := identity.FromBytes(&receipt.Payer, buffer[:identity.Size]); nil != err {
		return nil, fault.NotReceiptRecord
	}
	buffer = buffer[identity.Size:]

	var n int
	if receipt.DatasetId, n = util.FromVarint64(buffer); 0 == n {
		return nil, fault.NotReceiptRecord
	}
	buffer = buffer[n:]

	if len(buffer) < 1 {
		return nil, fault.NotReceiptRecord
	}
	receipt.Kind = Kind(buffer[0])
	buffer = buffer[1:]

	value, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.NotReceiptRecord
	}
	receipt.Instrument = instrument.Instrument(value)
	buffer = buffer[n:]

	if receipt.Amount, n = util.UnpackBig(buffer); 0 == n {
		return nil, fault.NotReceiptRecord
	}
	buffer = buffer[n:]

	if receipt.Timestamp, n = util.FromVarint64(buffer); 0 == n {
		return nil, fault.NotReceiptRecord
	}

	return receipt, nil
}
