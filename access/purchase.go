// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package access

import (
	"math/big"
	"time"

	"github.com/clusterprotocol/datasetd/catalog"
	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/settlement"
	"github.com/clusterprotocol/datasetd/storage"
)

const secondsPerDay = 24 * 60 * 60

// Purchase - pay for access and record the grant, as one unit
//
// the expiring tier is always the first configured one; a repurchase
// overwrites the existing grant regardless of tier ordering.  Payment
// is collected before the grant is written and both sit in the same
// transaction, so a failed collection leaves no grant behind.
func Purchase(trx storage.Transaction, payer identity.Identity, datasetId uint64, accessType Type, attachedValue *big.Int) (*settlement.Receipt, error) {

	if !accessType.IsPurchasable() {
		return nil, fault.UnknownAccessType
	}

	d, err := catalog.GetTrx(trx, datasetId)
	if nil != err {
		return nil, err
	}
	if !d.Active {
		return nil, fault.DatasetInactive
	}

	var price *big.Int
	expiresAt := uint64(0)
	now := uint64(time.Now().Unix())

	switch accessType {
	case Expiry:
		if 0 == len(d.ExpiryTiers) {
			return nil, fault.NoExpiryTierConfigured
		}
		tier := d.ExpiryTiers[0]
		price = tier.Price
		expiresAt = now + tier.DurationDays*secondsPerDay
	case D2C:
		price = d.D2CAccessPrice
	case Full:
		price = d.FullAccessPrice
	}

	if err := settlement.Collect(trx, payer, d, price, attachedValue); nil != err {
		return nil, err
	}

	putGrant(trx, payer, datasetId, &Grant{
		AccessType: accessType,
		GrantedAt:  now,
		ExpiresAt:  expiresAt,
		Active:     true,
	})

	return settlement.NewReceipt(trx, payer, datasetId, settlement.Kind(accessType), d.Instrument, price), nil
}
