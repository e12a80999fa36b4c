// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package catalog

import (
	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/ownership"
	"github.com/clusterprotocol/datasetd/storage"
)

// UpdateURI - owner-issued content locator update; bumps the version
func UpdateURI(trx storage.Transaction, caller identity.Identity, datasetId uint64, newURI string) error {
	if "" == newURI {
		return fault.URIRequired
	}

	d, err := authorised(trx, caller, datasetId)
	if nil != err {
		return err
	}

	d.URI = newURI
	d.Version += 1
	putDataset(trx, d)
	return nil
}

// SetActive - owner-issued activation toggle; bumps the version
//
// purchases against an inactive dataset fail, existing grants are
// untouched
func SetActive(trx storage.Transaction, caller identity.Identity, datasetId uint64, active bool) error {
	d, err := authorised(trx, caller, datasetId)
	if nil != err {
		return err
	}

	if active == d.Active {
		return nil
	}

	d.Active = active
	d.Version += 1
	putDataset(trx, d)
	return nil
}

// resolve the record and check the caller against the current owner
func authorised(trx storage.Transaction, caller identity.Identity, datasetId uint64) (*Dataset, error) {
	d, err := GetTrx(trx, datasetId)
	if nil != err {
		return nil, err
	}

	owner, err := ownership.OwnerOf(trx, datasetId)
	if nil != err {
		return nil, err
	}
	if caller != owner {
		return nil, fault.Unauthorized
	}
	return d, nil
}
