// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"encoding/binary"

	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/storage"
)

// ListFor - enumerate the datasets held by an identity
//
// committed state only, ascending dataset id order
func ListFor(owner identity.Identity) ([]uint64, error) {
	ids := []uint64{}
	cursor := storage.Pool.OwnerList.NewFetchCursor().ScanPrefix(owner.Bytes())
	err := cursor.Map(func(key []byte, value []byte) error {
		// key is owner ⧺ datasetId
		ids = append(ids, binary.BigEndian.Uint64(key[identity.Size:]))
		return nil
	})
	if nil != err {
		return nil, err
	}
	return ids, nil
}
