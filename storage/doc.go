// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintains a single LevelDB database containing prefixed key pools:
//
//   D ⧺ datasetId            - packed dataset record
//   O ⧺ datasetId            - current owner identity
//   P ⧺ datasetId            - identity approved for NFT transfer
//   L ⧺ owner ⧺ datasetId    - per owner dataset index (data: empty)
//   K ⧺ tokenId              - packed fungible token record
//   B ⧺ tokenId ⧺ holder     - token balance, big endian magnitude
//   W ⧺ tokenId ⧺ owner ⧺ spender
//                            - spending allowance, big endian magnitude
//   G ⧺ identity ⧺ datasetId - packed access grant record
//   R ⧺ receiptId            - packed settlement receipt
//   N ⧺ name                 - 8 byte big endian counters
//   Z ⧺ key                  - test data
//
// every record is point readable by its key; pools supporting list
// operations (L, D) are additionally range scanned by prefix.
//
// all mutations pass through a single batch Transaction so that a
// payment and the rights grant it buys commit as one unit or not at
// all; plain pool reads bypass the transaction cache and therefore
// only ever observe committed state.
package storage
