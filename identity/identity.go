// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identity - account identifiers
//
// A fixed size identifier for any party that can own datasets, hold
// token balances or buy access rights.  The daemon treats these as
// opaque: key derivation and signing are wallet concerns.
package identity

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/clusterprotocol/datasetd/fault"
)

// Size - number of bytes in an identity
const Size = 20

// Identity - the opaque account identifier
type Identity [Size]byte

// Zero - the all zero identity, never a valid account
var Zero Identity

// IsZero - check for the invalid all zero identity
func (id Identity) IsZero() bool {
	return id == Zero
}

// Bytes - byte slice for packed records and database keys
func (id Identity) Bytes() []byte {
	return id[:]
}

// String - convert to the conventional 0x prefixed hex form
func (id Identity) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// GoString - convert for debugging
func (id Identity) GoString() string {
	return fmt.Sprintf("<identity:%s>", id.String())
}

// MarshalText - convert to text for JSON
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert from text, with or without the 0x prefix
func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := FromString(string(text))
	if nil != err {
		return err
	}
	*id = parsed
	return nil
}

// FromString - parse a hex identity
func FromString(s string) (Identity, error) {
	var id Identity

	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if hex.EncodedLen(Size) != len(s) {
		return Zero, fault.InvalidIdentity
	}
	buffer, err := hex.DecodeString(s)
	if nil != err {
		return Zero, fault.InvalidIdentity
	}
	copy(id[:], buffer)
	return id, nil
}

// FromBytes - assemble an identity from a byte slice
func FromBytes(id *Identity, buffer []byte) error {
	if Size != len(buffer) {
		return fault.InvalidIdentity
	}
	copy(id[:], buffer)
	return nil
}
