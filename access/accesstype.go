// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package access

import (
	"github.com/clusterprotocol/datasetd/fault"
)

// Type - the kind of access a grant confers
type Type uint64

// the possible access types
//
// wire values are fixed, None is never stored
const (
	None   Type = 0
	Expiry Type = 1
	D2C    Type = 2
	Full   Type = 3
)

// String - converts to text
func (accessType Type) String() string {
	switch accessType {
	case None:
		return "NONE"
	case Expiry:
		return "EXPIRY"
	case D2C:
		return "D2C"
	case Full:
		return "FULL"
	default:
		return "*unknown*"
	}
}

// GoString - converts for %#v
func (accessType Type) GoString() string {
	return accessType.String()
}

// IsPurchasable - check a client supplied access type
func (accessType Type) IsPurchasable() bool {
	return accessType >= Expiry && accessType <= Full
}

// MarshalText - convert to text for JSON
func (accessType Type) MarshalText() ([]byte, error) {
	return []byte(accessType.String()), nil
}

// UnmarshalText - convert from text for JSON
func (accessType *Type) UnmarshalText(text []byte) error {
	switch string(text) {
	case "NONE":
		*accessType = None
	case "EXPIRY":
		*accessType = Expiry
	case "D2C":
		*accessType = D2C
	case "FULL":
		*accessType = Full
	default:
		return fault.UnknownAccessType
	}
	return nil
}
