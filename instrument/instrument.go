// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package instrument - payment instrument enumeration
//
// Each dataset is priced in exactly one instrument.  The enumeration is
// part of the wire format: values are fixed and must not be reordered.
package instrument

import (
	"fmt"
	"strings"

	"github.com/clusterprotocol/datasetd/fault"
)

// Instrument - payment instrument enumeration
type Instrument uint64

// possible instrument values
const (
	Native   Instrument = 0 // the chain native coin
	Stable   Instrument = 1 // pre-registered stable token, 6 decimals
	Protocol Instrument = 2 // pre-registered protocol token, 18 decimals
	Custom   Instrument = 3 // per-dataset bespoke token, 18 decimals

	First = Native
	Last  = Custom
	Count = int(Last) + 1
)

// number of fractional digits in stored minor unit amounts
const (
	stableDecimals  = 6
	defaultDecimals = 18
)

// internal conversion
func toString(instrument Instrument) ([]byte, error) {
	switch instrument {
	case Native:
		return []byte("NATIVE"), nil
	case Stable:
		return []byte("STABLE"), nil
	case Protocol:
		return []byte("PROTOCOL"), nil
	case Custom:
		return []byte("CUSTOM"), nil
	default:
		return []byte{}, fault.InvalidInstrument
	}
}

// convert a string to an instrument
func fromString(in string) (Instrument, error) {
	switch strings.ToLower(in) {
	case "native":
		return Native, nil
	case "stable":
		return Stable, nil
	case "protocol":
		return Protocol, nil
	case "custom":
		return Custom, nil
	default:
		return Native, fault.InvalidInstrument
	}
}

// String - convert an instrument to its string symbol
func (instrument Instrument) String() string {
	s, err := toString(instrument)
	if nil != err {
		return fmt.Sprintf("*invalid#%d*", uint64(instrument))
	}
	return string(s)
}

// GoString - convert both enum value and symbol, for debugging
func (instrument Instrument) GoString() string {
	return fmt.Sprintf("<Instrument#%d:%q>", uint64(instrument), instrument.String())
}

// IsValid - instrument is in range of First to Last
func (instrument Instrument) IsValid() bool {
	return instrument >= First && instrument <= Last
}

// Decimals - fractional digits of the minor unit convention
//
// amounts are stored as integers already scaled by the caller; this
// only matters for display and for client side scaling
func (instrument Instrument) Decimals() int {
	if Stable == instrument {
		return stableDecimals
	}
	return defaultDecimals
}

// Index - convert a valid instrument to a zero based array index
func (instrument Instrument) Index() int {
	return int(instrument)
}
