// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instrument

// MarshalText - convert an instrument to text
func (instrument Instrument) MarshalText() ([]byte, error) {
	return toString(instrument)
}

// UnmarshalText - convert a text symbol to an instrument
func (instrument *Instrument) UnmarshalText(s []byte) error {
	parsed, err := fromString(string(s))
	if nil != err {
		return err
	}
	*instrument = parsed
	return nil
}
