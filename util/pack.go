// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"math/big"
)

// PackBytes - append a length prefixed byte slice
func PackBytes(buffer []byte, data []byte) []byte {
	buffer = append(buffer, ToVarint64(uint64(len(data)))...)
	return append(buffer, data...)
}

// UnpackBytes - extract a length prefixed byte slice
//
// also return the number of bytes consumed as second value
// returns nil, 0 if the buffer is truncated
func UnpackBytes(buffer []byte) ([]byte, int) {
	length, used := FromVarint64(buffer)
	if 0 == used {
		return nil, 0
	}
	end := used + int(length)
	if end > len(buffer) {
		return nil, 0
	}
	data := make([]byte, length)
	copy(data, buffer[used:end])
	return data, end
}

// PackString - append a length prefixed utf-8 string
func PackString(buffer []byte, s string) []byte {
	return PackBytes(buffer, []byte(s))
}

// UnpackString - extract a length prefixed utf-8 string
func UnpackString(buffer []byte) (string, int) {
	data, used := UnpackBytes(buffer)
	if 0 == used {
		return "", 0
	}
	return string(data), used
}

// PackBig - append a length prefixed big endian magnitude
//
// nil is stored the same as zero: an empty magnitude
func PackBig(buffer []byte, value *big.Int) []byte {
	if nil == value {
		return PackBytes(buffer, []byte{})
	}
	return PackBytes(buffer, value.Bytes())
}

// UnpackBig - extract a length prefixed big endian magnitude
func UnpackBig(buffer []byte) (*big.Int, int) {
	data, used := UnpackBytes(buffer)
	if 0 == used {
		return nil, 0
	}
	return new(big.Int).SetBytes(data), used
}
