// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity_test

import (
	"encoding/json"
	"testing"

	"github.com/clusterprotocol/datasetd/fault"
	"github.com/clusterprotocol/datasetd/identity"
)

const hexOne = "0x0102030405060708090a0b0c0d0e0f1011121314"

func TestFromString(t *testing.T) {
	valid := []string{
		hexOne,
		"0102030405060708090a0b0c0d0e0f1011121314",
		"0X0102030405060708090A0B0C0D0E0F1011121314",
	}
	for i, s := range valid {
		id, err := identity.FromString(s)
		if nil != err {
			t.Fatalf("%d: parse error: %s", i, err)
		}
		if id.String() != hexOne {
			t.Errorf("%d: %q converted to: %s  expected: %s", i, s, id, hexOne)
		}
	}

	invalid := []string{
		"",
		"0x00",
		"0x0102030405060708090a0b0c0d0e0f10111213",     // short
		"0x0102030405060708090a0b0c0d0e0f101112131415", // long
		"0xzz02030405060708090a0b0c0d0e0f1011121314",   // not hex
	}
	for i, s := range invalid {
		if _, err := identity.FromString(s); fault.InvalidIdentity != err {
			t.Errorf("%d: %q: unexpected error: %v", i, s, err)
		}
	}
}

func TestZero(t *testing.T) {
	var id identity.Identity
	if !id.IsZero() {
		t.Error("fresh identity is not zero")
	}
	id[0] = 1
	if id.IsZero() {
		t.Error("non zero identity reported zero")
	}
}

func TestMarshalling(t *testing.T) {
	id, err := identity.FromString(hexOne)
	if nil != err {
		t.Fatalf("parse error: %s", err)
	}

	buffer, err := json.Marshal(id)
	if nil != err {
		t.Fatalf("marshal JSON error: %s", err)
	}
	expected := `"` + hexOne + `"`
	if expected != string(buffer) {
		t.Errorf("marshal JSON: %s  expected: %s", buffer, expected)
	}

	var back identity.Identity
	err = json.Unmarshal(buffer, &back)
	if nil != err {
		t.Fatalf("unmarshal JSON error: %s", err)
	}
	if back != id {
		t.Errorf("unmarshal JSON: %#v  expected: %#v", back, id)
	}
}

func TestFromBytes(t *testing.T) {
	var id identity.Identity
	if err := identity.FromBytes(&id, []byte{1, 2, 3}); fault.InvalidIdentity != err {
		t.Errorf("short buffer: unexpected error: %v", err)
	}

	source, _ := identity.FromString(hexOne)
	if err := identity.FromBytes(&id, source.Bytes()); nil != err {
		t.Fatalf("from bytes error: %s", err)
	}
	if id != source {
		t.Errorf("from bytes: %#v  expected: %#v", id, source)
	}
}
