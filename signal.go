// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// Kind is the state of a signal Value.
//
type Kind uint8

// Signal states.
//
const (
	KindUninitialized Kind = iota
	KindUnknown
	KindDontCare
	KindData
)

var kindNames = [...]string{
	KindUninitialized: "uninit",
	KindUnknown:       "unknown",
	KindDontCare:      "dontcare",
	KindData:          "data",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// A Value is the four-state value carried on every wire: uninitialized,
// unknown, don't-care or a concrete 32 bits data word.
//
// Values are comparable. The zero Value is Uninitialized.
//
type Value struct {
	kind Kind
	data uint32
}

// Non-data signal values.
//
var (
	Uninitialized = Value{kind: KindUninitialized}
	Unknown       = Value{kind: KindUnknown}
	DontCare      = Value{kind: KindDontCare}
)

// Data returns a data Value.
//
func Data(v uint32) Value { return Value{kind: KindData, data: v} }

// Signed returns a data Value holding the two's complement representation of v.
//
func Signed(v int32) Value { return Value{kind: KindData, data: uint32(v)} }

// Bool returns Data(1) if b is true, Data(0) otherwise.
//
func Bool(b bool) Value {
	if b {
		return Data(1)
	}
	return Data(0)
}

// Kind returns the state of v.
func (v Value) Kind() Kind { return v.kind }

// IsData returns true if v carries concrete data.
func (v Value) IsData() bool { return v.kind == KindData }

// Uint returns the unsigned value of v. It fails with an error whose cause
// is ErrNotData if v is not a data value.
//
func (v Value) Uint() (uint32, error) {
	if v.kind != KindData {
		return 0, errors.Wrap(ErrNotData, v.kind.String())
	}
	return v.data, nil
}

// Int returns the signed value of v. It fails with an error whose cause
// is ErrNotData if v is not a data value.
//
func (v Value) Int() (int32, error) {
	u, err := v.Uint()
	return int32(u), err
}

// Bool returns true if v is a non-zero data value. It fails with an error
// whose cause is ErrNotData if v is not a data value.
//
func (v Value) Bool() (bool, error) {
	u, err := v.Uint()
	return u != 0, err
}

func (v Value) String() string {
	if v.kind == KindData {
		return "0x" + strconv.FormatUint(uint64(v.data), 16)
	}
	return v.kind.String()
}

type jsonValue struct {
	Kind string `json:"kind"`
	Data uint32 `json:"data,omitempty"`
}

// MarshalJSON implements json.Marshaler.
//
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonValue{Kind: v.kind.String(), Data: v.data})
}

// UnmarshalJSON implements json.Unmarshaler.
//
func (v *Value) UnmarshalJSON(b []byte) error {
	var jv jsonValue
	if err := json.Unmarshal(b, &jv); err != nil {
		return err
	}
	for k, n := range kindNames {
		if n == jv.Kind {
			*v = Value{kind: Kind(k)}
			if v.kind == KindData {
				v.data = jv.Data
			}
			return nil
		}
	}
	return errors.Errorf("invalid signal kind %q", jv.Kind)
}
