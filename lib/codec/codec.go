// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Codec encodes and decodes claim bodies.
type Codec interface {
	// Name is the short identifier used in configuration ("json",
	// "cbor").
	Name() string

	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON is the default claim codec.
var JSON Codec = jsonCodec{}

// CBOR is the compact deterministic claim codec.
var CBOR Codec = cborCodec{}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSON, nil
	case "cbor":
		return CBOR, nil
	default:
		return nil, fmt.Errorf("unknown claim codec %q (want json or cbor)", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	// Claim values such as audience URLs must survive byte-exact.
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buffer.Bytes(), []byte("\n")), nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding. Time values are written as RFC 3339 text so that a CBOR
// claim set reads the same way as its JSON twin.
var encMode cbor.EncMode

// decMode is the CBOR decoder. Unknown fields are silently ignored for
// forward compatibility; duplicate map keys are rejected because a
// claim name must have exactly one value.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Claim names are always strings. The CBOR default for untyped
		// maps is map[any]any, which claim lookup cannot index by name.
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

type cborCodec struct{}

func (cborCodec) Name() string { return "cbor" }

func (cborCodec) Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

func (cborCodec) Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// ErrNotCBOR is returned by Diagnose for input that is not a single
// well-formed CBOR item.
var ErrNotCBOR = errors.New("codec: not well-formed CBOR")

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for a
// claim body, for display by tooling.
func Diagnose(data []byte) (string, error) {
	notation, err := cbor.Diagnose(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotCBOR, err)
	}
	return notation, nil
}
