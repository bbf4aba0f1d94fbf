// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package b64url

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeNoPadding(t *testing.T) {
	tests := []struct {
		input []byte
		want  string
	}{
		{nil, ""},
		{[]byte("f"), "Zg"},
		{[]byte("fo"), "Zm8"},
		{[]byte("foo"), "Zm9v"},
		{[]byte{0xfb, 0xff}, "-_8"},
		{[]byte("Paragon Initiative Enterprises"), "UGFyYWdvbiBJbml0aWF0aXZlIEVudGVycHJpc2Vz"},
	}
	for _, tt := range tests {
		if got := Encode(tt.input); got != tt.want {
			t.Errorf("Encode(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if got := EncodedLen(len(tt.input)); got != len(tt.want) {
			t.Errorf("EncodedLen(%d) = %d, want %d", len(tt.input), got, len(tt.want))
		}
	}
}

func TestDecodeValid(t *testing.T) {
	tests := []struct {
		input string
		want  []byte
	}{
		{"", []byte{}},
		{"Zg", []byte("f")},
		{"Zm8", []byte("fo")},
		{"Zm9v", []byte("foo")},
		{"-_8", []byte{0xfb, 0xff}},
	}
	for _, tt := range tests {
		got, err := Decode(tt.input)
		if err != nil {
			t.Errorf("Decode(%q): %v", tt.input, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Decode(%q) = %x, want %x", tt.input, got, tt.want)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"standard alphabet plus", "+_8"},
		{"standard alphabet slash", "-/8"},
		{"padding", "Zg=="},
		{"single padding", "Zm8="},
		{"impossible length", "Zm9vY"},
		{"newline", "Zm9v\nZm9v"},
		{"carriage return", "Zm9v\r"},
		{"space", "Zm 9v"},
		{"dot", "Zm9v.Zg"},
		{"non-canonical trailing bits", "Zh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			if err == nil {
				t.Fatalf("Decode(%q) = %x, want error", tt.input, got)
			}
			if !errors.Is(err, ErrMalformedEncoding) {
				t.Errorf("error %v does not wrap ErrMalformedEncoding", err)
			}
			if got != nil {
				t.Errorf("partial output returned alongside error: %x", got)
			}
		})
	}
}

func TestRoundTripAllByteValues(t *testing.T) {
	data := make([]byte, 256)
	for index := range data {
		data[index] = byte(index)
	}
	for length := 0; length <= len(data); length += 17 {
		decoded, err := Decode(Encode(data[:length]))
		if err != nil {
			t.Fatalf("length %d: %v", length, err)
		}
		if !bytes.Equal(decoded, data[:length]) {
			t.Fatalf("length %d: round trip mismatch", length)
		}
	}
}
