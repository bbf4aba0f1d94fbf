// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// sampleClaims uses json struct tags; fxamacker/cbor reads them as a
// fallback, so one type serves both codecs.
type sampleClaims struct {
	Issuer   string `json:"iss"`
	Subject  string `json:"sub,omitempty"`
	Audience string `json:"aud"`
}

func TestRoundTripStruct(t *testing.T) {
	for _, codec := range []Codec{JSON, CBOR} {
		t.Run(codec.Name(), func(t *testing.T) {
			original := sampleClaims{Issuer: "auth.example", Audience: "https://api.example/v1?a=1&b=2"}
			data, err := codec.Marshal(original)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var decoded sampleClaims
			if err := codec.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if decoded != original {
				t.Errorf("round trip = %+v, want %+v", decoded, original)
			}
		})
	}
}

func TestUntypedDecodeIsStringKeyed(t *testing.T) {
	for _, codec := range []Codec{JSON, CBOR} {
		t.Run(codec.Name(), func(t *testing.T) {
			data, err := codec.Marshal(map[string]any{"exp": "2039-01-01T00:00:00+00:00", "nested": map[string]any{"k": "v"}})
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var decoded any
			if err := codec.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			claims, ok := decoded.(map[string]any)
			if !ok {
				t.Fatalf("decoded %T, want map[string]any", decoded)
			}
			if _, ok := claims["nested"].(map[string]any); !ok {
				t.Errorf("nested value is %T, want map[string]any", claims["nested"])
			}
		})
	}
}

func TestJSONDoesNotEscapeHTML(t *testing.T) {
	data, err := JSON.Marshal(map[string]string{"aud": "a&b<c>"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"aud":"a&b<c>"}` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestCBORDeterministic(t *testing.T) {
	first, err := CBOR.Marshal(map[string]any{"b": 1, "a": 2, "c": 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 10 {
		again, err := CBOR.Marshal(map[string]any{"c": 3, "a": 2, "b": 1})
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("non-deterministic encoding: %x vs %x", first, again)
		}
	}
}

func TestCBORRejectsDuplicateKeys(t *testing.T) {
	// {"a": 1, "a": 2}
	data := []byte{0xa2, 0x61, 'a', 0x01, 0x61, 'a', 0x02}
	var decoded map[string]any
	if err := CBOR.Unmarshal(data, &decoded); err == nil {
		t.Errorf("duplicate claim name accepted: %v", decoded)
	}
}

func TestByName(t *testing.T) {
	for name, want := range map[string]Codec{"": JSON, "json": JSON, "cbor": CBOR} {
		got, err := ByName(name)
		if err != nil || got != want {
			t.Errorf("ByName(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ByName("xml"); err == nil {
		t.Error("ByName(xml) succeeded")
	}
}

func TestDiagnose(t *testing.T) {
	data, err := CBOR.Marshal(map[string]any{"sub": "alice"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"sub"`) || !strings.Contains(notation, `"alice"`) {
		t.Errorf("Diagnose = %s", notation)
	}

	if _, err := Diagnose([]byte{0xff}); !errors.Is(err, ErrNotCBOR) {
		t.Errorf("Diagnose(0xff) error = %v, want ErrNotCBOR", err)
	}
}
