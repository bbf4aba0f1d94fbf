// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package paseto

import (
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/paseto/lib/b64url"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// ExtractFooter returns the decoded footer of raw without verifying
// anything. The result is attacker-controlled: use it only to choose
// which key to verify with, never as authenticated data.
func ExtractFooter(raw string) ([]byte, error) {
	parts, err := wire.Split(raw)
	if err != nil {
		return nil, err
	}
	footer, err := b64url.Decode(parts.Footer)
	if err != nil {
		return nil, tokenerr.New(tokenerr.Encoding, "footer", err)
	}
	return footer, nil
}

type keyIDDocument struct {
	KeyID string `json:"kid"`
}

func keyIDFooter(id string) []byte {
	// Marshalling a struct with one string field cannot fail.
	data, _ := json.Marshal(keyIDDocument{KeyID: id})
	return data
}

// FooterKeyID reads the kid member of a JSON footer. It reports false
// when the footer is empty, is not a JSON object, or has no kid.
func FooterKeyID(footer []byte) (string, bool) {
	if len(footer) == 0 || footer[0] != '{' {
		return "", false
	}
	var document keyIDDocument
	if err := json.Unmarshal(footer, &document); err != nil || document.KeyID == "" {
		return "", false
	}
	return document.KeyID, true
}

// KeyIDOf extracts the unverified kid from raw's footer.
func KeyIDOf(raw string) (string, error) {
	footer, err := ExtractFooter(raw)
	if err != nil {
		return "", err
	}
	id, ok := FooterKeyID(footer)
	if !ok {
		return "", fmt.Errorf("paseto: token footer carries no key id")
	}
	return id, nil
}
