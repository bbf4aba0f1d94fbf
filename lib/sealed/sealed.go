// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"
	"filippo.io/age/armor"

	"github.com/bureau-foundation/paseto/lib/secret"
)

// ErrNoIdentity is returned when a sealed file is loaded without an
// age identity to open it.
var ErrNoIdentity = errors.New("sealed: key file is sealed but no age identity is configured")

// IsSealed reports whether data is an armored age file.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte(armor.Header))
}

// ParseRecipient validates an age X25519 recipient ("age1...").
func ParseRecipient(recipient string) error {
	if _, err := age.ParseX25519Recipient(recipient); err != nil {
		return fmt.Errorf("invalid age recipient: %w", err)
	}
	return nil
}

// Seal encrypts plaintext to every recipient and returns the armored
// file contents. At least one recipient is required.
func Seal(plaintext []byte, recipientKeys []string) ([]byte, error) {
	if len(recipientKeys) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}
	recipients := make([]age.Recipient, 0, len(recipientKeys))
	for _, key := range recipientKeys {
		recipient, err := age.ParseX25519Recipient(key)
		if err != nil {
			return nil, fmt.Errorf("parsing recipient %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}

	var output bytes.Buffer
	armored := armor.NewWriter(&output)
	writer, err := age.Encrypt(armored, recipients...)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing key to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing age encryption: %w", err)
	}
	if err := armored.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}
	return output.Bytes(), nil
}

// Unseal decrypts an armored age file with the identities in
// identityFile (the contents of an age identity file, one
// AGE-SECRET-KEY-1... per line, comments allowed). The identities are
// borrowed and not closed. The caller must Close the returned Buffer.
func Unseal(data []byte, identityFile *secret.Buffer) (*secret.Buffer, error) {
	if identityFile == nil {
		return nil, ErrNoIdentity
	}
	identities, err := age.ParseIdentities(bytes.NewReader(identityFile.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("parsing age identities: %w", err)
	}

	reader, err := age.Decrypt(armor.NewReader(bytes.NewReader(bytes.TrimSpace(data))), identities...)
	if err != nil {
		return nil, fmt.Errorf("decrypting sealed key: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		secret.Zero(plaintext)
		return nil, fmt.Errorf("reading sealed key: %w", err)
	}

	buffer, err := secret.NewFromBytes(bytes.TrimSpace(plaintext))
	secret.Zero(plaintext)
	if err != nil {
		return nil, fmt.Errorf("protecting unsealed key: %w", err)
	}
	return buffer, nil
}
