// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// maxSecretSize bounds reads so a mistaken path (a log file, a device)
// cannot exhaust locked memory. The largest key file the tool writes
// is a PKCS#8 RSA-2048 PEM, well under this.
const maxSecretSize = 64 << 10

// ReadFromPath reads a secret from path, or from standard input when
// path is "-". Leading and trailing whitespace is trimmed. The caller
// must Close the returned Buffer.
func ReadFromPath(path string) (*Buffer, error) {
	if path == "-" {
		return ReadFrom(os.Stdin, "stdin")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadFrom(file, path)
}

// ReadFrom reads a secret from reader; name is used in error messages.
func ReadFrom(reader io.Reader, name string) (*Buffer, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxSecretSize+1))
	defer Zero(data)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(data) > maxSecretSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", name, maxSecretSize)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	return NewFromBytes(trimmed)
}
