// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewCommandLoggerPipedIsJSON(t *testing.T) {
	var output bytes.Buffer
	logger := NewCommandLogger(&output, false).With("command", "verify")

	logger.Debug("hidden")
	logger.Info("token accepted", "purpose", "public")

	var record map[string]any
	if err := json.Unmarshal(output.Bytes(), &record); err != nil {
		t.Fatalf("output is not one JSON record: %v\n%s", err, output.String())
	}
	if record["msg"] != "token accepted" || record["command"] != "verify" || record["purpose"] != "public" {
		t.Errorf("record = %v", record)
	}
}

func TestNewCommandLoggerVerbose(t *testing.T) {
	var output bytes.Buffer
	NewCommandLogger(&output, true).Debug("detail")
	if !bytes.Contains(output.Bytes(), []byte(`"detail"`)) {
		t.Errorf("debug record missing: %s", output.String())
	}
}
