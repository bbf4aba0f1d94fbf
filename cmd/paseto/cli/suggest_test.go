// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"verify", "verify", 0},
		{"verfiy", "verify", 2},
		{"sign", "sing", 2},
		{"keygen", "keygn", 1},
		{"decrypt", "encrypt", 2},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := levenshtein(tt.b, tt.a); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.String("footer", "", "")
	flagSet.String("key", "", "")
	flagSet.Bool("json", false, "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--foter", "x"}, "--footer"},
		{[]string{"--key", "k", "--jsn"}, "--json"},
		{[]string{"--kye=path"}, "--key"},
		{[]string{"--unrelated-thing"}, ""},
		{[]string{"--", "--foter"}, ""},
	}
	for _, tt := range tests {
		if got := suggestFlag(tt.args, flagSet); got != tt.want {
			t.Errorf("suggestFlag(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
