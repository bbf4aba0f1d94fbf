// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/bureau-foundation/paseto/lib/wire"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/paseto/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Info returns a formatted version string suitable for --version output.
func Info() string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, Commit(), dirty, BuildTime)
}

// Full returns detailed version information including Go version and
// the token protocols this build speaks.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s\n  Protocols: %s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH, Protocols())
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA. When ldflags did not set it, the
// VCS revision recorded by the Go toolchain is used if present.
func Commit() string {
	if GitCommit != "unknown" {
		return GitCommit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return GitCommit
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
			return setting.Value[:7]
		}
	}
	return GitCommit
}

// Protocols lists every version.purpose pair, e.g. "v1.local v1.public
// v2.local v2.public".
func Protocols() string {
	var names []string
	for _, v := range wire.Versions() {
		for _, p := range wire.Purposes() {
			names = append(names, v.String()+"."+p.String())
		}
	}
	return strings.Join(names, " ")
}
