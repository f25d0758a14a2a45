// Copyright 2020, Square, Inc.

// Package version provides the KVDAG version.
package version

const VERSION = "1.0.0"

// HEADER is the HTTP response header the server sets to Version.
const HEADER = "X-Kvdag-Version"

// BUILD is appended to VERSION if set: "VERSION+BUILD". The "+" is included automatically.
var BUILD string = ""

// Version returns the semver-compatible (https://semver.org/) version string.
func Version() string {
	v := VERSION // 1.0.0
	if BUILD != "" {
		v += "+" + BUILD // 1.0.0+sq1
	}
	return v
}
