// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package brand holds product naming shared by the binaries.
package brand

const (
	Name        = "cybershield"
	DisplayName = "CYBERSHIELD"
	HUDBinary   = "cybershield-hud"
	SimBinary   = "cybershield-sim"
)

// Version is overridden at link time.
var Version = "dev"
