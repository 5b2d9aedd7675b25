// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Command cybershield-sim serves the dashboard API from synthetic traffic.
package main

import (
	"fmt"
	"os"

	"grimm.is/cybershield/cmd"
)

func main() {
	if err := cmd.RunSim(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
