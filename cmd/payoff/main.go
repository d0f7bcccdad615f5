// Command payoff simulates debt payoff plans from a TOML file without the
// API server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
