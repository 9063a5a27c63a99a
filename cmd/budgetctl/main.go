// Command budgetctl derives a budget snapshot and weekly tiers from a scenario file.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
