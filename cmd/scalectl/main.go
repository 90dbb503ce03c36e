/*
scalectl - command-line access to the salary and pension calculators

COMMANDS:
  step      Place a service record and look up the expected salary
  pension   Compute pension and gratuity
  import    Load JSON salary scales into a SQLite database
  show      Print an edition of the salary scale, or list imported editions

Every command reads the same config file as the server (--config) and
prints JSON.
*/
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
