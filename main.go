/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/
package main

import (
	"github.com/jpl-au/rain/cmd"

	// Import behaviors - each registers itself via init()
	_ "github.com/jpl-au/rain/behavior/all"
)

func main() {
	cmd.Execute()
}
