//go:build never
// +build never

package main

import (
	"flag"
	"os"

	module "github.com/tensorworks/go-build-helpers/pkg/module"
	validation "github.com/tensorworks/go-build-helpers/pkg/validation"
)

// Alias validation.ExitIfError() as check()
var check = validation.ExitIfError

// Builds the clearbusy binary into ./bin (run with `go run build.go`)
func main() {

	// Parse our command-line flags
	doClean := flag.Bool("clean", false, "remove the bin directory instead of building")
	flag.Parse()

	// Locate the module in the current working directory
	mod, err := module.ModuleInCwd()
	check(err)

	if *doClean {
		check(mod.CleanAll())
		os.Exit(0)
	}

	// clearbusy shells out to /usr/bin/xattr, so it is only useful on the host it is built for
	check(mod.BuildBinariesForHost(module.DefaultBinDir, module.Undecorated))
}
