// stubservice serves JSON fixtures from disk for frontend development.
package main

import (
	"os"

	"github.com/getmockd/stubservice/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate

	os.Exit(cli.Main())
}
