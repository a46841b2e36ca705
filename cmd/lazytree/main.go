package main

import (
	"fmt"
	"os"

	"github.com/rshade/lazytree/internal/cli"
	"github.com/rshade/lazytree/internal/config"
	"github.com/rshade/lazytree/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code. Separate
// from main so deferred cleanup runs before os.Exit.
func run() int {
	defer config.CloseLogFile()

	if err := cli.NewRootCmd(version.GetVersion()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
