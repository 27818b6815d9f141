// Command topfiles finds the N largest files under a directory tree.
package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/idelchi/topfiles/internal/cli"
)

// version is set at build time with -ldflags.
var version = "dev"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		log.Error().Err(err).Msg("fatal error")
		os.Exit(1)
	}
}
