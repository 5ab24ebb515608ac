package main

import (
	"fmt"
	"os"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driven/config/file"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/cli"
	"github.com/antiquarium-labs/lapidarium/internal/core/services"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)

	store, err := file.NewConfigStore("")
	if err != nil {
		// A broken config home is not fatal; the defaults still work.
		fmt.Fprintf(os.Stderr, "warning: config store unavailable: %v\n", err)
	} else {
		cli.SetSettingsService(services.NewSettingsService(store))
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
