package main

import (
	"fmt"
	"os"

	app "github.com/drapaimern/msbee/internal"
	"github.com/drapaimern/msbee/internal/cli"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	vaultPath := app.ResolveVaultPath()

	if _, err := app.NewApp(vaultPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing msbee: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
