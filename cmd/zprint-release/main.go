// Command zprint-release builds the distributable desktop release: it runs
// the bundler and installer compiler described by a YAML descriptor.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/zprint/zprint/internal/release"
)

// CLI defines the command-line flags parsed by Kong.
type CLI struct {
	Config        string `short:"c" default:"release.yml" help:"Path to the release descriptor"`
	SkipInstaller bool   `help:"Bundle only, without compiling the installer"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("zprint-release"),
		kong.Description("Build the zPrint desktop release."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	desc, err := release.LoadDescriptor(cli.Config)
	if err != nil {
		log.Printf("Release aborted: %v", err)
		return 1
	}

	if err := release.NewRunner(desc).Run(ctx, cli.SkipInstaller); err != nil {
		log.Printf("Release aborted: %v", err)
		return 1
	}

	log.Printf("Release of %s %s finished", desc.AppName, desc.Version)
	return 0
}
