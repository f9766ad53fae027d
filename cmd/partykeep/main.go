// Package main starts the partykeep terminal client.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/partykeep/partykeep/internal/cmd/cli"
	platformcmd "github.com/partykeep/partykeep/internal/platform/cmd"
)

func main() {
	cfg, args, err := cli.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[PARTYKEEP] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceCLI, func(ctx context.Context) error {
		return cli.Run(ctx, cfg, args, os.Stdout)
	})
	if err != nil {
		log.Fatalf("run: %v", err)
	}
}
