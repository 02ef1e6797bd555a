package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the ledger over http" }
func (*serveCmd) Usage() string {
	return `fin serve [-addr <host:port>]

  Serves the ledger as a json http api until interrupted. See 'fin topic server'
  for the routes.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Address to listen on. Defaults to $"+config.EnvAddr+" or localhost:8080")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(func(cfg *config.Config, l *finance.Ledger) subcommands.ExitStatus {
		cats, err := config.LoadCategories(cfg.Categories)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		addr := cfg.Addr
		if c.addr != "" {
			addr = c.addr
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(stdout, "Serving %s on http://%s\n", cfg.Store, addr)
		if err := server.ListenAndServe(ctx, addr, server.New(l, cats)); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
