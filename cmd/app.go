// Package cmd implements the CLI application to manage a personal finance ledger.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/store/bolt"
	"github.com/etnz/finance/store/sqlite"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&balanceCmd{}, "records")
	c.Register(&incomeCmd{}, "records")
	c.Register(&expenseCmd{}, "records")
	c.Register(&debtCmd{kind: finance.Lent}, "records")
	c.Register(&debtCmd{kind: finance.Borrowed}, "records")
	c.Register(&deleteCmd{}, "records")
	c.Register(&repayCmd{}, "records")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&listCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")

	c.Register(&serveCmd{}, "tools")
	c.Register(&assistCmd{}, "tools")
	c.Register(&topicCmd{}, "tools")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	storeFlag    = flag.String("store", "", "Path to the ledger database. Defaults to $"+config.EnvStore+" or a file in .fin/")
	backendFlag  = flag.String("backend", "", "Storage backend: bolt, sqlite or file. Defaults to $"+config.EnvBackend+" or bolt")
	currencyFlag = flag.String("currency", "", "ISO currency code used to display amounts. Defaults to $"+config.EnvCurrency+" or INR")
	// Verbose enables logging.
	Verbose = flag.Bool("v", false, "Verbose output")
)

// output of the commands, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// appConfig returns the configuration from the environment, overridden by the global flags.
func appConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *backendFlag != "" {
		cfg.Backend = *backendFlag
		if os.Getenv(config.EnvStore) == "" {
			cfg.Store = config.DefaultStore(cfg.Backend)
		}
	}
	if *storeFlag != "" {
		cfg.Store = *storeFlag
	}
	if *currencyFlag != "" {
		cfg.Currency = strings.ToUpper(*currencyFlag)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenLedger opens the ledger described by cfg. The returned function
// releases the store and must be called when done.
func OpenLedger(cfg *config.Config) (*finance.Ledger, func() error, error) {
	var store finance.Store
	closer := func() error { return nil }
	switch cfg.Backend {
	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.Store)
		if err != nil {
			return nil, nil, err
		}
		store, closer = s, s.Close
	case config.BackendFile:
		store = finance.FileStore{Path: cfg.Store}
	default:
		s, err := bolt.Open(cfg.Store)
		if err != nil {
			return nil, nil, err
		}
		store, closer = s, s.Close
	}

	opts := []finance.Option{finance.WithCurrency(cfg.Currency)}
	if cfg.TestingNow != "" {
		on, err := date.Parse(cfg.TestingNow)
		if err != nil {
			closer()
			return nil, nil, fmt.Errorf("invalid %s: %w", config.EnvTestingNow, err)
		}
		opts = append(opts, finance.WithClock(func() date.Date { return on }))
	}

	ledger, err := finance.Open(store, opts...)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return ledger, closer, nil
}

// withLedger opens the application ledger and runs do with it.
func withLedger(do func(cfg *config.Config, l *finance.Ledger) subcommands.ExitStatus) subcommands.ExitStatus {
	cfg, err := appConfig()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	l, closeLedger, err := OpenLedger(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening ledger %q: %v\n", cfg.Store, err)
		return subcommands.ExitFailure
	}
	defer closeLedger()
	return do(cfg, l)
}

// report prints the outcome of a ledger command.
func report(res finance.Result, err error) subcommands.ExitStatus {
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, res.Summary)
	return subcommands.ExitSuccess
}
