package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/agent"
	"github.com/etnz/finance/config"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `fin assist [<question>...]

  Starts an interactive session with an assistant able to read the ledger.
  It uses the Gemini API, configured by the GOOGLE_API_KEY environment variable.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	return withLedger(func(cfg *config.Config, l *finance.Ledger) subcommands.ExitStatus {
		cats, err := config.LoadCategories(cfg.Categories)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return subcommands.ExitFailure
		}

		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			fmt.Fprintln(stderr, "Error initializing Gemini's client:", err)
			return subcommands.ExitFailure
		}

		a := agent.New(stdout, os.Stdin, agent.NewAdvisor(), agent.NewAccountant(l, cats))
		a.Print = printMarkdown
		if err := a.Run(ctx, client, initialPrompt); err != nil {
			fmt.Fprintln(stderr, "Agent failed:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
