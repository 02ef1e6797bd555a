package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/finance/docs"
	"github.com/google/subcommands"
)

// topicCmd prints the user manual embedded in the docs package.
type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the fin user manual" }
func (*topicCmd) Usage() string {
	return `fin topic [-list] [<topic>...]

  Prints the manual pages about recording money, debts, dates, reports,
  storage, the HTTP server and the assistant. Without a topic it prints the
  index; '*' prints every page.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "Print the topic names only, one per line")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		names, err := docs.GetAllTopics()
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(stdout, strings.Join(names, "\n"))
		return subcommands.ExitSuccess
	}

	pages := f.Args()
	if len(pages) == 0 {
		pages = []string{"readme"}
	}
	manual, err := docs.GetTopics(pages...)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(manual)
	return subcommands.ExitSuccess
}
