// Command fin keeps a personal finance ledger: cash and bank balances,
// incomes, expenses and money lent or borrowed.
//
// Run 'fin help' for the list of commands, and 'fin topic' for the manual.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/etnz/finance/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, "fin")
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	// Shell completion: answers and exits when invoked by the shell.
	completion(commander).Complete("fin")

	flag.Parse()
	if !*cmd.Verbose {
		log.SetOutput(io.Discard)
	}

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// registered reports whether name is a subcommand of c.
func registered(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		if sub.Name() == name {
			found = true
		}
	})
	return found
}

// completion describes the subcommands and their flags for the shell.
func completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flags(flag.CommandLine),
	}
	root.Flags["backend"] = predict.Set{"bolt", "sqlite", "file"}
	root.Flags["store"] = predict.Files("*")

	collections := predict.Set{"incomes", "expenses", "lent", "borrowed"}
	args := map[string]complete.Predictor{
		"delete": collections,
		"list":   collections,
		"repay":  predict.Set{"lent", "borrowed"},
	}

	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		cc := &complete.Command{Flags: flags(fs), Args: args[sub.Name()]}
		if _, ok := cc.Flags["via"]; ok {
			cc.Flags["via"] = predict.Set{"cash", "bank"}
		}
		if _, ok := cc.Flags["p"]; ok {
			cc.Flags["p"] = predict.Set{"day", "week", "month", "quarter", "year"}
		}
		root.Sub[sub.Name()] = cc
	})
	return root
}

// flags predicts the flags of fs: boolean flags take no value.
func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}
