package main

import (
	"context"
	"fmt"
	"os"

	"jose/statement-ingest/cmd/categorize"
	"jose/statement-ingest/cmd/hint"
	importcmd "jose/statement-ingest/cmd/import"
	"jose/statement-ingest/cmd/parse"
	"jose/statement-ingest/cmd/root"
	"jose/statement-ingest/cmd/rules"
	"jose/statement-ingest/cmd/serve"
)

func init() {
	// Initialize root command flags before adding subcommands
	root.Init()

	root.Cmd.AddCommand(importcmd.Cmd)
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(hint.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
