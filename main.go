package main

import (
	"fmt"
	"os"

	"eip/cmd/classify"
	"eip/cmd/export"
	"eip/cmd/inventory"
	"eip/cmd/order"
	"eip/cmd/project"
	"eip/cmd/root"
	"eip/cmd/rules"
	"eip/cmd/search"
	"eip/internal/config"
)

func init() {
	// 1. Load .env before viper reads the environment
	_, _ = config.LoadEnv()

	// 2. Initialize root command flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(order.Cmd)
	root.Cmd.AddCommand(inventory.Cmd)
	root.Cmd.AddCommand(project.Cmd)
	root.Cmd.AddCommand(search.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
