package main

import (
	"fmt"
	"os"

	"github.com/mnee-network/explorer/internal/cli"
)

func main() {
	cli.SetParseErrorHandle(func(err error) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(128)
	})
	if err := setupCommands(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupCommands() error {
	if err := registerRootCmdFlags(); err != nil {
		return err
	}
	if err := registerDashboardCmd(); err != nil {
		return err
	}
	if err := registerViewCmds(); err != nil {
		return err
	}
	rootCmd.AddCommand(dumpConfigCmd)
	rootCmd.AddCommand(versionCmd)
	return nil
}
