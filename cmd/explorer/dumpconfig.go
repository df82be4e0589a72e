package main

import (
	"fmt"

	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
)

var dumpConfigCmd = &cobra.Command{
	Use:   "dumpconfig [config_file]",
	Short: "dump the effective config to a toml file, or to stdout without a file",
	Long:  "dump the default config merged with the given flags and config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  dumpConfig,
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	config, err := getExplorerConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		b, err := toml.Marshal(config)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), string(b))
		return err
	}
	return writeExplorerConfigToFile(config, args[0])
}
