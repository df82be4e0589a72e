package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	versionFormat = "MNEE Explorer. %v, version %v-%v (%v %v)"
)

// Version string variables
var (
	version string
	builtBy string
	builtAt string
	commit  string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version of the explorer binary",
	Long:  "print version of the explorer binary",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), getExplorerVersion())
	},
}

func getExplorerVersion() string {
	return fmt.Sprintf(versionFormat, "explorer", version, commit, builtBy, builtAt)
}
