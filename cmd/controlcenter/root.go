package main

import (
	"github.com/spf13/cobra"
)

const rootCmdExample = `  # Open the interactive roster dashboard
  controlcenter roster

  # Print the dashboard once, for scripts and CI logs
  controlcenter roster --plain

  # Use a config file outside the default search path
  controlcenter roster --config /etc/basecamp/config.yaml`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "controlcenter",
		Short:        "BaseCamp Control Center in the terminal",
		Long:         "controlcenter renders the BaseCamp tutor roster dashboard in a terminal.",
		Example:      rootCmdExample,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "path to a config .yaml file (default: config.yaml in ./, ./config, ../config)")
	cmd.PersistentFlags().String("log-file", "", "append logs to this file instead of discarding them in interactive mode")
	cmd.AddCommand(newRosterCmd())

	return cmd
}
