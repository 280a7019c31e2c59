package main

import (
	"github.com/spf13/cobra"
	"github.com/viant/fluxpath"
)

type rootFlags struct {
	config    string
	verbosity int
	tracing   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "fluxpath",
		Short: "Route carriers through station networks",
		Long:  "fluxpath loads network definitions and sends carriers along\nplain or grouped itineraries such as a/((b|c))/(d|d).",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
		Version:      fluxpath.Version,
	}
	f := cmd.PersistentFlags()
	f.StringVar(&flags.config, "config", "", "service config URL (YAML or JSON)")
	f.IntVarP(&flags.verbosity, "verbosity", "v", 0, "log verbosity")
	f.StringVar(&flags.tracing, "trace-file", "", "write OpenTelemetry spans to this file")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	cmd.AddCommand(newExplainCmd())
	return cmd
}
