package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd(root *rootFlags) *cobra.Command {
	flags := &carrierFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Send one carrier through a network and print its payload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := newService(cmd, root)
			if err != nil {
				return err
			}
			payload, err := flags.decodePayload()
			if err != nil {
				return err
			}
			values, err := flags.decodeContext()
			if err != nil {
				return err
			}
			flow, err := srv.Load(cmd.Context(), flags.schema)
			if err != nil {
				return err
			}
			aCarrier, err := flow.Send(cmd.Context(), flags.path, payload, values)
			if err != nil {
				return err
			}
			return printPayload(cmd.OutOrStdout(), aCarrier.Payload)
		},
	}
	flags.register(cmd)
	return cmd
}
