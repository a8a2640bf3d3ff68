package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show the backend status message",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), newClient().HealthMessage(cmd.Context()))
	return nil
}
