package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available to the credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		models, err := client.Models.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, m := range models {
			fmt.Printf("%-48s %s\n", m.Name, m.DisplayName)
		}
		return nil
	},
}
