package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/statetoken"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Print a new SESSION_TOKEN_KEY",
	Long: `Print a new random key for share tokens.

Set it as SESSION_TOKEN_KEY so tokens stay valid across restarts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := statetoken.GenerateKey()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	},
}
