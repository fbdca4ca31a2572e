// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "conftrack",
	Short: "conftrack is a web backend for tracking research conferences",
	Long: `conftrack is a web backend for tracking research conferences,
submission deadlines, and per-user tags. It authenticates users against
a local database or an external LDAP directory and issues signed bearer
tokens for API access.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
