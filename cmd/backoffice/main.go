// Command backoffice runs the back-office API and its maintenance tasks.
//
//	backoffice serve
//	backoffice migrate
//	backoffice migrate:rollback
//	backoffice migrate:status
//	backoffice seed
//	backoffice route:list
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Migrations register themselves in init().
	_ "github.com/vitrine/backoffice/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "backoffice",
	Short:         "E-commerce back-office API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
