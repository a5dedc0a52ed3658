// Package main is the command-line front end for the lending engine.
// Catalog maintenance talks to the store directly; lending, guarded
// deletes and reports go through the engine so every invariant holds no
// matter which command triggered the write.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"library-lending/library"
)

var (
	// configFile is set by the --config flag.
	configFile string

	// store and engine are opened by the root command's PersistentPreRunE
	// and closed after the command runs. No command opens its own handle.
	store  library.Store
	engine *library.Engine

	// Report defaults resolved from config; per-command flags override.
	cfgOverdueDays int
	cfgReportLimit int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage a lending library's catalog, members and loans",
	Long: `Library tracks a lending library: books with stock counts, members,
and the borrow records linking them. Stock moves only through borrow and
return, deletes are guarded by loan history, and reports cover overdue
loans and the most-borrowed titles.`,
	SilenceUsage:       true,
	PersistentPreRunE:  openStore,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return closeStore() },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./config.yaml)")

	rootCmd.AddCommand(addBookCmd)
	rootCmd.AddCommand(addMemberCmd)
	rootCmd.AddCommand(listBooksCmd)
	rootCmd.AddCommand(searchBooksCmd)
	rootCmd.AddCommand(showMemberCmd)
	rootCmd.AddCommand(updateStockCmd)
	rootCmd.AddCommand(updateMemberCmd)
	rootCmd.AddCommand(deleteBookCmd)
	rootCmd.AddCommand(deleteMemberCmd)
	rootCmd.AddCommand(borrowCmd)
	rootCmd.AddCommand(returnCmd)
	rootCmd.AddCommand(reportOverdueCmd)
	rootCmd.AddCommand(reportMostBorrowedCmd)
	rootCmd.AddCommand(shellCmd)
}
