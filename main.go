package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "amedick",
		Short: "AmedicK doctor appointment API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the MongoDB indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	}
}

func seedCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert an approved demo doctor with a weekly schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), email, password)
		},
	}
	cmd.Flags().StringVar(&email, "email", "demo.doctor@amedick.local", "demo doctor email")
	cmd.Flags().StringVar(&password, "password", "doctor123", "demo doctor password")
	return cmd
}
