package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags.
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Portfolio content service",
	Long: `folio holds the portfolio document, serves it read-only and offers a
PIN-gated editor that commits a working copy to a single storage slot.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $FOLIO_CONFIG_PATH)")
	rootCmd.AddCommand(serveCmd, exportCmd, resetCmd, importCmd)
}
