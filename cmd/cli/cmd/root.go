// Package cmd provides the CLI commands for sheetforge.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetforge/internal/config"
	"sheetforge/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sheetforge",
	Short: "Generate consulting workbooks from templates",
	Long: `sheetforge builds styled .xlsx workbooks from a library of consulting
templates: budgets, invoices, project timelines, RBAC matrices, Azure
cost estimates, and user story backlogs.

Examples:
  sheetforge templates
  sheetforge generate budget -o budget.xlsx
  sheetforge generate invoice --values invoice.yml -o invoice.xlsx
  sheetforge resolve "3 app services and a key vault for production"
  sheetforge catalogue --service "Key Vault"`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sheetforge.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(catalogueCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sheetforge version 1.0.0")
	},
}
