// Package cmd - generate command
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sheetforge/core/templates"
	"sheetforge/core/types"
)

var (
	outputPath string
	valuesFile string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <template-id>",
	Short: "Generate a workbook from a template",
	Long: `Build a styled .xlsx workbook from a template, using schema defaults
for any field not overridden.

Field overrides come from a YAML values file keyed by field name:

  companyName: Initech
  currency: USD
  categories:
    - Rent
    - Payroll

Examples:
  sheetforge generate budget -o budget.xlsx
  sheetforge generate azure-calculator --values azure.yml -o estimate.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default <template-id>.xlsx)")
	generateCmd.Flags().StringVar(&valuesFile, "values", "", "YAML file with config field overrides")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	templateID := args[0]

	cfg := types.TemplateConfig{}
	if valuesFile != "" {
		data, err := os.ReadFile(valuesFile)
		if err != nil {
			return fmt.Errorf("failed to read values file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("failed to parse values file: %w", err)
		}
	}

	f, err := templates.Generate(templateID, cfg)
	if err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		out = templateID + ".xlsx"
	}
	if err := f.SaveAs(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	fmt.Printf("Wrote %s\n", out)
	return nil
}
