// Package cmd - templates command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sheetforge/core/templates"
)

var templatesJSON bool

// templatesCmd represents the templates command
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available workbook templates",
	RunE:  runTemplates,
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "print the full registry as JSON")
}

func runTemplates(cmd *cobra.Command, args []string) error {
	defs := templates.Definitions()

	if templatesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(defs)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tFIELDS")
	for _, def := range defs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", def.ID, def.Name, def.Category, len(def.Fields))
	}
	return w.Flush()
}
