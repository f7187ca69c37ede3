// Package cmd - catalogue command
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sheetforge/core/catalogue"
)

var catalogueService string

// catalogueCmd represents the catalogue command
var catalogueCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "List the embedded Azure pricing catalogue",
	Long: `Print the services and SKUs from the embedded retail pricing
snapshot, with unit prices and derived monthly costs.

Examples:
  sheetforge catalogue
  sheetforge catalogue --service "Key Vault"`,
	RunE: runCatalogue,
}

func init() {
	catalogueCmd.Flags().StringVar(&catalogueService, "service", "", "limit output to one service")
}

func runCatalogue(cmd *cobra.Command, args []string) error {
	snapshot := catalogue.Get()
	fmt.Printf("Pricing snapshot: %s / %s (generated %s)\n\n",
		snapshot.Region, snapshot.Currency, snapshot.GeneratedAt)

	services := catalogue.Services()
	if catalogueService != "" {
		if len(catalogue.ServiceSkus(catalogueService)) == 0 {
			return fmt.Errorf("unknown service: %s", catalogueService)
		}
		services = []string{catalogueService}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tSKU\tUNIT\tPRICE\tMONTHLY")
	for _, service := range services {
		for _, sku := range catalogue.ServiceSkus(service) {
			entry, ok := catalogue.FindPricing(service, sku)
			if !ok {
				continue
			}
			monthly := entry.Price
			if catalogue.IsHourly(entry.Unit) {
				monthly = catalogue.MonthlyFromHourly(entry.Price)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.2f\n", service, sku, entry.Unit, entry.Price, monthly)
		}
	}
	return w.Flush()
}
