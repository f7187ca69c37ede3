// Package cmd - resolve command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sheetforge/core/ai"
	"sheetforge/core/resolve"
	"sheetforge/internal/config"
)

var resolveTimeout time.Duration

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <message>",
	Short: "Resolve an infrastructure description into priced Azure resources",
	Long: `Send a plain-English infrastructure description through the AI
resolution pipeline and print the priced resource list as JSON.

Requires provider credentials in the environment (ANTHROPIC_API_KEY or
OPENAI_API_KEY, depending on the configured provider).

Examples:
  sheetforge resolve "3 app services and a key vault for production"
  sheetforge resolve --timeout 60s "a SQL database and two D4s v5 VMs"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().DurationVar(&resolveTimeout, "timeout", 30*time.Second, "provider call timeout")
}

func runResolve(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")

	provider, err := ai.NewProvider(config.Get().AI)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	result, err := resolve.NewResolver(provider).Resolve(ctx, message)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d resources, %s/month estimated\n",
		len(result.Resources), fmt.Sprintf("$%.2f", result.TotalMonthly))
	return nil
}
