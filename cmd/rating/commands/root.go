package commands

import (
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	overrides string
	output    string
	verbose   bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "rating",
		Short: "Quick Analysis - 섹터별 재무지표 평가 엔진",
		Long: `Quick Analysis rating CLI

섹터별 임계값으로 재무지표를 good / medium / bad 로 평가하고
보조지표(complementares)로 판정을 조정합니다.

Usage:
  go run ./cmd/rating [command]

Examples:
  go run ./cmd/rating evaluate --sector Technology --label "P/L" --value 30 --comp peg=1,2
  go run ./cmd/rating panel --file panel.json
  go run ./cmd/rating resolve --sector REIT --label "Taxa de Ocupação"
  go run ./cmd/rating catalog list --sector "Real Estate"
  go run ./cmd/rating api
  go run ./cmd/rating status`,
		SilenceUsage: true,
	}

	// Global flags
	root.PersistentFlags().StringVar(&opts.overrides, "overrides", "", "catalog overrides YAML (default CATALOG_OVERRIDES)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format (text|json)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newEvaluateCmd(opts),
		newPanelCmd(opts),
		newResolveCmd(opts),
		newCatalogCmd(opts),
		newAPICmd(opts),
		newStatusCmd(opts),
		newPruneCmd(opts),
	)

	return root
}

// Execute runs the root command.
// This is called by main.main(). It only needs to happen once.
func Execute() error {
	return NewRootCmd().Execute()
}
