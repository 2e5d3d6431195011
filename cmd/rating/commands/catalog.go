package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/quickrate/internal/catalog"
	"github.com/wonny/quickrate/internal/contracts"
)

func newCatalogCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "지표 카탈로그 조회/검증",
	}

	cmd.AddCommand(
		newCatalogListCmd(opts),
		newCatalogValidateCmd(opts),
		newCatalogHashCmd(opts),
	)

	return cmd
}

func newCatalogListCmd(opts *globalOptions) *cobra.Command {
	var sector string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "섹터 지표 목록",
		Long: `섹터의 지표, 가중치, 임계값을 출력합니다.

Example:
  go run ./cmd/rating catalog list --sector "Real Estate"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := contracts.ParseSector(sector)
			if err != nil {
				return err
			}

			sess, err := bootstrap(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			entries := sess.catalog.Entries(s)
			out := cmd.OutOrStdout()
			if opts.output == "json" {
				rows := make([]map[string]interface{}, 0, len(entries))
				for _, md := range entries {
					row := map[string]interface{}{
						"label":              md.Label,
						"key":                md.Key,
						"weight":             md.Weight,
						"informational_only": md.InformationalOnly,
					}
					if spec, ok := sess.catalog.Threshold(s, md.Key); ok {
						row["threshold"] = spec
					}
					rows = append(rows, row)
				}
				return printJSON(out, rows)
			}

			printHeader(out, fmt.Sprintf("%s (%d indicators)", s, len(entries)))
			for _, md := range entries {
				spec, ok := sess.catalog.Threshold(s, md.Key)
				threshold := "-"
				if ok {
					threshold = describeSpec(spec)
				}
				info := ""
				if md.InformationalOnly {
					info = " [informational]"
				}
				fmt.Fprintf(out, "  %-30s %-22s w=%.1f  %s%s\n", md.Label, md.Key, md.Weight, threshold, info)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sector, "sector", "", "sector name or alias (required)")
	_ = cmd.MarkFlagRequired("sector")

	return cmd
}

func newCatalogValidateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "카탈로그(+overrides) 검증",
		Long: `기본 카탈로그에 overrides 를 적용해 검증합니다.
오류는 실패, 권장 위반은 경고로 출력합니다.

Example:
  go run ./cmd/rating catalog validate --overrides thresholds.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := bootstrap(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if err := catalog.Validate(sess.catalog); err != nil {
				return fmt.Errorf("catalog invalid: %w", err)
			}

			out := cmd.OutOrStdout()
			warnings := catalog.Warn(sess.catalog)
			for _, w := range warnings {
				fmt.Fprintf(out, "⚠️  %s: %s\n", w.Code, w.Message)
			}
			fmt.Fprintf(out, "✅ catalog %s valid (%d warnings)\n", sess.catalog.Version(), len(warnings))
			return nil
		},
	}
}

func newCatalogHashCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "카탈로그 SHA-256",
		Long: `캐시 키와 스냅샷에 기록되는 카탈로그 해시를 출력합니다.

Example:
  go run ./cmd/rating catalog hash --overrides thresholds.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := bootstrap(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), sess.evaluator.CatalogHash())
			return nil
		},
	}
}

func describeSpec(spec contracts.ThresholdSpec) string {
	switch {
	case spec.IsCustom():
		return "custom:" + string(spec.Custom)
	case spec.IsBand():
		return fmt.Sprintf("band [%g, %g]", *spec.Min, *spec.Max)
	case spec.IsCutoffs():
		op := "≥"
		if spec.Reverse {
			op = "≤"
		}
		return strings.Join([]string{
			fmt.Sprintf("good %s %g", op, *spec.Good),
			fmt.Sprintf("medium %s %g", op, *spec.Medium),
		}, ", ")
	default:
		return "invalid"
	}
}
