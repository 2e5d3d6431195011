package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/quickrate/internal/contracts"
	"github.com/wonny/quickrate/internal/resolver"
)

func newResolveCmd(opts *globalOptions) *cobra.Command {
	var sector, label string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "표시 라벨 → 카탈로그 지표 매칭",
		Long: `자유 형식 라벨을 카탈로그 지표로 매칭하고 매칭 단계를 보여줍니다.
(exact → normalized → compacted)

Example:
  go run ./cmd/rating resolve --sector Technology --label "Crescimento Receita"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := contracts.ParseSector(sector)
			if err != nil {
				return err
			}

			sess, err := bootstrap(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			md, tier := resolver.New(sess.catalog).ResolveTier(s, label)
			if tier == resolver.TierNone {
				return fmt.Errorf("no %s indicator matches %q", s, label)
			}

			out := cmd.OutOrStdout()
			if opts.output == "json" {
				return printJSON(out, map[string]interface{}{
					"query": label,
					"tier":  tier.String(),
					"label": md.Label,
					"key":   md.Key,
				})
			}
			fmt.Fprintf(out, "%q → %s (%s) [%s]\n", label, md.Label, md.Key, tier)
			return nil
		},
	}

	cmd.Flags().StringVar(&sector, "sector", "", "sector name or alias (required)")
	cmd.Flags().StringVar(&label, "label", "", "label to resolve (required)")
	_ = cmd.MarkFlagRequired("sector")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}
