package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/quickrate/internal/complementary"
	"github.com/wonny/quickrate/internal/contracts"
	"github.com/wonny/quickrate/internal/evaluator"
)

func newEvaluateCmd(opts *globalOptions) *cobra.Command {
	var (
		sector   string
		label    string
		key      string
		value    float64
		previous float64
		comps    []string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "지표 하나 평가",
		Long: `섹터 임계값으로 지표 하나를 평가합니다.

--comp 는 섹터 보조지표 원문(provider 문자열)이며 여러 번 지정할 수 있습니다.

Example:
  go run ./cmd/rating evaluate --sector Technology --label "P/L" --value 30 --comp peg=1,2
  go run ./cmd/rating evaluate --sector REIT --key ffo_payout --value 95
  go run ./cmd/rating evaluate --sector Technology --label ROE --value 25 --previous 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := contracts.ParseSector(sector)
			if err != nil {
				return err
			}
			if label == "" && key == "" {
				return fmt.Errorf("--label or --key is required")
			}

			bag, err := bagFromFlags(s, comps)
			if err != nil {
				return err
			}

			sess, err := bootstrap(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			evalOpts := evaluator.Options{Bag: bag}
			if cmd.Flags().Changed("previous") {
				evalOpts.PreviousValue = &previous
			}

			var ev contracts.Evaluation
			if key != "" {
				ev = sess.evaluator.EvaluateID(contracts.IndicatorID{Sector: s, Key: contracts.MetricKey(key)}, value, evalOpts)
			} else {
				ev = sess.evaluator.Evaluate(s, label, value, evalOpts)
			}

			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), ev)
			}
			printEvaluation(cmd.OutOrStdout(), ev)
			return nil
		},
	}

	cmd.Flags().StringVar(&sector, "sector", "", "sector name or alias (required)")
	cmd.Flags().StringVar(&label, "label", "", "indicator label as displayed")
	cmd.Flags().StringVar(&key, "key", "", "canonical metric key (overrides --label)")
	cmd.Flags().Float64Var(&value, "value", 0, "indicator value (required)")
	cmd.Flags().Float64Var(&previous, "previous", 0, "previous period value")
	cmd.Flags().StringArrayVar(&comps, "comp", nil, "complementary prop key=value (repeatable)")
	_ = cmd.MarkFlagRequired("sector")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

// bagFromFlags turns key=value pairs into a sector props object
func bagFromFlags(sector contracts.Sector, pairs []string) (*complementary.Bag, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	props := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --comp %q: want key=value", pair)
		}
		props[strings.TrimSpace(k)] = v
	}

	raw, err := json.Marshal(props)
	if err != nil {
		return nil, err
	}
	return complementary.BuildRaw(sector, raw)
}
