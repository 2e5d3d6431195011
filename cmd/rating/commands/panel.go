package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/quickrate/internal/ratings"
)

func newPanelCmd(opts *globalOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "panel",
		Short: "기업 패널 평가 (저장 없음)",
		Long: `POST /api/panels 와 같은 JSON 을 읽어 패널을 평가합니다.
캐시와 DB 저장은 사용하지 않습니다.

Example:
  go run ./cmd/rating panel --file panel.json
  go run ./cmd/rating panel --file panel.json -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read panel file: %w", err)
			}

			var req ratings.PanelRequest
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				return fmt.Errorf("decode panel file: %w", err)
			}

			sess, err := bootstrap(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			res, err := ratings.NewService(sess.evaluator, sess.log).EvaluatePanel(cmd.Context(), req)
			if err != nil {
				return err
			}

			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), res.Panel)
			}
			printPanel(cmd.OutOrStdout(), *res.Panel)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "panel request JSON (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
