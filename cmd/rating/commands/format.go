package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/wonny/quickrate/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const (
	ruleHeavy = "═══════════════════════════════════════════════════════════"
	ruleLight = "───────────────────────────────────────────────────────────"
)

var scoreIcons = map[contracts.Score]string{
	contracts.ScoreGood:   "🟢",
	contracts.ScoreMedium: "🟡",
	contracts.ScoreBad:    "🔴",
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printHeader prints a formatted section header
func printHeader(w io.Writer, title string, lines ...string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, ruleHeavy)
	fmt.Fprintf(w, "  %s\n", title)
	if len(lines) > 0 {
		fmt.Fprintln(w, ruleLight)
		for _, line := range lines {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	fmt.Fprintln(w, ruleLight)
}

// printEvaluation prints one indicator verdict
// Example: 🟡 P/L (pe)  medium  w=1.5  [informational]
func printEvaluation(w io.Writer, ev contracts.Evaluation) {
	var tags []string
	if ev.InformationalOnly {
		tags = append(tags, "informational")
	}
	if ev.Trend != contracts.TrendNone {
		tags = append(tags, "trend "+string(ev.Trend))
	}

	key := string(ev.Key)
	if key == "" {
		key = "?"
	}

	line := fmt.Sprintf("%s %-28s %-7s w=%.1f", scoreIcons[ev.Score], fmt.Sprintf("%s (%s)", ev.Label, key), ev.Score, ev.Weight)
	if len(tags) > 0 {
		line += "  [" + strings.Join(tags, ", ") + "]"
	}
	fmt.Fprintln(w, line)
	if ev.Explanation != "" {
		fmt.Fprintf(w, "   └ %s\n", ev.Explanation)
	}
}

// printPanel prints a panel with its rating footer
func printPanel(w io.Writer, panel contracts.Panel) {
	printHeader(w, "Quick Analysis",
		fmt.Sprintf("Ticker    : %s", panel.Ticker),
		fmt.Sprintf("Sector    : %s", panel.Sector),
		fmt.Sprintf("Catalog   : %.12s", panel.CatalogHash),
	)

	for _, ev := range panel.Evaluations {
		printEvaluation(w, ev)
	}

	r := panel.Rating
	fmt.Fprintln(w, ruleLight)
	fmt.Fprintf(w, "  Rating    : %.1f (%s)\n", r.Overall, r.Grade)
	fmt.Fprintf(w, "  Scores    : %d good / %d medium / %d bad (%d skipped)\n", r.Good, r.Medium, r.Bad, r.Skipped)
	fmt.Fprintln(w, ruleHeavy)
}
