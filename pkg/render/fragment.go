package render

import (
	"strings"

	"github.com/coolbeans/lawamend/pkg/highlight"
)

// run is a piece of one display line, emphasized when it was highlighted.
type run struct {
	text     string
	emphasis bool
}

// fragmentLines splits a highlighted markup fragment into display lines.
// Non-breaking spaces become plain spaces and blank lines are dropped.
func fragmentLines(fragment string) [][]run {
	var lines [][]run
	var current []run

	flush := func() {
		if !blank(current) {
			lines = append(lines, current)
		}
		current = nil
	}

	for _, span := range highlight.Spans(fragment) {
		text := strings.ReplaceAll(span.Text, "\u00a0", " ")
		for index, piece := range strings.Split(text, "\n") {
			if index > 0 {
				flush()
			}
			if piece != "" {
				current = append(current, run{text: piece, emphasis: span.Emphasis})
			}
		}
	}
	flush()

	return lines
}

func blank(runs []run) bool {
	for _, piece := range runs {
		if strings.TrimSpace(piece.text) != "" {
			return false
		}
	}
	return true
}

// lineString joins the runs of a line, formatting each with plain or
// emphasized.
func lineString(line []run, plain, emphasized func(string) string) string {
	var builder strings.Builder
	for _, piece := range line {
		if piece.emphasis {
			builder.WriteString(emphasized(piece.text))
		} else {
			builder.WriteString(plain(piece.text))
		}
	}
	return builder.String()
}
