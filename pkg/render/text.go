package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/coolbeans/lawamend/pkg/amend"
)

var (
	lawColor     = color.New(color.FgCyan, color.Bold)
	articleColor = color.New(color.Bold)
	matchColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
)

const textIndent = "    "

func identity(text string) string { return text }

func writeSearchText(writer io.Writer, report SearchReport) error {
	var builder strings.Builder

	if len(report.Results) == 0 {
		builder.WriteString(warnColor.Sprintf("'%s'에 해당하는 조문이 없습니다.", report.Query) + "\n")
	}

	for lawIndex, result := range report.Results {
		if lawIndex > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(lawColor.Sprint(result.Law.Name) + "\n")

		for _, article := range result.Articles {
			builder.WriteString("  " + articleColor.Sprint(article.Article) + "\n")
			for _, fragment := range article.Fragments {
				for _, line := range fragmentLines(fragment) {
					builder.WriteString(textIndent + lineString(line, identity, func(text string) string { return matchColor.Sprint(text) }) + "\n")
				}
			}
		}
	}

	_, err := io.WriteString(writer, builder.String())
	return err
}

func writeAmendText(writer io.Writer, report AmendReport) error {
	var builder strings.Builder

	if len(report.Amendments) == 0 {
		builder.WriteString(warnColor.Sprint(amend.NoTargetsMessage) + "\n")
	}

	for index, amendment := range report.Amendments {
		if index > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(lawColor.Sprint(amendment.Header()) + "\n")
		for _, sentence := range amendment.Sentences {
			fmt.Fprintf(&builder, "%s\n", sentence)
		}
	}

	_, err := io.WriteString(writer, builder.String())
	return err
}
