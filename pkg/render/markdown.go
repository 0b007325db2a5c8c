package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"gitlab.com/tozd/go/errors"

	"github.com/coolbeans/lawamend/pkg/amend"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
)

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

var (
	orderedListMarker = regexp.MustCompile(`^(\d+)([.)])`)
	bulletListMarker  = regexp.MustCompile(`^([-+])(\s)`)
)

// escapeLineStart keeps a line such as "1. 성명" from opening a list.
func escapeLineStart(line string) string {
	line = orderedListMarker.ReplaceAllString(line, `$1\$2`)
	return bulletListMarker.ReplaceAllString(line, `\$1$2`)
}

func strongMarkdown(text string) string {
	return "**" + escapeMarkdown(text) + "**"
}

// SearchMarkdown renders a search report as Markdown. Highlighted runs
// become strong emphasis.
func SearchMarkdown(report SearchReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# 검색 결과: %s\n\n", escapeMarkdown(report.Query)))

	if len(report.Results) == 0 {
		sb.WriteString("해당하는 조문이 없습니다.\n")
		return sb.String()
	}

	for _, result := range report.Results {
		sb.WriteString(fmt.Sprintf("## %s\n\n", escapeMarkdown(result.Law.Name)))
		for _, article := range result.Articles {
			sb.WriteString(fmt.Sprintf("### %s\n\n", escapeMarkdown(article.Article)))
			for _, fragment := range article.Fragments {
				var lines []string
				for _, line := range fragmentLines(fragment) {
					lines = append(lines, escapeLineStart(strings.TrimSpace(lineString(line, escapeMarkdown, strongMarkdown))))
				}
				if len(lines) > 0 {
					sb.WriteString(strings.Join(lines, "\\\n") + "\n\n")
				}
			}
		}
	}

	return sb.String()
}

// AmendMarkdown renders an amendment report as Markdown.
func AmendMarkdown(report AmendReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# 개정문: “%s” → “%s”\n\n", escapeMarkdown(report.Find), escapeMarkdown(report.Replace)))

	if len(report.Amendments) == 0 {
		sb.WriteString(amend.NoTargetsMessage + "\n")
		return sb.String()
	}

	for _, amendment := range report.Amendments {
		sb.WriteString(fmt.Sprintf("**%s**\n\n", escapeMarkdown(amendment.Header())))
		for _, sentence := range amendment.Sentences {
			sb.WriteString(escapeLineStart(escapeMarkdown(sentence)) + "\n\n")
		}
	}

	return sb.String()
}

// --- HTML ---

const htmlPage = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

var markdownConverter = goldmark.New(
	goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
)

// markdownToHTML converts Markdown to an HTML body fragment. Raw HTML
// blocks are passed through.
func markdownToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdownConverter.Convert([]byte(source), &buf); err != nil {
		return "", errors.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

func writePage(writer io.Writer, title, source string) error {
	body, err := markdownToHTML(source)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(writer, htmlPage, html.EscapeString(title), body)
	return err
}

// rawBlock wraps highlighted markup as a raw HTML block so it survives
// Markdown conversion unchanged.
func rawBlock(markup string) string {
	return "<p>" + strings.ReplaceAll(markup, "\n", " ") + "</p>\n\n"
}

func writeSearchHTML(writer io.Writer, report SearchReport) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# 검색 결과: %s\n\n", escapeMarkdown(report.Query)))
	if len(report.Results) == 0 {
		sb.WriteString("해당하는 조문이 없습니다.\n")
	}
	for _, result := range report.Results {
		sb.WriteString(fmt.Sprintf("## %s\n\n", escapeMarkdown(result.Law.Name)))
		for _, article := range result.Articles {
			sb.WriteString(fmt.Sprintf("### %s\n\n", escapeMarkdown(article.Article)))
			sb.WriteString(rawBlock(article.HTML()))
		}
	}

	return writePage(writer, "검색 결과: "+report.Query, sb.String())
}

func writeAmendHTML(writer io.Writer, report AmendReport) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# 개정문: “%s” → “%s”\n\n", escapeMarkdown(report.Find), escapeMarkdown(report.Replace)))
	for _, block := range report.Blocks() {
		sb.WriteString(rawBlock(block))
	}

	return writePage(writer, "개정문", sb.String())
}
