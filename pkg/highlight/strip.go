package highlight

import (
	"strings"

	"golang.org/x/net/html"
)

// Span is a run of text that is either emphasised or plain.
type Span struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// Spans splits highlighted markup into plain and emphasised runs. Entities
// are decoded, <br> becomes a newline and block boundaries (</div>) end the
// current line. Adjacent runs with the same emphasis are merged.
func Spans(markup string) []Span {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))

	var spans []Span
	depth := 0
	appendText := func(text string) {
		if text == "" {
			return
		}
		emphasis := depth > 0
		if last := len(spans) - 1; last >= 0 && spans[last].Emphasis == emphasis {
			spans[last].Text += text
			return
		}
		spans = append(spans, Span{Text: text, Emphasis: emphasis})
	}

	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return spans
		case html.TextToken:
			appendText(string(tokenizer.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "span":
				if tokenType == html.StartTagToken {
					depth++
				}
			case "br":
				appendText("\n")
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "span":
				if depth > 0 {
					depth--
				}
			case "div":
				if last := len(spans) - 1; last >= 0 && !strings.HasSuffix(spans[last].Text, "\n") {
					appendText("\n")
				}
			}
		}
	}
}

// Strip removes all markup and returns the text content.
func Strip(markup string) string {
	var builder strings.Builder
	for _, span := range Spans(markup) {
		builder.WriteString(span.Text)
	}
	return builder.String()
}
