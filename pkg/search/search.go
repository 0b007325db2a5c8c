// Package search walks a statute tree and collects highlighted fragments for
// every article that mentions a query, ignoring whitespace differences.
//
// Within an article, the article text is shown once for context: either on
// its own when it matches directly, or prefixed to the first clause that
// matches below it. Later clauses are shown alone, and nodes that do not
// match are never emitted.
package search

import (
	"fmt"
	"strings"

	"github.com/coolbeans/lawamend/pkg/highlight"
	"github.com/coolbeans/lawamend/pkg/statute"
)

const (
	// FragmentSeparator joins the fragments of one article.
	FragmentSeparator = "<br>"

	itemIndent    = "&nbsp;&nbsp;"
	subItemIndent = "&nbsp;&nbsp;&nbsp;&nbsp;"
	subItemOpen   = "<div style='margin:0;padding:0'>"
	subItemClose  = "</div>"
)

// ArticleResult holds the highlighted fragments emitted for one article,
// in document order.
type ArticleResult struct {
	Article   string   `json:"article"`
	Fragments []string `json:"fragments"`
}

// HTML joins the fragments into a single markup block.
func (result ArticleResult) HTML() string {
	return strings.Join(result.Fragments, FragmentSeparator)
}

// LawResult groups the matching articles of one statute.
type LawResult struct {
	Law      statute.Law     `json:"law"`
	Articles []ArticleResult `json:"articles"`
}

// Law searches one statute. It reports false when no article matched, in
// which case the statute must be left out of the results.
func Law(document *statute.Document, query string) (LawResult, bool) {
	if document == nil {
		return LawResult{}, false
	}
	articles := Document(document, query)
	if len(articles) == 0 {
		return LawResult{}, false
	}
	return LawResult{Law: document.Law, Articles: articles}, true
}

// Document searches every article of a statute and returns those that
// produced at least one fragment.
func Document(document *statute.Document, query string) []ArticleResult {
	var results []ArticleResult
	for _, article := range document.Articles {
		if result, ok := Article(article, query); ok {
			results = append(results, result)
		}
	}
	return results
}

// Article searches a single article. It reports false when nothing in the
// article matched.
func Article(article statute.Article, query string) (ArticleResult, bool) {
	if highlight.Compact(query) == "" {
		return ArticleResult{}, false
	}

	state := articleState{articleHit: highlight.Contains(article.Text, query)}

	var fragments []string
	if state.articleHit {
		fragments = append(fragments, highlight.Highlight(article.Text, query))
	}
	for _, clause := range article.Clauses {
		fragments, state = appendClause(fragments, article, clause, query, state)
	}

	if len(fragments) == 0 {
		return ArticleResult{}, false
	}
	return ArticleResult{Article: article.Label(), Fragments: fragments}, true
}

// articleState is the traversal state of one article. It is passed by value
// from clause to clause and never outlives the article.
type articleState struct {
	articleHit     bool
	contextEmitted bool
}

// appendClause emits the clause line, followed by its matching items and
// sub-item lines, when the clause or anything below it matches.
func appendClause(fragments []string, article statute.Article, clause statute.Clause, query string, state articleState) ([]string, articleState) {
	descendants := descendantFragments(clause, query)
	if !highlight.Contains(clause.Text, query) && len(descendants) == 0 {
		return fragments, state
	}

	if !state.articleHit && !state.contextEmitted {
		fragments = append(fragments, fmt.Sprintf("%s %s",
			highlight.Highlight(article.Text, query),
			highlight.Highlight(clause.Text, query)))
		state.contextEmitted = true
	} else {
		fragments = append(fragments, highlight.Highlight(clause.Text, query))
	}

	return append(fragments, descendants...), state
}

// descendantFragments renders the matching items and sub-item lines of a
// clause in document order.
func descendantFragments(clause statute.Clause, query string) []string {
	var fragments []string
	for _, item := range clause.Items {
		if highlight.Contains(item.Text, query) {
			fragments = append(fragments, itemIndent+highlight.Highlight(item.Text, query))
		}
		for _, subItem := range item.SubItems {
			for _, line := range subItem.Lines {
				if fragment, ok := subItemFragment(line, query); ok {
					fragments = append(fragments, fragment)
				}
			}
		}
	}
	return fragments
}

// subItemFragment renders one sub-item text block. Its physical lines are
// trimmed, blank lines dropped, and the rest highlighted and stacked in a
// single block.
func subItemFragment(text, query string) (string, bool) {
	if !highlight.Contains(text, query) {
		return "", false
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, subItemIndent+highlight.Highlight(line, query))
	}
	if len(lines) == 0 {
		return "", false
	}

	return subItemOpen + strings.Join(lines, FragmentSeparator) + subItemClose, true
}
