// Package statute models Korean statute text as published by the National
// Law Information Center: a law is a sequence of articles (조), each article
// holds clauses (항), clauses hold items (호) and items hold sub-items (목).
//
// A Document is built fresh for every retrieved statute and is never
// mutated after decoding; both the search and the amendment passes read it.
package statute

import (
	"strings"
)

// Law identifies one retrieved statute.
type Law struct {
	// Name is the Korean display name (법령명).
	Name string `json:"name"`

	// ID is the opaque serial number (MST) used to fetch the statute body.
	ID string `json:"id"`
}

// Article is a single article (조문단위) of a statute.
type Article struct {
	Number       string   `json:"number"`
	BranchNumber string   `json:"branch_number,omitempty"`
	Kind         string   `json:"kind,omitempty"`
	Text         string   `json:"text"`
	Clauses      []Clause `json:"clauses,omitempty"`
}

// Label returns the citation label of the article, e.g. "제3조" or "제3조의2".
func (article Article) Label() string {
	return ArticleLabel(article.Number, article.BranchNumber)
}

// Clause is a paragraph (항) inside an article. Number holds the raw glyph
// as published, usually a circled numeral such as "①".
type Clause struct {
	Number string `json:"number"`
	Text   string `json:"text"`
	Items  []Item `json:"items,omitempty"`
}

// NormalizedNumber returns the clause number as a plain digit string.
func (clause Clause) NormalizedNumber() string {
	return NormalizeNumber(strings.TrimSpace(clause.Number))
}

// Item is a numbered item (호) inside a clause.
type Item struct {
	Number   string    `json:"number"`
	Text     string    `json:"text"`
	SubItems []SubItem `json:"sub_items,omitempty"`
}

// NormalizedNumber returns the item number without its trailing period.
func (item Item) NormalizedNumber() string {
	return stripPeriods(item.Number)
}

// SubItem is a lettered sub-item (목) inside an item. Each entry in Lines is
// one published text block; lines are matched one by one but rendered together.
type SubItem struct {
	Number string   `json:"number"`
	Lines  []string `json:"lines,omitempty"`
}

// NormalizedNumber returns the sub-item letter without its trailing period.
func (subItem SubItem) NormalizedNumber() string {
	return stripPeriods(subItem.Number)
}

// Document is the decoded tree of one statute.
type Document struct {
	Law      Law       `json:"law"`
	Articles []Article `json:"articles"`
}

// DocumentStatistics provides aggregate node counts for a decoded statute.
type DocumentStatistics struct {
	ArticleCount int `json:"article_count"`
	ClauseCount  int `json:"clause_count"`
	ItemCount    int `json:"item_count"`
	SubItemCount int `json:"sub_item_count"`
}

// Statistics counts the nodes at every level of the document.
func (document *Document) Statistics() DocumentStatistics {
	stats := DocumentStatistics{ArticleCount: len(document.Articles)}
	for _, article := range document.Articles {
		stats.ClauseCount += len(article.Clauses)
		for _, clause := range article.Clauses {
			stats.ItemCount += len(clause.Items)
			for _, item := range clause.Items {
				stats.SubItemCount += len(item.SubItems)
			}
		}
	}
	return stats
}

// ArticleLabel formats an article number. A branch number other than empty
// or "0" marks an inserted article and is appended with "의".
func ArticleLabel(number, branchNumber string) string {
	number = strings.TrimSpace(number)
	branchNumber = strings.TrimSpace(branchNumber)
	if branchNumber != "" && branchNumber != "0" {
		return "제" + number + "조의" + branchNumber
	}
	return "제" + number + "조"
}

func stripPeriods(number string) string {
	return strings.ReplaceAll(strings.TrimSpace(number), ".", "")
}
