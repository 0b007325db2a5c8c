package statute

import "strings"

// Location pins one node of a statute. Empty fields are absent; a location
// with only Article set refers to the article's own text.
type Location struct {
	Article  string `json:"article"`
	Clause   string `json:"clause,omitempty"`
	Item     string `json:"item,omitempty"`
	SubItem  string `json:"sub_item,omitempty"`
	Reserved string `json:"reserved,omitempty"`
}

// String renders the location as a citation, e.g. "제3조제2항제1호가목".
// Article, clause, item and sub-item are emitted in that order with no
// separators; absent fields are skipped.
func (location Location) String() string {
	var builder strings.Builder
	builder.WriteString(location.Article)
	if location.Clause != "" {
		builder.WriteString("제" + location.Clause + "항")
	}
	if location.Item != "" {
		builder.WriteString("제" + location.Item + "호")
	}
	if location.SubItem != "" {
		builder.WriteString(location.SubItem + "목")
	}
	return builder.String()
}
