// Package amend drafts partial-amendment sentences (일부개정문) for Korean
// statutes: it records every node that literally contains a term and
// renders a citation sentence replacing that term, with agreeing
// postpositions.
package amend

import (
	"encoding/json"
	"strings"

	"github.com/coolbeans/lawamend/pkg/statute"
)

// MatchGroup maps matched tokens to the locations where they occur. Tokens
// and locations keep their insertion order, which is traversal order.
type MatchGroup struct {
	tokens    []string
	locations map[string][]statute.Location
}

// NewMatchGroup creates an empty group.
func NewMatchGroup() *MatchGroup {
	return &MatchGroup{locations: make(map[string][]statute.Location)}
}

// Add appends a location under token.
func (group *MatchGroup) Add(token string, location statute.Location) {
	if _, exists := group.locations[token]; !exists {
		group.tokens = append(group.tokens, token)
	}
	group.locations[token] = append(group.locations[token], location)
}

// Tokens returns the tokens in first-seen order.
func (group *MatchGroup) Tokens() []string {
	return append([]string(nil), group.tokens...)
}

// Locations returns the locations recorded for token.
func (group *MatchGroup) Locations(token string) []statute.Location {
	return append([]statute.Location(nil), group.locations[token]...)
}

// Len returns the number of distinct tokens.
func (group *MatchGroup) Len() int {
	return len(group.tokens)
}

// Empty reports whether no location has been recorded.
func (group *MatchGroup) Empty() bool {
	return group == nil || len(group.tokens) == 0
}

// GroupEntry is one token with its locations.
type GroupEntry struct {
	Token     string             `json:"token"`
	Locations []statute.Location `json:"locations"`
}

// Entries returns the group as an ordered slice.
func (group *MatchGroup) Entries() []GroupEntry {
	if group.Empty() {
		return nil
	}
	entries := make([]GroupEntry, 0, len(group.tokens))
	for _, token := range group.tokens {
		entries = append(entries, GroupEntry{Token: token, Locations: group.Locations(token)})
	}
	return entries
}

// MarshalJSON encodes the group as an ordered list of entries.
func (group *MatchGroup) MarshalJSON() ([]byte, error) {
	entries := group.Entries()
	if entries == nil {
		entries = []GroupEntry{}
	}
	return json.Marshal(entries)
}

// Amendment is the drafted amendment of one statute.
type Amendment struct {
	Law       statute.Law `json:"law"`
	Ordinal   string      `json:"ordinal"`
	Matches   *MatchGroup `json:"matches"`
	Sentences []string    `json:"sentences"`
}

// Header returns the opening line, e.g. "① 민법 일부를 다음과 같이 개정한다.".
func (amendment Amendment) Header() string {
	return amendment.Ordinal + " " + amendment.Law.Name + " 일부를 다음과 같이 개정한다."
}

// Lines returns the header followed by every sentence.
func (amendment Amendment) Lines() []string {
	return append([]string{amendment.Header()}, amendment.Sentences...)
}

// HTML joins the header and sentences with line breaks.
func (amendment Amendment) HTML() string {
	return strings.Join(amendment.Lines(), "<br>")
}

// String joins the header and sentences with newlines.
func (amendment Amendment) String() string {
	return strings.Join(amendment.Lines(), "\n")
}
