package amend

import (
	"strings"

	"github.com/coolbeans/lawamend/pkg/statute"
)

// Collect records every node of document whose own text literally contains
// token. Containment is exact, whitespace included, and every level is
// tested on its own: an article, one of its clauses, an item and a sub-item
// line may each add a location for the same token. Each containing
// sub-item line adds one location.
func Collect(document *statute.Document, token string) *MatchGroup {
	group := NewMatchGroup()
	if document == nil || token == "" {
		return group
	}

	for _, article := range document.Articles {
		label := article.Label()
		if strings.Contains(article.Text, token) {
			group.Add(token, statute.Location{Article: label})
		}

		for _, clause := range article.Clauses {
			clauseNumber := clause.NormalizedNumber()
			if strings.Contains(clause.Text, token) {
				group.Add(token, statute.Location{Article: label, Clause: clauseNumber})
			}

			for _, item := range clause.Items {
				itemNumber := item.NormalizedNumber()
				if strings.Contains(item.Text, token) {
					group.Add(token, statute.Location{Article: label, Clause: clauseNumber, Item: itemNumber})
				}

				for _, subItem := range item.SubItems {
					subItemNumber := subItem.NormalizedNumber()
					for _, line := range subItem.Lines {
						if strings.Contains(line, token) {
							group.Add(token, statute.Location{
								Article: label,
								Clause:  clauseNumber,
								Item:    itemNumber,
								SubItem: subItemNumber,
							})
						}
					}
				}
			}
		}
	}

	return group
}
