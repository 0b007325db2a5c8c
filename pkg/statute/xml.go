package statute

import (
	"encoding/xml"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/net/html/charset"
)

// --- lawService.do XML structures ---
// Minimal structs for the elements read from the statute body. The body is
// <법령> → <기본정보> and <조문> → <조문단위>*; articles are located at any
// depth so wrapper elements do not matter.

type xmlArticle struct {
	Number       string      `xml:"조문번호"`
	BranchNumber string      `xml:"조문가지번호"`
	Kind         string      `xml:"조문여부"`
	Text         string      `xml:"조문내용"`
	Clauses      []xmlClause `xml:"항"`
}

type xmlClause struct {
	Number string    `xml:"항번호"`
	Text   string    `xml:"항내용"`
	Items  []xmlItem `xml:"호"`
}

type xmlItem struct {
	Number   string       `xml:"호번호"`
	Text     string       `xml:"호내용"`
	SubItems []xmlSubItem `xml:"목"`
}

type xmlSubItem struct {
	Number string   `xml:"목번호"`
	Lines  []string `xml:"목내용"`
}

// lawNameElement carries the statute name inside <기본정보>.
const lawNameElement = "법령명_한글"

// articleElement is the element that wraps one article.
const articleElement = "조문단위"

// ParseLawXML decodes a statute body into a Document. The given law is used
// as the document identity; its Name is filled from the body when empty.
// Bodies without any article element decode to a document with no articles.
func ParseLawXML(reader io.Reader, law Law) (*Document, error) {
	decoder := xml.NewDecoder(reader)
	decoder.Strict = false
	decoder.CharsetReader = charset.NewReaderLabel

	document := &Document{Law: law}
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Errorf("failed to parse law XML: %w", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case lawNameElement:
			var name string
			if err := decoder.DecodeElement(&name, &start); err != nil {
				return nil, errors.Errorf("failed to decode %s: %w", lawNameElement, err)
			}
			if document.Law.Name == "" {
				document.Law.Name = strings.TrimSpace(name)
			}
		case articleElement:
			var raw xmlArticle
			if err := decoder.DecodeElement(&raw, &start); err != nil {
				return nil, errors.Errorf("failed to decode %s: %w", articleElement, err)
			}
			document.Articles = append(document.Articles, raw.toArticle())
		}
	}

	return document, nil
}

func (raw xmlArticle) toArticle() Article {
	article := Article{
		Number:       strings.TrimSpace(raw.Number),
		BranchNumber: strings.TrimSpace(raw.BranchNumber),
		Kind:         strings.TrimSpace(raw.Kind),
		Text:         raw.Text,
	}
	for _, rawClause := range raw.Clauses {
		clause := Clause{
			Number: strings.TrimSpace(rawClause.Number),
			Text:   rawClause.Text,
		}
		for _, rawItem := range rawClause.Items {
			item := Item{
				Number: strings.TrimSpace(rawItem.Number),
				Text:   rawItem.Text,
			}
			for _, rawSubItem := range rawItem.SubItems {
				item.SubItems = append(item.SubItems, SubItem{
					Number: strings.TrimSpace(rawSubItem.Number),
					Lines:  rawSubItem.Lines,
				})
			}
			clause.Items = append(clause.Items, item)
		}
		article.Clauses = append(article.Clauses, clause)
	}
	return article
}
