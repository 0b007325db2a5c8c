// Package render writes search results and drafted amendments in the
// supported output formats: colored terminal text, Markdown, standalone
// HTML, JSON and DOCX.
package render

import (
	"encoding/json"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/coolbeans/lawamend/pkg/amend"
	"github.com/coolbeans/lawamend/pkg/search"
)

// Format names an output format.
type Format string

// Supported formats. DOCX is binary; the rest are UTF-8 text.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatDOCX     Format = "docx"
)

// ErrUnknownFormat is returned for an unrecognized format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatHTML, FormatJSON, FormatDOCX}
}

// ParseFormat resolves a format name. "txt" and "md" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "docx":
		return FormatDOCX, nil
	}
	return "", errors.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Binary reports whether the format produces non-text output.
func (format Format) Binary() bool {
	return format == FormatDOCX
}

// Extension returns the file extension used for the format.
func (format Format) Extension() string {
	switch format {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatJSON:
		return ".json"
	case FormatDOCX:
		return ".docx"
	default:
		return ".txt"
	}
}

// SearchReport is the outcome of one search.
type SearchReport struct {
	Query   string             `json:"query"`
	Results []search.LawResult `json:"results"`
}

// AmendReport is the outcome of one amendment drafting run.
type AmendReport struct {
	Find       string            `json:"find"`
	Replace    string            `json:"replace"`
	Amendments []amend.Amendment `json:"amendments"`
}

// Blocks returns one HTML block per amendment, or the no-targets message.
func (report AmendReport) Blocks() []string {
	return amend.Render(report.Amendments)
}

// MarshalJSON adds the rendered blocks to the report.
func (report AmendReport) MarshalJSON() ([]byte, error) {
	amendments := report.Amendments
	if amendments == nil {
		amendments = []amend.Amendment{}
	}
	return json.Marshal(struct {
		Find       string            `json:"find"`
		Replace    string            `json:"replace"`
		Amendments []amend.Amendment `json:"amendments"`
		Blocks     []string          `json:"blocks"`
	}{report.Find, report.Replace, amendments, report.Blocks()})
}

// Search writes a search report in the given format.
func Search(writer io.Writer, format Format, report SearchReport) error {
	switch format {
	case FormatText:
		return writeSearchText(writer, report)
	case FormatMarkdown:
		_, err := io.WriteString(writer, SearchMarkdown(report))
		return err
	case FormatHTML:
		return writeSearchHTML(writer, report)
	case FormatJSON:
		if report.Results == nil {
			report.Results = []search.LawResult{}
		}
		return writeJSON(writer, report)
	case FormatDOCX:
		return writeSearchDOCX(writer, report)
	}
	return errors.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Amendments writes an amendment report in the given format.
func Amendments(writer io.Writer, format Format, report AmendReport) error {
	switch format {
	case FormatText:
		return writeAmendText(writer, report)
	case FormatMarkdown:
		_, err := io.WriteString(writer, AmendMarkdown(report))
		return err
	case FormatHTML:
		return writeAmendHTML(writer, report)
	case FormatJSON:
		return writeJSON(writer, report)
	case FormatDOCX:
		return writeAmendDOCX(writer, report)
	}
	return errors.Errorf("%w: %q", ErrUnknownFormat, format)
}

func writeJSON(writer io.Writer, value any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return errors.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
