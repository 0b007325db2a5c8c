// Package lookup runs the search and amendment pipelines over a statute
// source: list the statutes that mention a term, fetch and parse their
// bodies in parallel, then search or draft amendments in listing order.
package lookup

import (
	"bytes"
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/coolbeans/lawamend/pkg/amend"
	"github.com/coolbeans/lawamend/pkg/lawapi"
	"github.com/coolbeans/lawamend/pkg/search"
	"github.com/coolbeans/lawamend/pkg/statute"
)

// DefaultWorkers is the number of statutes fetched concurrently.
const DefaultWorkers = 4

// ErrEmptyQuery is returned when the search or find term is blank.
var ErrEmptyQuery = errors.New("query is empty")

// Runner drives both pipelines against one source.
type Runner struct {
	source  lawapi.Source
	workers int
}

// NewRunner creates a Runner. A non-positive workers count selects
// DefaultWorkers.
func NewRunner(source lawapi.Source, workers int) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Runner{source: source, workers: workers}
}

// Load fetches and parses every statute, keeping the order of laws. A
// statute that cannot be fetched or parsed is logged and yields a document
// with no articles so the rest of the batch proceeds. The only error
// returned is cancellation of ctx.
func (runner *Runner) Load(ctx context.Context, laws []statute.Law) ([]*statute.Document, error) {
	documents := make([]*statute.Document, len(laws))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runner.workers)
	for index, law := range laws {
		index, law := index, law
		group.Go(func() error {
			documents[index] = runner.loadOne(groupCtx, law)
			return nil
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return documents, nil
}

func (runner *Runner) loadOne(ctx context.Context, law statute.Law) *statute.Document {
	logger := zerolog.Ctx(ctx).With().Str("law", law.Name).Str("id", law.ID).Logger()

	body, err := runner.source.FetchLaw(ctx, law)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to fetch statute")
		return &statute.Document{Law: law}
	}

	document, err := statute.ParseLawXML(bytes.NewReader(body), law)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to parse statute")
		return &statute.Document{Law: law}
	}

	stats := document.Statistics()
	logger.Debug().Int("articles", stats.ArticleCount).Int("clauses", stats.ClauseCount).Msg("loaded statute")
	return document
}

// Search returns the statutes with at least one article matching query,
// in listing order.
func (runner *Runner) Search(ctx context.Context, query string) ([]search.LawResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	documents, err := runner.list(ctx, query)
	if err != nil {
		return nil, err
	}

	var results []search.LawResult
	for _, document := range documents {
		if result, ok := search.Law(document, query); ok {
			results = append(results, result)
		}
	}
	zerolog.Ctx(ctx).Info().Str("query", query).Int("statutes", len(documents)).Int("matches", len(results)).Msg("search finished")
	return results, nil
}

// Amend drafts one amendment per statute that literally contains find.
// Ordinals are assigned consecutively over the drafted amendments.
func (runner *Runner) Amend(ctx context.Context, find, replacement string) ([]amend.Amendment, error) {
	if strings.TrimSpace(find) == "" {
		return nil, ErrEmptyQuery
	}

	documents, err := runner.list(ctx, find)
	if err != nil {
		return nil, err
	}

	var amendments []amend.Amendment
	for _, document := range documents {
		if amendment, ok := amend.Draft(document, find, replacement, len(amendments)); ok {
			amendments = append(amendments, amendment)
		}
	}
	zerolog.Ctx(ctx).Info().Str("find", find).Str("replace", replacement).Int("statutes", len(documents)).Int("amendments", len(amendments)).Msg("amendment drafting finished")
	return amendments, nil
}

// list lists the statutes mentioning term and loads them.
func (runner *Runner) list(ctx context.Context, term string) ([]*statute.Document, error) {
	laws, err := runner.source.ListLaws(ctx, term)
	if err != nil {
		return nil, errors.Errorf("failed to list statutes: %w", err)
	}
	return runner.Load(ctx, laws)
}
