package lawapi

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/coolbeans/lawamend/pkg/statute"
)

// DefaultPattern selects every XML file below the source root.
const DefaultPattern = "**/*.xml"

// Source lists statutes matching a query and retrieves their XML bodies.
type Source interface {
	// ListLaws returns the statutes whose text contains query, in listing order.
	ListLaws(ctx context.Context, query string) ([]statute.Law, error)

	// FetchLaw returns the XML body of one statute.
	FetchLaw(ctx context.Context, law statute.Law) ([]byte, error)
}

var (
	_ Source = (*Client)(nil)
	_ Source = (*FSSource)(nil)
)

// FSSource serves statute XML files from a file system, for offline use
// and tests. A statute's ID is its slash-separated path within the file
// system.
type FSSource struct {
	fsys    fs.FS
	pattern string
}

// NewFSSource creates a source over the files of fsys matching pattern.
// An empty pattern selects DefaultPattern.
func NewFSSource(fsys fs.FS, pattern string) (*FSSource, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Errorf("invalid glob pattern %q", pattern)
	}
	return &FSSource{fsys: fsys, pattern: pattern}, nil
}

// NewDirSource creates a source over the XML files below dir.
func NewDirSource(dir string) (*FSSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Errorf("failed to open statute directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("statute source %s is not a directory", dir)
	}
	return NewFSSource(os.DirFS(dir), DefaultPattern)
}

// ListLaws returns every matching file whose raw content contains query,
// in lexical path order.
func (source *FSSource) ListLaws(ctx context.Context, query string) ([]statute.Law, error) {
	paths, err := doublestar.Glob(source.fsys, source.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("failed to glob %q: %w", source.pattern, err)
	}
	sort.Strings(paths)

	var laws []statute.Law
	for _, filePath := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := fs.ReadFile(source.fsys, filePath)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", filePath).Msg("skipping unreadable statute file")
			continue
		}
		if !bytes.Contains(content, []byte(query)) {
			continue
		}

		laws = append(laws, statute.Law{Name: lawName(content, filePath), ID: filePath})
	}

	zerolog.Ctx(ctx).Debug().Int("files", len(paths)).Int("matches", len(laws)).Msg("listed statute files")
	return laws, nil
}

// FetchLaw reads the file named by law.ID.
func (source *FSSource) FetchLaw(_ context.Context, law statute.Law) ([]byte, error) {
	content, err := fs.ReadFile(source.fsys, law.ID)
	if err != nil {
		return nil, errors.Errorf("failed to read statute file %s: %w", law.ID, err)
	}
	return content, nil
}

// lawName takes the statute title from the XML, falling back to the file name.
func lawName(content []byte, filePath string) string {
	document, err := statute.ParseLawXML(bytes.NewReader(content), statute.Law{})
	if err == nil && document.Law.Name != "" {
		return document.Law.Name
	}
	return strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
}
