package lawapi

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/net/html/charset"

	"github.com/coolbeans/lawamend/pkg/statute"
)

// ErrStatus is returned when the API answers with a non-200 status.
var ErrStatus = errors.New("unexpected HTTP status")

// lawSearchResponse is the listing document returned by lawSearch.do.
type lawSearchResponse struct {
	TotalCount string           `xml:"totalCnt"`
	Laws       []lawSearchEntry `xml:"law"`
}

type lawSearchEntry struct {
	Name string `xml:"법령명한글"`
	ID   string `xml:"법령일련번호"`
}

// Client talks to the law.go.kr DRF API.
type Client struct {
	httpClient  HTTPClient
	rateLimiter *RateLimitedHTTPClient
	cache       *DiskCache
	config      Config
}

// NewClient creates a Client. Zero-valued fields of config take the
// defaults of DefaultConfig, except OC, Kind and CacheDir which are used as given.
func NewClient(config Config) (*Client, error) {
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.PageSize <= 0 {
		config.PageSize = defaults.PageSize
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = defaults.CacheTTL
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}

	lawClient := &Client{config: config}

	underlyingClient := config.HTTPClient
	if underlyingClient == nil {
		underlyingClient = http.DefaultClient
	}
	lawClient.httpClient = underlyingClient
	if config.RateLimit > 0 {
		lawClient.rateLimiter = NewRateLimitedHTTPClient(underlyingClient, config.RateLimit)
		lawClient.httpClient = lawClient.rateLimiter
	}

	if config.CacheDir != "" {
		cache, err := NewDiskCache(config.CacheDir, config.CacheTTL)
		if err != nil {
			return nil, err
		}
		lawClient.cache = cache
	}

	return lawClient, nil
}

// Close releases the rate limiter.
func (lawClient *Client) Close() {
	if lawClient.rateLimiter != nil {
		lawClient.rateLimiter.Close()
	}
}

// ListLaws pages through lawSearch.do for statutes whose body contains the
// exact phrase query. Paging stops at the first page shorter than PageSize.
// A failure on the first page is returned; a later failure ends paging and
// keeps what was collected.
func (lawClient *Client) ListLaws(ctx context.Context, query string) ([]statute.Law, error) {
	logger := zerolog.Ctx(ctx)

	var laws []statute.Law
	for page := 1; ; page++ {
		searchURL := lawClient.searchURL(query, page)
		body, err := lawClient.get(ctx, searchURL)
		if err != nil {
			if page == 1 {
				return nil, errors.Errorf("failed to list laws for %q: %w", query, err)
			}
			logger.Warn().Err(err).Int("page", page).Msg("stopping law listing early")
			break
		}

		entries, err := parseLawSearch(body)
		if err != nil {
			if page == 1 {
				return nil, errors.Errorf("failed to list laws for %q: %w", query, err)
			}
			logger.Warn().Err(err).Int("page", page).Msg("stopping law listing early")
			break
		}

		for _, entry := range entries {
			laws = append(laws, statute.Law{
				Name: strings.TrimSpace(entry.Name),
				ID:   strings.TrimSpace(entry.ID),
			})
		}
		logger.Debug().Int("page", page).Int("rows", len(entries)).Msg("listed laws")

		if len(entries) < lawClient.config.PageSize {
			break
		}
	}

	return laws, nil
}

// FetchLaw retrieves the XML body of one statute by its serial number.
func (lawClient *Client) FetchLaw(ctx context.Context, law statute.Law) ([]byte, error) {
	lawURL := lawClient.lawURL(law.ID)

	if lawClient.cache != nil {
		if cachedBody, found := lawClient.cache.Get(lawURL); found {
			zerolog.Ctx(ctx).Debug().Str("mst", law.ID).Msg("law body served from cache")
			return cachedBody, nil
		}
	}

	body, err := lawClient.get(ctx, lawURL)
	if err != nil {
		return nil, errors.Errorf("failed to fetch law %s (%s): %w", law.Name, law.ID, err)
	}

	if lawClient.cache != nil {
		if err := lawClient.cache.Set(lawURL, body); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("mst", law.ID).Msg("failed to cache law body")
		}
	}

	return body, nil
}

// searchURL builds the listing URL for one page.
func (lawClient *Client) searchURL(query string, page int) string {
	params := url.Values{}
	params.Set("OC", lawClient.config.OC)
	params.Set("target", "law")
	params.Set("type", "XML")
	params.Set("display", strconv.Itoa(lawClient.config.PageSize))
	params.Set("page", strconv.Itoa(page))
	params.Set("search", "2")
	if lawClient.config.Kind != "" {
		params.Set("knd", lawClient.config.Kind)
	}
	params.Set("query", `"`+query+`"`)
	return lawClient.config.BaseURL + "/DRF/lawSearch.do?" + params.Encode()
}

// lawURL builds the body URL for one statute.
func (lawClient *Client) lawURL(id string) string {
	params := url.Values{}
	params.Set("OC", lawClient.config.OC)
	params.Set("target", "law")
	params.Set("MST", id)
	params.Set("type", "XML")
	return lawClient.config.BaseURL + "/DRF/lawService.do?" + params.Encode()
}

// get performs a GET request and returns the body of a 200 response.
func (lawClient *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	requestCtx, cancel := context.WithTimeout(ctx, lawClient.config.Timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(requestCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", lawClient.config.UserAgent)

	response, err := lawClient.httpClient.Do(request)
	if err != nil {
		return nil, errors.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	zerolog.Ctx(ctx).Debug().Int("status", response.StatusCode).Str("url", requestURL).Msg("law API response")

	if response.StatusCode != http.StatusOK {
		return nil, errors.Errorf("%w: %d", ErrStatus, response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// parseLawSearch decodes the rows of one listing page.
func parseLawSearch(body []byte) ([]lawSearchEntry, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.Strict = false
	decoder.CharsetReader = charset.NewReaderLabel

	var response lawSearchResponse
	if err := decoder.Decode(&response); err != nil {
		return nil, errors.Errorf("failed to parse law listing: %w", err)
	}
	return response.Laws, nil
}
