package lawapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/coolbeans/lawamend/pkg/statute"
)

// MockHTTPClient implements HTTPClient for testing.
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (mockClient *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return mockClient.DoFunc(req)
}

// listingPage renders one lawSearch.do page with the given rows.
func listingPage(names ...string) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?><LawSearch>`)
	builder.WriteString("<totalCnt>" + strconv.Itoa(len(names)) + "</totalCnt>")
	for index, name := range names {
		fmt.Fprintf(&builder, `<law id="%d"><법령명한글><![CDATA[%s]]></법령명한글><법령일련번호>%d</법령일련번호></law>`,
			index+1, name, 1000+index)
	}
	builder.WriteString("</LawSearch>")
	return builder.String()
}

// newTestServerClient creates a Client against handler with a small page size.
func newTestServerClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	lawClient, err := NewClient(Config{
		BaseURL:  server.URL,
		OC:       "test",
		Kind:     DefaultKind,
		PageSize: 2,
		Timeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	t.Cleanup(lawClient.Close)
	return lawClient
}

// =============================================================================
// Listing
// =============================================================================

func TestListLaws_Pagination(t *testing.T) {
	var requestCount atomic.Int32
	lawClient := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		if r.URL.Path != "/DRF/lawSearch.do" {
			t.Errorf("path: got %q, want /DRF/lawSearch.do", r.URL.Path)
		}
		query := r.URL.Query()
		if got := query.Get("query"); got != `"사람"` {
			t.Errorf("query: got %q, want %q", got, `"사람"`)
		}
		if got := query.Get("search"); got != "2" {
			t.Errorf("search: got %q, want 2", got)
		}
		if got := query.Get("knd"); got != DefaultKind {
			t.Errorf("knd: got %q, want %q", got, DefaultKind)
		}
		if got := query.Get("display"); got != "2" {
			t.Errorf("display: got %q, want 2", got)
		}

		switch query.Get("page") {
		case "1":
			fmt.Fprint(w, listingPage("민법", "형법"))
		case "2":
			fmt.Fprint(w, listingPage("상법"))
		default:
			t.Errorf("unexpected page %q", query.Get("page"))
		}
	})

	laws, err := lawClient.ListLaws(context.Background(), "사람")
	if err != nil {
		t.Fatalf("ListLaws failed: %v", err)
	}

	wantNames := []string{"민법", "형법", "상법"}
	if len(laws) != len(wantNames) {
		t.Fatalf("laws: got %d, want %d", len(laws), len(wantNames))
	}
	for index, wantName := range wantNames {
		if laws[index].Name != wantName {
			t.Errorf("laws[%d].Name: got %q, want %q", index, laws[index].Name, wantName)
		}
	}
	if laws[0].ID != "1000" {
		t.Errorf("laws[0].ID: got %q, want 1000", laws[0].ID)
	}
	if requestCount.Load() != 2 {
		t.Errorf("requests: got %d, want 2", requestCount.Load())
	}
}

func TestListLaws_FullLastPageRequestsOneMore(t *testing.T) {
	lawClient := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, listingPage("민법", "형법"))
		default:
			fmt.Fprint(w, listingPage())
		}
	})

	laws, err := lawClient.ListLaws(context.Background(), "사람")
	if err != nil {
		t.Fatalf("ListLaws failed: %v", err)
	}
	if len(laws) != 2 {
		t.Errorf("laws: got %d, want 2", len(laws))
	}
}

func TestListLaws_FirstPageFailure(t *testing.T) {
	lawClient := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := lawClient.ListLaws(context.Background(), "사람")
	if err == nil {
		t.Fatal("expected error for failing first page")
	}
	if !errors.Is(err, ErrStatus) {
		t.Errorf("error: got %v, want ErrStatus", err)
	}
}

func TestListLaws_LaterPageFailureKeepsRows(t *testing.T) {
	lawClient := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, listingPage("민법", "형법"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	laws, err := lawClient.ListLaws(context.Background(), "사람")
	if err != nil {
		t.Fatalf("ListLaws failed: %v", err)
	}
	if len(laws) != 2 {
		t.Errorf("laws: got %d, want 2", len(laws))
	}
}

// =============================================================================
// Body retrieval
// =============================================================================

func TestFetchLaw_RequestAndCache(t *testing.T) {
	var requestCount atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		if r.URL.Path != "/DRF/lawService.do" {
			t.Errorf("path: got %q, want /DRF/lawService.do", r.URL.Path)
		}
		if got := r.URL.Query().Get("MST"); got != "248613" {
			t.Errorf("MST: got %q, want 248613", got)
		}
		if got := r.Header.Get("User-Agent"); got != DefaultUserAgent {
			t.Errorf("User-Agent: got %q, want %q", got, DefaultUserAgent)
		}
		fmt.Fprint(w, "<법령></법령>")
	}))
	defer server.Close()

	lawClient, err := NewClient(Config{BaseURL: server.URL, OC: "test", CacheDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer lawClient.Close()

	law := statute.Law{Name: "민법", ID: "248613"}
	for attempt := 0; attempt < 2; attempt++ {
		body, err := lawClient.FetchLaw(context.Background(), law)
		if err != nil {
			t.Fatalf("FetchLaw failed: %v", err)
		}
		if string(body) != "<법령></법령>" {
			t.Errorf("body: got %q", body)
		}
	}

	if requestCount.Load() != 1 {
		t.Errorf("requests: got %d, want 1 (second served from cache)", requestCount.Load())
	}
}

func TestFetchLaw_Status(t *testing.T) {
	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusNotFound, Body: http.NoBody}, nil
		},
	}
	lawClient, err := NewClient(Config{OC: "test", HTTPClient: mockClient})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = lawClient.FetchLaw(context.Background(), statute.Law{ID: "1"})
	if !errors.Is(err, ErrStatus) {
		t.Errorf("error: got %v, want ErrStatus", err)
	}
}

func TestFetchLaw_TransportError(t *testing.T) {
	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}
	lawClient, err := NewClient(Config{OC: "test", HTTPClient: mockClient})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := lawClient.FetchLaw(context.Background(), statute.Law{ID: "1"}); err == nil {
		t.Error("expected error for transport failure")
	}
}

// =============================================================================
// Rate limiting
// =============================================================================

func TestRateLimitedHTTPClient_ContextCancelled(t *testing.T) {
	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		},
	}
	rateLimitedClient := NewRateLimitedHTTPClient(mockClient, time.Hour)
	defer rateLimitedClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com", nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	if _, err := rateLimitedClient.Do(request); !errors.Is(err, context.Canceled) {
		t.Errorf("error: got %v, want context.Canceled", err)
	}
}

func TestRateLimitedHTTPClient_ClosedPassesThrough(t *testing.T) {
	var callCount atomic.Int32
	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			callCount.Add(1)
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		},
	}
	rateLimitedClient := NewRateLimitedHTTPClient(mockClient, time.Hour)
	rateLimitedClient.Close()

	request, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	if _, err := rateLimitedClient.Do(request); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if callCount.Load() != 1 {
		t.Errorf("calls: got %d, want 1", callCount.Load())
	}
}
