package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"searchbox/internal/domain"
)

// DefaultThreshold is the shortest trimmed query that triggers a lookup.
const DefaultThreshold = 3

// ErrBadStatus is returned when the catalog answers with a non-2xx status.
var ErrBadStatus = errors.New("unexpected response status")

// RemoteSource looks products up in an OData catalog by description.
type RemoteSource struct {
	baseURL   string
	client    *http.Client
	threshold int
}

type RemoteOption func(*RemoteSource)

func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *RemoteSource) {
		r.client = c
	}
}

// WithThreshold sets the minimum query length. Values below 1 are ignored.
func WithThreshold(n int) RemoteOption {
	return func(r *RemoteSource) {
		if n > 0 {
			r.threshold = n
		}
	}
}

func WithTimeout(d time.Duration) RemoteOption {
	return func(r *RemoteSource) {
		r.client.Timeout = d
	}
}

// NewRemoteSource creates a source for the catalog rooted at baseURL,
// e.g. https://services.odata.org/V3/OData/OData.svc.
func NewRemoteSource(baseURL string, opts ...RemoteOption) *RemoteSource {
	r := &RemoteSource{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{},
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RemoteSource) Threshold() int {
	return r.threshold
}

// Eligible reports whether text is long enough to be looked up.
func (r *RemoteSource) Eligible(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= r.threshold
}

// QueryURL returns the product query for text.
func (r *RemoteSource) QueryURL(text string) string {
	filter := fmt.Sprintf("substringof('%s',Description)", quoteLiteral(TitleWords(text)))
	q := url.Values{}
	q.Set("$filter", filter)
	return r.baseURL + "/Products?" + q.Encode()
}

// Lookup fetches the products whose description contains text. Ineligible
// text returns nil without a request.
func (r *RemoteSource) Lookup(ctx context.Context, text string) ([]domain.Product, error) {
	if !r.Eligible(text) {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.QueryURL(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", text, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("lookup %q: %w: %s", text, ErrBadStatus, resp.Status)
	}

	var page domain.ProductPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	log.Debug("lookup done", "query", text, "results", len(page.Value), "took", time.Since(start))
	if page.Value == nil {
		page.Value = []domain.Product{}
	}
	return page.Value, nil
}
