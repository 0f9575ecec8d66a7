package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RESTSource reads content from a PostgREST endpoint (a Supabase project's
// /rest/v1 API) using the project's anonymous key.
type RESTSource struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
}

var _ Source = (*RESTSource)(nil)

const (
	defaultUserAgent = "bkspace/0.1"
	requestTimeout   = 5 * time.Second
	restPrefix       = "/rest/v1/"
)

// NewRESTSource builds a client for the project at baseURL. A zero timeout
// uses the default.
func NewRESTSource(baseURL, apiKey string, timeout time.Duration) (*RESTSource, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key required")
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &RESTSource{
		baseURL:   base,
		apiKey:    apiKey,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

func (c *RESTSource) Readings(ctx context.Context) ([]Reading, error) {
	var rows []Reading
	if err := c.query(ctx, "murlis", "date.desc", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *RESTSource) Forms(ctx context.Context) ([]PracticeForm, error) {
	var rows []PracticeForm
	if err := c.query(ctx, "abhyas", "", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *RESTSource) Days(ctx context.Context) ([]CourseDay, error) {
	var rows []CourseDay
	if err := c.query(ctx, "course_days", "day.asc", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *RESTSource) query(ctx context.Context, table, order string, dest any) error {
	values := url.Values{}
	values.Set("select", "*")
	if order != "" {
		values.Set("order", order)
	}
	rel := &url.URL{Path: restPrefix + table, RawQuery: values.Encode()}
	return c.doURL(ctx, rel, dest)
}

func (c *RESTSource) doURL(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrNotConfigured
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse remote url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse remote url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
