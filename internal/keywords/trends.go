package keywords

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	TrendsBaseUrl = "https://trends.google.com/trends/api"

	// trendsTimeframe matches a rolling three month window.
	trendsTimeframe = "today 3-m"

	// maxCompareItems is the Google Trends limit on terms per explore call.
	maxCompareItems = 5
)

// TrendsClientOpts configures a Google Trends client.
type TrendsClientOpts struct {
	BaseURL string
	Lang    string
	Timeout time.Duration
}

// TrendsClient fetches related queries from the unofficial Google Trends
// API: an explore call yields per-keyword widget tokens, which are then
// resolved into top/rising related query rows.
type TrendsClient struct {
	httpClient *resty.Client
	lang       string
}

// NewTrendsClient creates a Google Trends client.
func NewTrendsClient(opts TrendsClientOpts) *TrendsClient {
	baseURL := TrendsBaseUrl
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	lang := opts.Lang
	if lang == "" {
		lang = "en-GB"
	}
	c := &TrendsClient{lang: lang}
	c.httpClient = resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		c.httpClient.SetTimeout(opts.Timeout)
	}
	return c
}

type exploreWidget struct {
	ID      string          `json:"id"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

type rankedKeyword struct {
	Query string `json:"query"`
	Value int    `json:"value"`
}

// RelatedQueries implements the TrendSource interface. Rows from the "top"
// ranked list come before "rising" ones within each widget; dedup and
// scoring order are the caller's concern.
func (c *TrendsClient) RelatedQueries(ctx context.Context, terms []string, region string) ([]Candidate, error) {
	if len(terms) > maxCompareItems {
		terms = terms[:maxCompareItems]
	}

	widgets, err := c.explore(ctx, terms, region)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, w := range widgets {
		if w.ID != "RELATED_QUERIES" {
			continue
		}
		rows, err := c.relatedSearches(ctx, w)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, rows...)
	}
	return candidates, nil
}

func (c *TrendsClient) explore(ctx context.Context, terms []string, region string) ([]exploreWidget, error) {
	type comparisonItem struct {
		Keyword string `json:"keyword"`
		Geo     string `json:"geo"`
		Time    string `json:"time"`
	}
	items := make([]comparisonItem, len(terms))
	for i, t := range terms {
		items[i] = comparisonItem{Keyword: t, Geo: region, Time: trendsTimeframe}
	}
	req, err := json.Marshal(map[string]any{
		"comparisonItem": items,
		"category":       0,
		"property":       "",
	})
	if err != nil {
		return nil, err
	}

	res, err := handleError(c.httpClient.NewRequest().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"hl":  c.lang,
			"tz":  "0",
			"req": string(req),
		}).
		Get("/explore"))
	if err != nil {
		return nil, fmt.Errorf("trends explore failed: %w", err)
	}

	var payload struct {
		Widgets []exploreWidget `json:"widgets"`
	}
	if err := json.Unmarshal(stripJSONPGuard(res.Body()), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse explore response: %w", err)
	}
	return payload.Widgets, nil
}

func (c *TrendsClient) relatedSearches(ctx context.Context, w exploreWidget) ([]Candidate, error) {
	res, err := handleError(c.httpClient.NewRequest().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"hl":    c.lang,
			"tz":    "0",
			"req":   string(w.Request),
			"token": w.Token,
		}).
		Get("/widgetdata/relatedsearches"))
	if err != nil {
		return nil, fmt.Errorf("trends related searches failed: %w", err)
	}

	var payload struct {
		Default struct {
			RankedList []struct {
				RankedKeyword []rankedKeyword `json:"rankedKeyword"`
			} `json:"rankedList"`
		} `json:"default"`
	}
	if err := json.Unmarshal(stripJSONPGuard(res.Body()), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse related searches response: %w", err)
	}

	// rankedList[0] holds "top" queries, rankedList[1] "rising" ones.
	var candidates []Candidate
	for i, list := range payload.Default.RankedList {
		kind := "top"
		if i == 1 {
			kind = "rising"
		}
		for _, row := range list.RankedKeyword {
			candidates = append(candidates, Candidate{
				Phrase: row.Query,
				Score:  row.Value,
				Kind:   kind,
			})
		}
	}
	return candidates, nil
}

// stripJSONPGuard removes the ")]}'" anti-hijacking prefix Google Trends
// prepends to its JSON responses.
func stripJSONPGuard(body []byte) []byte {
	if i := strings.IndexByte(string(body), '{'); i > 0 {
		return body[i:]
	}
	return body
}

// handleError is a generic error handler for failing responses (>399 status
// code). Without this, failing responses would have nil error.
func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, err
	}
	if res.IsError() {
		return res, fmt.Errorf("request failed: %s %s (status: %d)", res.Request.Method, res.Request.URL, res.StatusCode())
	}

	return res, nil
}
