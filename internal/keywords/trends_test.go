package keywords

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelatedQueries(t *testing.T) {
	var exploreReq, widgetReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/explore":
			exploreReq = r
			// Google Trends prepends an anti-hijacking guard
			io.WriteString(w, `)]}'
{"widgets":[
  {"id":"TIMESERIES","token":"ts-token","request":{}},
  {"id":"RELATED_QUERIES","token":"rq-token","request":{"restriction":{"keyword":"running shoes"}}}
]}`)
		case "/widgetdata/relatedsearches":
			widgetReq = r
			io.WriteString(w, `)]}',
{"default":{"rankedList":[
  {"rankedKeyword":[{"query":"best running shoes","value":100},{"query":"running shoes sale","value":60}]},
  {"rankedKeyword":[{"query":"trail running shoes","value":250}]}
]}}`)
		}
	}))
	defer ts.Close()

	client := NewTrendsClient(TrendsClientOpts{BaseURL: ts.URL})
	got, err := client.RelatedQueries(context.Background(), []string{"running", "shoes"}, "GB")
	assert.Nil(t, err)
	assert.Equal(t, []Candidate{
		{Phrase: "best running shoes", Score: 100, Kind: "top"},
		{Phrase: "running shoes sale", Score: 60, Kind: "top"},
		{Phrase: "trail running shoes", Score: 250, Kind: "rising"},
	}, got)

	var exploreBody struct {
		ComparisonItem []struct {
			Keyword string `json:"keyword"`
			Geo     string `json:"geo"`
		} `json:"comparisonItem"`
	}
	assert.Nil(t, json.Unmarshal([]byte(exploreReq.URL.Query().Get("req")), &exploreBody))
	assert.Len(t, exploreBody.ComparisonItem, 2)
	assert.Equal(t, "running", exploreBody.ComparisonItem[0].Keyword)
	assert.Equal(t, "GB", exploreBody.ComparisonItem[0].Geo)

	assert.Equal(t, "rq-token", widgetReq.URL.Query().Get("token"))
}

func TestRelatedQueriesCapsTerms(t *testing.T) {
	var exploreReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exploreReq = r
		io.WriteString(w, `)]}'
{"widgets":[]}`)
	}))
	defer ts.Close()

	client := NewTrendsClient(TrendsClientOpts{BaseURL: ts.URL})
	_, err := client.RelatedQueries(context.Background(), []string{"a", "b", "c", "d", "e", "f", "g"}, "")
	assert.Nil(t, err)

	var exploreBody struct {
		ComparisonItem []any `json:"comparisonItem"`
	}
	assert.Nil(t, json.Unmarshal([]byte(exploreReq.URL.Query().Get("req")), &exploreBody))
	assert.Len(t, exploreBody.ComparisonItem, 5)
}

func TestRelatedQueriesServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewTrendsClient(TrendsClientOpts{BaseURL: ts.URL})
	_, err := client.RelatedQueries(context.Background(), []string{"running"}, "")
	assert.ErrorContains(t, err, "status: 429")
}
