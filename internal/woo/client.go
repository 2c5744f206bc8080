package woo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// ClientOpts configures a WooCommerce REST API client.
type ClientOpts struct {
	// BaseURL is the store root, e.g. https://shop.example.com. The
	// /wp-json/wc/v3 API prefix is appended internally.
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

// Client talks to the WooCommerce v3 REST API.
type Client struct {
	httpClient *resty.Client
	baseURL    string
}

// NewClient creates a WooCommerce API client authenticated with the given
// consumer key/secret pair.
func NewClient(opts ClientOpts) *Client {
	c := Client{baseURL: opts.BaseURL}
	c.httpClient = resty.New().
		SetBaseURL(opts.BaseURL+"/wp-json/wc/v3").
		SetBasicAuth(opts.ConsumerKey, opts.ConsumerSecret).
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		c.httpClient.SetTimeout(opts.Timeout)
	}
	return &c
}

// BaseURL returns the store root the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) req(ctx context.Context, result any) *resty.Request {
	request := c.httpClient.NewRequest().SetContext(ctx)
	if result != nil {
		request.SetResult(result)
	}
	return request
}

// GetProducts fetches one page of published products, newest first. An empty
// slice means the catalog is exhausted.
func (c *Client) GetProducts(ctx context.Context, perPage, page int) ([]Product, error) {
	var result []Product

	_, err := handleError(c.req(ctx, &result).
		SetQueryParams(map[string]string{
			"per_page": strconv.Itoa(perPage),
			"page":     strconv.Itoa(page),
			"status":   "publish",
			"orderby":  "date",
			"order":    "desc",
		}).
		Get("/products"))

	return result, err
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int) (Product, error) {
	result := &Product{}

	_, err := handleError(c.req(ctx, result).
		SetPathParams(map[string]string{
			"id": strconv.Itoa(id),
		}).
		Get("/products/{id}"))

	return *result, err
}

// UpdateProduct applies a sparse patch to a product. Only fields set in
// update are sent.
func (c *Client) UpdateProduct(ctx context.Context, id int, update ProductUpdate) (Product, error) {
	result := &Product{}

	_, err := handleError(c.req(ctx, result).
		SetPathParams(map[string]string{
			"id": strconv.Itoa(id),
		}).
		SetBody(update).
		Put("/products/{id}"))

	return *result, err
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
