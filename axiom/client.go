// Package axiom is the typed client for the Axiom platform REST API.
//
// Every admin console screen talks to the platform through this package:
// agents, users, billing plans, coupons, knowledge base documents, call
// summaries, the voice catalog, authentication, and subscription actions.
// Calls attach a bearer token, parse JSON defensively, and map every
// failure to a uniform APIError. There are no retries and no caching at
// this layer.
package axiom

import (
	"net/http"
	"strings"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a platform client for the given base URL. The
// returned client carries no credentials; derive one per session with
// WithToken.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// WithToken returns a copy of the client that authenticates with the
// given bearer token. The copy shares the underlying HTTP client.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// BaseURL returns the configured platform base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
