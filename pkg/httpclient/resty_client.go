package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// NewAuthenticatedClient returns a resty.Client bound to baseURL whose
// transport injects token as a bearer Authorization header on every request.
func NewAuthenticatedClient(baseURL, token string, timeout time.Duration) *resty.Client {
	return NewAuthenticatedClientWithTransport(baseURL, token, timeout, nil)
}

// NewAuthenticatedClientWithTransport is NewAuthenticatedClient over a custom
// base transport (http.DefaultTransport when nil). The token is only sent to
// the host of baseURL; redirects elsewhere are followed without it.
func NewAuthenticatedClientWithTransport(baseURL, token string, timeout time.Duration, base http.RoundTripper) *resty.Client {
	c := newRestyBaseClient(timeout)
	c.SetBaseURL(baseURL)
	c.SetHeader("Accept", "application/json")
	c.SetTransport(NewBearerTransportForHost(base, token, baseHost(baseURL)))
	return c
}

// baseHost returns the host[:port] of baseURL. An unparsable or relative URL
// yields a placeholder that matches no request, so the token is never sent.
func baseHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return "invalid.host"
	}
	return u.Host
}

// WrapResty adapts an existing resty.Client.
func WrapResty(c *resty.Client) *RestyClient {
	return &RestyClient{client: c}
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
