package produto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/samvad-hq/produto-client/internal/domain"
	"github.com/samvad-hq/produto-client/pkg/httpclient"
)

// Client is the typed binding for the Produto API.
type Client struct {
	http httpclient.Client
}

// New wraps an HTTP client whose requests already resolve against the API
// base URL and carry authorization.
func New(client httpclient.Client) *Client {
	return &Client{http: client}
}

// NewClient builds a Client bound to baseURL that sends token as a bearer
// Authorization header on every request.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return New(httpclient.WrapResty(httpclient.NewAuthenticatedClient(baseURL, token, timeout)))
}

// AllProducts calls getAllProducts and returns the products in response order.
func (c *Client) AllProducts(ctx context.Context) ([]domain.Product, error) {
	body, err := c.call(ctx, OpAllProducts, nil)
	if err != nil {
		return nil, err
	}

	if err := expectJSON(body, '['); err != nil {
		return nil, &DecodeError{Operation: OpAllProducts, Err: err}
	}
	products := make([]domain.Product, 0)
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, &DecodeError{Operation: OpAllProducts, Err: err}
	}
	return products, nil
}

// ProductByID calls getProductById. The id is sent as-is.
func (c *Client) ProductByID(ctx context.Context, id int) (domain.Product, error) {
	body, err := c.call(ctx, OpProductByID, map[string]string{"id": strconv.Itoa(id)})
	if err != nil {
		return domain.Product{}, err
	}

	if err := expectJSON(body, '{'); err != nil {
		return domain.Product{}, &DecodeError{Operation: OpProductByID, Err: err}
	}
	var product domain.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return domain.Product{}, &DecodeError{Operation: OpProductByID, Err: err}
	}
	return product, nil
}

func (c *Client) call(ctx context.Context, op string, params map[string]string) ([]byte, error) {
	if c == nil || c.http == nil {
		return nil, fmt.Errorf("%s: produto client is not initialized", op)
	}
	ep, ok := endpoints[op]
	if !ok {
		return nil, fmt.Errorf("%s: unknown operation", op)
	}
	if ep.Method != http.MethodGet {
		return nil, fmt.Errorf("%s: unsupported method %s", ep.Name, ep.Method)
	}

	resp, err := c.http.Get(ctx, ep.Path(params), nil)
	if err != nil {
		return nil, &TransportError{Operation: ep.Name, Err: err}
	}

	body := resp.Body()
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &StatusError{Operation: ep.Name, StatusCode: resp.StatusCode(), Body: bodySnippet(body)}
	}
	return body, nil
}

// expectJSON checks the first non-space byte so that `null` or a value of the
// wrong kind is reported instead of silently decoding to a zero value.
func expectJSON(body []byte, open byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty body")
	}
	if trimmed[0] != open {
		kind := "object"
		if open == '[' {
			kind = "array"
		}
		return fmt.Errorf("expected JSON %s, got %q", kind, snippetHead(trimmed))
	}
	return nil
}

func snippetHead(b []byte) string {
	if len(b) > 32 {
		return string(b[:32]) + "..."
	}
	return string(b)
}
