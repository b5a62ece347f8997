package produto

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrTransport marks failures that happened before any HTTP response arrived.
	ErrTransport = errors.New("produto: transport failure")
	// ErrStatus marks non-2xx responses.
	ErrStatus = errors.New("produto: unexpected status")
	// ErrNotFound marks 404 responses.
	ErrNotFound = errors.New("produto: not found")
	// ErrDecode marks bodies that are not the expected JSON shape.
	ErrDecode = errors.New("produto: decode response")
)

// TransportError wraps a network level failure (DNS, refused, timeout, cancel).
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d body: %s", e.Operation, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrStatus:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// DecodeError reports a response body that did not match the expected shape.
type DecodeError struct {
	Operation string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

const maxSnippetBytes = 512

// bodySnippet shortens an error body for messages. HTML error pages are
// reduced to their <title>.
func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return ""
	}
	if looksLikeHTML(s) {
		if title := htmlTitle(s); title != "" {
			return title
		}
	}
	if len(s) > maxSnippetBytes {
		return s[:maxSnippetBytes] + "..."
	}
	return s
}

func looksLikeHTML(s string) bool {
	head := strings.ToLower(s)
	if len(head) > 64 {
		head = head[:64]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

func htmlTitle(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
