// Package wiki fetches Wikipedia articles and extracts their paragraph text.
package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultSelector is the element holding the article body on Wikipedia pages.
const DefaultSelector = "#bodyContent"

// ErrNoContent is returned when a page has no element matching the content
// selector.
var ErrNoContent = errors.New("article content not found")

// StatusError reports a non-200 response for an article URL.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to retrieve the article from %s: status code %d", e.URL, e.StatusCode)
}

// Article is the extracted text of one page.
type Article struct {
	URL        string
	Title      string
	Paragraphs []string
}

// Text joins the paragraphs with a single newline.
func (a Article) Text() string {
	return strings.Join(a.Paragraphs, "\n")
}

type Options struct {
	HTTPClient *http.Client
	UserAgent  string
	Timeout    time.Duration
	// Selector locates the content root; paragraphs are collected from
	// every <p> below it. Empty means DefaultSelector.
	Selector string
}

// Client fetches articles. A zero Client is not usable; use NewClient.
type Client struct {
	http      *http.Client
	userAgent string
	selector  string
}

func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	sel := opts.Selector
	if sel == "" {
		sel = DefaultSelector
	}

	return &Client{http: hc, userAgent: opts.UserAgent, selector: sel}
}

// Fetch downloads url and extracts its paragraphs. A response other than
// 200 OK yields a *StatusError.
func (c *Client) Fetch(ctx context.Context, url string) (Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Article{}, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Article{}, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	paras, err := Extract(resp.Body, c.selector)
	if err != nil {
		return Article{}, fmt.Errorf("extract %s: %w", url, err)
	}

	return Article{URL: url, Title: TitleFromURL(url), Paragraphs: paras}, nil
}

// Probe sends a HEAD request to url and returns the response status.
func (c *Client) Probe(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request %s: %w", url, err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return resp.Status, nil
}

// Extract parses an HTML document and returns the text of every <p> element
// below the first element matching selector, in document order.
func Extract(r io.Reader, selector string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	root := doc.Find(selector).First()
	if root.Length() == 0 {
		return nil, ErrNoContent
	}

	var paras []string
	root.Find("p").Each(func(_ int, s *goquery.Selection) {
		paras = append(paras, s.Text())
	})

	return paras, nil
}

// TitleFromURL returns the last path segment of an article URL, e.g.
// "King_Kong" for https://en.wikipedia.org/wiki/King_Kong.
func TitleFromURL(url string) string {
	url = strings.TrimRight(url, "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}
