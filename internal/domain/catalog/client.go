// internal/domain/catalog/client.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrFetchFailed covers non-2xx responses, success=false envelopes,
	// malformed bodies and transport errors.
	ErrFetchFailed = errors.New("catalog fetch failed")
	// ErrCanceled is returned when the caller abandoned the request. It is
	// not a failure and must not change any visible state.
	ErrCanceled = errors.New("catalog fetch canceled")
)

// Source provides the catalog collections
type Source interface {
	Products(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]Category, error)
	Articles(ctx context.Context) ([]Article, error)
}

// Client reads the remote coffee-shop REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewClient creates a catalog client. A zero timeout leaves request
// lifetime entirely to the caller's context.
func NewClient(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Products fetches GET {base}/product
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	data, err := fetch[productsData](ctx, c, "product")
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(data.Products))
	dropped := 0
	for _, dto := range data.Products {
		p, ok := dto.toProduct()
		if !ok {
			dropped++
			continue
		}
		products = append(products, p)
	}
	if dropped > 0 {
		c.log.WithField("dropped", dropped).Warn("Discarded malformed catalog products")
	}
	return products, nil
}

// Categories fetches GET {base}/category
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	data, err := fetch[categoriesData](ctx, c, "category")
	if err != nil {
		return nil, err
	}

	categories := make([]Category, 0, len(data.Categories))
	for _, dto := range data.Categories {
		if cat, ok := dto.toCategory(); ok {
			categories = append(categories, cat)
		}
	}
	return categories, nil
}

// Articles fetches GET {base}/article
func (c *Client) Articles(ctx context.Context) ([]Article, error) {
	data, err := fetch[articlesData](ctx, c, "article")
	if err != nil {
		return nil, err
	}

	articles := make([]Article, 0, len(data.Articles))
	for _, dto := range data.Articles {
		if a, ok := dto.toArticle(); ok {
			articles = append(articles, a)
		}
	}
	return articles, nil
}

func fetch[T any](ctx context.Context, c *Client, resource string) (*T, error) {
	url := c.baseURL + "/" + resource

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", ErrFetchFailed, resource, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classify(ctx, resource, err)
	}
	defer resp.Body.Close()

	entry := c.log.WithFields(logrus.Fields{
		"resource":    resource,
		"status_code": resp.StatusCode,
		"latency":     time.Since(start),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		entry.Warn("Catalog API returned non-2xx status")
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrFetchFailed, resource, resp.StatusCode)
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if ctx.Err() != nil {
			return nil, c.classify(ctx, resource, err)
		}
		entry.WithError(err).Warn("Catalog API returned a malformed body")
		return nil, fmt.Errorf("%w: decode %s: %v", ErrFetchFailed, resource, err)
	}

	if !env.Success || env.Data == nil {
		entry.Warn("Catalog API reported failure")
		return nil, fmt.Errorf("%w: GET %s: success=false", ErrFetchFailed, resource)
	}

	entry.Debug("Catalog resource fetched")
	return env.Data, nil
}

// classify separates caller cancellation from genuine transport failures
func (c *Client) classify(ctx context.Context, resource string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: GET %s", ErrCanceled, resource)
	}
	c.log.WithError(err).WithField("resource", resource).Warn("Catalog API request failed")
	return fmt.Errorf("%w: GET %s: %v", ErrFetchFailed, resource, err)
}

// IsCanceled reports whether err is a cancelled fetch
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
