package arcgis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Client fetches features from an ArcGIS feature service layer using
// offset-based pagination.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a new feature service client from the configuration.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 2000
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.HTTPClient.Timeout = time.Duration(timeout) * time.Second
	rc.Logger = nil // we log pages ourselves

	return &Client{
		cfg:    cfg,
		http:   rc.StandardClient(),
		logger: logger,
	}
}

// FetchAll retrieves the complete current result set for the configured layer.
// It pages through the layer query until a page returns fewer records than the
// page size. Any failed or malformed page aborts the whole fetch: a partial
// result must never be treated as a snapshot.
func (c *Client) FetchAll(ctx context.Context) (*FeatureCollection, error) {
	features := []Feature{}
	offset := 0

	for {
		batch, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, fmt.Errorf("fetch page at offset %d: %w", offset, err)
		}
		features = append(features, batch...)

		c.logger.Debug("Fetched page",
			zap.Int("offset", offset),
			zap.Int("records", len(batch)))

		if len(batch) < c.cfg.PageSize {
			break
		}
		offset += c.cfg.PageSize
	}

	c.logger.Info("Fetch complete", zap.Int("features", len(features)))

	return &FeatureCollection{Type: "FeatureCollection", Features: features}, nil
}

func (c *Client) fetchPage(ctx context.Context, offset int) ([]Feature, error) {
	params := url.Values{}
	params.Set("where", c.cfg.Where)
	params.Set("outFields", "*")
	params.Set("outSR", strconv.Itoa(c.cfg.OutSR))
	params.Set("resultOffset", strconv.Itoa(offset))
	params.Set("resultRecordCount", strconv.Itoa(c.cfg.PageSize))
	params.Set("f", "geojson")

	reqURL := c.cfg.LayerURL + "/query?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var page queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	// ArcGIS reports query failures inside a 200 response.
	if page.Error != nil {
		return nil, fmt.Errorf("service error %d: %s", page.Error.Code, page.Error.Message)
	}

	return page.Features, nil
}
