package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"intake_backend/platform/apperr"
	"intake_backend/platform/config"
	"intake_backend/platform/logger"
	"intake_backend/platform/metrics"
)

const (
	providerName = "nominatim"
	searchOp     = "geocode.search"
)

// Client performs a single Nominatim search per Lookup.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	email     string
	limit     int
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewClient builds a client from configuration. log and m may be nil.
func NewClient(cfg config.GeocodeConfig, log *logger.Logger, m *metrics.Metrics) *Client {
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		client:    &http.Client{Timeout: cfg.GetGeocodeTimeout()},
		baseURL:   cfg.GetNominatimURL(),
		userAgent: cfg.GetNominatimUserAgent(),
		email:     cfg.GetNominatimEmail(),
		limit:     cfg.GetGeocodeResultLimit(),
		log:       log,
		metrics:   m,
	}
}

// Lookup queries the provider with the raw address. Transport errors,
// timeouts, non-200 responses and undecodable payloads all yield nil.
func (c *Client) Lookup(ctx context.Context, address string) []Candidate {
	if strings.TrimSpace(address) == "" {
		return nil
	}

	start := time.Now()
	candidates, outcome, err := c.search(ctx, address)
	c.metrics.ObserveGeocode(outcome, time.Since(start))
	if err != nil {
		c.log.WithContext(ctx).GeocodeFailed(providerName, outcome, err)
		return nil
	}

	return candidates
}

func (c *Client) search(ctx context.Context, address string) ([]Candidate, string, error) {
	params := url.Values{}
	params.Add("q", address)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("limit", strconv.Itoa(c.limit))
	params.Add("countrycodes", "au")
	if c.email != "" {
		params.Add("email", c.email)
	}

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "request_error", apperr.Wrap(apperr.KindInternal, "build geocode request", err).WithOp(searchOp)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "transport_error", apperr.Wrap(apperr.KindUnavailable, "geocode provider unreachable", err).WithOp(searchOp)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "bad_status", apperr.Unavailable(fmt.Sprintf("geocode provider returned %d", resp.StatusCode)).WithOp(searchOp)
	}

	var results []Candidate
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, "decode_error", apperr.Wrap(apperr.KindInternal, "decode geocode response", err).WithOp(searchOp)
	}

	if len(results) == 0 {
		return nil, "empty", nil
	}

	return results, "ok", nil
}
