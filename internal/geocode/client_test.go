package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"intake_backend/platform/apperr"
	"intake_backend/platform/logger"
	"intake_backend/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testGeocodeConfig struct {
	url     string
	email   string
	timeout time.Duration
}

func (c testGeocodeConfig) GetNominatimURL() string          { return c.url }
func (c testGeocodeConfig) GetNominatimUserAgent() string    { return "IntakeBackend-Test/1.0" }
func (c testGeocodeConfig) GetNominatimEmail() string        { return c.email }
func (c testGeocodeConfig) GetGeocodeTimeout() time.Duration { return c.timeout }
func (c testGeocodeConfig) GetGeocodeResultLimit() int       { return 7 }

const sampleResponse = `[
  {
    "place_id": 1,
    "display_name": "123, Main Street, Melbourne, Victoria, 3000, Australia",
    "lat": "-37.8136",
    "lon": "144.9631",
    "address": {
      "house_number": "123",
      "road": "Main Street",
      "suburb": "Melbourne",
      "state": "Victoria",
      "postcode": "3000",
      "country": "Australia",
      "country_code": "au"
    }
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) (*Client, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := metrics.New(prometheus.NewRegistry())
	cfg := testGeocodeConfig{url: srv.URL + "/search", email: "ops@example.com", timeout: timeout}
	return NewClient(cfg, logger.Discard(), m), m
}

func TestClientLookup(t *testing.T) {
	var gotQuery map[string]string
	var gotAgent string
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}, time.Second)

	got := client.Lookup(context.Background(), "123 Main Street, Melbourne VIC 3000")

	require.Len(t, got, 1)
	assert.Equal(t, "Melbourne", got[0].Address.Locality())
	assert.Equal(t, "Victoria", got[0].Address.State)
	assert.Equal(t, "-37.8136", got[0].Lat)

	assert.Equal(t, "IntakeBackend-Test/1.0", gotAgent)
	assert.Equal(t, map[string]string{
		"q":              "123 Main Street, Melbourne VIC 3000",
		"format":         "json",
		"addressdetails": "1",
		"limit":          "7",
		"countrycodes":   "au",
		"email":          "ops@example.com",
	}, gotQuery)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeRequests.WithLabelValues("ok")))
}

func TestClientLookupFailuresYieldNil(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		outcome string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			outcome: "bad_status",
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			outcome: "bad_status",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"error":`))
			},
			outcome: "decode_error",
		},
		{
			name: "empty result",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
			outcome: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, m := newTestClient(t, tt.handler, time.Second)

			assert.Nil(t, client.Lookup(context.Background(), "1 Main St"))
			assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeRequests.WithLabelValues(tt.outcome)))
		})
	}
}

func TestClientLookupTimeout(t *testing.T) {
	release := make(chan struct{})
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	defer close(release)

	assert.Nil(t, client.Lookup(context.Background(), "1 Main St"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeRequests.WithLabelValues("transport_error")))
}

func TestClientLookupCancelledContext(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleResponse))
	}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Nil(t, client.Lookup(ctx, "1 Main St"))
}

func TestClientLookupBlankSkipsRequest(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}, time.Second)

	assert.Nil(t, client.Lookup(context.Background(), "  "))
	assert.False(t, called)
}

func TestClientUnreachableProvider(t *testing.T) {
	cfg := testGeocodeConfig{url: "http://127.0.0.1:1/search", timeout: 200 * time.Millisecond}
	client := NewClient(cfg, logger.Discard(), nil)

	assert.Nil(t, client.Lookup(context.Background(), "1 Main St"))
}

func TestLocality(t *testing.T) {
	assert.Equal(t, "Kew", Address{Suburb: "Kew", City: "Melbourne"}.Locality())
	assert.Equal(t, "Maldon", Address{Town: "Maldon", Municipality: "Mount Alexander"}.Locality())
	assert.Equal(t, "Mount Alexander", Address{Municipality: "Mount Alexander"}.Locality())
	assert.Empty(t, Address{}.Locality())
}

func TestSearchReturnsTypedErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, time.Second)

	_, outcome, err := client.search(context.Background(), "1 Main St")

	assert.Equal(t, "bad_status", outcome)
	assert.True(t, apperr.Is(err, apperr.KindUnavailable))
	assert.EqualError(t, err, "geocode.search: geocode provider returned 502")
}

func TestClientLookupWithoutLogger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	client := NewClient(testGeocodeConfig{url: srv.URL, timeout: time.Second}, nil, nil)

	assert.NotPanics(t, func() {
		assert.Nil(t, client.Lookup(context.Background(), "1 Main St"))
	})
}
