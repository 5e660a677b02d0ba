package overpass

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/surroundings-microservice/internal/config"
	"github.com/surroundings-microservice/internal/domain"
	pkgerrors "github.com/surroundings-microservice/internal/pkg/errors"
)

func newTestClient(baseURL string, timeout time.Duration) *client {
	return NewClient(&config.OverpassConfig{
		BaseURL:        baseURL,
		RequestTimeout: timeout,
	}, zap.NewNop()).(*client)
}

func TestClient_Search(t *testing.T) {
	origin := domain.Point{Lat: 52.2297, Lon: 21.0122}
	filters := []domain.TagFilter{{Key: "amenity", Value: "school"}}

	t.Run("successful request with node and way elements", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			query := r.Form.Get("data")
			assert.Contains(t, query, `nwr["amenity"="school"]`)
			assert.Contains(t, query, "out center")

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"elements": [
					{"id": 1, "type": "node", "lat": 52.2300, "lon": 21.0130,
					 "tags": {"amenity": "school", "name": "SP 1"}},
					{"id": 2, "type": "way",
					 "center": {"lat": 52.2310, "lon": 21.0140},
					 "tags": {"amenity": "school"}}
				]
			}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 5*time.Second)

		features, err := c.Search(context.Background(), origin, 1000, filters)
		require.NoError(t, err)
		require.Len(t, features, 2)

		assert.Equal(t, int64(1), features[0].ID)
		assert.Equal(t, "node", features[0].Type)
		assert.Equal(t, "SP 1", features[0].Tags["name"])

		pt, ok := features[1].RepresentativePoint()
		require.True(t, ok)
		assert.Equal(t, 52.2310, pt.Lat)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"elements": []}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 5*time.Second)

		features, err := c.Search(context.Background(), origin, 1000, filters)
		require.NoError(t, err)
		assert.Empty(t, features)
	})

	t.Run("empty filters rejected", func(t *testing.T) {
		c := newTestClient("http://unused", 5*time.Second)

		features, err := c.Search(context.Background(), origin, 1000, nil)
		assert.Error(t, err)
		assert.Nil(t, features)
	})

	t.Run("rate limit maps to PROVIDER_RATE_LIMITED", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := newTestClient(server.URL, 5*time.Second)

		_, err := c.Search(context.Background(), origin, 1000, filters)
		assert.True(t, errors.Is(err, pkgerrors.ErrProviderRateLimited))
	})

	t.Run("server timeout maps to PROVIDER_TIMEOUT", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusGatewayTimeout)
		}))
		defer server.Close()

		c := newTestClient(server.URL, 5*time.Second)

		_, err := c.Search(context.Background(), origin, 1000, filters)
		assert.True(t, errors.Is(err, pkgerrors.ErrProviderTimeout))
	})

	t.Run("client timeout maps to PROVIDER_TIMEOUT", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		c := newTestClient(server.URL, 20*time.Millisecond)

		_, err := c.Search(context.Background(), origin, 1000, filters)
		assert.True(t, errors.Is(err, pkgerrors.ErrProviderTimeout))
	})

	t.Run("generic failure maps to PROVIDER_FAILURE", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("bad query"))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 5*time.Second)

		_, err := c.Search(context.Background(), origin, 1000, filters)
		assert.True(t, errors.Is(err, pkgerrors.ErrProviderFailure))
	})

	t.Run("malformed body maps to PROVIDER_FAILURE", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 5*time.Second)

		_, err := c.Search(context.Background(), origin, 1000, filters)
		assert.True(t, errors.Is(err, pkgerrors.ErrProviderFailure))
	})
}

func TestBuildQuery(t *testing.T) {
	q := buildQuery(domain.Point{Lat: 50.05, Lon: 19.95}, 500, []domain.TagFilter{
		{Key: "amenity", Value: "atm"},
		{Key: "amenity", Value: "bank"},
	})

	assert.Contains(t, q, "[out:json]")
	assert.Contains(t, q, `nwr["amenity"="atm"](around:500,50.050000,19.950000);`)
	assert.Contains(t, q, `nwr["amenity"="bank"](around:500,50.050000,19.950000);`)
	assert.Contains(t, q, "out center;")
}
