package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rookieryder/golf-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleWeatherPayload = `{
	"weather": [{"description": "light rain", "icon": "10d"}],
	"main": {"temp": 18.6, "feels_like": 17.4, "humidity": 81},
	"wind": {"speed": 4.12},
	"clouds": {"all": 75},
	"sys": {"country": "US"},
	"name": "Pebble Beach"
}`

func newWeatherTestServer(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetWeather_ParsesAndCaches(t *testing.T) {
	var hits int32
	srv := newWeatherTestServer(t, http.StatusOK, sampleWeatherPayload, &hits)
	svc := NewWeatherService(WeatherConfig{
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		Timeout:  time.Second,
		CacheTTL: time.Minute,
	}, srv.Client(), NewMemoryWeatherCache())

	q := models.WeatherQuery{City: "Pebble Beach", CountryCode: "US"}
	w, err := svc.GetWeather(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, 19, w.Temperature)
	assert.Equal(t, 17, w.FeelsLike)
	assert.Equal(t, "light rain", w.Description)
	assert.Equal(t, "10d", w.IconCode)
	assert.Equal(t, "Pebble Beach", w.CityName)
	assert.Equal(t, "US", w.CountryCode)
	assert.Equal(t, 81, w.Humidity)
	assert.InDelta(t, 4.12, w.WindSpeed, 0.0001)
	assert.Equal(t, 75, w.Clouds)

	_, err = svc.GetWeather(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestGetWeather_RequiresLocation(t *testing.T) {
	svc := NewWeatherService(WeatherConfig{BaseURL: "http://unused"}, nil, nil)
	_, err := svc.GetWeather(context.Background(), models.WeatherQuery{})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestGetWeather_UpstreamErrorIsUnavailable(t *testing.T) {
	srv := newWeatherTestServer(t, http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`, nil)
	svc := NewWeatherService(WeatherConfig{APIKey: "test-key", BaseURL: srv.URL, Timeout: time.Second}, srv.Client(), nil)

	_, err := svc.GetWeather(context.Background(), models.WeatherQuery{City: "Nowhere"})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestGetWeather_MissingFieldsIsBadPayload(t *testing.T) {
	srv := newWeatherTestServer(t, http.StatusOK, `{"name": "X"}`, nil)
	svc := NewWeatherService(WeatherConfig{APIKey: "test-key", BaseURL: srv.URL, Timeout: time.Second}, srv.Client(), nil)

	_, err := svc.GetWeather(context.Background(), models.WeatherQuery{City: "X"})
	assert.ErrorIs(t, err, ErrUpstreamBadPayload)
}

func TestGetWeather_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	svc := NewWeatherService(WeatherConfig{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, srv.Client(), nil)

	_, err := svc.GetWeather(context.Background(), models.WeatherQuery{City: "Slow"})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestMemoryWeatherCache_Expires(t *testing.T) {
	cache := NewMemoryWeatherCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Set(ctx, "k", &models.Weather{Temperature: 10}, time.Minute)
	w, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, 10, w.Temperature)

	now = now.Add(time.Minute)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
}
