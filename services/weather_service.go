package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rookieryder/golf-backend/metrics"
	"github.com/rookieryder/golf-backend/models"
	"github.com/tidwall/gjson"
)

const maxWeatherPayload = 1 << 20

type WeatherService interface {
	GetWeather(ctx context.Context, q models.WeatherQuery) (*models.Weather, error)
}

type WeatherConfig struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type openWeatherService struct {
	cfg    WeatherConfig
	client *http.Client
	cache  WeatherCache
}

// NewWeatherService returns an OpenWeather client. cache may be nil to disable caching.
func NewWeatherService(cfg WeatherConfig, client *http.Client, cache WeatherCache) WeatherService {
	if client == nil {
		client = &http.Client{}
	}
	return &openWeatherService{
		cfg:    cfg,
		client: client,
		cache:  cache,
	}
}

type weatherRequest struct {
	values url.Values
}

func (q *weatherRequest) cacheKey() string {
	return "weather:" + q.values.Encode()
}

func buildWeatherRequest(q models.WeatherQuery) (*weatherRequest, error) {
	values := url.Values{}
	city := strings.TrimSpace(q.City)
	switch {
	case q.Lat != nil && q.Lon != nil:
		if math.Abs(*q.Lat) > 90 || math.Abs(*q.Lon) > 180 {
			return nil, newValidationError("lat", "coordinates out of range")
		}
		values.Set("lat", strconv.FormatFloat(*q.Lat, 'f', 4, 64))
		values.Set("lon", strconv.FormatFloat(*q.Lon, 'f', 4, 64))
	case city != "":
		if cc := strings.TrimSpace(q.CountryCode); cc != "" {
			city += "," + cc
		}
		values.Set("q", strings.ToLower(city))
	default:
		return nil, newValidationError("city", "City name or coordinates (lat/lon) are required")
	}
	return &weatherRequest{values: values}, nil
}

func (s *openWeatherService) GetWeather(ctx context.Context, q models.WeatherQuery) (*models.Weather, error) {
	req, err := buildWeatherRequest(q)
	if err != nil {
		return nil, err
	}

	key := req.cacheKey()
	if s.cache != nil {
		if w, ok := s.cache.Get(ctx, key); ok {
			metrics.RecordWeatherLookup("hit")
			return w, nil
		}
	}

	body, err := s.fetch(ctx, req.values)
	if err != nil {
		metrics.RecordWeatherLookup("unavailable")
		return nil, err
	}

	w, err := parseWeather(body)
	if err != nil {
		metrics.RecordWeatherLookup("bad_payload")
		slog.WarnContext(ctx, "weather payload rejected", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrUpstreamBadPayload, err)
	}
	metrics.RecordWeatherLookup("ok")

	if s.cache != nil && s.cfg.CacheTTL > 0 {
		s.cache.Set(ctx, key, w, s.cfg.CacheTTL)
	}
	return w, nil
}

func (s *openWeatherService) fetch(ctx context.Context, values url.Values) ([]byte, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	params := url.Values{}
	for k, v := range values {
		params[k] = v
	}
	params.Set("appid", s.cfg.APIKey)
	params.Set("units", "metric")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWeatherPayload))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstreamUnavailable, resp.StatusCode, gjson.GetBytes(body, "message").String())
	}
	return body, nil
}

var errMissingWeatherField = errors.New("missing field")

func parseWeather(body []byte) (*models.Weather, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid json")
	}
	res := gjson.ParseBytes(body)

	required := []string{"main.temp", "main.feels_like", "main.humidity", "weather.0.description", "weather.0.icon", "name"}
	for _, path := range required {
		if !res.Get(path).Exists() {
			return nil, fmt.Errorf("%w: %s", errMissingWeatherField, path)
		}
	}

	return &models.Weather{
		Temperature: int(math.Round(res.Get("main.temp").Float())),
		FeelsLike:   int(math.Round(res.Get("main.feels_like").Float())),
		Description: res.Get("weather.0.description").String(),
		IconCode:    res.Get("weather.0.icon").String(),
		CityName:    res.Get("name").String(),
		CountryCode: res.Get("sys.country").String(),
		Humidity:    int(res.Get("main.humidity").Int()),
		WindSpeed:   res.Get("wind.speed").Float(),
		Clouds:      int(res.Get("clouds.all").Int()),
	}, nil
}
