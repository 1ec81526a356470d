package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandler_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/rounds/{roundID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rounds/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	got := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/rounds/{roundID}", "418"))
	assert.Equal(t, float64(2), got)
}

func TestRecordAchievementsGranted_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(achievementsGranted.WithLabelValues("sweep"))
	RecordAchievementsGranted("sweep", 0)
	RecordAchievementsGranted("sweep", 3)
	assert.Equal(t, before+3, testutil.ToFloat64(achievementsGranted.WithLabelValues("sweep")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	RecordWeatherLookup("ok")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "golf_weather_lookups_total"))
}
