package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/services"
)

type CourseHandler struct {
	courseService services.CourseService
}

func NewCourseHandler(cs services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: cs}
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	courses, err := h.courseService.ListCourses(r.Context(), services.CourseFilterInput{
		Search: q.Get("search"),
		Name:   q.Get("name"),
		City:   q.Get("city"),
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"courses": courses}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"course": course}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CourseHandler) SearchWithWeather(w http.ResponseWriter, r *http.Request) {
	results, err := h.courseService.SearchWithWeather(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type WeatherHandler struct {
	weatherService services.WeatherService
}

func NewWeatherHandler(ws services.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: ws}
}

func (h *WeatherHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := models.WeatherQuery{
		City:        q.Get("city"),
		CountryCode: q.Get("country_code"),
	}

	lat, lon := strings.TrimSpace(q.Get("lat")), strings.TrimSpace(q.Get("lon"))
	if lat != "" || lon != "" {
		latV, errLat := strconv.ParseFloat(lat, 64)
		lonV, errLon := strconv.ParseFloat(lon, 64)
		if errLat != nil || errLon != nil {
			badRequestResponse(w, r, errors.New("lat and lon must both be valid numbers"))
			return
		}
		query.Lat, query.Lon = &latV, &lonV
	}

	weather, err := h.weatherService.GetWeather(r.Context(), query)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"weather": weather}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
