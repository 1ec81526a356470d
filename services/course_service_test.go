package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourseRepo struct {
	repositories.CourseRepository

	courses []models.Course
	holes   map[int][]models.Hole
	filter  repositories.CourseFilter
}

func (f *fakeCourseRepo) List(_ context.Context, filter repositories.CourseFilter) ([]models.Course, error) {
	f.filter = filter
	out := f.courses
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id int) (*models.Course, error) {
	for _, c := range f.courses {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, repositories.ErrCourseNotFound
}

func (f *fakeCourseRepo) ListHoles(_ context.Context, courseID int) ([]models.Hole, error) {
	return f.holes[courseID], nil
}

func (f *fakeCourseRepo) GetHole(_ context.Context, courseID, holeNumber int) (*models.Hole, error) {
	for _, h := range f.holes[courseID] {
		if h.HoleNumber == holeNumber {
			cp := h
			return &cp, nil
		}
	}
	return nil, repositories.ErrHoleNotFound
}

type fakeWeather struct {
	mu      sync.Mutex
	queries []models.WeatherQuery
}

func (f *fakeWeather) GetWeather(_ context.Context, q models.WeatherQuery) (*models.Weather, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if strings.HasPrefix(q.City, "Down") {
		return nil, ErrUpstreamUnavailable
	}
	return &models.Weather{CityName: q.City, Temperature: 20}, nil
}

func TestSearchWithWeather_DegradesPerCourse(t *testing.T) {
	courses := []models.Course{
		{ID: 1, Name: "Links A", City: "Monterey"},
		{ID: 2, Name: "Links B", City: "Downtown"},
	}
	for i := 3; i <= 7; i++ {
		courses = append(courses, models.Course{ID: i, Name: "Links", City: "Carmel"})
	}
	repo := &fakeCourseRepo{courses: courses}
	weather := &fakeWeather{}
	svc := NewCourseService(repo, weather)

	results, err := svc.SearchWithWeather(context.Background(), " links ")
	require.NoError(t, err)

	assert.Equal(t, "links", repo.filter.Search)
	assert.Equal(t, 5, repo.filter.Limit)
	require.Len(t, results, 5)

	assert.Equal(t, 1, results[0].Course.ID)
	require.NotNil(t, results[0].Weather)
	assert.Equal(t, "Monterey", results[0].Weather.CityName)

	assert.Nil(t, results[1].Weather)
	assert.Equal(t, ErrUpstreamUnavailable.Error(), results[1].Error)

	for _, q := range weather.queries {
		assert.Equal(t, "US", q.CountryCode)
	}
}

func TestSearchWithWeather_RequiresTerm(t *testing.T) {
	svc := NewCourseService(&fakeCourseRepo{}, &fakeWeather{})
	_, err := svc.SearchWithWeather(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestGetCourse_IncludesHoles(t *testing.T) {
	repo := &fakeCourseRepo{
		courses: []models.Course{{ID: 1, Name: "A"}},
		holes:   map[int][]models.Hole{1: {{CourseID: 1, HoleNumber: 1, Par: 4}}},
	}
	c, err := NewCourseService(repo, nil).GetCourse(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, c.Holes, 1)

	_, err = NewCourseService(repo, nil).GetCourse(context.Background(), 2)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
