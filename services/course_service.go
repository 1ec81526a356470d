package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"golang.org/x/sync/errgroup"
)

const (
	courseWeatherLimit       = 5
	courseWeatherConcurrency = 5
	courseWeatherCountryCode = "US"
)

type CourseService interface {
	ListCourses(ctx context.Context, filter CourseFilterInput) ([]models.Course, error)
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	SearchWithWeather(ctx context.Context, term string) ([]models.CourseWeather, error)
}

type CourseFilterInput struct {
	Search string
	Name   string
	City   string
}

type courseService struct {
	courseRepo repositories.CourseRepository
	weather    WeatherService
}

func NewCourseService(courseRepo repositories.CourseRepository, weather WeatherService) CourseService {
	return &courseService{
		courseRepo: courseRepo,
		weather:    weather,
	}
}

func (s *courseService) ListCourses(ctx context.Context, filter CourseFilterInput) ([]models.Course, error) {
	courses, err := s.courseRepo.List(ctx, repositories.CourseFilter{
		Search: strings.TrimSpace(filter.Search),
		Name:   strings.TrimSpace(filter.Name),
		City:   strings.TrimSpace(filter.City),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course %d: %w", id, err)
	}

	holes, err := s.courseRepo.ListHoles(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list holes for course %d: %w", id, err)
	}
	course.Holes = holes
	return course, nil
}

// SearchWithWeather finds up to five courses and attaches current weather for each.
// A failed lookup is reported on its course and does not fail the request.
func (s *courseService) SearchWithWeather(ctx context.Context, term string) ([]models.CourseWeather, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, newValidationError("search", "Search query is required")
	}

	courses, err := s.courseRepo.List(ctx, repositories.CourseFilter{Search: term, Limit: courseWeatherLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}

	results := make([]models.CourseWeather, len(courses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(courseWeatherConcurrency)

	for i, course := range courses {
		results[i].Course = course
		if s.weather == nil {
			results[i].Error = ErrUpstreamUnavailable.Error()
			continue
		}
		i, course := i, course
		g.Go(func() error {
			w, err := s.weather.GetWeather(gctx, models.WeatherQuery{
				City:        course.City,
				CountryCode: courseWeatherCountryCode,
			})
			if err != nil {
				results[i].Error = weatherErrorMessage(err)
				return nil
			}
			results[i].Weather = w
			return nil
		})
	}
	// горутины не возвращают ошибок, деградация фиксируется в results
	_ = g.Wait()

	return results, nil
}

func weatherErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUpstreamBadPayload):
		return ErrUpstreamBadPayload.Error()
	case errors.Is(err, ErrValidationFailed):
		return "course has no usable location"
	default:
		return ErrUpstreamUnavailable.Error()
	}
}
