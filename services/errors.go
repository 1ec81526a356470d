package services

import (
	"errors"
	"sort"
	"strings"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Ошибки аутентификации и авторизации
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Конфликты
	ErrUsernameConflict         = errors.New("username is already in use")
	ErrUserEmailConflict        = errors.New("email address is already in use")
	ErrHoleScoreConflict        = errors.New("a score for this hole is already recorded in the round")
	ErrAchievementNameConflict  = errors.New("achievement name already exists")
	ErrDrivingRangeNameConflict = errors.New("driving range name already exists")
	ErrPracticeTipTitleConflict = errors.New("practice tip title already exists")

	// Не найдено
	ErrUserNotFound            = errors.New("user not found")
	ErrCourseNotFound          = errors.New("course not found")
	ErrHoleNotFound            = errors.New("hole not found on course")
	ErrRoundNotFound           = errors.New("round not found")
	ErrRoundHasNoCourse        = errors.New("round has no course")
	ErrHoleScoreNotFound       = errors.New("hole score not found")
	ErrClubNotFound            = errors.New("club not found")
	ErrAchievementNotFound     = errors.New("achievement not found")
	ErrUserAchievementNotFound = errors.New("user achievement not found")
	ErrDrivingRangeNotFound    = errors.New("driving range not found")
	ErrPracticeTipNotFound     = errors.New("practice tip not found")
	ErrSharedRoundNotFound     = errors.New("shared round not found")

	// Внешние зависимости
	ErrUpstreamUnavailable = errors.New("weather service unavailable")
	ErrUpstreamBadPayload  = errors.New("weather service returned an unexpected response")
	ErrUploadsDisabled     = errors.New("file uploads are not configured")
)

// ValidationError carries field-level messages for rejected input. It matches ErrValidationFailed.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// OrNil returns nil when no field failed, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
