package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rookieryder/golf-backend/models"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrHoleNotFound   = errors.New("hole not found")
)

// CourseFilter narrows a course listing. Search matches name, city or address.
type CourseFilter struct {
	Search string
	Name   string
	City   string
	Limit  int
}

type CourseRepository interface {
	List(ctx context.Context, filter CourseFilter) ([]models.Course, error)
	GetByID(ctx context.Context, id int) (*models.Course, error)
	ListHoles(ctx context.Context, courseID int) ([]models.Hole, error)
	GetHole(ctx context.Context, courseID, holeNumber int) (*models.Hole, error)
	Upsert(ctx context.Context, exec SQLExecutor, course *models.Course) error
	UpsertHole(ctx context.Context, exec SQLExecutor, hole *models.Hole) error
}

type postgresCourseRepository struct {
	db *sql.DB
}

func NewPostgresCourseRepository(db *sql.DB) CourseRepository {
	return &postgresCourseRepository{db: db}
}

func (r *postgresCourseRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const courseColumns = `id, name, address, city, state, latitude, longitude, number_of_holes, par`

func scanCourse(s rowScanner, c *models.Course) error {
	return s.Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.City,
		&c.State,
		&c.Latitude,
		&c.Longitude,
		&c.NumberOfHoles,
		&c.Par,
	)
}

func (r *postgresCourseRepository) List(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	var (
		conditions []string
		args       []interface{}
	)
	addArg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := addArg(filter.Search)
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE '%%' || %[1]s || '%%' OR city ILIKE '%%' || %[1]s || '%%' OR address ILIKE '%%' || %[1]s || '%%')", p))
	}
	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE '%%' || %s || '%%'", addArg(filter.Name)))
	}
	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("city ILIKE '%%' || %s || '%%'", addArg(filter.City)))
	}

	query := `SELECT ` + courseColumns + ` FROM courses`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name ASC, id ASC"
	if filter.Limit > 0 {
		query += " LIMIT " + addArg(filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		var c models.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

func (r *postgresCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	var c models.Course
	err := scanCourse(r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id), &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course %d: %w", id, err)
	}
	return &c, nil
}

func scanHole(s rowScanner, h *models.Hole) error {
	return s.Scan(&h.ID, &h.CourseID, &h.HoleNumber, &h.Par, &h.Yardage, &h.HandicapIndex)
}

func (r *postgresCourseRepository) ListHoles(ctx context.Context, courseID int) ([]models.Hole, error) {
	query := `
		SELECT id, course_id, hole_number, par, yardage, handicap_index
		FROM holes
		WHERE course_id = $1
		ORDER BY hole_number ASC`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holes for course %d: %w", courseID, err)
	}
	defer rows.Close()

	holes := make([]models.Hole, 0)
	for rows.Next() {
		var h models.Hole
		if err := scanHole(rows, &h); err != nil {
			return nil, fmt.Errorf("failed to scan hole: %w", err)
		}
		holes = append(holes, h)
	}
	return holes, rows.Err()
}

func (r *postgresCourseRepository) GetHole(ctx context.Context, courseID, holeNumber int) (*models.Hole, error) {
	query := `
		SELECT id, course_id, hole_number, par, yardage, handicap_index
		FROM holes
		WHERE course_id = $1 AND hole_number = $2`

	var h models.Hole
	if err := scanHole(r.db.QueryRowContext(ctx, query, courseID, holeNumber), &h); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHoleNotFound
		}
		return nil, fmt.Errorf("failed to get hole %d of course %d: %w", holeNumber, courseID, err)
	}
	return &h, nil
}

// Upsert inserts the course or refreshes the existing (name, city) row, filling course.ID either way.
func (r *postgresCourseRepository) Upsert(ctx context.Context, exec SQLExecutor, course *models.Course) error {
	query := `
		INSERT INTO courses (name, address, city, state, latitude, longitude, number_of_holes, par)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name, city) DO UPDATE SET
			address = EXCLUDED.address,
			state = EXCLUDED.state,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			number_of_holes = EXCLUDED.number_of_holes,
			par = EXCLUDED.par
		RETURNING id`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		course.Name, course.Address, course.City, course.State,
		course.Latitude, course.Longitude, course.NumberOfHoles, course.Par,
	).Scan(&course.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert course %q: %w", course.Name, err)
	}
	return nil
}

func (r *postgresCourseRepository) UpsertHole(ctx context.Context, exec SQLExecutor, hole *models.Hole) error {
	query := `
		INSERT INTO holes (course_id, hole_number, par, yardage, handicap_index)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (course_id, hole_number) DO UPDATE SET
			par = EXCLUDED.par,
			yardage = EXCLUDED.yardage,
			handicap_index = EXCLUDED.handicap_index
		RETURNING id`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		hole.CourseID, hole.HoleNumber, hole.Par, hole.Yardage, hole.HandicapIndex,
	).Scan(&hole.ID)
	if err != nil {
		if isForeignKeyViolation(err, "holes_course_id_fkey") {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to upsert hole %d: %w", hole.HoleNumber, err)
	}
	return nil
}
