package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Achievements, 10)
	assert.Len(t, c.PracticeTips, 5)
	assert.Len(t, c.DrivingRanges, 3)
	require.Len(t, c.Courses, 2)

	riverside := c.Courses[0].toModel()
	assert.Equal(t, 9, riverside.NumberOfHoles)
	require.NotNil(t, riverside.Par)
	assert.Equal(t, 36, *riverside.Par)
	assert.Equal(t, 1, riverside.Holes[0].HoleNumber)
	assert.Equal(t, 380, *riverside.Holes[0].Yardage)

	links := c.Courses[1].toModel()
	assert.Equal(t, 72, *links.Par)
	assert.Len(t, links.Holes, 18)
}

func TestParse_RejectsBadEntries(t *testing.T) {
	doc := []byte(`
achievements:
  - name: Bogus
    criteria: {type: eagles, value: 1}
practice_tips:
  - title: Wedges
    category: WEDGES
    difficulty_level: 9
courses:
  - name: Short
    city: Nowhere
    pars: [4, 4]
    yardages: [300]
    handicaps: [1, 2]
`)
	_, err := Parse(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUnknownCriterion))
	assert.Contains(t, err.Error(), "unknown category")
	assert.Contains(t, err.Error(), "difficulty must be 1..5")
	assert.Contains(t, err.Error(), "expected 9 or 18 holes")
	assert.Contains(t, err.Error(), "differ in length")
}

type fakeAchievements struct {
	repositories.AchievementRepository
	existing map[string]bool
}

func (f *fakeAchievements) InsertIfMissing(_ context.Context, _ repositories.SQLExecutor, a *models.Achievement) (bool, error) {
	if f.existing[a.Name] {
		return false, nil
	}
	return true, nil
}

type fakeTips struct {
	repositories.PracticeTipRepository
}

func (fakeTips) InsertIfMissing(context.Context, repositories.SQLExecutor, *models.PracticeTip) (bool, error) {
	return true, nil
}

type fakeRanges struct {
	repositories.DrivingRangeRepository
	err error
}

func (f fakeRanges) InsertIfMissing(context.Context, repositories.SQLExecutor, *models.DrivingRange) (bool, error) {
	return f.err == nil, f.err
}

type fakeCourses struct {
	repositories.CourseRepository
	nextID int
	holes  map[int][]int
}

func (f *fakeCourses) Upsert(_ context.Context, _ repositories.SQLExecutor, c *models.Course) error {
	f.nextID++
	c.ID = f.nextID
	return nil
}

func (f *fakeCourses) UpsertHole(_ context.Context, _ repositories.SQLExecutor, h *models.Hole) error {
	if f.holes == nil {
		f.holes = make(map[int][]int)
	}
	f.holes[h.CourseID] = append(f.holes[h.CourseID], h.HoleNumber)
	return nil
}

func TestApply_CommitsAndCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	c, err := Default()
	require.NoError(t, err)

	courses := &fakeCourses{}
	sum, err := c.Apply(context.Background(), db, Repositories{
		Achievements:  &fakeAchievements{existing: map[string]bool{"Breaking 100": true}},
		PracticeTips:  fakeTips{},
		DrivingRanges: fakeRanges{},
		Courses:       courses,
	})
	require.NoError(t, err)

	assert.Equal(t, Summary{Achievements: 9, PracticeTips: 5, DrivingRanges: 3, Courses: 2, Holes: 27}, sum)
	assert.Len(t, courses.holes[1], 9)
	assert.Len(t, courses.holes[2], 18)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	c, err := Default()
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = c.Apply(context.Background(), db, Repositories{
		Achievements:  &fakeAchievements{},
		PracticeTips:  fakeTips{},
		DrivingRanges: fakeRanges{err: boom},
		Courses:       &fakeCourses{},
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
