package services

import (
	"context"
	"testing"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHoleScoreRepo struct {
	repositories.HoleScoreRepository

	byHole map[[2]int]bool
}

func (f *fakeHoleScoreRepo) Create(_ context.Context, hs *models.HoleScore) error {
	key := [2]int{hs.RoundID, hs.HoleNumber}
	if f.byHole[key] {
		return repositories.ErrHoleScoreConflict
	}
	f.byHole[key] = true
	hs.ID = len(f.byHole)
	return nil
}

func newHoleScoreFixture() HoleScoreService {
	course := 1
	rounds := &fakeRoundRepo{rounds: map[int]*models.Round{
		10: {ID: 10, UserID: 1, CourseID: &course},
		11: {ID: 11, UserID: 1},
	}}
	courses := &fakeCourseRepo{holes: map[int][]models.Hole{
		1: {{CourseID: 1, HoleNumber: 1, Par: 4}, {CourseID: 1, HoleNumber: 2, Par: 3}},
	}}
	return NewHoleScoreService(&fakeHoleScoreRepo{byHole: map[[2]int]bool{}}, rounds, courses)
}

func TestCreateHoleScore(t *testing.T) {
	svc := newHoleScoreFixture()
	ctx := context.Background()

	hs, err := svc.CreateHoleScore(ctx, 1, HoleScoreInput{RoundID: 10, HoleNumber: 2, Score: 3, Putts: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 10, hs.RoundID)

	_, err = svc.CreateHoleScore(ctx, 1, HoleScoreInput{RoundID: 10, HoleNumber: 2, Score: 4})
	assert.ErrorIs(t, err, ErrHoleScoreConflict)
}

func TestCreateHoleScore_Rejections(t *testing.T) {
	svc := newHoleScoreFixture()
	ctx := context.Background()

	_, err := svc.CreateHoleScore(ctx, 2, HoleScoreInput{RoundID: 10, HoleNumber: 1, Score: 4})
	assert.ErrorIs(t, err, ErrRoundNotFound)

	_, err = svc.CreateHoleScore(ctx, 1, HoleScoreInput{RoundID: 10, HoleNumber: 9, Score: 4})
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "Hole number 9 does not exist in this course", v.Fields["hole_number"])

	_, err = svc.CreateHoleScore(ctx, 1, HoleScoreInput{RoundID: 11, HoleNumber: 1, Score: 4})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateHoleScore(ctx, 1, HoleScoreInput{RoundID: 10, HoleNumber: 1, Score: 0})
	assert.ErrorIs(t, err, ErrValidationFailed)
}
