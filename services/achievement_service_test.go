package services

import (
	"context"
	"testing"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAchievementRepo struct {
	repositories.AchievementRepository

	achievements []models.Achievement
	records      map[int]*models.PlayerRecord
	held         map[[2]int]bool
}

func (f *fakeAchievementRepo) List(context.Context) ([]models.Achievement, error) {
	return f.achievements, nil
}

func (f *fakeAchievementRepo) LoadPlayerRecord(_ context.Context, userID int) (*models.PlayerRecord, error) {
	if r, ok := f.records[userID]; ok {
		return r, nil
	}
	return &models.PlayerRecord{UserID: userID}, nil
}

func (f *fakeAchievementRepo) Grant(_ context.Context, userID, achievementID int) (bool, error) {
	key := [2]int{userID, achievementID}
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func newAchievementFixture() (*fakeAchievementRepo, AchievementService) {
	repo := &fakeAchievementRepo{
		achievements: []models.Achievement{
			{ID: 1, Name: "Breaking 90", Criterion: models.Criterion{Kind: models.CriterionScoreBelow, Threshold: 90}},
			{ID: 2, Name: "Regular", Criterion: models.Criterion{Kind: models.CriterionTotalRounds, Threshold: 10}},
		},
		records: map[int]*models.PlayerRecord{
			1: {UserID: 1, CompletedRounds: 1, Rounds: []models.RoundFacts{{RoundID: 1, TotalScore: intPtr(85), HolesPlayed: 18}}},
		},
		held: map[[2]int]bool{},
	}
	users := &fakeUserRepo{ids: []int{1, 2}}
	return repo, NewAchievementService(repo, users)
}

func TestEvaluateUser_GrantsSatisfiedOnce(t *testing.T) {
	repo, svc := newAchievementFixture()
	ctx := context.Background()

	granted, err := svc.EvaluateUser(ctx, 1, TriggerManual)
	require.NoError(t, err)
	require.Len(t, granted, 1)
	assert.Equal(t, "Breaking 90", granted[0].Name)

	granted, err = svc.EvaluateUser(ctx, 1, TriggerManual)
	require.NoError(t, err)
	assert.Empty(t, granted)
	assert.Len(t, repo.held, 1)
}

func TestEvaluateAll_SumsNewGrants(t *testing.T) {
	_, svc := newAchievementFixture()

	n, err := svc.EvaluateAll(context.Background(), TriggerSweep)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreateAchievement_RejectsEmptyName(t *testing.T) {
	_, svc := newAchievementFixture()

	_, err := svc.CreateAchievement(context.Background(), AchievementInput{
		Criterion: models.Criterion{Kind: models.CriterionSandSaves, Threshold: 1},
	})
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "name")
}
