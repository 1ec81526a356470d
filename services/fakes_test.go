package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
)

// Фейки встраивают интерфейс: неиспользуемые методы паникуют, если тест их случайно вызовет.

type fakeRoundRepo struct {
	repositories.RoundRepository

	rounds       map[int]*models.Round
	total        *int
	completed    bool
	token        uuid.UUID
	summary      *models.SharedRoundSummary
	holeResults  []models.HoleResult
	computeCalls int
}

func (f *fakeRoundRepo) GetByID(_ context.Context, id, userID int) (*models.Round, error) {
	r, ok := f.rounds[id]
	if !ok || r.UserID != userID {
		return nil, repositories.ErrRoundNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoundRepo) Create(_ context.Context, r *models.Round) error {
	if f.rounds == nil {
		f.rounds = map[int]*models.Round{}
	}
	r.ID = len(f.rounds) + 1
	cp := *r
	f.rounds[r.ID] = &cp
	return nil
}

func (f *fakeRoundRepo) Update(_ context.Context, r *models.Round) error {
	existing, ok := f.rounds[r.ID]
	if !ok || existing.UserID != r.UserID {
		return repositories.ErrRoundNotFound
	}
	cp := *r
	f.rounds[r.ID] = &cp
	return nil
}

func (f *fakeRoundRepo) ComputeTotalScore(_ context.Context, id, userID int) (*int, bool, error) {
	f.computeCalls++
	r, ok := f.rounds[id]
	if !ok || r.UserID != userID {
		return nil, false, repositories.ErrRoundNotFound
	}
	return f.total, f.completed, nil
}

func (f *fakeRoundRepo) EnsureShareToken(_ context.Context, id, userID int, candidate uuid.UUID) (uuid.UUID, error) {
	r, ok := f.rounds[id]
	if !ok || r.UserID != userID {
		return uuid.Nil, repositories.ErrRoundNotFound
	}
	if f.token == uuid.Nil {
		f.token = candidate
	}
	return f.token, nil
}

func (f *fakeRoundRepo) GetSharedSummary(_ context.Context, token uuid.UUID) (*models.SharedRoundSummary, error) {
	if f.summary == nil || f.summary.ShareableLink != token {
		return nil, repositories.ErrRoundNotFound
	}
	cp := *f.summary
	return &cp, nil
}

func (f *fakeRoundRepo) GetSharedSummaryByID(_ context.Context, id int) (*models.SharedRoundSummary, error) {
	if f.summary == nil || f.summary.ID != id {
		return nil, repositories.ErrRoundNotFound
	}
	cp := *f.summary
	return &cp, nil
}

func (f *fakeRoundRepo) ListRecentHoleResults(context.Context, int, int) ([]models.HoleResult, error) {
	return f.holeResults, nil
}

type fakeEvaluator struct {
	calls []int
}

func (f *fakeEvaluator) EvaluateUser(_ context.Context, userID int, _ string) ([]models.Achievement, error) {
	f.calls = append(f.calls, userID)
	return nil, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	summaries []models.SharedRoundSummary
}

func (f *fakeNotifier) PublishRoundSummary(s models.SharedRoundSummary) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries = append(f.summaries, s)
}

type fakeUserRepo struct {
	repositories.UserRepository

	users      map[int]*models.User
	created    *models.User
	createErr  error
	ids        []int
	searchArgs []interface{}
	pictureKey *string
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	u.ID = 1
	u.CreatedAt = time.Now()
	cp := *u
	f.created = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateProfilePictureKey(_ context.Context, id int, key *string) error {
	if _, ok := f.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	f.pictureKey = key
	return nil
}

func (f *fakeUserRepo) Search(_ context.Context, term string, excludeID, limit int) ([]models.User, error) {
	f.searchArgs = []interface{}{term, excludeID, limit}
	var out []models.User
	for _, u := range f.users {
		if u.ID != excludeID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListIDs(context.Context) ([]int, error) {
	return f.ids, nil
}
