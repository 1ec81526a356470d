package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/services"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(args ...string) (string, error) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrate_RejectsBadArguments(t *testing.T) {
	_, err := execute("migrate", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration direction")

	_, err = execute("migrate", "down", "--steps", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--steps must be positive")

	_, err = execute("migrate", "up", "down")
	assert.Error(t, err)
}

func TestEvaluate_RejectsNegativeUser(t *testing.T) {
	_, err := execute("evaluate-achievements", "--user-id", "-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--user-id must be positive")
}

type fakeAchievementService struct {
	services.AchievementService

	userID  int
	trigger string
	all     bool
	err     error
}

func (f *fakeAchievementService) EvaluateUser(_ context.Context, userID int, trigger string) ([]models.Achievement, error) {
	f.userID, f.trigger = userID, trigger
	return []models.Achievement{{Name: "Breaking 90"}}, f.err
}

func (f *fakeAchievementService) EvaluateAll(_ context.Context, trigger string) (int, error) {
	f.all, f.trigger = true, trigger
	return 4, f.err
}

func TestRunEvaluate(t *testing.T) {
	svc := &fakeAchievementService{}
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runEvaluate(cmd, svc, 7))
	assert.Equal(t, 7, svc.userID)
	assert.Equal(t, services.TriggerCLI, svc.trigger)
	assert.Contains(t, out.String(), `granted "Breaking 90" to user 7`)

	out.Reset()
	require.NoError(t, runEvaluate(cmd, svc, 0))
	assert.True(t, svc.all)
	assert.Contains(t, out.String(), "4 achievement(s) granted")

	svc.err = errors.New("partial failure")
	assert.Error(t, runEvaluate(cmd, svc, 0))
}
