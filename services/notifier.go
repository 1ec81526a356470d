package services

import "github.com/rookieryder/golf-backend/models"

// RoundNotifier publishes round summary updates to live subscribers.
type RoundNotifier interface {
	PublishRoundSummary(summary models.SharedRoundSummary)
}

type noopNotifier struct{}

func (noopNotifier) PublishRoundSummary(models.SharedRoundSummary) {}
