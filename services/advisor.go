package services

import (
	"fmt"

	"github.com/rookieryder/golf-backend/models"
)

const (
	advisorRecentRounds  = 5
	advisorStrokesOver   = 2
	advisorSuggestion    = "Consider using a different club or practicing this hole"
	advisorNoSuggestions = "No specific club suggestions based on recent performance"
	advisorNoRounds      = "No recent rounds found for analysis"
)

// adviseClubs flags every hole played more than two strokes over par. A round without a course
// or a hole missing from the course fails the whole analysis.
func adviseClubs(results []models.HoleResult) (*models.ClubSuggestionReport, error) {
	if len(results) == 0 {
		return nil, newValidationError("rounds", advisorNoRounds)
	}

	suggestions := make([]models.ClubSuggestion, 0)
	for _, hr := range results {
		if hr.HoleNumber == nil || hr.Score == nil {
			continue
		}
		if hr.CourseID == nil {
			return nil, fmt.Errorf("%w: round %d", ErrRoundHasNoCourse, hr.RoundID)
		}
		if hr.Par == nil {
			return nil, fmt.Errorf("%w: hole %d of course %d (round %d)", ErrHoleNotFound, *hr.HoleNumber, *hr.CourseID, hr.RoundID)
		}
		if *hr.Score > *hr.Par+advisorStrokesOver {
			suggestions = append(suggestions, models.ClubSuggestion{
				RoundID:    hr.RoundID,
				HoleNumber: *hr.HoleNumber,
				Score:      *hr.Score,
				Par:        *hr.Par,
				Suggestion: advisorSuggestion,
			})
		}
	}

	report := &models.ClubSuggestionReport{Suggestions: suggestions}
	if len(suggestions) == 0 {
		report.Message = advisorNoSuggestions
	}
	return report, nil
}
