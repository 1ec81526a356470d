package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCriterion_UnmarshalJSON(t *testing.T) {
	var c Criterion
	require.NoError(t, json.Unmarshal([]byte(`{"type":"score_below","value":90}`), &c))
	assert.Equal(t, Criterion{Kind: CriterionScoreBelow, Threshold: 90}, c)

	err := json.Unmarshal([]byte(`{"type":"eagles","value":1}`), &c)
	assert.ErrorIs(t, err, ErrUnknownCriterion)

	err = json.Unmarshal([]byte(`{"type":"total_rounds","value":0}`), &c)
	assert.ErrorIs(t, err, ErrInvalidCriterionValue)
}

func TestCriterion_ScanValue(t *testing.T) {
	in := Criterion{Kind: CriterionSandSaves, Threshold: 3}
	v, err := in.Value()
	require.NoError(t, err)

	var out Criterion
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan(`{"type":"total_rounds","value":10}`))
	assert.Equal(t, CriterionTotalRounds, out.Kind)

	assert.Error(t, out.Scan(nil))
	assert.Error(t, out.Scan(42))
}

func TestPlayerRecord_Satisfies(t *testing.T) {
	record := PlayerRecord{
		UserID:          7,
		CompletedRounds: 3,
		Rounds: []RoundFacts{
			{RoundID: 1, TotalScore: intPtr(95), FairwaysHit: 4, SandSaves: 0, HolesPlayed: 18, HolesWithPutt: 18, TotalPutts: 36},
			{RoundID: 2, TotalScore: intPtr(88), FairwaysHit: 9, SandSaves: 2, HolesPlayed: 18, HolesWithPutt: 17, TotalPutts: 28},
			{RoundID: 3, TotalScore: nil, FairwaysHit: 0, SandSaves: 0},
		},
	}

	tests := []struct {
		name string
		c    Criterion
		want bool
	}{
		{"rounds met", Criterion{CriterionTotalRounds, 3}, true},
		{"rounds not met", Criterion{CriterionTotalRounds, 4}, false},
		{"score below met", Criterion{CriterionScoreBelow, 90}, true},
		{"score below strict", Criterion{CriterionScoreBelow, 88}, false},
		{"fairways met", Criterion{CriterionFairwaysHit, 9}, true},
		{"fairways not met", Criterion{CriterionFairwaysHit, 10}, false},
		{"putts counts only fully recorded rounds", Criterion{CriterionPuttsBelow, 30}, false},
		{"putts inclusive", Criterion{CriterionPuttsBelow, 36}, true},
		{"sand saves met", Criterion{CriterionSandSaves, 2}, true},
		{"sand saves not met", Criterion{CriterionSandSaves, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, record.Satisfies(tt.c))
		})
	}
}

func TestPracticeTip_FillDisplay(t *testing.T) {
	tip := PracticeTip{Category: CategoryIronPlay, DifficultyLevel: 3}
	tip.FillDisplay()
	assert.Equal(t, "Iron Play", tip.CategoryDisplay)
	assert.Equal(t, "Intermediate", tip.DifficultyDisplay)
}
