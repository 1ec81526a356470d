package models

type LeaderboardMetric string

const (
	MetricRecentTotal  LeaderboardMetric = "recent_total"
	MetricAverageScore LeaderboardMetric = "average_score"
	MetricTotalRounds  LeaderboardMetric = "total_rounds"
)

func (m LeaderboardMetric) Valid() bool {
	switch m {
	case MetricRecentTotal, MetricAverageScore, MetricTotalRounds:
		return true
	}
	return false
}

// LeaderboardEntry is one ranked row. Value holds the metric's aggregate: a stroke sum,
// a mean rounded to two decimals, or a round count.
type LeaderboardEntry struct {
	Rank     int               `json:"rank"`
	UserID   int               `json:"user_id"`
	Username string            `json:"username"`
	Metric   LeaderboardMetric `json:"metric"`
	Value    float64           `json:"value"`
}
