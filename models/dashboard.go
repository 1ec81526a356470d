package models

// DashboardStats are platform-wide totals for the admin dashboard.
type DashboardStats struct {
	UsersTotal          int `json:"users_total"`
	AdminsTotal         int `json:"admins_total"`
	RoundsTotal         int `json:"rounds_total"`
	CompletedRounds     int `json:"completed_rounds"`
	RoundsLastWeek      int `json:"rounds_last_week"`
	HoleScoresTotal     int `json:"hole_scores_total"`
	CoursesTotal        int `json:"courses_total"`
	AchievementsGranted int `json:"achievements_granted"`
}
