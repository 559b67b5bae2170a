package models

// Settings holds the client configuration rows kept in the cache store.
type Settings struct {
	APIURL   string `json:"api_url"`
	Timezone string `json:"timezone"` // IANA name, or "Local" for the system timezone
}

// Progress is the GET /progress summary for the engagement views.
type Progress struct {
	Habits      []Habit `json:"habits"`
	TotalHabits int     `json:"totalHabits"`
	Completions int     `json:"completions"`
	BestStreak  int     `json:"bestStreak"`
}
