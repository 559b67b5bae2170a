package models

// Habit is the tracked recurring-activity record owned by the backend API.
// The client holds a cached copy; Streak is derived and recomputed locally
// from CompletedDates whenever the set changes.
type Habit struct {
	ID             string   `json:"_id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Color          string   `json:"color,omitempty"`
	Streak         int      `json:"streak"`
	CompletedDates []string `json:"completedDates"`
}

// HabitUpdate is the PUT /habits/{id} payload. Nil fields are omitted so a
// completion toggle and a name/description edit stay independent writes.
type HabitUpdate struct {
	Name           *string   `json:"name,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Color          *string   `json:"color,omitempty"`
	CompletedDates *[]string `json:"completedDates,omitempty"`
	Streak         *int      `json:"streak,omitempty"`
}
