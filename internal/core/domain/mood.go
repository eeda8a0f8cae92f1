package domain

// DailyMood is one user-logged mood sample. At most one per user per date;
// repeated logs for the same date replace the earlier one.
type DailyMood struct {
	UserID       string   `json:"userId"`
	Date         string   `json:"date"` // YYYY-MM-DD
	Mood         int      `json:"mood"` // 1..10
	Energy       int      `json:"energy"`
	Emotions     []string `json:"emotions,omitempty"`
	JournalEntry string   `json:"journalEntry,omitempty"`
}

// Valid reports whether the sample is storable.
func (m DailyMood) Valid() bool {
	return m.UserID != "" && m.Date != "" &&
		m.Mood >= 1 && m.Mood <= 10 &&
		m.Energy >= 1 && m.Energy <= 10
}
