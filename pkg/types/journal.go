package types

import "time"

// JournalEntry is a free-form piece of user writing. Creating an entry
// triggers a mood classification sourced as SourceJournal.
type JournalEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	MoodTag   Mood      `json:"mood_tag,omitempty"` // user-selected, independent of the classifier
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DailyCheckIn is a lightweight self-reported mood rating, one per day.
type DailyCheckIn struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	MoodRating int       `json:"mood_rating"` // 1-10 self-report
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
