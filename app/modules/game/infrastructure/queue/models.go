package gamequeue

import "time"

// GameReminderJob posts a reminder to both teams ahead of first pitch.
// RemindAt is part of the args so a rescheduled game gets a new unique job
// even when the earlier reminder already ran.
type GameReminderJob struct {
	GameID   string    `json:"game_id"`
	RemindAt time.Time `json:"remind_at"`
}

// Kind returns the job type identifier for River.
func (GameReminderJob) Kind() string { return "game_reminder" }

// JobInfo describes a scheduled job.
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	GameID      string `json:"gameId"`
	State       string `json:"state"`
	ScheduledAt string `json:"scheduledAt"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"maxAttempts"`
}
