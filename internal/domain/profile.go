package domain

import "time"

// Level is the learner's self-assessed proficiency.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Profile is the single per-instance learner record.
// XP only ever grows; streak bookkeeping is owned by the ledger package.
type Profile struct {
	Username      string    `json:"username"`
	NativeLang    string    `json:"nativeLang"`
	TargetLang    Language  `json:"targetLang"`
	Level         Level     `json:"level"`
	DailyGoal     int       `json:"dailyGoal"`
	XP            int       `json:"xp"`
	Streak        int       `json:"streak"`
	BestStreak    int       `json:"bestStreak"`
	LastActiveDay string    `json:"lastActiveDay"` // "YYYY-MM-DD", empty before the first review
	CreatedAt     time.Time `json:"createdAt"`
}

// DailyStat accumulates review outcomes for one (language, day) pair.
type DailyStat struct {
	Reviewed int `json:"reviewed"`
	Correct  int `json:"correct"`
	Wrong    int `json:"wrong"`
	Minutes  int `json:"minutes"`
}

// Achievement is a static catalog entry, optionally unlocked.
type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}
