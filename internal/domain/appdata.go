package domain

import "time"

// DailyStats maps language -> ISO day key ("YYYY-MM-DD") -> that day's stat.
type DailyStats map[Language]map[string]DailyStat

// AppData is the aggregate root: the whole persisted application state.
// It is the unit of storage, export and import.
type AppData struct {
	Cards            []Card        `json:"cards"`
	Profile          Profile       `json:"profile"`
	Achievements     []Achievement `json:"achievements"`
	DailyStatsByLang DailyStats    `json:"dailyStatsByLang"`
}

// NewAppData creates the initial state for a fresh install: an empty deck,
// the learner profile, the seeded welcome achievement and no statistics.
func NewAppData(username, nativeLang string, targetLang Language, dailyGoal int, now time.Time) AppData {
	unlocked := now
	return AppData{
		Cards: []Card{},
		Profile: Profile{
			Username:   username,
			NativeLang: nativeLang,
			TargetLang: targetLang,
			Level:      LevelBeginner,
			DailyGoal:  dailyGoal,
			CreatedAt:  now,
		},
		Achievements: []Achievement{
			{
				ID:          "welcome",
				Title:       "Welcome aboard",
				Description: "Created your profile and started learning.",
				Icon:        "👋",
				UnlockedAt:  &unlocked,
			},
		},
		DailyStatsByLang: DailyStats{},
	}
}

// Clone returns a deep copy of the whole aggregate.
func (a AppData) Clone() AppData {
	out := a

	out.Cards = make([]Card, len(a.Cards))
	for i, c := range a.Cards {
		out.Cards[i] = c.Clone()
	}

	out.Achievements = make([]Achievement, len(a.Achievements))
	for i, ach := range a.Achievements {
		out.Achievements[i] = ach
		if ach.UnlockedAt != nil {
			v := *ach.UnlockedAt
			out.Achievements[i].UnlockedAt = &v
		}
	}

	out.DailyStatsByLang = make(DailyStats, len(a.DailyStatsByLang))
	for lang, days := range a.DailyStatsByLang {
		cp := make(map[string]DailyStat, len(days))
		for day, stat := range days {
			cp[day] = stat
		}
		out.DailyStatsByLang[lang] = cp
	}

	return out
}
