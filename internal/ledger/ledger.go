// Package ledger keeps the per-language, per-day review statistics and the
// profile aggregates (XP, streak) consistent with each other.
package ledger

import (
	"time"

	"github.com/Marcel-2025/Lingu-V.2/internal/domain"
)

// XP awarded per review outcome.
const (
	XPCorrect = 10
	XPWrong   = 2
)

const dayKeyLayout = "2006-01-02"

// DayKey formats an instant as the calendar-day key used throughout the
// statistics map, e.g. "2026-08-29".
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// RecordReview applies one review outcome to the statistics and the profile
// and returns updated copies; neither input is mutated.
//
// The (lang, dayKey) stat is created lazily with zero counters. Reviewed is
// always incremented, plus correct or wrong to match. XP grows by XPCorrect
// or XPWrong. If dayKey starts a new calendar day the streak transition runs
// first, so it happens exactly once per day no matter how many reviews the
// day has.
func RecordReview(stats domain.DailyStats, profile domain.Profile, lang domain.Language, dayKey string, correct bool) (domain.DailyStats, domain.Profile) {
	profile = advanceDay(profile, dayKey)

	if correct {
		profile.XP += XPCorrect
	} else {
		profile.XP += XPWrong
	}

	out := cloneStats(stats)
	days := out[lang]
	if days == nil {
		days = map[string]domain.DailyStat{}
		out[lang] = days
	}

	stat := days[dayKey]
	stat.Reviewed++
	if correct {
		stat.Correct++
	} else {
		stat.Wrong++
	}
	days[dayKey] = stat

	return out, profile
}

// AddMinutes adds studied minutes to the (lang, dayKey) stat and returns an
// updated copy of the statistics.
func AddMinutes(stats domain.DailyStats, lang domain.Language, dayKey string, minutes int) domain.DailyStats {
	out := cloneStats(stats)
	days := out[lang]
	if days == nil {
		days = map[string]domain.DailyStat{}
		out[lang] = days
	}
	stat := days[dayKey]
	stat.Minutes += minutes
	days[dayKey] = stat
	return out
}

// advanceDay runs the day-boundary streak transition. Reviewing on the day
// right after the last active one extends the streak; a longer gap restarts
// it at 1. Repeat calls within the same day are no-ops.
func advanceDay(profile domain.Profile, dayKey string) domain.Profile {
	if dayKey == profile.LastActiveDay {
		return profile
	}

	if isNextDay(profile.LastActiveDay, dayKey) {
		profile.Streak++
	} else {
		profile.Streak = 1
	}
	if profile.Streak > profile.BestStreak {
		profile.BestStreak = profile.Streak
	}
	profile.LastActiveDay = dayKey
	return profile
}

// isNextDay reports whether next is exactly one calendar day after prev.
func isNextDay(prev, next string) bool {
	p, errP := time.Parse(dayKeyLayout, prev)
	n, errN := time.Parse(dayKeyLayout, next)
	if errP != nil || errN != nil {
		return false
	}
	return p.AddDate(0, 0, 1).Equal(n)
}

func cloneStats(stats domain.DailyStats) domain.DailyStats {
	out := make(domain.DailyStats, len(stats))
	for lang, days := range stats {
		cp := make(map[string]domain.DailyStat, len(days))
		for day, stat := range days {
			cp[day] = stat
		}
		out[lang] = cp
	}
	return out
}
