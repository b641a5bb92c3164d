package domain

import (
	"fmt"
	"math"
	"time"
)

// Profile is the account document returned by GET /profile.
// Timestamps are Unix seconds.
type Profile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	CreatedAt    int64  `json:"createdAt"`
	LastActiveAt int64  `json:"lastActiveAt"`
	Subscribed   bool   `json:"subscribed"`
}

// Progress is the growth-stage summary returned by GET /progress.
type Progress struct {
	CurrentStage    int `json:"currentStage"`
	TotalStages     int `json:"totalStages"`
	DaysActive      int `json:"daysActive"`
	SkillsPracticed int `json:"skillsPracticed"`
}

// DefaultTotalStages is the number of growth stages a user moves through.
const DefaultTotalStages = 6

var stageNames = [DefaultTotalStages]string{
	"Seedling",
	"Sprout",
	"Young Plant",
	"Mature Plant",
	"Flowering",
	"Full Bloom",
}

// StageName maps a 1-based growth stage to its label. Out-of-range stages
// fall back to the first stage.
func StageName(stage int) string {
	if stage < 1 || stage > len(stageNames) {
		return stageNames[0]
	}
	return stageNames[stage-1]
}

// ProgressPercentage returns round(current/total*100) clamped to [0, 100].
func ProgressPercentage(currentStage, totalStages int) int {
	if totalStages <= 0 {
		return 0
	}
	pct := int(math.Round(float64(currentStage) / float64(totalStages) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// MemberSinceYear returns the calendar year (UTC) of an account creation time.
func MemberSinceYear(createdAt int64) int {
	return time.Unix(createdAt, 0).UTC().Year()
}

const secondsPerDay = 24 * 60 * 60

// FormatLastActive renders how long ago lastActive (Unix seconds) was,
// counted in whole elapsed days relative to now. A week or more renders as
// an absolute M/D/YYYY date in now's location.
func FormatLastActive(lastActive int64, now time.Time) string {
	elapsed := now.Unix() - lastActive
	if elapsed < 0 {
		elapsed = 0
	}
	days := elapsed / secondsPerDay

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return time.Unix(lastActive, 0).In(now.Location()).Format("1/2/2006")
	}
}
