package bonus

import "time"

// BonusForStreak returns the coin bonus for the nth consecutive login
// day. The schedule ramps through the first week and caps at the
// day-eight value.
func BonusForStreak(streak int) int64 {
	switch {
	case streak <= 0:
		return 0
	case streak == 1:
		return 10
	case streak == 2:
		return 15
	case streak == 3:
		return 20
	case streak == 4:
		return 25
	case streak == 5:
		return 30
	case streak == 6:
		return 40
	case streak == 7:
		return 60
	default:
		return 75
	}
}

// NextStreak computes the streak value a login on today produces given
// the previous login day. Same-day logins keep the current streak, a
// gap of exactly one day extends it, anything longer resets to one.
func NextStreak(current int, lastLogin *time.Time, today time.Time) int {
	if lastLogin == nil {
		return 1
	}
	last := truncateDay(*lastLogin)
	day := truncateDay(today)
	switch int(day.Sub(last).Hours() / 24) {
	case 0:
		return current
	case 1:
		return current + 1
	default:
		return 1
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
