package bot

import "fmt"

const (
	noonHour    = 12
	eveningHour = 22
)

func commitMessage(user, sha string) string {
	return fmt.Sprintf("🎯 %s committed! (`%s`) Great work today! 💪", user, sha)
}

// checkMessage picks the check-in text for an (hour, committed) pair. Hour
// 12 is the noon check, hour 22 the evening one; every other hour is
// treated as the late-night last call.
func checkMessage(hour int, committed bool, user string) string {
	switch {
	case hour == noonHour && committed:
		return fmt.Sprintf("✅ %s already finished today's commit! 👏", user)
	case hour == noonHour:
		return fmt.Sprintf("⏰ %s, don't forget today's TIL commit!", user)
	case hour == eveningHour && committed:
		return fmt.Sprintf("✅ %s has committed today. Same again tomorrow~ 🔥", user)
	case hour == eveningHour:
		return fmt.Sprintf("⚠️ %s hasn't committed yet. Go commit, quickly! ⏳", user)
	case committed:
		return fmt.Sprintf("🎉 %s made it again today! See you tomorrow!", user)
	default:
		return fmt.Sprintf("🚨 %s! Last chance! Commit before you sleep! 🏃", user)
	}
}
