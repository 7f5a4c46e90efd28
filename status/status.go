package status

// DayStatus is the single persisted record: has the tracked user committed
// on this calendar day. Superseded in place when the day rolls over.
type DayStatus struct {
	Date       string          `json:"date"`
	Users      map[string]bool `json:"users"`
	CommitTime string          `json:"commit_time,omitempty"`
}

func (s *DayStatus) Committed(user string) bool {
	if s.Users == nil {
		return false
	}
	return s.Users[user]
}
