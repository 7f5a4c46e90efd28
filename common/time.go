package common

import "time"

const DateFormat = "2006-01-02"

// KST is the fixed UTC+9 zone every day boundary is defined in.
var KST = time.FixedZone("KST", 9*60*60)

// Now is the current time in KST.
func Now() time.Time {
	return time.Now().In(KST)
}

// ToDay is the current KST calendar day.
func ToDay() string {
	return Now().Format(DateFormat)
}
