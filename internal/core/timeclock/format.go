package timeclock

import "fmt"

// FormatElapsed formats worked seconds as zero-padded HH:MM:SS.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatMinutes formats an aggregate minute balance as "±Hh Mmin", the sign
// reflecting surplus or deficit.
func FormatMinutes(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%dh %dmin", sign, minutes/60, minutes%60)
}
