package caption

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxTimestamp is the largest time with a two-digit hour field
const MaxTimestamp = 100*time.Hour - time.Millisecond

// FormatTimestamp renders d as HH:MM:SS.mmm
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	hours := ms / int64(time.Hour/time.Millisecond)
	ms -= hours * int64(time.Hour/time.Millisecond)
	minutes := ms / int64(time.Minute/time.Millisecond)
	ms -= minutes * int64(time.Minute/time.Millisecond)
	seconds := ms / int64(time.Second/time.Millisecond)
	ms -= seconds * int64(time.Second/time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, ms)
}

// ParseTimestamp parses HH:MM:SS.mmm (a comma separator is accepted as well)
func ParseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ",", ".")
	clock, frac, ok := strings.Cut(value, ".")
	if !ok || len(frac) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(frac)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours > 99 || minutes > 59 || seconds > 59 || hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}
