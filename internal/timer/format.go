package timer

import (
	"fmt"
	"time"
)

// FormatTime renders d as MM:SS, truncating fractional seconds.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
