package dashboard

import (
	"fmt"
	"time"
)

// TimeAgo describes how long before now t happened.
//
// Anything older than a week is shown as a date.
func TimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)

	switch {
	case seconds < 60:
		return "Hace un momento"
	case seconds < 3600:
		return fmt.Sprintf("Hace %d min", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("Hace %dh", seconds/3600)
	case seconds < 604800:
		return fmt.Sprintf("Hace %d días", seconds/86400)
	default:
		return t.Format("02/01/2006")
	}
}
