package render

import (
	"fmt"
	"time"
)

// EndedLabel is shown once a listing's deadline has passed.
const EndedLabel = "Auction Ended"

// FormatTimeRemaining renders a remaining duration with day/hour/minute/
// second breakpoints: "2d 5h", "5h 30m", "1m 30s", "45s". Non-positive
// durations render as EndedLabel.
func FormatTimeRemaining(d time.Duration) string {
	if d <= 0 {
		return EndedLabel
	}

	seconds := int64(d / time.Second)
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours%24)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds%60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
