package view

import (
	"strings"
	"time"

	"github.com/xeonx/timeago"
)

// Initials derives the two-letter avatar abbreviation: full name takes
// precedence over email, split on whitespace, first rune of the first two
// words, uppercased. "Jane Doe" → "JD", "Madonna" → "M".
func Initials(fullName, email string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = strings.TrimSpace(email)
	}
	if name == "" {
		return ""
	}
	var b strings.Builder
	for i, word := range strings.Fields(name) {
		if i == 2 {
			break
		}
		b.WriteString(strings.ToUpper(string([]rune(word)[0])))
	}
	return b.String()
}

var statusClasses = map[string]string{
	"open":    "badge-status-open",
	"pending": "badge-status-pending",
	"closed":  "badge-status-closed",
}

var priorityClasses = map[string]string{
	"low":    "badge-priority-low",
	"medium": "badge-priority-medium",
	"high":   "badge-priority-high",
	"urgent": "badge-priority-urgent",
}

var channelIcons = map[string]string{
	"email":  "mail",
	"chat":   "message-circle",
	"phone":  "phone",
	"social": "share",
}

// StatusClass maps a ticket status to its badge CSS class. Unknown values
// get a neutral badge; the backend owns the enum.
func StatusClass(status string) string {
	if c, ok := statusClasses[status]; ok {
		return c
	}
	return "badge-neutral"
}

func PriorityClass(priority string) string {
	if c, ok := priorityClasses[priority]; ok {
		return c
	}
	return "badge-neutral"
}

func ChannelIcon(channel string) string {
	if ic, ok := channelIcons[channel]; ok {
		return ic
	}
	return "help-circle"
}

// TimeAgo renders an ISO-8601 timestamp as a relative phrase. The raw string
// comes back untouched when it does not parse; the UI never invents dates.
func TimeAgo(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return timeago.English.Format(t)
}

// FormatDate renders an ISO-8601 timestamp in the dashboard's short locale
// form, e.g. "02.01.2006 15:04".
func FormatDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("02.01.2006 15:04")
}
