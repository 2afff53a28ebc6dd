package markup

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeDate reduces an Atlassian timestamp to YYYY-MM-DD. The backends
// emit several timezone spellings (+0000, -0500, +0900, trailing Z); all are
// accepted. Unparseable input is returned unchanged.
func NormalizeDate(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}

	fixed := fixTimezone(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, fixed); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return value
}

// fixTimezone inserts the colon RFC 3339 requires into compact zone offsets.
func fixTimezone(s string) string {
	switch {
	case strings.Contains(s, "+0000"):
		return strings.Replace(s, "+0000", "+00:00", 1)
	case strings.Contains(s, "-0000"):
		return strings.Replace(s, "-0000", "+00:00", 1)
	}

	if len(s) >= 5 {
		sign := s[len(s)-5]
		if (sign == '+' || sign == '-') && allDigits(s[len(s)-4:]) {
			return s[:len(s)-2] + ":" + s[len(s)-2:]
		}
	}

	return s
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
