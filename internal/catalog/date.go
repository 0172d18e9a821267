package catalog

import (
	"os"
	"path/filepath"
	"regexp"
	"time"
)

const dateLayout = "2006-01-02"

var dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

func parseDate(value string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func dateFromName(name string) (time.Time, bool) {
	match := dateRe.FindString(name)
	if match == "" {
		return time.Time{}, false
	}
	return parseDate(match)
}

// DetermineDate resolves the effective meeting date. Priority order:
// explicit override, YYYY-MM-DD in the directory name, newest file
// modification time inside the directory, today. A malformed override
// falls through rather than failing.
func DetermineDate(override, dir string) time.Time {
	if override != "" {
		if t, ok := parseDate(override); ok {
			return t
		}
	}

	if t, ok := dateFromName(filepath.Base(dir)); ok {
		return t
	}

	var latest time.Time
	entries, err := os.ReadDir(dir)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(latest) {
				latest = info.ModTime()
			}
		}
	}

	if latest.IsZero() {
		return time.Now()
	}
	return latest
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
