package templates

import (
	"strings"
	"time"
)

// Render substitutes placeholders in content. Built-in variables ({date},
// {time}, {datetime}, from the current local time) are applied first, then
// every caller-supplied key replaces literal occurrences of {key}. Unmatched
// placeholders are left verbatim.
func Render(content string, vars map[string]string) string {
	now := time.Now()

	result := strings.ReplaceAll(content, "{date}", now.Format("2006-01-02"))
	result = strings.ReplaceAll(result, "{time}", now.Format("15:04"))
	result = strings.ReplaceAll(result, "{datetime}", now.Format("2006-01-02 15:04"))

	for key, value := range vars {
		result = strings.ReplaceAll(result, "{"+key+"}", value)
	}

	return result
}
