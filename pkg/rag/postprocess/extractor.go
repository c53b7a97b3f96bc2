package postprocess

import (
	"regexp"
	"strings"

	"sales-assistant-be/pkg/store"
)

var actionMarkerPattern = regexp.MustCompile(`(?i)^.*(Action:|TODO:|Task:)\s*`)

var followupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)follow[\s-]?up`),
	regexp.MustCompile(`(?i)call back`),
	regexp.MustCompile(`(?i)schedule.*meeting`),
	regexp.MustCompile(`(?i)send.*email`),
	regexp.MustCompile(`(?i)prepare.*document`),
}

// ExtractActionItems scans response lines for Action:/TODO:/Task:
// markers, case-insensitively. Everything defaults to medium priority
// until a human triages.
func ExtractActionItems(content string) []store.ActionItem {
	items := []store.ActionItem{}

	for _, line := range strings.Split(content, "\n") {
		if actionMarkerPattern.MatchString(line) {
			items = append(items, store.ActionItem{
				Task:     strings.TrimSpace(actionMarkerPattern.ReplaceAllString(line, "")),
				Priority: "medium",
				Category: "general",
			})
		}
	}
	return items
}

// ExtractFollowupTasks picks out lines that read like commitments: a
// follow-up, a callback, a meeting, an email, a document to prepare.
func ExtractFollowupTasks(content string) []store.FollowupTask {
	tasks := []store.FollowupTask{}

	for _, line := range strings.Split(content, "\n") {
		for _, pattern := range followupPatterns {
			if pattern.MatchString(line) {
				tasks = append(tasks, store.FollowupTask{
					Task:      strings.TrimSpace(line),
					Timeframe: "within 48 hours",
					Type:      "other",
				})
				break
			}
		}
	}
	return tasks
}
