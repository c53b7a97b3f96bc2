package postprocess

import (
	"regexp"
	"strings"
)

var (
	h3Pattern   = regexp.MustCompile(`(?m)^### (.*)$`)
	h2Pattern   = regexp.MustCompile(`(?m)^## (.*)$`)
	h1Pattern   = regexp.MustCompile(`(?m)^# (.*)$`)
	boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

	bulletPattern  = regexp.MustCompile(`^[•\-\*]\s+`)
	headerSplit    = regexp.MustCompile(`(<h[123]>.*?</h[123]>)`)
	headerPattern  = regexp.MustCompile(`<h[123]>.*</h[123]>`)
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
)

// FormatHTML converts a markdown-ish model response into the HTML the
// client renders. Responses that already carry HTML structure pass
// through untouched.
func FormatHTML(content string) string {
	if strings.Contains(content, "<h1>") || strings.Contains(content, "<h2>") || strings.Contains(content, "<ul>") {
		return content
	}

	formatted := content
	formatted = h3Pattern.ReplaceAllString(formatted, "<h3>$1</h3>")
	formatted = h2Pattern.ReplaceAllString(formatted, "<h2>$1</h2>")
	formatted = h1Pattern.ReplaceAllString(formatted, "<h1>$1</h1>")
	formatted = boldPattern.ReplaceAllString(formatted, "<strong>$1</strong>")
	formatted = convertBullets(formatted)
	formatted = wrapParagraphs(formatted)

	return formatted
}

// convertBullets turns runs of markdown bullet lines into <ul> lists.
func convertBullets(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	inList := false

	for _, rawLine := range lines {
		line := strings.TrimSpace(rawLine)

		if bulletPattern.MatchString(line) {
			if !inList {
				result = append(result, "<ul>")
				inList = true
			}
			result = append(result, "<li>"+strings.TrimSpace(bulletPattern.ReplaceAllString(line, ""))+"</li>")
			continue
		}

		if inList {
			result = append(result, "</ul>")
			inList = false
		}
		result = append(result, line)
	}
	if inList {
		result = append(result, "</ul>")
	}

	return strings.Join(result, "\n")
}

// wrapParagraphs wraps loose text in <p> tags, keeping hard returns as
// <br> and leaving headers and already-tagged blocks alone.
func wrapParagraphs(content string) string {
	sections := headerSplit.Split(content, -1)
	headers := headerSplit.FindAllString(content, -1)

	var result []string
	appendSection := func(section string) {
		section = strings.TrimSpace(section)
		if section == "" {
			return
		}
		if headerPattern.MatchString(section) {
			result = append(result, section)
			return
		}
		for _, para := range paragraphSplit.Split(section, -1) {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			if strings.HasPrefix(para, "<") {
				result = append(result, para)
				continue
			}
			result = append(result, "<p>"+strings.ReplaceAll(para, "\n", "<br>")+"</p>")
		}
	}

	for i, section := range sections {
		appendSection(section)
		if i < len(headers) {
			appendSection(headers[i])
		}
	}

	return strings.Join(result, "\n")
}
