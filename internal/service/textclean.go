package service

import (
	"regexp"
	"strings"
)

// Artifacts common in scanned real-estate documents: margin line numbers
// and underscore ruling left by fill-in form fields.
var (
	lineNumberPattern = regexp.MustCompile(`^\d+$`)
	formFieldPattern  = regexp.MustCompile(`^_{3,}`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

const pageSeparator = "\n\n--- Page Break ---\n\n"

// cleanPageText normalizes one page of raw extracted text. Line-number and
// ruling artifacts are dropped, whitespace runs collapse to single spaces.
func cleanPageText(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if lineNumberPattern.MatchString(line) {
			continue
		}
		if formFieldPattern.MatchString(line) {
			continue
		}
		// Single stray characters are almost always extraction noise.
		if len([]rune(line)) < 2 {
			continue
		}
		cleaned = append(cleaned, whitespacePattern.ReplaceAllString(line, " "))
	}

	return strings.Join(cleaned, "\n")
}

// combinePages joins page texts with explicit page breaks. Pages that ended
// up empty after cleanup are skipped in the combined text but still count
// toward page_count.
func combinePages(pages []string) string {
	nonEmpty := make([]string, 0, len(pages))
	for _, page := range pages {
		if strings.TrimSpace(page) != "" {
			nonEmpty = append(nonEmpty, page)
		}
	}
	return strings.Join(nonEmpty, pageSeparator)
}
