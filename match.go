package main

import (
	"fmt"
	"regexp"
	"strings"
)

// matchLines keeps the lines of the change region that match the pattern,
// in file order.
func matchLines(r *regexp.Regexp, region []numberedLine) []numberedLine {
	var matched []numberedLine
	for _, line := range region {
		if r.MatchString(line.text) {
			matched = append(matched, line)
		}
	}
	return matched
}

// formatMatches renders matched lines one per row as line_no:N::text.
func formatMatches(matches []numberedLine) string {
	rows := make([]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, fmt.Sprintf("line_no:%d::%s", m.no, m.text))
	}
	return strings.Join(rows, "\n")
}
