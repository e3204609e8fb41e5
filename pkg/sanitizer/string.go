package sanitizer

import "strings"

// CleanString trims the value and collapses internal runs of whitespace
func CleanString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanText trims multi-line text but keeps its line breaks
func CleanText(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
