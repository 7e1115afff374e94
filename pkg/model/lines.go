package model

import "strings"

// DescriptionLines splits free text on line breaks and drops blank lines.
// Kept lines are returned as typed.
func DescriptionLines(text string) []string {
	out := []string{}
	if text == "" {
		return out
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// JoinLines is the inverse used to pre-fill a textarea.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
