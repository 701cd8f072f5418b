package book

import "strings"

var (
	startMarkers = []string{
		"START OF THE PROJECT GUTENBERG EBOOK",
		"START OF THIS PROJECT GUTENBERG EBOOK",
	}
	endMarkers = []string{
		"END OF THE PROJECT GUTENBERG EBOOK",
		"END OF THIS PROJECT GUTENBERG EBOOK",
	}
)

// SplitLines splits text on LF or CRLF line endings.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// ExtractBody returns the lines between the Project Gutenberg START and END
// markers. Missing markers leave the corresponding end of lines untouched.
func ExtractBody(lines []string) []string {
	start, end := 0, len(lines)
	for i, line := range lines {
		if containsAny(line, startMarkers) {
			start = i + 1
			break
		}
	}
	for i := start; i < len(lines); i++ {
		if containsAny(lines[i], endMarkers) {
			end = i
			break
		}
	}
	return lines[start:end]
}

func containsAny(line string, markers []string) bool {
	upper := strings.ToUpper(line)
	for _, m := range markers {
		if strings.Contains(upper, m) {
			return true
		}
	}
	return false
}
