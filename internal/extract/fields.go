package extract

import (
	"regexp"
	"strings"
)

var (
	emailRe      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	whitespaceRe = regexp.MustCompile(`\s`)
	nonDigitRe   = regexp.MustCompile(`\D`)
	yearRe       = regexp.MustCompile(`\d{4}`)
	monthRe      = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b`)
	notNameRe    = regexp.MustCompile(`[@#$%^&*()_+=\[\]{}|\\:;"'<>,.?/\d]`)

	// Ordered loosest-last: a country-prefixed mobile beats a bare digit run.
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`(\+91)?[6-9]\d{9}`),
		regexp.MustCompile(`\d{10}`),
		regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`),
	}
)

// Email returns the first email address found in the text, or "".
func Email(text string) string {
	return emailRe.FindString(text)
}

// Phone returns the first plausible 10-digit phone number found in the
// text, stripped of separators and a leading country code, or "".
func Phone(text string) string {
	clean := whitespaceRe.ReplaceAllString(text, "")

	for _, re := range phoneRes {
		match := re.FindString(clean)
		if match == "" {
			continue
		}
		digits := nonDigitRe.ReplaceAllString(match, "")
		if strings.HasPrefix(digits, "91") && len(digits) == 12 {
			digits = digits[2:]
		}
		if len(digits) == 10 {
			return digits
		}
	}
	return ""
}

// Section headers that can never be a candidate's name.
var nameSkipWords = []string{
	"resume", "cv", "curriculum", "vitae", "profile", "contact",
	"email", "phone", "address", "objective", "education",
	"experience", "skills", "projects",
}

// Name guesses the candidate's name: the first 2-4 word line that is not a
// section header, a date, or punctuation-heavy. Falls back to the first
// non-empty line.
func Name(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	for _, line := range lines {
		if len(line) < 3 || len(line) > 50 {
			continue
		}
		if notNameRe.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		if containsAny(lower, nameSkipWords) {
			continue
		}
		if monthRe.MatchString(line) || yearRe.MatchString(line) {
			continue
		}
		if words := len(strings.Fields(line)); words >= 2 && words <= 4 {
			return line
		}
	}

	if len(lines) > 0 {
		return lines[0]
	}
	return ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
